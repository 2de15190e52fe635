package domain

// Lesson is a purchasable class slot in the catalog. Space is the number of
// seats still available; it is decremented by fulfilled orders and must
// never go negative.
type Lesson struct {
	ID       string  `json:"id"`
	Subject  string  `json:"subject"`
	Location string  `json:"location"`
	Price    float64 `json:"price"`
	Space    int     `json:"space"`
	Icon     string  `json:"icon"`
}
