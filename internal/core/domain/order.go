package domain

import "time"

// OrderItem is one lesson line within an order. Subject is snapshotted at
// order time so later catalog edits do not rewrite order history.
type OrderItem struct {
	LessonID string `json:"id"`
	Subject  string `json:"subject"`
	Quantity int    `json:"quantity"`
}

// Order is a persisted customer order. Orders are immutable once created.
type Order struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Phone     string      `json:"phone"`
	Lessons   []OrderItem `json:"lessons"`
	CreatedAt time.Time   `json:"createdAt"`
}
