package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"afterschool/internal/core/domain"
	"afterschool/internal/core/service"
)

// HTTPHandler exposes the catalog and order services as JSON endpoints.
type HTTPHandler struct {
	catalog *service.CatalogService
	orders  *service.OrderService
	logger  *zap.Logger
}

func NewHTTPHandler(catalog *service.CatalogService, orders *service.OrderService, logger *zap.Logger) *HTTPHandler {
	return &HTTPHandler{catalog: catalog, orders: orders, logger: logger}
}

// Routes returns the full request-logged endpoint set.
func (h *HTTPHandler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /lessons", h.ListLessons)
	mux.HandleFunc("GET /search", h.SearchLessons)
	mux.HandleFunc("PUT /lessons/{id}", h.UpdateLesson)
	mux.HandleFunc("POST /orders", h.CreateOrder)
	mux.HandleFunc("GET /health", h.HealthCheck)
	return RequestLogger(h.logger)(mux)
}

type updateLessonRequest struct {
	Subject  *string  `json:"subject"`
	Location *string  `json:"location"`
	Price    *float64 `json:"price"`
	Space    *int     `json:"space"`
	Icon     *string  `json:"icon"`
}

// fields maps only the keys present in the request body, so absent fields
// stay untouched in the store.
func (r updateLessonRequest) fields() map[string]any {
	fields := make(map[string]any)
	if r.Subject != nil {
		fields["subject"] = *r.Subject
	}
	if r.Location != nil {
		fields["location"] = *r.Location
	}
	if r.Price != nil {
		fields["price"] = *r.Price
	}
	if r.Space != nil {
		fields["space"] = *r.Space
	}
	if r.Icon != nil {
		fields["icon"] = *r.Icon
	}
	return fields
}

type updateLessonResponse struct {
	Message string        `json:"message"`
	Lesson  domain.Lesson `json:"lesson"`
}

type orderItemRequest struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

type createOrderRequest struct {
	RequestID string             `json:"requestId"`
	Name      string             `json:"name"`
	Phone     string             `json:"phone"`
	Lessons   []orderItemRequest `json:"lessons"`
}

type errorResponse struct {
	Category string `json:"category"`
	Error    string `json:"error"`
}

func (h *HTTPHandler) ListLessons(w http.ResponseWriter, r *http.Request) {
	lessons, err := h.catalog.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lessons)
}

func (h *HTTPHandler) SearchLessons(w http.ResponseWriter, r *http.Request) {
	lessons, err := h.catalog.Search(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lessons)
}

func (h *HTTPHandler) UpdateLesson(w http.ResponseWriter, r *http.Request) {
	var req updateLessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Category: "validation", Error: "invalid request body"})
		return
	}
	lesson, err := h.catalog.UpdateLesson(r.Context(), r.PathValue("id"), req.fields())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updateLessonResponse{
		Message: "lesson availability updated",
		Lesson:  *lesson,
	})
}

func (h *HTTPHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Category: "validation", Error: "invalid request body"})
		return
	}

	items := make([]service.OrderItemInput, 0, len(req.Lessons))
	for _, l := range req.Lessons {
		items = append(items, service.OrderItemInput{LessonID: l.ID, Quantity: l.Quantity})
	}

	order, err := h.orders.Create(r.Context(), service.OrderInput{
		RequestID: req.RequestID,
		Name:      req.Name,
		Phone:     req.Phone,
		Items:     items,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeError maps domain errors to stable categories. Anything unrecognized
// is a store fault; its detail is logged, never sent to the caller.
func (h *HTTPHandler) writeError(w http.ResponseWriter, err error) {
	var vErr *domain.ValidationError
	var sErr *domain.InsufficientSpaceError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Category: "validation", Error: vErr.Error()})
	case errors.As(err, &sErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Category: "inventory", Error: sErr.Error()})
	case errors.Is(err, domain.ErrInvalidID):
		writeJSON(w, http.StatusBadRequest, errorResponse{Category: "validation", Error: "invalid lesson id format"})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Category: "not_found", Error: "lesson not found"})
	case errors.Is(err, domain.ErrDuplicateRequest):
		writeJSON(w, http.StatusConflict, errorResponse{Category: "duplicate_request", Error: "order already submitted"})
	default:
		h.logger.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Category: "store_unavailable", Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
