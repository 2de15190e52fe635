package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.uber.org/zap"

	"afterschool/internal/core/domain"
	"afterschool/internal/port"
)

var (
	nameRe  = regexp.MustCompile(`^[A-Za-z\s]+$`)
	phoneRe = regexp.MustCompile(`^\d+$`)
)

// OrderItemInput is one requested lesson line in a new order.
type OrderItemInput struct {
	LessonID string
	Quantity int
}

// OrderInput is an order request already parsed at the boundary. RequestID
// is optional; when set, replays of the same id are rejected.
type OrderInput struct {
	RequestID string
	Name      string
	Phone     string
	Items     []OrderItemInput
}

// OrderService validates order requests, takes seats from the referenced
// lessons, and persists orders. It holds no state between requests.
type OrderService struct {
	catalog port.CatalogRepository
	orders  port.OrderRepository
	cache   port.CacheRepository
	logger  *zap.Logger
}

func NewOrderService(catalog port.CatalogRepository, orders port.OrderRepository, cache port.CacheRepository, logger *zap.Logger) *OrderService {
	return &OrderService{catalog: catalog, orders: orders, cache: cache, logger: logger}
}

// Create places an order. Seats are taken with one conditional update per
// lesson, never a read followed by a write. When any lesson comes up short,
// every seat already taken for this order is returned before the error is
// reported, so an order never half-applies.
func (s *OrderService) Create(ctx context.Context, in OrderInput) (*domain.Order, error) {
	if in.RequestID != "" {
		ok, err := s.cache.SetIdempotency(ctx, "order:"+in.RequestID)
		if err != nil {
			return nil, fmt.Errorf("idempotency check: %w", err)
		}
		if !ok {
			return nil, domain.ErrDuplicateRequest
		}
	}

	if err := validateOrderInput(in); err != nil {
		return nil, err
	}

	// Pre-read every referenced lesson: unknown ids and obvious shortfalls
	// are rejected before anything is touched, and subjects are snapshotted.
	items := make([]domain.OrderItem, 0, len(in.Items))
	var short []domain.SpaceShortfall
	for _, it := range in.Items {
		lesson, err := s.catalog.GetLesson(ctx, it.LessonID)
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidID) {
			return nil, &domain.ValidationError{Field: "lessons", Reason: fmt.Sprintf("unknown lesson %q", it.LessonID)}
		}
		if err != nil {
			return nil, err
		}
		if lesson.Space < it.Quantity {
			short = append(short, domain.SpaceShortfall{
				LessonID:  lesson.ID,
				Subject:   lesson.Subject,
				Requested: it.Quantity,
				Available: lesson.Space,
			})
			continue
		}
		items = append(items, domain.OrderItem{LessonID: lesson.ID, Subject: lesson.Subject, Quantity: it.Quantity})
	}
	if len(short) > 0 {
		return nil, &domain.InsufficientSpaceError{Shortfalls: short}
	}

	taken := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		ok, err := s.catalog.DecrementSpace(ctx, item.LessonID, item.Quantity)
		if err != nil {
			s.release(ctx, taken)
			return nil, err
		}
		if !ok {
			// Lost a race since the pre-read. Put everything back and report
			// the lesson that came up short.
			s.release(ctx, taken)
			shortfall := domain.SpaceShortfall{LessonID: item.LessonID, Subject: item.Subject, Requested: item.Quantity}
			if lesson, err := s.catalog.GetLesson(ctx, item.LessonID); err == nil {
				shortfall.Available = lesson.Space
			}
			return nil, &domain.InsufficientSpaceError{Shortfalls: []domain.SpaceShortfall{shortfall}}
		}
		taken = append(taken, item)
	}

	order := domain.Order{
		Name:      in.Name,
		Phone:     in.Phone,
		Lessons:   items,
		CreatedAt: time.Now().UTC(),
	}
	id, err := s.orders.CreateOrder(ctx, order)
	if err != nil {
		s.release(ctx, taken)
		return nil, fmt.Errorf("persist order: %w", err)
	}
	order.ID = id

	s.logger.Info("order created", zap.String("order_id", id), zap.Int("items", len(items)))
	return &order, nil
}

// release gives back seats taken for an order that will not be persisted.
func (s *OrderService) release(ctx context.Context, taken []domain.OrderItem) {
	for _, item := range taken {
		if err := s.catalog.IncrementSpace(ctx, item.LessonID, item.Quantity); err != nil {
			s.logger.Error("seat release failed",
				zap.String("lesson_id", item.LessonID),
				zap.Int("quantity", item.Quantity),
				zap.Error(err))
		}
	}
}

func validateOrderInput(in OrderInput) error {
	if in.Name == "" {
		return &domain.ValidationError{Field: "name", Reason: "required"}
	}
	if !nameRe.MatchString(in.Name) {
		return &domain.ValidationError{Field: "name", Reason: "must contain only letters and spaces"}
	}
	if in.Phone == "" {
		return &domain.ValidationError{Field: "phone", Reason: "required"}
	}
	if !phoneRe.MatchString(in.Phone) {
		return &domain.ValidationError{Field: "phone", Reason: "must contain only digits"}
	}
	if len(in.Items) == 0 {
		return &domain.ValidationError{Field: "lessons", Reason: "at least one lesson is required"}
	}
	for _, it := range in.Items {
		if it.LessonID == "" {
			return &domain.ValidationError{Field: "lessons", Reason: "lesson id is required"}
		}
		if it.Quantity <= 0 {
			return &domain.ValidationError{Field: "lessons", Reason: "quantity must be a positive integer"}
		}
	}
	return nil
}
