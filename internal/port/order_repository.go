package port

import (
	"context"

	"afterschool/internal/core/domain"
)

type OrderRepository interface {
	// CreateOrder persists a new order and returns its assigned id.
	CreateOrder(ctx context.Context, o domain.Order) (string, error)
}
