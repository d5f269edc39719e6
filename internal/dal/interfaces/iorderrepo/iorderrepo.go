package iorderrepo

import (
	"context"

	"github.com/google/uuid"

	"github.com/himalayan-flavors/rms-svc/internal/service/models/order"
)

// IOrderRepository is an interface for the order aggregate postgres repository.
// Insert, Replace and Delete touch the whole aggregate (header, lines,
// address, payment); callers provide the transaction boundary.
type IOrderRepository interface {
	Insert(ctx context.Context, o order.Order) error
	Replace(ctx context.Context, o order.Order) error
	Delete(ctx context.Context, orderID uuid.UUID) error
	GetByID(ctx context.Context, orderID uuid.UUID) (*order.Order, error)
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
}
