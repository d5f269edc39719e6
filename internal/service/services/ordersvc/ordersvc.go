package ordersvc

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/himalayan-flavors/rms-svc/internal/dal/interfaces/imenurepo"
	"github.com/himalayan-flavors/rms-svc/internal/dal/interfaces/iorderrepo"
	"github.com/himalayan-flavors/rms-svc/internal/dal/interfaces/ioutboxrepo"
	"github.com/himalayan-flavors/rms-svc/internal/dal/postgres"
	"github.com/himalayan-flavors/rms-svc/internal/dal/uow"
	"github.com/himalayan-flavors/rms-svc/internal/service/models/address"
	"github.com/himalayan-flavors/rms-svc/internal/service/models/order"
	"github.com/himalayan-flavors/rms-svc/internal/service/models/orderline"
	"github.com/himalayan-flavors/rms-svc/internal/service/models/outbox"
	"github.com/himalayan-flavors/rms-svc/internal/service/models/payment"
)

// OrderService is the order aggregation and pricing engine. It turns a
// validated request into a persisted order aggregate with derived totals, or
// rejects the whole operation with no partial side effects.
type OrderService struct {
	pgClient *postgres.Client
	newUOW   func() unitOfWork
	now      func() time.Time
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorderrepo.IOrderRepository
	MenuRepository() imenurepo.IMenuRepository
	OutboxRepository() ioutboxrepo.IOutboxRepository
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.newUOW == nil {
		panic("ordersvc: no unit of work source configured")
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.pgClient = pgClient
		s.newUOW = func() unitOfWork { return uow.NewUnitOfWork(pgClient) }
	}
}

// WithClock overrides the time source. Timestamps are UTC.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithClock(now func() time.Time) option {
	return func(s *OrderService) {
		s.now = now
	}
}

// PlaceOrder validates the request, resolves every line against the menu
// catalog, derives line and order totals, and persists the whole aggregate
// plus an order.placed outbox event in one transaction. Any unresolvable
// item id aborts the operation with menuitem.ErrItemNotFound and nothing is
// persisted.
func (s *OrderService) PlaceOrder(ctx context.Context, req order.PlaceOrderModel) (uuid.UUID, error) {
	if err := req.Validate(); err != nil {
		return uuid.Nil, err
	}

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("failed while placing order: %w", err)
	}
	defer work.Rollback(ctx)

	o, err := s.buildAggregate(ctx, work, uuid.New(), req.UserID, s.now(), req)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed while placing order: %w", err)
	}

	if err := work.OrderRepository().Insert(ctx, o); err != nil {
		return uuid.Nil, fmt.Errorf("failed while placing order: %w", err)
	}

	if err := s.enqueueEvent(ctx, work, "order.placed", o); err != nil {
		return uuid.Nil, fmt.Errorf("failed while placing order: %w", err)
	}

	if err := work.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("failed while placing order: %w", err)
	}

	return o.OrderID, nil
}

// UpdateOrder replaces an existing order wholesale: lines are rebuilt from
// the request, totals re-derived, address and payment rebuilt with fresh ids.
// The creation timestamp and user of the original order are preserved.
func (s *OrderService) UpdateOrder(ctx context.Context, orderID uuid.UUID, req order.PlaceOrderModel) error {
	if err := req.Validate(); err != nil {
		return err
	}

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return fmt.Errorf("failed while updating order: %w", err)
	}
	defer work.Rollback(ctx)

	existing, err := work.OrderRepository().GetByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed while updating order: %w", err)
	}

	o, err := s.buildAggregate(ctx, work, orderID, existing.UserID, existing.OrderDate, req)
	if err != nil {
		return fmt.Errorf("failed while updating order: %w", err)
	}

	if err := work.OrderRepository().Replace(ctx, o); err != nil {
		return fmt.Errorf("failed while updating order: %w", err)
	}

	if err := s.enqueueEvent(ctx, work, "order.updated", o); err != nil {
		return fmt.Errorf("failed while updating order: %w", err)
	}

	if err := work.Commit(ctx); err != nil {
		return fmt.Errorf("failed while updating order: %w", err)
	}

	return nil
}

// DeleteOrder removes an order and, by cascade, its lines, address and
// payment. Hard delete, no tombstone.
func (s *OrderService) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return fmt.Errorf("failed while deleting order: %w", err)
	}
	defer work.Rollback(ctx)

	if err := work.OrderRepository().Delete(ctx, orderID); err != nil {
		return fmt.Errorf("failed while deleting order: %w", err)
	}

	payload, err := json.Marshal(map[string]string{"orderId": orderID.String()})
	if err != nil {
		return fmt.Errorf("failed while deleting order: %w", err)
	}
	if err := s.enqueueRaw(ctx, work, "order.deleted", payload); err != nil {
		return fmt.Errorf("failed while deleting order: %w", err)
	}

	if err := work.Commit(ctx); err != nil {
		return fmt.Errorf("failed while deleting order: %w", err)
	}

	return nil
}

// buildAggregate assembles the full order aggregate in memory: lines with
// snapshot prices, derived totals, address and payment children. Nothing is
// persisted here.
func (s *OrderService) buildAggregate(
	ctx context.Context,
	work unitOfWork,
	orderID uuid.UUID,
	userID uuid.UUID,
	orderDate time.Time,
	req order.PlaceOrderModel,
) (order.Order, error) {
	now := s.now()

	lines := make([]orderline.OrderLine, 0, len(req.OrderedFoodItems))
	total := decimal.Zero
	for _, requested := range req.OrderedFoodItems {
		item, err := work.MenuRepository().GetItemByID(ctx, requested.FoodItemID)
		if err != nil {
			return order.Order{}, fmt.Errorf("food item %s: %w", requested.FoodItemID, err)
		}

		unitPrice := item.Price.Round(2)
		linePrice := unitPrice.Mul(decimal.NewFromInt(int64(requested.Quantity))).Round(2)

		lines = append(lines, orderline.OrderLine{
			OrderItemID: uuid.New(),
			OrderID:     orderID,
			FoodItemID:  requested.FoodItemID,
			ItemName:    item.Name,
			Quantity:    requested.Quantity,
			UnitPrice:   unitPrice,
			TotalPrice:  linePrice,
		})
		total = total.Add(linePrice)
	}

	// ASAP suppresses any submitted explicit delivery time.
	var deliveryAt *time.Time
	if !req.IsAsSoonAsPossible && req.DeliveryDateTime != nil {
		t := req.DeliveryDateTime.UTC()
		deliveryAt = &t
	}

	return order.Order{
		OrderID:            orderID,
		UserID:             userID,
		OrderDate:          orderDate,
		Status:             req.OrderStatus,
		TotalAmount:        total,
		IsAsSoonAsPossible: req.IsAsSoonAsPossible,
		DeliveryDateTime:   deliveryAt,
		Lines:              lines,
		Address: address.DeliveryAddress{
			AddressID:  uuid.New(),
			OrderID:    orderID,
			Street:     req.DeliveryAddress.Street,
			City:       req.DeliveryAddress.City,
			State:      req.DeliveryAddress.State,
			PostalCode: req.DeliveryAddress.PostalCode,
			Country:    req.DeliveryAddress.Country,
		},
		Payment: payment.PaymentOption{
			PaymentID:   uuid.New(),
			OrderID:     orderID,
			Method:      req.PaymentMethod,
			Status:      req.PaymentStatus,
			PaymentDate: now,
		},
	}, nil
}

func (s *OrderService) enqueueEvent(ctx context.Context, work unitOfWork, routingKey string, o order.Order) error {
	payload, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	return s.enqueueRaw(ctx, work, routingKey, payload)
}

func (s *OrderService) enqueueRaw(ctx context.Context, work unitOfWork, routingKey string, payload []byte) error {
	maxRetries := viper.GetInt("rabbitmq.outbox.max_retries")
	if maxRetries == 0 {
		maxRetries = 5
	}

	now := s.now()

	return work.OutboxRepository().Insert(ctx, outbox.OutboxMessage{
		QueueName:   viper.GetString("rabbitmq.orders.queue"),
		RoutingKey:  routingKey,
		Payload:     payload,
		ContentType: "application/json",
		MaxRetries:  maxRetries,
		CreatedAt:   now,
		UpdatedAt:   now,
		NextRetryAt: now,
	})
}
