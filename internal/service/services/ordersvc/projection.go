package ordersvc

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/himalayan-flavors/rms-svc/internal/service/models/address"
	"github.com/himalayan-flavors/rms-svc/internal/service/models/menuitem"
	"github.com/himalayan-flavors/rms-svc/internal/service/models/order"
	"github.com/himalayan-flavors/rms-svc/internal/service/models/payment"
)

// OrderResponse is the read-side shape of an order aggregate. Lines carry
// both the order-time snapshots and, when the item still exists, the current
// catalog entry.
type OrderResponse struct {
	OrderID            uuid.UUID               `json:"orderId"`
	UserID             uuid.UUID               `json:"userId"`
	OrderDate          time.Time               `json:"orderDate"`
	OrderStatus        order.Status            `json:"orderStatus"`
	TotalAmount        decimal.Decimal         `json:"totalAmount"`
	IsAsSoonAsPossible bool                    `json:"isAsSoonAsPossible"`
	DeliveryDateTime   *time.Time              `json:"deliveryDateTime,omitempty"`
	OrderedItems       []OrderedItemResponse   `json:"orderedItems"`
	DeliveryAddress    address.DeliveryAddress `json:"deliveryAddress"`
	PaymentOption      payment.PaymentOption   `json:"paymentOption"`
}

// OrderedItemResponse is one projected order line.
type OrderedItemResponse struct {
	FoodItemID uuid.UUID          `json:"foodItemId"`
	ItemName   string             `json:"itemName"`
	Quantity   int                `json:"quantity"`
	UnitPrice  decimal.Decimal    `json:"unitPrice"`
	TotalPrice decimal.Decimal    `json:"totalPrice"`
	FoodItem   *menuitem.MenuItem `json:"foodItem,omitempty"`
}

// GetOrder retrieves a single order projected to the response shape.
func (s *OrderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	work := s.newUOW()

	o, err := work.OrderRepository().GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	projected, err := s.project(ctx, work, []order.Order{*o})
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return &projected[0], nil
}

// GetAllOrders retrieves every order. Returns an empty slice, not an error,
// when there are none.
func (s *OrderService) GetAllOrders(ctx context.Context) ([]OrderResponse, error) {
	return s.queryOrders(ctx, &order.QueryOrdersModel{})
}

// GetOrdersByUser retrieves all orders placed by the given user.
func (s *OrderService) GetOrdersByUser(ctx context.Context, userID uuid.UUID) ([]OrderResponse, error) {
	return s.queryOrders(ctx, &order.QueryOrdersModel{UserIDs: []uuid.UUID{userID}})
}

// GetOrdersByUserAndDateRange retrieves the user's orders whose creation
// date falls within [startDate, endDate]. Only the date component is
// compared, inclusive on both ends.
func (s *OrderService) GetOrdersByUserAndDateRange(
	ctx context.Context,
	userID uuid.UUID,
	startDate time.Time,
	endDate time.Time,
) ([]OrderResponse, error) {
	start := truncateToDate(startDate)
	end := truncateToDate(endDate)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: start date must not be after end date", order.ErrInvalidRequest)
	}

	return s.queryOrders(ctx, &order.QueryOrdersModel{
		UserIDs:   []uuid.UUID{userID},
		StartDate: &start,
		EndDate:   &end,
	})
}

func (s *OrderService) queryOrders(ctx context.Context, filter *order.QueryOrdersModel) ([]OrderResponse, error) {
	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	if len(orders) == 0 {
		return []OrderResponse{}, nil
	}

	return s.project(ctx, work, orders)
}

// project maps stored aggregates to response shapes, resolving current
// catalog details for lines whose item still exists. It never mutates the
// aggregates it reads.
func (s *OrderService) project(ctx context.Context, work unitOfWork, orders []order.Order) ([]OrderResponse, error) {
	itemIDs := make([]uuid.UUID, 0)
	seen := make(map[uuid.UUID]struct{})
	for _, o := range orders {
		for _, line := range o.Lines {
			if _, ok := seen[line.FoodItemID]; !ok {
				seen[line.FoodItemID] = struct{}{}
				itemIDs = append(itemIDs, line.FoodItemID)
			}
		}
	}

	items := make(map[uuid.UUID]menuitem.MenuItem)
	if len(itemIDs) > 0 {
		found, err := work.MenuRepository().QueryItems(ctx, &menuitem.QueryItemsModel{ItemIDs: itemIDs})
		if err != nil {
			return nil, fmt.Errorf("failed to resolve item details: %w", err)
		}
		for _, item := range found {
			items[item.ItemID] = item
		}
	}

	result := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		projectedLines := make([]OrderedItemResponse, 0, len(o.Lines))
		for _, line := range o.Lines {
			projected := OrderedItemResponse{
				FoodItemID: line.FoodItemID,
				ItemName:   line.ItemName,
				Quantity:   line.Quantity,
				UnitPrice:  line.UnitPrice,
				TotalPrice: line.TotalPrice,
			}
			if item, ok := items[line.FoodItemID]; ok {
				projected.FoodItem = &item
			}
			projectedLines = append(projectedLines, projected)
		}

		result = append(result, OrderResponse{
			OrderID:            o.OrderID,
			UserID:             o.UserID,
			OrderDate:          o.OrderDate,
			OrderStatus:        o.Status,
			TotalAmount:        o.TotalAmount,
			IsAsSoonAsPossible: o.IsAsSoonAsPossible,
			DeliveryDateTime:   o.DeliveryDateTime,
			OrderedItems:       projectedLines,
			DeliveryAddress:    o.Address,
			PaymentOption:      o.Payment,
		})
	}

	return result, nil
}

func truncateToDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
