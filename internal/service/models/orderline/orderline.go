package orderline

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLine is one item-and-quantity entry within an order. ItemName and
// UnitPrice are snapshots captured at order time, so later catalog edits do
// not alter order history. TotalPrice is always derived as UnitPrice times
// Quantity, never taken from client input.
type OrderLine struct {
	OrderItemID uuid.UUID       `json:"orderItemId"`
	OrderID     uuid.UUID       `json:"orderId"`
	FoodItemID  uuid.UUID       `json:"foodItemId"`
	ItemName    string          `json:"itemName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}
