package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/himalayan-flavors/rms-svc/internal/service/models/payment"
)

// ErrInvalidRequest marks a malformed or incomplete order request. It is
// raised before any catalog lookup or persistence happens.
var ErrInvalidRequest = errors.New("invalid order request")

// RequestedLine is one item-and-quantity entry as submitted by the client.
// Name and price are resolved from the catalog by the engine, never taken
// from the request.
type RequestedLine struct {
	FoodItemID uuid.UUID `json:"foodItemId"`
	Quantity   int       `json:"quantity"`
}

// RequestedAddress is the delivery address as submitted by the client.
type RequestedAddress struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// PlaceOrderModel is the full order request. The same shape is used for
// placing and for updating: an update is a complete replacement, not a patch.
type PlaceOrderModel struct {
	UserID             uuid.UUID        `json:"userId"`
	OrderedFoodItems   []RequestedLine  `json:"orderedFoodItems"`
	DeliveryAddress    RequestedAddress `json:"deliveryAddress"`
	IsAsSoonAsPossible bool             `json:"isAsSoonAsPossible"`
	DeliveryDateTime   *time.Time       `json:"deliveryDateTime,omitempty"`
	PaymentMethod      payment.Method   `json:"paymentMethod"`
	OrderStatus        Status           `json:"orderStatus"`
	PaymentStatus      payment.Status   `json:"paymentStatus"`
}

// Validate checks request-level rules: at least one line, positive
// quantities, valid enums, an explicit delivery time when not ASAP.
func (m *PlaceOrderModel) Validate() error {
	if m.UserID == uuid.Nil {
		return fmt.Errorf("%w: user id is required", ErrInvalidRequest)
	}
	if len(m.OrderedFoodItems) == 0 {
		return fmt.Errorf("%w: at least one food item must be ordered", ErrInvalidRequest)
	}
	for _, line := range m.OrderedFoodItems {
		if line.FoodItemID == uuid.Nil {
			return fmt.Errorf("%w: food item id is required", ErrInvalidRequest)
		}
		if line.Quantity <= 0 {
			return fmt.Errorf("%w: quantity must be positive", ErrInvalidRequest)
		}
	}
	if m.DeliveryAddress == (RequestedAddress{}) {
		return fmt.Errorf("%w: delivery address is required", ErrInvalidRequest)
	}
	if !m.IsAsSoonAsPossible && m.DeliveryDateTime == nil {
		return fmt.Errorf("%w: delivery date time is required unless as-soon-as-possible", ErrInvalidRequest)
	}
	if _, err := ParseStatus(m.OrderStatus.String()); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}
	if _, err := payment.ParseMethod(m.PaymentMethod.String()); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}
	if _, err := payment.ParseStatus(m.PaymentStatus.String()); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}

	return nil
}
