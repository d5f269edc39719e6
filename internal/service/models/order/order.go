package order

import (
	"database/sql/driver"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/himalayan-flavors/rms-svc/internal/service/models/address"
	"github.com/himalayan-flavors/rms-svc/internal/service/models/orderline"
	"github.com/himalayan-flavors/rms-svc/internal/service/models/payment"
)

// Status is the order fulfillment status.
type Status string

const (
	StatusPending        Status = "pending"
	StatusPreparing      Status = "preparing"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCanceled       Status = "canceled"
)

var (
	ErrInvalidStatus = errors.New("invalid order status")
	ErrOrderNotFound = errors.New("order not found")
)

func (s Status) String() string {
	return string(s)
}

func (s Status) Value() (driver.Value, error) {
	return s.String(), nil
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusPreparing, StatusOutForDelivery, StatusDelivered, StatusCanceled:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// Order is the aggregate root: header plus lines, one delivery address and
// one payment record. The children share the order's lifetime and are
// persisted/replaced/deleted together with it as one unit.
//
// Invariants:
//   - TotalAmount equals the sum of line TotalPrice values;
//   - DeliveryDateTime is nil whenever IsAsSoonAsPossible is true;
//   - Lines is never empty for a persisted order.
type Order struct {
	OrderID            uuid.UUID               `json:"orderId"`
	UserID             uuid.UUID               `json:"userId"`
	OrderDate          time.Time               `json:"orderDate"`
	Status             Status                  `json:"orderStatus"`
	TotalAmount        decimal.Decimal         `json:"totalAmount"`
	IsAsSoonAsPossible bool                    `json:"isAsSoonAsPossible"`
	DeliveryDateTime   *time.Time              `json:"deliveryDateTime,omitempty"`
	Lines              []orderline.OrderLine   `json:"orderedItems"`
	Address            address.DeliveryAddress `json:"deliveryAddress"`
	Payment            payment.PaymentOption   `json:"paymentOption"`
}
