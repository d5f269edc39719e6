package payment

import (
	"database/sql/driver"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Method is the payment method declared by the customer.
type Method string

const (
	MethodCashOnDelivery Method = "cash_on_delivery"
	MethodIMEPay         Method = "ime_pay"
	MethodESewa          Method = "esewa"
	MethodBankTransfer   Method = "bank_transfer"
	MethodKhalti         Method = "khalti"
)

var ErrInvalidMethod = errors.New("invalid payment method")

func (m Method) String() string {
	return string(m)
}

func (m Method) Value() (driver.Value, error) {
	return m.String(), nil
}

func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodCashOnDelivery, MethodIMEPay, MethodESewa, MethodBankTransfer, MethodKhalti:
		return Method(s), nil
	default:
		return "", ErrInvalidMethod
	}
}

// Status is the declared payment status. It shares the value set of the
// order status.
type Status string

const (
	StatusPending        Status = "pending"
	StatusPreparing      Status = "preparing"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCanceled       Status = "canceled"
)

var ErrInvalidStatus = errors.New("invalid payment status")

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

// PaymentOption is the payment record owned by an order. It is rebuilt
// wholesale on every order update: fresh id, fresh payment date.
type PaymentOption struct {
	PaymentID   uuid.UUID `json:"paymentId"`
	OrderID     uuid.UUID `json:"orderId"`
	Method      Method    `json:"paymentMethod"`
	Status      Status    `json:"paymentStatus"`
	PaymentDate time.Time `json:"paymentDate"`
}
