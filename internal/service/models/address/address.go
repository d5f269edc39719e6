package address

import "github.com/google/uuid"

// DeliveryAddress is the delivery address owned by a single order. It is
// created fresh on every place/update and never shared across orders.
// Submitted fields are copied verbatim, no normalization.
type DeliveryAddress struct {
	AddressID  uuid.UUID `json:"addressId"`
	OrderID    uuid.UUID `json:"orderId"`
	Street     string    `json:"street"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	PostalCode string    `json:"postalCode"`
	Country    string    `json:"country"`
}
