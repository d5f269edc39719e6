package menuitem

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrItemNotFound = errors.New("food item not found")

// MenuItem is a food item in the menu catalog. Images are stored externally,
// only the URL/path is persisted.
type MenuItem struct {
	ItemID             uuid.UUID        `json:"itemId"`
	CategoryID         uuid.UUID        `json:"categoryId"`
	Name               string           `json:"name"`
	Description        string           `json:"description"`
	Price              decimal.Decimal  `json:"price"`
	DiscountPercentage *decimal.Decimal `json:"discountPercentage,omitempty"`
	ImageURL           string           `json:"imageUrl,omitempty"`
	IsSpecialOffer     bool             `json:"isSpecialOffer"`
	OfferDetails       string           `json:"offerDetails,omitempty"`
}
