package menuitem

import "github.com/google/uuid"

// QueryItemsModel represents filter parameters for querying menu items.
// Name and Description are matched as case-insensitive substrings.
type QueryItemsModel struct {
	ItemIDs     []uuid.UUID `json:"itemIds,omitempty"`
	CategoryIDs []uuid.UUID `json:"categoryIds,omitempty"`
	Name        string      `json:"name,omitempty"`
	Description string      `json:"description,omitempty"`
}
