package menucategory

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrCategoryNotFound  = errors.New("food category not found")
	ErrDuplicateCategory = errors.New("food category name already exists")
)

// MenuCategory groups menu items. Category names are unique.
type MenuCategory struct {
	CategoryID  uuid.UUID `json:"categoryId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl,omitempty"`
}
