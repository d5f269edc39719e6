package imenurepo

import (
	"context"

	"github.com/google/uuid"

	"github.com/himalayan-flavors/rms-svc/internal/service/models/menucategory"
	"github.com/himalayan-flavors/rms-svc/internal/service/models/menuitem"
)

// IMenuRepository is an interface for the menu catalog postgres repository.
type IMenuRepository interface {
	InsertCategory(ctx context.Context, c menucategory.MenuCategory) error
	UpdateCategory(ctx context.Context, c menucategory.MenuCategory) error
	DeleteCategory(ctx context.Context, categoryID uuid.UUID) error
	GetCategoryByID(ctx context.Context, categoryID uuid.UUID) (*menucategory.MenuCategory, error)
	GetCategoryByName(ctx context.Context, name string) (*menucategory.MenuCategory, error)
	ListCategories(ctx context.Context) ([]menucategory.MenuCategory, error)

	InsertItem(ctx context.Context, item menuitem.MenuItem) error
	UpdateItem(ctx context.Context, item menuitem.MenuItem) error
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	GetItemByID(ctx context.Context, itemID uuid.UUID) (*menuitem.MenuItem, error)
	QueryItems(ctx context.Context, filter *menuitem.QueryItemsModel) ([]menuitem.MenuItem, error)
}
