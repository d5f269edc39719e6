package menusvc

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/himalayan-flavors/rms-svc/internal/dal/interfaces/imenurepo"
	"github.com/himalayan-flavors/rms-svc/internal/service/models/menucategory"
	"github.com/himalayan-flavors/rms-svc/internal/service/models/menuitem"
)

// MenuService manages the menu catalog: food categories and food items.
// The order engine resolves its line items against this catalog.
type MenuService struct {
	menuRepo imenurepo.IMenuRepository
}

// option is a function that configures the MenuService.
type option func(*MenuService)

// MustNewMenuService creates a new MenuService.
func MustNewMenuService(opts ...option) *MenuService {
	s := &MenuService{}
	for _, opt := range opts {
		opt(s)
	}
	if s.menuRepo == nil {
		panic("menusvc: no menu repository configured")
	}

	return s
}

// WithMenuRepository sets the menu repository for the MenuService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithMenuRepository(repo imenurepo.IMenuRepository) option {
	return func(s *MenuService) {
		s.menuRepo = repo
	}
}

// AddCategory creates a food category. Category names are unique; a taken
// name yields menucategory.ErrDuplicateCategory.
func (s *MenuService) AddCategory(ctx context.Context, c menucategory.MenuCategory) (uuid.UUID, error) {
	existing, err := s.menuRepo.GetCategoryByName(ctx, c.Name)
	if err != nil && !errors.Is(err, menucategory.ErrCategoryNotFound) {
		return uuid.Nil, fmt.Errorf("failed to add food category: %w", err)
	}
	if existing != nil {
		return uuid.Nil, menucategory.ErrDuplicateCategory
	}

	c.CategoryID = uuid.New()
	if err := s.menuRepo.InsertCategory(ctx, c); err != nil {
		return uuid.Nil, fmt.Errorf("failed to add food category: %w", err)
	}

	return c.CategoryID, nil
}

// UpdateCategory overwrites a category's fields.
func (s *MenuService) UpdateCategory(ctx context.Context, c menucategory.MenuCategory) error {
	if err := s.menuRepo.UpdateCategory(ctx, c); err != nil {
		return fmt.Errorf("failed to update food category: %w", err)
	}

	return nil
}

// DeleteCategory removes a category and, by cascade, its items.
func (s *MenuService) DeleteCategory(ctx context.Context, categoryID uuid.UUID) error {
	if err := s.menuRepo.DeleteCategory(ctx, categoryID); err != nil {
		return fmt.Errorf("failed to delete food category: %w", err)
	}

	return nil
}

// ListCategories returns all food categories.
func (s *MenuService) ListCategories(ctx context.Context) ([]menucategory.MenuCategory, error) {
	categories, err := s.menuRepo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list food categories: %w", err)
	}

	return categories, nil
}

// CategoryWithItems pairs a category with its items.
type CategoryWithItems struct {
	menucategory.MenuCategory
	FoodItems []menuitem.MenuItem `json:"foodItems"`
}

// GetCategoryWithItems returns a category and all its items.
func (s *MenuService) GetCategoryWithItems(ctx context.Context, categoryID uuid.UUID) (*CategoryWithItems, error) {
	category, err := s.menuRepo.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get food category: %w", err)
	}

	items, err := s.menuRepo.QueryItems(ctx, &menuitem.QueryItemsModel{
		CategoryIDs: []uuid.UUID{categoryID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get food items for category: %w", err)
	}

	return &CategoryWithItems{
		MenuCategory: *category,
		FoodItems:    items,
	}, nil
}

// AddItem creates a food item inside an existing category.
func (s *MenuService) AddItem(ctx context.Context, item menuitem.MenuItem) (uuid.UUID, error) {
	if _, err := s.menuRepo.GetCategoryByID(ctx, item.CategoryID); err != nil {
		return uuid.Nil, fmt.Errorf("failed to add food item: %w", err)
	}

	item.ItemID = uuid.New()
	if err := s.menuRepo.InsertItem(ctx, item); err != nil {
		return uuid.Nil, fmt.Errorf("failed to add food item: %w", err)
	}

	return item.ItemID, nil
}

// UpdateItem overwrites a food item's fields.
func (s *MenuService) UpdateItem(ctx context.Context, item menuitem.MenuItem) error {
	if err := s.menuRepo.UpdateItem(ctx, item); err != nil {
		return fmt.Errorf("failed to update food item: %w", err)
	}

	return nil
}

// DeleteItem removes a food item. Orders that referenced it keep their
// snapshot name and price.
func (s *MenuService) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	if err := s.menuRepo.DeleteItem(ctx, itemID); err != nil {
		return fmt.Errorf("failed to delete food item: %w", err)
	}

	return nil
}

// GetItem retrieves a single food item.
func (s *MenuService) GetItem(ctx context.Context, itemID uuid.UUID) (*menuitem.MenuItem, error) {
	item, err := s.menuRepo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get food item: %w", err)
	}

	return item, nil
}

// SearchItems finds items whose name or description contains the given
// fragments, case-insensitively.
func (s *MenuService) SearchItems(ctx context.Context, name, description string) ([]menuitem.MenuItem, error) {
	items, err := s.menuRepo.QueryItems(ctx, &menuitem.QueryItemsModel{
		Name:        name,
		Description: description,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search food items: %w", err)
	}

	return items, nil
}
