package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/himalayan-flavors/rms-svc/internal/service/models/menucategory"
	"github.com/himalayan-flavors/rms-svc/internal/service/models/menuitem"
)

// GenericConn is an interface that works with both pgxpool.Pool and pgx.Tx.
type GenericConn interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// MenuItemDal represents the menu item data access layer model.
type MenuItemDal struct {
	ItemID             uuid.UUID        `db:"item_id"`
	CategoryID         uuid.UUID        `db:"category_id"`
	Name               string           `db:"name"`
	Description        string           `db:"description"`
	Price              decimal.Decimal  `db:"price"`
	DiscountPercentage *decimal.Decimal `db:"discount_percentage"`
	ImageURL           string           `db:"image_url"`
	IsSpecialOffer     bool             `db:"is_special_offer"`
	OfferDetails       string           `db:"offer_details"`
}

// ToModel converts MenuItemDal to a service layer MenuItem model.
func (m *MenuItemDal) ToModel() *menuitem.MenuItem {
	return &menuitem.MenuItem{
		ItemID:             m.ItemID,
		CategoryID:         m.CategoryID,
		Name:               m.Name,
		Description:        m.Description,
		Price:              m.Price,
		DiscountPercentage: m.DiscountPercentage,
		ImageURL:           m.ImageURL,
		IsSpecialOffer:     m.IsSpecialOffer,
		OfferDetails:       m.OfferDetails,
	}
}

// PostgresMenuRepository is the Postgres repository for the menu catalog.
type PostgresMenuRepository struct {
	conn GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresMenuRepository creates a new Postgres menu repository.
func NewPostgresMenuRepository(conn GenericConn) *PostgresMenuRepository {
	return &PostgresMenuRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// InsertCategory adds a new food category. Returns
// menucategory.ErrDuplicateCategory if the name is already taken.
func (r *PostgresMenuRepository) InsertCategory(ctx context.Context, c menucategory.MenuCategory) error {
	query, args, err := r.sb.Insert("menu_categories").
		Columns("category_id", "name", "description", "image_url").
		Values(c.CategoryID, c.Name, c.Description, c.ImageURL).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert category query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return menucategory.ErrDuplicateCategory
		}

		return fmt.Errorf("failed to insert category: %w", err)
	}

	return nil
}

// UpdateCategory overwrites a category's fields.
func (r *PostgresMenuRepository) UpdateCategory(ctx context.Context, c menucategory.MenuCategory) error {
	query, args, err := r.sb.Update("menu_categories").
		Set("name", c.Name).
		Set("description", c.Description).
		Set("image_url", c.ImageURL).
		Where(sq.Eq{"category_id": c.CategoryID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update category query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return menucategory.ErrDuplicateCategory
		}

		return fmt.Errorf("failed to update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return menucategory.ErrCategoryNotFound
	}

	return nil
}

// DeleteCategory removes a category and, by cascade, its items.
func (r *PostgresMenuRepository) DeleteCategory(ctx context.Context, categoryID uuid.UUID) error {
	query, args, err := r.sb.Delete("menu_categories").
		Where(sq.Eq{"category_id": categoryID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete category query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return menucategory.ErrCategoryNotFound
	}

	return nil
}

// GetCategoryByID retrieves a category by its id.
func (r *PostgresMenuRepository) GetCategoryByID(ctx context.Context, categoryID uuid.UUID) (*menucategory.MenuCategory, error) {
	return r.getCategory(ctx, sq.Eq{"category_id": categoryID})
}

// GetCategoryByName retrieves a category by its unique name.
func (r *PostgresMenuRepository) GetCategoryByName(ctx context.Context, name string) (*menucategory.MenuCategory, error) {
	return r.getCategory(ctx, sq.Eq{"name": name})
}

func (r *PostgresMenuRepository) getCategory(ctx context.Context, where sq.Eq) (*menucategory.MenuCategory, error) {
	query, args, err := r.sb.
		Select("category_id", "name", "description", "image_url").
		From("menu_categories").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select category query: %w", err)
	}

	var c menucategory.MenuCategory
	err = r.conn.QueryRow(ctx, query, args...).
		Scan(&c.CategoryID, &c.Name, &c.Description, &c.ImageURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, menucategory.ErrCategoryNotFound
		}

		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	return &c, nil
}

// ListCategories returns all categories.
func (r *PostgresMenuRepository) ListCategories(ctx context.Context) ([]menucategory.MenuCategory, error) {
	query, args, err := r.sb.
		Select("category_id", "name", "description", "image_url").
		From("menu_categories").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list categories query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	result := []menucategory.MenuCategory{}
	for rows.Next() {
		var c menucategory.MenuCategory
		if err := rows.Scan(&c.CategoryID, &c.Name, &c.Description, &c.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		result = append(result, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// InsertItem adds a new menu item.
func (r *PostgresMenuRepository) InsertItem(ctx context.Context, item menuitem.MenuItem) error {
	query, args, err := r.sb.Insert("menu_items").
		Columns(
			"item_id",
			"category_id",
			"name",
			"description",
			"price",
			"discount_percentage",
			"image_url",
			"is_special_offer",
			"offer_details",
		).
		Values(
			item.ItemID,
			item.CategoryID,
			item.Name,
			item.Description,
			item.Price,
			item.DiscountPercentage,
			item.ImageURL,
			item.IsSpecialOffer,
			item.OfferDetails,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert item query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}

	return nil
}

// UpdateItem overwrites a menu item's fields.
func (r *PostgresMenuRepository) UpdateItem(ctx context.Context, item menuitem.MenuItem) error {
	query, args, err := r.sb.Update("menu_items").
		Set("category_id", item.CategoryID).
		Set("name", item.Name).
		Set("description", item.Description).
		Set("price", item.Price).
		Set("discount_percentage", item.DiscountPercentage).
		Set("image_url", item.ImageURL).
		Set("is_special_offer", item.IsSpecialOffer).
		Set("offer_details", item.OfferDetails).
		Where(sq.Eq{"item_id": item.ItemID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update item query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return menuitem.ErrItemNotFound
	}

	return nil
}

// DeleteItem removes a menu item.
func (r *PostgresMenuRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	query, args, err := r.sb.Delete("menu_items").
		Where(sq.Eq{"item_id": itemID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete item query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return menuitem.ErrItemNotFound
	}

	return nil
}

// GetItemByID retrieves a menu item by id. This is the catalog lookup the
// order engine resolves line items against.
func (r *PostgresMenuRepository) GetItemByID(ctx context.Context, itemID uuid.UUID) (*menuitem.MenuItem, error) {
	items, err := r.QueryItems(ctx, &menuitem.QueryItemsModel{ItemIDs: []uuid.UUID{itemID}})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, menuitem.ErrItemNotFound
	}

	return &items[0], nil
}

// QueryItems retrieves menu items based on filter criteria.
func (r *PostgresMenuRepository) QueryItems(ctx context.Context, filter *menuitem.QueryItemsModel) ([]menuitem.MenuItem, error) {
	query := r.sb.
		Select(
			"item_id",
			"category_id",
			"name",
			"description",
			"price",
			"discount_percentage",
			"image_url",
			"is_special_offer",
			"offer_details",
		).
		From("menu_items").
		OrderBy("name ASC")

	if len(filter.ItemIDs) > 0 {
		query = query.Where(sq.Eq{"item_id": filter.ItemIDs})
	}

	if len(filter.CategoryIDs) > 0 {
		query = query.Where(sq.Eq{"category_id": filter.CategoryIDs})
	}

	if filter.Name != "" {
		query = query.Where(sq.ILike{"name": "%" + escapeLike(filter.Name) + "%"})
	}

	if filter.Description != "" {
		query = query.Where(sq.ILike{"description": "%" + escapeLike(filter.Description) + "%"})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	result := []menuitem.MenuItem{}
	for rows.Next() {
		var dal MenuItemDal
		err := rows.Scan(
			&dal.ItemID,
			&dal.CategoryID,
			&dal.Name,
			&dal.Description,
			&dal.Price,
			&dal.DiscountPercentage,
			&dal.ImageURL,
			&dal.IsSpecialOffer,
			&dal.OfferDetails,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		result = append(result, *dal.ToModel())
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
