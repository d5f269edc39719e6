package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/himalayan-flavors/rms-svc/internal/service/models/address"
	"github.com/himalayan-flavors/rms-svc/internal/service/models/order"
	"github.com/himalayan-flavors/rms-svc/internal/service/models/orderline"
	"github.com/himalayan-flavors/rms-svc/internal/service/models/payment"
)

// GenericConn is an interface that works with both pgxpool.Pool and pgx.Tx.
type GenericConn interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// OrderDal represents the order header data access layer model.
type OrderDal struct {
	OrderID            uuid.UUID       `db:"order_id"`
	UserID             uuid.UUID       `db:"user_id"`
	OrderDate          time.Time       `db:"order_date"`
	OrderStatus        string          `db:"order_status"`
	TotalAmount        decimal.Decimal `db:"total_amount"`
	IsAsSoonAsPossible bool            `db:"is_asap"`
	DeliveryDateTime   *time.Time      `db:"delivery_datetime"`
}

// ToModel converts OrderDal to a service layer Order model. Children are
// populated separately.
func (o *OrderDal) ToModel() (*order.Order, error) {
	status, err := order.ParseStatus(o.OrderStatus)
	if err != nil {
		return nil, err
	}

	return &order.Order{
		OrderID:            o.OrderID,
		UserID:             o.UserID,
		OrderDate:          o.OrderDate,
		Status:             status,
		TotalAmount:        o.TotalAmount,
		IsAsSoonAsPossible: o.IsAsSoonAsPossible,
		DeliveryDateTime:   o.DeliveryDateTime,
		Lines:              []orderline.OrderLine{},
	}, nil
}

// PostgresOrderRepository persists the order aggregate: header, lines,
// delivery address and payment option. It does not open transactions itself;
// the unit of work hands it a pool or tx connection.
type PostgresOrderRepository struct {
	conn GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderRepository creates a new Postgres order repository.
func NewPostgresOrderRepository(conn GenericConn) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert persists a fully assembled order aggregate.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o order.Order) error {
	query, args, err := r.sb.Insert("orders").
		Columns(
			"order_id",
			"user_id",
			"order_date",
			"order_status",
			"total_amount",
			"is_asap",
			"delivery_datetime",
		).
		Values(
			o.OrderID,
			o.UserID,
			o.OrderDate,
			o.Status.String(),
			o.TotalAmount,
			o.IsAsSoonAsPossible,
			o.DeliveryDateTime,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert order query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	if err := r.insertChildren(ctx, o); err != nil {
		return err
	}

	return nil
}

// Replace overwrites an existing order aggregate wholesale: the header is
// updated in place, lines/address/payment are dropped and rebuilt from the
// given aggregate. Returns order.ErrOrderNotFound if the header is missing.
func (r *PostgresOrderRepository) Replace(ctx context.Context, o order.Order) error {
	query, args, err := r.sb.Update("orders").
		Set("order_status", o.Status.String()).
		Set("order_date", o.OrderDate).
		Set("total_amount", o.TotalAmount).
		Set("is_asap", o.IsAsSoonAsPossible).
		Set("delivery_datetime", o.DeliveryDateTime).
		Where(sq.Eq{"order_id": o.OrderID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update order query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrOrderNotFound
	}

	for _, table := range []string{"order_lines", "delivery_addresses", "payment_options"} {
		query, args, err := r.sb.Delete(table).Where(sq.Eq{"order_id": o.OrderID}).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete query for %s: %w", table, err)
		}
		if _, err := r.conn.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err := r.insertChildren(ctx, o); err != nil {
		return err
	}

	return nil
}

// Delete removes the order header; lines, address and payment go with it via
// ON DELETE CASCADE. Returns order.ErrOrderNotFound if nothing was deleted.
func (r *PostgresOrderRepository) Delete(ctx context.Context, orderID uuid.UUID) error {
	query, args, err := r.sb.Delete("orders").
		Where(sq.Eq{"order_id": orderID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete order query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrOrderNotFound
	}

	return nil
}

// GetByID retrieves a single order aggregate with all children.
func (r *PostgresOrderRepository) GetByID(ctx context.Context, orderID uuid.UUID) (*order.Order, error) {
	orders, err := r.Query(ctx, &order.QueryOrdersModel{OrderIDs: []uuid.UUID{orderID}})
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, order.ErrOrderNotFound
	}

	return &orders[0], nil
}

// Query retrieves order aggregates based on filter criteria. The date range
// filter compares the date component of order_date only, inclusive on both
// ends.
func (r *PostgresOrderRepository) Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	query := r.sb.
		Select(
			"order_id",
			"user_id",
			"order_date",
			"order_status",
			"total_amount",
			"is_asap",
			"delivery_datetime",
		).
		From("orders").
		OrderBy("order_date ASC")

	if len(filter.OrderIDs) > 0 {
		query = query.Where(sq.Eq{"order_id": filter.OrderIDs})
	}

	if len(filter.UserIDs) > 0 {
		query = query.Where(sq.Eq{"user_id": filter.UserIDs})
	}

	if filter.StartDate != nil {
		query = query.Where(sq.Expr("order_date::date >= ?::date", *filter.StartDate))
	}

	if filter.EndDate != nil {
		query = query.Where(sq.Expr("order_date::date <= ?::date", *filter.EndDate))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	result := []order.Order{}
	for rows.Next() {
		var dal OrderDal
		err := rows.Scan(
			&dal.OrderID,
			&dal.UserID,
			&dal.OrderDate,
			&dal.OrderStatus,
			&dal.TotalAmount,
			&dal.IsAsSoonAsPossible,
			&dal.DeliveryDateTime,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert order dal to model: %w", err)
		}
		result = append(result, *model)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	if len(result) == 0 {
		return result, nil
	}

	if err := r.loadChildren(ctx, result); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PostgresOrderRepository) insertChildren(ctx context.Context, o order.Order) error {
	lines := r.sb.Insert("order_lines").
		Columns(
			"order_item_id",
			"order_id",
			"food_item_id",
			"item_name",
			"quantity",
			"unit_price",
			"total_price",
		)
	for _, line := range o.Lines {
		lines = lines.Values(
			line.OrderItemID,
			line.OrderID,
			line.FoodItemID,
			line.ItemName,
			line.Quantity,
			line.UnitPrice,
			line.TotalPrice,
		)
	}

	query, args, err := lines.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert order lines query: %w", err)
	}
	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert order lines: %w", err)
	}

	query, args, err = r.sb.Insert("delivery_addresses").
		Columns("address_id", "order_id", "street", "city", "state", "postal_code", "country").
		Values(
			o.Address.AddressID,
			o.Address.OrderID,
			o.Address.Street,
			o.Address.City,
			o.Address.State,
			o.Address.PostalCode,
			o.Address.Country,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert delivery address query: %w", err)
	}
	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert delivery address: %w", err)
	}

	query, args, err = r.sb.Insert("payment_options").
		Columns("payment_id", "order_id", "payment_method", "payment_status", "payment_date").
		Values(
			o.Payment.PaymentID,
			o.Payment.OrderID,
			o.Payment.Method.String(),
			o.Payment.Status.String(),
			o.Payment.PaymentDate,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert payment option query: %w", err)
	}
	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert payment option: %w", err)
	}

	return nil
}

// loadChildren populates lines, addresses and payments for the given orders
// with one query per child table.
func (r *PostgresOrderRepository) loadChildren(ctx context.Context, orders []order.Order) error {
	orderIDs := make([]uuid.UUID, len(orders))
	index := make(map[uuid.UUID]*order.Order, len(orders))
	for i := range orders {
		orderIDs[i] = orders[i].OrderID
		index[orders[i].OrderID] = &orders[i]
	}

	query, args, err := r.sb.
		Select("order_item_id", "order_id", "food_item_id", "item_name", "quantity", "unit_price", "total_price").
		From("order_lines").
		Where(sq.Eq{"order_id": orderIDs}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query order lines: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query order lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line orderline.OrderLine
		err := rows.Scan(
			&line.OrderItemID,
			&line.OrderID,
			&line.FoodItemID,
			&line.ItemName,
			&line.Quantity,
			&line.UnitPrice,
			&line.TotalPrice,
		)
		if err != nil {
			return fmt.Errorf("failed to scan order line: %w", err)
		}
		if o, ok := index[line.OrderID]; ok {
			o.Lines = append(o.Lines, line)
		}
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("rows iteration error: %w", err)
	}
	rows.Close()

	query, args, err = r.sb.
		Select("address_id", "order_id", "street", "city", "state", "postal_code", "country").
		From("delivery_addresses").
		Where(sq.Eq{"order_id": orderIDs}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query delivery addresses: %w", err)
	}

	rows, err = r.conn.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query delivery addresses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var addr address.DeliveryAddress
		err := rows.Scan(
			&addr.AddressID,
			&addr.OrderID,
			&addr.Street,
			&addr.City,
			&addr.State,
			&addr.PostalCode,
			&addr.Country,
		)
		if err != nil {
			return fmt.Errorf("failed to scan delivery address: %w", err)
		}
		if o, ok := index[addr.OrderID]; ok {
			o.Address = addr
		}
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("rows iteration error: %w", err)
	}
	rows.Close()

	query, args, err = r.sb.
		Select("payment_id", "order_id", "payment_method", "payment_status", "payment_date").
		From("payment_options").
		Where(sq.Eq{"order_id": orderIDs}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query payment options: %w", err)
	}

	rows, err = r.conn.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query payment options: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			p              payment.PaymentOption
			method, status string
		)
		err := rows.Scan(&p.PaymentID, &p.OrderID, &method, &status, &p.PaymentDate)
		if err != nil {
			return fmt.Errorf("failed to scan payment option: %w", err)
		}
		if p.Method, err = payment.ParseMethod(method); err != nil {
			return fmt.Errorf("failed to parse payment method: %w", err)
		}
		if p.Status, err = payment.ParseStatus(status); err != nil {
			return fmt.Errorf("failed to parse payment status: %w", err)
		}
		if o, ok := index[p.OrderID]; ok {
			o.Payment = p
		}
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("rows iteration error: %w", err)
	}

	return nil
}
