package postgresrepo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/himalayan-flavors/rms-svc/internal/service/models/homepage"
)

// GenericConn is an interface that works with both pgxpool.Pool and pgx.Tx.
type GenericConn interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// PostgresHomepageRepository is the Postgres repository for homepage content:
// special groups, special events and company info.
type PostgresHomepageRepository struct {
	conn GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresHomepageRepository creates a new Postgres homepage repository.
func NewPostgresHomepageRepository(conn GenericConn) *PostgresHomepageRepository {
	return &PostgresHomepageRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// InsertSpecialGroup adds a homepage special group. Returns
// homepage.ErrDuplicateGroup if the name is taken.
func (r *PostgresHomepageRepository) InsertSpecialGroup(ctx context.Context, g homepage.SpecialGroup) error {
	query, args, err := r.sb.Insert("special_groups").
		Columns("group_id", "group_name", "group_description").
		Values(g.GroupID, g.GroupName, g.GroupDescription).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert special group query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return homepage.ErrDuplicateGroup
		}

		return fmt.Errorf("failed to insert special group: %w", err)
	}

	return nil
}

// GetSpecialGroupByName retrieves a special group by name, nil if absent.
func (r *PostgresHomepageRepository) GetSpecialGroupByName(ctx context.Context, name string) (*homepage.SpecialGroup, error) {
	query, args, err := r.sb.
		Select("group_id", "group_name", "group_description").
		From("special_groups").
		Where(sq.Eq{"group_name": name}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select special group query: %w", err)
	}

	var g homepage.SpecialGroup
	err = r.conn.QueryRow(ctx, query, args...).Scan(&g.GroupID, &g.GroupName, &g.GroupDescription)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to query special group: %w", err)
	}

	return &g, nil
}

// ListSpecialGroups returns all special groups.
func (r *PostgresHomepageRepository) ListSpecialGroups(ctx context.Context) ([]homepage.SpecialGroup, error) {
	query, args, err := r.sb.
		Select("group_id", "group_name", "group_description").
		From("special_groups").
		OrderBy("group_name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list special groups query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query special groups: %w", err)
	}
	defer rows.Close()

	result := []homepage.SpecialGroup{}
	for rows.Next() {
		var g homepage.SpecialGroup
		if err := rows.Scan(&g.GroupID, &g.GroupName, &g.GroupDescription); err != nil {
			return nil, fmt.Errorf("failed to scan special group: %w", err)
		}
		result = append(result, g)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// InsertSpecialEvent adds a homepage special event.
func (r *PostgresHomepageRepository) InsertSpecialEvent(ctx context.Context, e homepage.SpecialEvent) error {
	query, args, err := r.sb.Insert("special_events").
		Columns("event_id", "event_name", "event_date", "location", "description", "image_url").
		Values(e.EventID, e.EventName, e.EventDate, e.Location, e.Description, e.ImageURL).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert special event query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert special event: %w", err)
	}

	return nil
}

// ListSpecialEvents returns all special events, newest first.
func (r *PostgresHomepageRepository) ListSpecialEvents(ctx context.Context) ([]homepage.SpecialEvent, error) {
	query, args, err := r.sb.
		Select("event_id", "event_name", "event_date", "location", "description", "image_url").
		From("special_events").
		OrderBy("event_date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list special events query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query special events: %w", err)
	}
	defer rows.Close()

	result := []homepage.SpecialEvent{}
	for rows.Next() {
		var e homepage.SpecialEvent
		err := rows.Scan(&e.EventID, &e.EventName, &e.EventDate, &e.Location, &e.Description, &e.ImageURL)
		if err != nil {
			return nil, fmt.Errorf("failed to scan special event: %w", err)
		}
		result = append(result, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// GetCompanyInfo returns the single company profile.
func (r *PostgresHomepageRepository) GetCompanyInfo(ctx context.Context) (*homepage.CompanyInfo, error) {
	query, args, err := r.sb.
		Select("company_id", "name", "logo_url", "address", "phone_number", "email", "website").
		From("company_info").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select company info query: %w", err)
	}

	var info homepage.CompanyInfo
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&info.CompanyID,
		&info.Name,
		&info.LogoURL,
		&info.Address,
		&info.PhoneNumber,
		&info.Email,
		&info.Website,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, homepage.ErrCompanyInfoMissing
		}

		return nil, fmt.Errorf("failed to query company info: %w", err)
	}

	return &info, nil
}

// UpsertCompanyInfo creates or replaces the company profile.
func (r *PostgresHomepageRepository) UpsertCompanyInfo(ctx context.Context, info homepage.CompanyInfo) error {
	query, args, err := r.sb.Insert("company_info").
		Columns("company_id", "name", "logo_url", "address", "phone_number", "email", "website").
		Values(info.CompanyID, info.Name, info.LogoURL, info.Address, info.PhoneNumber, info.Email, info.Website).
		Suffix(`ON CONFLICT (company_id) DO UPDATE SET
			name = EXCLUDED.name,
			logo_url = EXCLUDED.logo_url,
			address = EXCLUDED.address,
			phone_number = EXCLUDED.phone_number,
			email = EXCLUDED.email,
			website = EXCLUDED.website`).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert company info query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert company info: %w", err)
	}

	return nil
}
