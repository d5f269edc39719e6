package uow

import (
	"context"

	"github.com/himalayan-flavors/rms-svc/internal/dal/interfaces/imenurepo"
	"github.com/himalayan-flavors/rms-svc/internal/dal/interfaces/iorderrepo"
	"github.com/himalayan-flavors/rms-svc/internal/dal/interfaces/ioutboxrepo"
	"github.com/himalayan-flavors/rms-svc/internal/dal/postgres"
	homepagerepo "github.com/himalayan-flavors/rms-svc/internal/dal/repositories/homepage/postgres"
	menurepo "github.com/himalayan-flavors/rms-svc/internal/dal/repositories/menu/postgres"
	orderrepo "github.com/himalayan-flavors/rms-svc/internal/dal/repositories/order/postgres"
	outboxrepo "github.com/himalayan-flavors/rms-svc/internal/dal/repositories/outbox/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UnitOfWork scopes repository access to one transaction boundary. Before
// Begin the repositories run on the pool; after Begin they all share the same
// pgx transaction until Commit or Rollback.
type UnitOfWork struct {
	pool         *pgxpool.Pool
	tx           pgx.Tx
	orderRepo    iorderrepo.IOrderRepository
	menuRepo     imenurepo.IMenuRepository
	outboxRepo   ioutboxrepo.IOutboxRepository
	homepageRepo *homepagerepo.PostgresHomepageRepository
}

// NewUnitOfWork creates a unit of work with repositories bound to the pool.
func NewUnitOfWork(client *postgres.Client) *UnitOfWork {
	pool := client.Pool()

	return &UnitOfWork{
		pool:         pool,
		orderRepo:    orderrepo.NewPostgresOrderRepository(pool),
		menuRepo:     menurepo.NewPostgresMenuRepository(pool),
		outboxRepo:   outboxrepo.NewOutboxRepository(pool),
		homepageRepo: homepagerepo.NewPostgresHomepageRepository(pool),
	}
}

// OrderRepository returns the order repository bound to the current scope.
func (u *UnitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

// MenuRepository returns the menu repository bound to the current scope.
func (u *UnitOfWork) MenuRepository() imenurepo.IMenuRepository {
	return u.menuRepo
}

// OutboxRepository returns the outbox repository bound to the current scope.
func (u *UnitOfWork) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return u.outboxRepo
}

// HomepageRepository returns the homepage repository bound to the current scope.
func (u *UnitOfWork) HomepageRepository() *homepagerepo.PostgresHomepageRepository {
	return u.homepageRepo
}

// Begin opens a transaction and rebinds all repositories to it.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	u.orderRepo = orderrepo.NewPostgresOrderRepository(tx)
	u.menuRepo = menurepo.NewPostgresMenuRepository(tx)
	u.outboxRepo = outboxrepo.NewOutboxRepository(tx)
	u.homepageRepo = homepagerepo.NewPostgresHomepageRepository(tx)

	return nil
}

// Commit commits the transaction opened by Begin.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	if err := u.tx.Commit(ctx); err != nil {
		return err
	}
	u.tx = nil

	return nil
}

// Rollback aborts the transaction. Safe to defer after Begin; it is a no-op
// once Commit succeeded.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Rollback(ctx)
}
