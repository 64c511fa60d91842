// Package postgres provides the GORM-based Unit of Work over all repositories.
//
// A unit of work wraps one database transaction. Repositories obtained from it after
// Begin run inside that transaction; before Begin they use the plain connection.
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.PackageRepository().Add(ctx, pkg); err != nil {
//	    return err
//	}
//	if err := uow.TicketRepository().Add(ctx, ticket); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Aggregates written or read through tracking repositories are remembered until the
// transaction ends. After a successful commit, tracked status lookup rows are published
// to the status cache, so the cache never holds a row that was rolled back.
//
// Each UnitOfWork instance is single-goroutine; concurrent requests create their own.
package postgres

import (
	"context"

	"parcelhub/internal/adapters/out/postgres/organizationrepo"
	"parcelhub/internal/adapters/out/postgres/packagerepo"
	"parcelhub/internal/adapters/out/postgres/statusrepo"
	"parcelhub/internal/adapters/out/postgres/ticketrepo"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/core/ports"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// trackedAggregate is an aggregate touched during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// Option configures a GormUnitOfWorkFactory.
type Option func(*GormUnitOfWorkFactory)

// WithStatusCache puts cache in front of the status lookup table.
func WithStatusCache(cache ports.StatusCache) Option {
	return func(f *GormUnitOfWorkFactory) {
		f.cache = cache
	}
}

// WithLogger sets the logger used for cache publication failures.
func WithLogger(logger *zap.Logger) Option {
	return func(f *GormUnitOfWorkFactory) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// GormUnitOfWorkFactory creates a fresh GormUnitOfWork per business operation.
type GormUnitOfWorkFactory struct {
	db     *gorm.DB
	cache  ports.StatusCache
	logger *zap.Logger
}

// NewGormUnitOfWorkFactory creates a factory whose units of work share db.
//
//	factory := NewGormUnitOfWorkFactory(db, WithStatusCache(cache), WithLogger(logger))
func NewGormUnitOfWorkFactory(db *gorm.DB, opts ...Option) *GormUnitOfWorkFactory {
	f := &GormUnitOfWorkFactory{db: db, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create produces a new UnitOfWork with no active transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return f.CreateGorm()
}

// CreateGorm is Create with the concrete type, for callers that need more than the port.
func (f *GormUnitOfWorkFactory) CreateGorm() *GormUnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		cache:             f.cache,
		logger:            f.logger,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and tracks the aggregates it touched.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	cache             ports.StatusCache
	logger            *zap.Logger
	trackedAggregates []trackedAggregate
}

// Begin opens the transaction. Calling it again while a transaction is active is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Commit makes the transaction permanent and then publishes tracked status rows to the
// cache. Cache failures are logged and do not fail the commit.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return err
	}

	uow.publishStatusRecords(ctx)
	return nil
}

// Rollback discards the transaction. Without an active transaction, for example after
// Commit, it does nothing, so it can always be deferred.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	uow.trackedAggregates = uow.trackedAggregates[:0]
	if uow.tx == nil {
		return nil
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// TrackAggregate registers an aggregate as touched within this unit of work. Repositories
// call it after a successful write or, for status rows, a database read.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedAggregates returns what the current or last committed transaction touched.
func (uow *GormUnitOfWork) TrackedAggregates() []any {
	out := make([]any, 0, len(uow.trackedAggregates))
	for _, tracked := range uow.trackedAggregates {
		out = append(out, tracked.Aggregate)
	}
	return out
}

func (uow *GormUnitOfWork) publishStatusRecords(ctx context.Context) {
	if uow.cache == nil {
		return
	}
	for _, tracked := range uow.trackedAggregates {
		record, ok := tracked.Aggregate.(shipment.StatusRecord)
		if !ok {
			continue
		}
		if err := uow.cache.Set(ctx, record); err != nil {
			uow.logger.Warn("status cache update failed",
				zap.String("status", record.Name()),
				zap.Error(err),
			)
		}
	}
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) CompanyRepository() ports.CompanyRepository {
	return organizationrepo.NewGormCompanyRepository(uow.conn())
}

func (uow *GormUnitOfWork) BranchRepository() ports.BranchRepository {
	return organizationrepo.NewGormBranchRepository(uow.conn())
}

func (uow *GormUnitOfWork) AgentRepository() ports.AgentRepository {
	return organizationrepo.NewGormAgentRepository(uow.conn())
}

func (uow *GormUnitOfWork) DriverRepository() ports.DriverRepository {
	return organizationrepo.NewGormDriverRepository(uow.conn())
}

func (uow *GormUnitOfWork) VehicleRepository() ports.VehicleRepository {
	return organizationrepo.NewGormVehicleRepository(uow.conn())
}

func (uow *GormUnitOfWork) CategoryRepository() ports.CategoryRepository {
	return organizationrepo.NewGormCategoryRepository(uow.conn())
}

// PackageStatusRepository reads through the status cache when one is configured.
func (uow *GormUnitOfWork) PackageStatusRepository() ports.PackageStatusRepository {
	return statusrepo.NewGormPackageStatusRepository(uow.conn(), uow, uow.cache)
}

func (uow *GormUnitOfWork) PackageRepository() ports.PackageRepository {
	return packagerepo.NewGormPackageRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) TicketRepository() ports.TicketRepository {
	return ticketrepo.NewGormTicketRepository(uow.conn(), uow)
}
