package postgres

import (
	"fmt"
	"time"

	"parcelhub/internal/adapters/out/postgres/organizationrepo"
	"parcelhub/internal/adapters/out/postgres/packagerepo"
	"parcelhub/internal/adapters/out/postgres/statusrepo"
	"parcelhub/internal/adapters/out/postgres/ticketrepo"

	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewGormConfig is the GORM configuration every connection uses. TranslateError must be
// on: repositories recognise unique violations through gorm.ErrDuplicatedKey.
func NewGormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Open connects to PostgreSQL.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(dsn), NewGormConfig())
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}

// Models lists every table owned by this adapter, in dependency order.
func Models() []any {
	return []any{
		&organizationrepo.CompanyDTO{},
		&organizationrepo.BranchDTO{},
		&organizationrepo.AgentDTO{},
		&organizationrepo.DriverDTO{},
		&organizationrepo.VehicleDTO{},
		&organizationrepo.CategoryDTO{},
		&statusrepo.StatusDTO{},
		&packagerepo.PackageDTO{},
		&ticketrepo.TicketDTO{},
	}
}

// Migrate creates or alters the tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}
