// Package pgtest starts a throwaway PostgreSQL container for integration suites and seeds
// a small organization to ship packages through. It is imported by tests only.
package pgtest

import (
	"context"
	"strings"
	"time"

	postgresadapter "parcelhub/internal/adapters/out/postgres"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Suite is embedded by integration suites. SetupSuite starts the container and migrates
// the full schema; SetupTest empties every table.
type Suite struct {
	suite.Suite
	Container *postgres.PostgresContainer
	DB        *gorm.DB
}

func (s *Suite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.Container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := gorm.Open(gormpostgres.Open(dsn), postgresadapter.NewGormConfig())
	s.Require().NoError(err)
	s.DB = db

	s.Require().NoError(postgresadapter.Migrate(db))
}

func (s *Suite) TearDownSuite() {
	if s.Container != nil {
		err := s.Container.Terminate(context.Background())
		s.Require().NoError(err)
	}
}

func (s *Suite) SetupTest() {
	tables := make([]string, 0, len(postgresadapter.Models()))
	for _, model := range postgresadapter.Models() {
		stmt := &gorm.Statement{DB: s.DB}
		s.Require().NoError(stmt.Parse(model))
		tables = append(tables, stmt.Schema.Table)
	}
	err := s.DB.Exec("TRUNCATE TABLE " + strings.Join(tables, ", ") + " CASCADE").Error
	s.Require().NoError(err)
}
