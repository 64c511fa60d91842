// Command seed loads companies, branches, staff, fleet and categories from a YAML file
// and makes sure the package status rows exist. Identifiers are derived from names, so
// running it twice leaves the database unchanged.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"parcelhub/cmd"
	"parcelhub/internal/adapters/in/seedfile"
	"parcelhub/internal/adapters/out/postgres"
	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/pkg/config"
	"parcelhub/internal/pkg/logger"

	_ "github.com/lib/pq"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	flags := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	config.BindFlags(flags)
	file := flags.String("file", "cmd/seed/sample.yaml", "reference data to load")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err = logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err = seed(context.Background(), cfg, *file, logger.Get()); err != nil {
		logger.Get().Error("seed failed", zap.String("file", *file), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func seed(ctx context.Context, cfg *config.AppConfig, path string, log *zap.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	parsed, err := seedfile.Parse(f)
	if err != nil {
		return err
	}
	org, err := parsed.Organization()
	if err != nil {
		return err
	}

	sqlDB, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), postgres.NewGormConfig())
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		return err
	}

	app, err := cmd.NewCompositionRoot(*cfg, gormDB, nil, log)
	if err != nil {
		return err
	}

	importCmd, err := commands.NewImportOrganizationCommand(org)
	if err != nil {
		return err
	}
	importer := app.CreateImportOrganizationCommandHandler()
	if err = importer.Handle(ctx, importCmd); err != nil {
		return err
	}

	seedCmd, err := commands.NewSeedPackageStatusesCommand(nil)
	if err != nil {
		return err
	}
	seeder := app.CreateSeedPackageStatusesCommandHandler()
	records, err := seeder.Handle(ctx, seedCmd)
	if err != nil {
		return err
	}

	log.Info("seed complete", zap.String("file", path), zap.Int("statuses", len(records)))
	return nil
}
