package cmd

import (
	httpadapter "parcelhub/internal/adapters/in/http"
	"parcelhub/internal/adapters/out/postgres"
	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/application/usecases/queries"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/core/domain/services"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/jobs"
	"parcelhub/internal/pkg/config"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config       config.AppConfig
	gormDB       *gorm.DB
	uowFactory   ports.UnitOfWorkFactory
	ticketPolicy services.TicketStatusPolicy
	logger       *zap.Logger
}

// NewCompositionRoot wires the application around gormDB. cache may be nil.
func NewCompositionRoot(cfg config.AppConfig, gormDB *gorm.DB, cache ports.StatusCache, logger *zap.Logger) (CompositionRoot, error) {
	policy, err := services.ParseTicketStatusPolicy(cfg.TicketStatusPolicy)
	if err != nil {
		return CompositionRoot{}, err
	}

	opts := []postgres.Option{postgres.WithLogger(logger)}
	if cache != nil {
		opts = append(opts, postgres.WithStatusCache(cache))
	}

	return CompositionRoot{
		config:       cfg,
		gormDB:       gormDB,
		uowFactory:   postgres.NewGormUnitOfWorkFactory(gormDB, opts...),
		ticketPolicy: policy,
		logger:       logger,
	}, nil
}

func (c *CompositionRoot) CreateCreatePackageCommandHandler() commands.CreatePackageCommandHandler {
	var f commands.IntakeUoWFactory = FuncIntakeUoWFactory(func() commands.IntakeUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreatePackageCommandHandler(f, shipment.RandomCodes{}, commands.SystemClock, c.logger)
}

func (c *CompositionRoot) CreateMarkPackageDeliveredCommandHandler() commands.MarkPackageDeliveredCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkPackageDeliveredCommandHandler(f, commands.SystemClock, c.logger)
}

func (c *CompositionRoot) CreateUpdateTicketStatusCommandHandler() commands.UpdateTicketStatusCommandHandler {
	var f commands.TicketUoWFactory = FuncTicketUoWFactory(func() commands.TicketUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateTicketStatusCommandHandler(f, c.ticketPolicy, commands.SystemClock, c.logger)
}

func (c *CompositionRoot) CreateSeedPackageStatusesCommandHandler() commands.SeedPackageStatusesCommandHandler {
	var f commands.StatusUoWFactory = FuncStatusUoWFactory(func() commands.StatusUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSeedPackageStatusesCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateImportOrganizationCommandHandler() commands.ImportOrganizationCommandHandler {
	var f commands.OrganizationUoWFactory = FuncOrganizationUoWFactory(func() commands.OrganizationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewImportOrganizationCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateGetVisiblePackagesQueryHandler() queries.GetVisiblePackagesQueryHandler {
	return queries.NewGetVisiblePackagesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPackageQueryHandler() queries.GetPackageQueryHandler {
	return queries.NewGetPackageQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetVisibleTicketsQueryHandler() queries.GetVisibleTicketsQueryHandler {
	return queries.NewGetVisibleTicketsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOverdueDeparturesQueryHandler() queries.GetOverdueDeparturesQueryHandler {
	return queries.NewGetOverdueDeparturesQueryHandler(c.gormDB)
}

// CreateHTTPServer builds the API server with every handler it routes to.
func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	createPackage := c.CreateCreatePackageCommandHandler()
	markDelivered := c.CreateMarkPackageDeliveredCommandHandler()
	updateTicketStatus := c.CreateUpdateTicketStatusCommandHandler()

	return httpadapter.NewServer(httpadapter.Handlers{
		CreatePackage:        &createPackage,
		MarkPackageDelivered: &markDelivered,
		UpdateTicketStatus:   &updateTicketStatus,
		GetVisiblePackages:   c.CreateGetVisiblePackagesQueryHandler(),
		GetPackage:           c.CreateGetPackageQueryHandler(),
		GetVisibleTickets:    c.CreateGetVisibleTicketsQueryHandler(),
	})
}

// CreateJobManager returns the background jobs. An empty OVERDUE_JOB_SCHEDULE leaves the
// overdue check out.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	var scheduled []jobs.Job
	if c.config.OverdueJobSchedule != "" {
		scheduled = append(scheduled, jobs.NewOverdueDeparturesJob(
			c.CreateGetOverdueDeparturesQueryHandler(),
			c.config.OverdueJobSchedule,
			c.logger,
		))
	}
	return jobs.NewJobManager(c.logger, scheduled...)
}

type FuncIntakeUoWFactory func() commands.IntakeUoW

func (f FuncIntakeUoWFactory) Create() commands.IntakeUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncTicketUoWFactory func() commands.TicketUoW

func (f FuncTicketUoWFactory) Create() commands.TicketUoW {
	return f()
}

type FuncStatusUoWFactory func() commands.StatusUoW

func (f FuncStatusUoWFactory) Create() commands.StatusUoW {
	return f()
}

type FuncOrganizationUoWFactory func() commands.OrganizationUoW

func (f FuncOrganizationUoWFactory) Create() commands.OrganizationUoW {
	return f()
}
