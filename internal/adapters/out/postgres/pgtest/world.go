package pgtest

import (
	"context"
	"time"

	postgresadapter "parcelhub/internal/adapters/out/postgres"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/organization"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/core/ports"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// World is a persisted organization: two companies, three branches and the fleet and
// staff that work there.
//
//	Acme:   Nairobi, Mombasa
//	Globex: Kisumu
type World struct {
	Acme, Globex             *organization.Company
	Nairobi, Mombasa, Kisumu *organization.Branch

	NairobiAgent, MombasaAgent, KisumuAgent *organization.Agent

	Driver, GlobexDriver   *organization.Driver
	Vehicle, GlobexVehicle *organization.Vehicle
	Category               *organization.Category

	Pending, Delivered shipment.StatusRecord

	uow ports.UnitOfWork
	r   *require.Assertions
}

// Seed persists a World through the repositories, outside any transaction.
func Seed(ctx context.Context, r *require.Assertions, db *gorm.DB) *World {
	w := &World{
		uow: postgresadapter.NewGormUnitOfWorkFactory(db).Create(),
		r:   r,
	}

	w.Acme = must(organization.NewCompany(kernel.NewUUID(), "Acme Logistics", organization.Contact{Email: "ops@acme.test"}))
	w.Globex = must(organization.NewCompany(kernel.NewUUID(), "Globex Freight", organization.Contact{}))
	for _, c := range []*organization.Company{w.Acme, w.Globex} {
		r.NoError(w.uow.CompanyRepository().Save(ctx, c))
	}

	w.Nairobi = must(organization.NewBranch(kernel.NewUUID(), "Nairobi", "Moi Avenue", w.Acme.ID()))
	w.Mombasa = must(organization.NewBranch(kernel.NewUUID(), "Mombasa", "Nyali", w.Acme.ID()))
	w.Kisumu = must(organization.NewBranch(kernel.NewUUID(), "Kisumu", "Oginga Odinga St", w.Globex.ID()))
	for _, b := range []*organization.Branch{w.Nairobi, w.Mombasa, w.Kisumu} {
		r.NoError(w.uow.BranchRepository().Save(ctx, b))
	}

	w.NairobiAgent = w.agent(ctx, "Wanjiru", w.Nairobi)
	w.MombasaAgent = w.agent(ctx, "Baraka", w.Mombasa)
	w.KisumuAgent = w.agent(ctx, "Achieng", w.Kisumu)

	w.Driver = must(organization.NewDriver(kernel.NewUUID(), "Otieno", "DL-0001", "+254700000001", w.Nairobi.ID(), w.Acme.ID()))
	w.GlobexDriver = must(organization.NewDriver(kernel.NewUUID(), "Kamau", "DL-0002", "+254700000002", w.Kisumu.ID(), w.Globex.ID()))
	for _, d := range []*organization.Driver{w.Driver, w.GlobexDriver} {
		r.NoError(w.uow.DriverRepository().Save(ctx, d))
	}

	w.Vehicle = must(organization.NewVehicle(kernel.NewUUID(), "KDA 123A", "Isuzu NPR", w.Acme.ID(), w.Driver.ID()))
	w.GlobexVehicle = must(organization.NewVehicle(kernel.NewUUID(), "KCB 456B", "Mitsubishi Canter", w.Globex.ID(), w.GlobexDriver.ID()))
	for _, v := range []*organization.Vehicle{w.Vehicle, w.GlobexVehicle} {
		r.NoError(w.uow.VehicleRepository().Save(ctx, v))
	}

	w.Category = must(organization.NewCategory(kernel.NewUUID(), "Electronics"))
	r.NoError(w.uow.CategoryRepository().Save(ctx, w.Category))

	var err error
	w.Pending, err = w.uow.PackageStatusRepository().Ensure(ctx, shipment.Pending, nil)
	r.NoError(err)
	w.Delivered, err = w.uow.PackageStatusRepository().Ensure(ctx, shipment.Delivered, nil)
	r.NoError(err)

	return w
}

func (w *World) agent(ctx context.Context, name string, branch *organization.Branch) *organization.Agent {
	a := must(organization.NewAgent(kernel.NewUUID(), kernel.NewUUID(), name, branch.ID(), branch.CompanyID()))
	w.r.NoError(w.uow.AgentRepository().Save(ctx, a))
	return a
}

// NewPackage builds an unsaved Pending package sent by sender to destination.
func (w *World) NewPackage(sender *organization.Agent, destination *organization.Branch, createdAt time.Time) *shipment.Package {
	pkg, err := shipment.NewPackage(kernel.NewUUID(), shipment.RandomCodes{}.TrackingNumber(), shipment.Intake{
		Name:                "Laptop",
		Weight:              2.5,
		Value:               must(kernel.ParseMoney("1000")),
		Sender:              shipment.Contact{Name: "Amina", Phone: "+254711000001"},
		Receiver:            shipment.Contact{Name: "Juma", Phone: "+254711000002"},
		SenderAgentID:       sender.ID(),
		OriginBranchID:      sender.BranchID(),
		DestinationBranchID: destination.ID(),
		Pending:             w.Pending,
	}, createdAt)
	w.r.NoError(err)
	return pkg
}

// AddPackage saves a package built by NewPackage.
func (w *World) AddPackage(ctx context.Context, sender *organization.Agent, destination *organization.Branch, createdAt time.Time) *shipment.Package {
	pkg := w.NewPackage(sender, destination, createdAt)
	w.r.NoError(w.uow.PackageRepository().Add(ctx, pkg))
	return pkg
}

// NewTicket builds an unsaved ticket for pkg, escorted by the Acme fleet and issued at
// the sender's branch.
func (w *World) NewTicket(pkg *shipment.Package, sender *organization.Agent, departure time.Time) *shipment.Ticket {
	ticket, err := shipment.NewTicket(kernel.NewUUID(), shipment.RandomCodes{}.TicketCode(), pkg, shipment.Assignment{
		DriverID:      w.Driver.ID(),
		VehicleID:     w.Vehicle.ID(),
		BranchID:      sender.BranchID(),
		CompanyID:     sender.CompanyID(),
		DepartureTime: departure,
	}, pkg.CreatedAt())
	w.r.NoError(err)
	return ticket
}

// Ship saves a package and its ticket.
func (w *World) Ship(
	ctx context.Context,
	sender *organization.Agent,
	destination *organization.Branch,
	createdAt, departure time.Time,
) (*shipment.Package, *shipment.Ticket) {
	pkg := w.AddPackage(ctx, sender, destination, createdAt)
	ticket := w.NewTicket(pkg, sender, departure)
	w.r.NoError(w.uow.TicketRepository().Add(ctx, ticket))
	return pkg, ticket
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
