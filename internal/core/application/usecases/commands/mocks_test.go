package commands_test

import (
	"context"
	"testing"
	"time"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/domain/model/identity"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/organization"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return now }

type MockCompanyRepository struct{ mock.Mock }

func (m *MockCompanyRepository) Save(ctx context.Context, c *organization.Company) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCompanyRepository) Get(ctx context.Context, id kernel.UUID) (*organization.Company, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*organization.Company)
	return c, args.Error(1)
}

type MockAgentRepository struct{ mock.Mock }

func (m *MockAgentRepository) Save(ctx context.Context, a *organization.Agent) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAgentRepository) Get(ctx context.Context, id kernel.UUID) (*organization.Agent, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*organization.Agent)
	return a, args.Error(1)
}

type MockBranchRepository struct{ mock.Mock }

func (m *MockBranchRepository) Save(ctx context.Context, b *organization.Branch) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBranchRepository) Get(ctx context.Context, id kernel.UUID) (*organization.Branch, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*organization.Branch)
	return b, args.Error(1)
}

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Save(ctx context.Context, d *organization.Driver) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDriverRepository) Get(ctx context.Context, id kernel.UUID) (*organization.Driver, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*organization.Driver)
	return d, args.Error(1)
}

type MockVehicleRepository struct{ mock.Mock }

func (m *MockVehicleRepository) Save(ctx context.Context, v *organization.Vehicle) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockVehicleRepository) Get(ctx context.Context, id kernel.UUID) (*organization.Vehicle, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*organization.Vehicle)
	return v, args.Error(1)
}

type MockCategoryRepository struct{ mock.Mock }

func (m *MockCategoryRepository) Save(ctx context.Context, c *organization.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCategoryRepository) Get(ctx context.Context, id kernel.UUID) (*organization.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*organization.Category)
	return c, args.Error(1)
}

type MockPackageStatusRepository struct{ mock.Mock }

func (m *MockPackageStatusRepository) Ensure(
	ctx context.Context,
	status shipment.Status,
	updatedBy *kernel.UUID,
) (shipment.StatusRecord, error) {
	args := m.Called(ctx, status, updatedBy)
	record, _ := args.Get(0).(shipment.StatusRecord)
	return record, args.Error(1)
}

type MockPackageRepository struct{ mock.Mock }

func (m *MockPackageRepository) Add(ctx context.Context, p *shipment.Package) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPackageRepository) Update(ctx context.Context, p *shipment.Package) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPackageRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Package, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*shipment.Package)
	return p, args.Error(1)
}

func (m *MockPackageRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*shipment.Package, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*shipment.Package)
	return p, args.Error(1)
}

type MockTicketRepository struct{ mock.Mock }

func (m *MockTicketRepository) Add(ctx context.Context, t *shipment.Ticket) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTicketRepository) Update(ctx context.Context, t *shipment.Ticket) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTicketRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Ticket, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*shipment.Ticket)
	return t, args.Error(1)
}

func (m *MockTicketRepository) GetByPackage(ctx context.Context, packageID kernel.UUID) (*shipment.Ticket, error) {
	args := m.Called(ctx, packageID)
	t, _ := args.Get(0).(*shipment.Ticket)
	return t, args.Error(1)
}

// repos bundles one mock per repository.
type repos struct {
	companies  *MockCompanyRepository
	agents     *MockAgentRepository
	branches   *MockBranchRepository
	drivers    *MockDriverRepository
	vehicles   *MockVehicleRepository
	categories *MockCategoryRepository
	statuses   *MockPackageStatusRepository
	packages   *MockPackageRepository
	tickets    *MockTicketRepository
}

func newRepos() repos {
	return repos{
		companies:  new(MockCompanyRepository),
		agents:     new(MockAgentRepository),
		branches:   new(MockBranchRepository),
		drivers:    new(MockDriverRepository),
		vehicles:   new(MockVehicleRepository),
		categories: new(MockCategoryRepository),
		statuses:   new(MockPackageStatusRepository),
		packages:   new(MockPackageRepository),
		tickets:    new(MockTicketRepository),
	}
}

func (r repos) assertExpectations(t *testing.T) {
	r.companies.AssertExpectations(t)
	r.agents.AssertExpectations(t)
	r.branches.AssertExpectations(t)
	r.drivers.AssertExpectations(t)
	r.vehicles.AssertExpectations(t)
	r.categories.AssertExpectations(t)
	r.statuses.AssertExpectations(t)
	r.packages.AssertExpectations(t)
	r.tickets.AssertExpectations(t)
}

// MockUoW satisfies every unit of work subset. Transaction calls are recorded on the
// embedded mock; repository accessors return the bundled mocks.
type MockUoW struct {
	mock.Mock
	repos repos
}

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) CompanyRepository() ports.CompanyRepository   { return m.repos.companies }
func (m *MockUoW) AgentRepository() ports.AgentRepository       { return m.repos.agents }
func (m *MockUoW) BranchRepository() ports.BranchRepository     { return m.repos.branches }
func (m *MockUoW) DriverRepository() ports.DriverRepository     { return m.repos.drivers }
func (m *MockUoW) VehicleRepository() ports.VehicleRepository   { return m.repos.vehicles }
func (m *MockUoW) CategoryRepository() ports.CategoryRepository { return m.repos.categories }
func (m *MockUoW) PackageStatusRepository() ports.PackageStatusRepository {
	return m.repos.statuses
}
func (m *MockUoW) PackageRepository() ports.PackageRepository { return m.repos.packages }
func (m *MockUoW) TicketRepository() ports.TicketRepository   { return m.repos.tickets }

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) uow() *MockUoW {
	return m.MethodCalled("Create").Get(0).(*MockUoW)
}

func (m *MockUoWFactory) intake() commands.IntakeUoWFactory {
	return funcFactory[commands.IntakeUoW](func() commands.IntakeUoW { return m.uow() })
}

func (m *MockUoWFactory) delivery() commands.DeliveryUoWFactory {
	return funcFactory[commands.DeliveryUoW](func() commands.DeliveryUoW { return m.uow() })
}

func (m *MockUoWFactory) ticket() commands.TicketUoWFactory {
	return funcFactory[commands.TicketUoW](func() commands.TicketUoW { return m.uow() })
}

func (m *MockUoWFactory) status() commands.StatusUoWFactory {
	return funcFactory[commands.StatusUoW](func() commands.StatusUoW { return m.uow() })
}

func (m *MockUoWFactory) organization() commands.OrganizationUoWFactory {
	return funcFactory[commands.OrganizationUoW](func() commands.OrganizationUoW { return m.uow() })
}

type funcFactory[T any] func() T

func (f funcFactory[T]) Create() T { return f() }

// committedUoW expects Begin, Commit and the deferred Rollback.
func committedUoW(ctx context.Context, r repos) *MockUoW {
	uow := &MockUoW{repos: r}
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	return uow
}

// abortedUoW expects Begin and the deferred Rollback only.
func abortedUoW(ctx context.Context, r repos) *MockUoW {
	uow := &MockUoW{repos: r}
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	return uow
}

// fixture is two companies: Acme with Nairobi and Mombasa, Globex with Kisumu.
type fixture struct {
	acme, globex             kernel.UUID
	nairobi, mombasa, kisumu *organization.Branch
	nairobiAgent             *organization.Agent
	mombasaAgent             *organization.Agent
	driver, foreignDriver    *organization.Driver
	vehicle, otherVehicle    *organization.Vehicle
	category                 *organization.Category
	pending, delivered       shipment.StatusRecord
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	f := fixture{acme: kernel.NewUUID(), globex: kernel.NewUUID()}

	var err error
	f.nairobi, err = organization.NewBranch(kernel.NewUUID(), "Nairobi", "", f.acme)
	require.NoError(t, err)
	f.mombasa, err = organization.NewBranch(kernel.NewUUID(), "Mombasa", "", f.acme)
	require.NoError(t, err)
	f.kisumu, err = organization.NewBranch(kernel.NewUUID(), "Kisumu", "", f.globex)
	require.NoError(t, err)

	f.nairobiAgent, err = organization.NewAgent(kernel.NewUUID(), kernel.NewUUID(), "A1", f.nairobi.ID(), f.acme)
	require.NoError(t, err)
	f.mombasaAgent, err = organization.NewAgent(kernel.NewUUID(), kernel.NewUUID(), "A2", f.mombasa.ID(), f.acme)
	require.NoError(t, err)

	f.driver, err = organization.NewDriver(kernel.NewUUID(), "D1", "DL-1", "", f.nairobi.ID(), f.acme)
	require.NoError(t, err)
	f.foreignDriver, err = organization.NewDriver(kernel.NewUUID(), "D2", "DL-2", "", f.kisumu.ID(), f.globex)
	require.NoError(t, err)

	f.vehicle, err = organization.NewVehicle(kernel.NewUUID(), "KDA 100A", "", f.acme, f.driver.ID())
	require.NoError(t, err)
	f.otherVehicle, err = organization.NewVehicle(kernel.NewUUID(), "KDA 200B", "", f.acme, kernel.NewUUID())
	require.NoError(t, err)

	f.category, err = organization.NewCategory(kernel.NewUUID(), "Electronics")
	require.NoError(t, err)

	f.pending, err = shipment.NewStatusRecord(kernel.NewUUID(), shipment.Pending, nil, now)
	require.NoError(t, err)
	f.delivered, err = shipment.NewStatusRecord(kernel.NewUUID(), shipment.Delivered, nil, now)
	require.NoError(t, err)

	return f
}

func principalFor(t *testing.T, a *organization.Agent) identity.Principal {
	t.Helper()
	agentID, branchID, companyID := a.ID(), a.BranchID(), a.CompanyID()
	p, err := identity.NewPrincipal(a.UserID(), identity.Agent, false, identity.Affiliation{
		CompanyID: &companyID,
		BranchID:  &branchID,
		AgentID:   &agentID,
	})
	require.NoError(t, err)
	return p
}

func (f fixture) validInput() commands.PackageInput {
	return commands.PackageInput{
		Name:                "Laptop",
		Weight:              2.5,
		Value:               "1000",
		DestinationBranchID: f.mombasa.ID().String(),
		DriverID:            f.driver.ID().String(),
		VehicleID:           f.vehicle.ID().String(),
		DepartureTime:       now.Add(time.Hour).Format(time.RFC3339),
		Sender:              shipment.Contact{Name: "Amina", Phone: "0700000001"},
		Receiver:            shipment.Contact{Name: "Baraka", Phone: "0700000002"},
	}
}

// registered builds a package sent from Nairobi to Mombasa and its ticket.
func (f fixture) registered(t *testing.T) (*shipment.Package, *shipment.Ticket) {
	t.Helper()
	value, err := kernel.ParseMoney("1000")
	require.NoError(t, err)

	p, err := shipment.NewPackage(kernel.NewUUID(), "PKG-0A1B2C3D", shipment.Intake{
		Name:                "Laptop",
		Value:               value,
		Sender:              shipment.Contact{Name: "Amina", Phone: "1"},
		Receiver:            shipment.Contact{Name: "Baraka", Phone: "2"},
		SenderAgentID:       f.nairobiAgent.ID(),
		OriginBranchID:      f.nairobi.ID(),
		DestinationBranchID: f.mombasa.ID(),
		Pending:             f.pending,
	}, now.Add(-2*time.Hour))
	require.NoError(t, err)

	ticket, err := shipment.NewTicket(kernel.NewUUID(), "TCK-ABC123", p, shipment.Assignment{
		DriverID:      f.driver.ID(),
		VehicleID:     f.vehicle.ID(),
		BranchID:      f.nairobi.ID(),
		CompanyID:     f.acme,
		DepartureTime: now.Add(-time.Hour),
	}, now.Add(-2*time.Hour))
	require.NoError(t, err)

	return p, ticket
}

// sequenceCodes hands out predefined codes in order.
type sequenceCodes struct {
	tracking []string
	tickets  []string
}

func (s *sequenceCodes) TrackingNumber() string {
	code := s.tracking[0]
	s.tracking = s.tracking[1:]
	return code
}

func (s *sequenceCodes) TicketCode() string {
	code := s.tickets[0]
	s.tickets = s.tickets[1:]
	return code
}
