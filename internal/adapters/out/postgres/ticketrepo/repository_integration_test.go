package ticketrepo_test

import (
	"context"
	"testing"
	"time"

	"parcelhub/internal/adapters/out/postgres/pgtest"
	"parcelhub/internal/adapters/out/postgres/ticketrepo"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var (
	registeredAt = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	departure    = registeredAt.Add(3 * time.Hour)
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type TicketRepositoryIntegrationTestSuite struct {
	pgtest.Suite
	world      *pgtest.World
	tracker    *MockAggregateTracker
	repository *ticketrepo.GormTicketRepository
	pkg        *shipment.Package
}

func (suite *TicketRepositoryIntegrationTestSuite) SetupTest() {
	suite.Suite.SetupTest()
	ctx := context.Background()
	suite.world = pgtest.Seed(ctx, suite.Require(), suite.DB)
	suite.pkg = suite.world.AddPackage(ctx, suite.world.NairobiAgent, suite.world.Mombasa, registeredAt)
	suite.tracker = &MockAggregateTracker{}
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = ticketrepo.NewGormTicketRepository(suite.DB, suite.tracker)
}

func (suite *TicketRepositoryIntegrationTestSuite) TestAdd_ValidTicket_RoundTrips() {
	ctx := context.Background()
	ticket := suite.world.NewTicket(suite.pkg, suite.world.NairobiAgent, departure)

	suite.Require().NoError(suite.repository.Add(ctx, ticket))

	byID, err := suite.repository.Get(ctx, ticket.ID())
	suite.Require().NoError(err)
	byPackage, err := suite.repository.GetByPackage(ctx, suite.pkg.ID())
	suite.Require().NoError(err)

	for _, loaded := range []*shipment.Ticket{byID, byPackage} {
		suite.Equal(ticket.ID(), loaded.ID())
		suite.Equal(ticket.Code(), loaded.Code())
		suite.Equal(suite.pkg.ID(), loaded.PackageID())
		suite.Equal(suite.world.Driver.ID(), loaded.DriverID())
		suite.Equal(suite.world.Vehicle.ID(), loaded.VehicleID())
		suite.Equal(suite.world.Nairobi.ID(), loaded.BranchID())
		suite.Equal(suite.world.Acme.ID(), loaded.CompanyID())
		suite.True(departure.Equal(loaded.DepartureTime()))
		suite.Equal("100.00", loaded.AmountPaid().String())
		suite.Equal(shipment.TicketSent, loaded.Status())
	}
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", ticket.ID(), ticket)
}

func (suite *TicketRepositoryIntegrationTestSuite) TestAdd_SecondTicketForPackage_ReturnsConflict() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.world.NewTicket(suite.pkg, suite.world.NairobiAgent, departure)))

	err := suite.repository.Add(ctx, suite.world.NewTicket(suite.pkg, suite.world.NairobiAgent, departure))

	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func (suite *TicketRepositoryIntegrationTestSuite) TestAdd_DuplicateCode_ReturnsConflict() {
	ctx := context.Background()
	first := suite.world.NewTicket(suite.pkg, suite.world.NairobiAgent, departure)
	suite.Require().NoError(suite.repository.Add(ctx, first))

	other := suite.world.AddPackage(ctx, suite.world.NairobiAgent, suite.world.Mombasa, registeredAt)
	clash, err := shipment.NewTicket(kernel.NewUUID(), first.Code(), other, shipment.Assignment{
		DriverID:      first.DriverID(),
		VehicleID:     first.VehicleID(),
		BranchID:      first.BranchID(),
		CompanyID:     first.CompanyID(),
		DepartureTime: departure,
	}, registeredAt)
	suite.Require().NoError(err)

	err = suite.repository.Add(ctx, clash)

	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func (suite *TicketRepositoryIntegrationTestSuite) TestUpdate_ChangesStatusOnly() {
	ctx := context.Background()
	ticket := suite.world.NewTicket(suite.pkg, suite.world.NairobiAgent, departure)
	suite.Require().NoError(suite.repository.Add(ctx, ticket))

	changedAt := registeredAt.Add(time.Hour)
	suite.Require().NoError(ticket.ChangeStatus(shipment.TicketReceived, changedAt))
	suite.Require().NoError(suite.repository.Update(ctx, ticket))

	loaded, err := suite.repository.Get(ctx, ticket.ID())
	suite.Require().NoError(err)
	suite.Equal(shipment.TicketReceived, loaded.Status())
	suite.True(changedAt.Equal(loaded.UpdatedAt()))
	suite.True(registeredAt.Equal(loaded.CreatedAt()))
}

func (suite *TicketRepositoryIntegrationTestSuite) TestGet_Unknown_ReturnsNotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	_, err = suite.repository.GetByPackage(ctx, suite.pkg.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *TicketRepositoryIntegrationTestSuite) TestUpdate_UnknownTicket_ReturnsNotFound() {
	ticket := suite.world.NewTicket(suite.pkg, suite.world.NairobiAgent, departure)

	err := suite.repository.Update(context.Background(), ticket)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestTicketRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(TicketRepositoryIntegrationTestSuite))
}
