package queries_test

import (
	"context"
	"testing"
	"time"

	postgresadapter "parcelhub/internal/adapters/out/postgres"
	"parcelhub/internal/adapters/out/postgres/pgtest"
	"parcelhub/internal/core/application/usecases/queries"
	"parcelhub/internal/core/domain/model/identity"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/organization"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

var t0 = time.Date(2025, 3, 14, 6, 0, 0, 0, time.UTC)

// VisibilityIntegrationTestSuite runs the read side against this layout:
//
//	p1  Nairobi agent -> Mombasa   Pending    ticket Nairobi/Acme   departs t0+5h
//	p2  Mombasa agent -> Nairobi   Pending    ticket Mombasa/Acme   departs t0+4h
//	p3  Kisumu agent  -> Kisumu    Pending    ticket Kisumu/Globex  departs t0+6h
//	p5  Mombasa agent -> Mombasa   Delivered  ticket Mombasa/Acme   departs t0+3h30m
type VisibilityIntegrationTestSuite struct {
	pgtest.Suite
	world *pgtest.World

	p1, p2, p3, p5 *shipment.Package
	t1, t2, t3, t5 *shipment.Ticket

	packages queries.GetVisiblePackagesQueryHandler
	single   queries.GetPackageQueryHandler
	tickets  queries.GetVisibleTicketsQueryHandler
	overdue  queries.GetOverdueDeparturesQueryHandler
}

func (suite *VisibilityIntegrationTestSuite) SetupSuite() {
	suite.Suite.SetupSuite()
	suite.packages = queries.NewGetVisiblePackagesQueryHandler(suite.DB)
	suite.single = queries.NewGetPackageQueryHandler(suite.DB)
	suite.tickets = queries.NewGetVisibleTicketsQueryHandler(suite.DB)
	suite.overdue = queries.NewGetOverdueDeparturesQueryHandler(suite.DB)
}

func (suite *VisibilityIntegrationTestSuite) SetupTest() {
	suite.Suite.SetupTest()
	ctx := context.Background()
	w := pgtest.Seed(ctx, suite.Require(), suite.DB)
	suite.world = w

	suite.p1, suite.t1 = w.Ship(ctx, w.NairobiAgent, w.Mombasa, t0, t0.Add(5*time.Hour))
	suite.p2, suite.t2 = w.Ship(ctx, w.MombasaAgent, w.Nairobi, t0.Add(time.Hour), t0.Add(4*time.Hour))
	suite.p3, suite.t3 = w.Ship(ctx, w.KisumuAgent, w.Kisumu, t0.Add(2*time.Hour), t0.Add(6*time.Hour))
	suite.p5, suite.t5 = w.Ship(ctx, w.MombasaAgent, w.Mombasa, t0.Add(3*time.Hour), t0.Add(210*time.Minute))

	uow := postgresadapter.NewGormUnitOfWorkFactory(suite.DB).Create()
	suite.Require().NoError(suite.p5.MarkDelivered(w.MombasaAgent.ID(), w.Delivered, t0.Add(4*time.Hour)))
	suite.Require().NoError(uow.PackageRepository().Update(ctx, suite.p5))
}

func (suite *VisibilityIntegrationTestSuite) principal(
	role identity.Role,
	superuser bool,
	company *organization.Company,
	branch *organization.Branch,
	agent *organization.Agent,
) identity.Principal {
	var affiliation identity.Affiliation
	if company != nil {
		id := company.ID()
		affiliation.CompanyID = &id
	}
	if branch != nil {
		id := branch.ID()
		affiliation.BranchID = &id
	}
	if agent != nil {
		id := agent.ID()
		affiliation.AgentID = &id
	}
	p, err := identity.NewPrincipal(kernel.NewUUID(), role, superuser, affiliation)
	suite.Require().NoError(err)
	return p
}

func (suite *VisibilityIntegrationTestSuite) agentPrincipal(agent *organization.Agent) identity.Principal {
	w := suite.world
	company := w.Acme
	branch := w.Nairobi
	switch {
	case agent.WorksAt(w.Mombasa.ID()):
		branch = w.Mombasa
	case agent.WorksAt(w.Kisumu.ID()):
		company, branch = w.Globex, w.Kisumu
	}
	return suite.principal(identity.Agent, false, company, branch, agent)
}

func (suite *VisibilityIntegrationTestSuite) packageIDs(p identity.Principal, status string) []kernel.UUID {
	query, err := queries.NewGetVisiblePackagesQuery(p, status)
	suite.Require().NoError(err)

	result, err := suite.packages.Handle(context.Background(), query)
	suite.Require().NoError(err)

	out := make([]kernel.UUID, 0, len(result))
	for _, pkg := range result {
		out = append(out, pkg.ID())
	}
	return out
}

func ids[T interface{ ID() kernel.UUID }](items ...T) []kernel.UUID {
	out := make([]kernel.UUID, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID())
	}
	return out
}

func (suite *VisibilityIntegrationTestSuite) TestVisiblePackages_PerRole() {
	w := suite.world
	tests := []struct {
		name      string
		principal identity.Principal
		want      []kernel.UUID
	}{
		{"agent sees sent and inbound", suite.agentPrincipal(w.NairobiAgent), ids(suite.p2, suite.p1)},
		{"agent sees received", suite.agentPrincipal(w.MombasaAgent), ids(suite.p5, suite.p2, suite.p1)},
		{"branch admin", suite.principal(identity.BranchAdmin, false, w.Acme, w.Mombasa, nil), ids(suite.p5, suite.p2, suite.p1)},
		{"company admin", suite.principal(identity.CompanyAdmin, false, w.Acme, nil, nil), ids(suite.p5, suite.p2, suite.p1)},
		{"other company admin", suite.principal(identity.CompanyAdmin, false, w.Globex, nil, nil), ids(suite.p3)},
		{"system admin", suite.principal(identity.SystemAdmin, false, nil, nil, nil), ids(suite.p5, suite.p3, suite.p2, suite.p1)},
		{"superuser without role", suite.principal(identity.UnknownRole, true, nil, nil, nil), ids(suite.p5, suite.p3, suite.p2, suite.p1)},
		{"unknown role", suite.principal(identity.UnknownRole, false, w.Acme, w.Nairobi, nil), []kernel.UUID{}},
		{"anonymous", identity.Anonymous(), []kernel.UUID{}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.Equal(tt.want, suite.packageIDs(tt.principal, ""))
		})
	}
}

func (suite *VisibilityIntegrationTestSuite) TestVisiblePackages_BranchAdminNeverSeesForeignBranches() {
	kisumuAdmin := suite.principal(identity.BranchAdmin, false, suite.world.Globex, suite.world.Kisumu, nil)

	suite.Equal(ids(suite.p3), suite.packageIDs(kisumuAdmin, ""))
}

func (suite *VisibilityIntegrationTestSuite) TestVisiblePackages_StatusFilter() {
	admin := suite.principal(identity.SystemAdmin, false, nil, nil, nil)

	suite.Equal(ids(suite.p3, suite.p2, suite.p1), suite.packageIDs(admin, "Pending"))
	suite.Equal(ids(suite.p5), suite.packageIDs(admin, "delivered"))
	suite.Empty(suite.packageIDs(admin, "Canceled"))
}

// TestGetPackage_AgreesWithListing checks the in-memory scope check against the SQL one.
func (suite *VisibilityIntegrationTestSuite) TestGetPackage_AgreesWithListing() {
	w := suite.world
	principals := []identity.Principal{
		suite.agentPrincipal(w.NairobiAgent),
		suite.agentPrincipal(w.KisumuAgent),
		suite.principal(identity.BranchAdmin, false, w.Acme, w.Nairobi, nil),
		suite.principal(identity.CompanyAdmin, false, w.Globex, nil, nil),
		suite.principal(identity.SystemAdmin, false, nil, nil, nil),
		identity.Anonymous(),
	}
	all := []*shipment.Package{suite.p1, suite.p2, suite.p3, suite.p5}

	for _, p := range principals {
		listed := map[kernel.UUID]bool{}
		for _, id := range suite.packageIDs(p, "") {
			listed[id] = true
		}

		for _, pkg := range all {
			query, err := queries.NewGetPackageQuery(p, pkg.ID())
			suite.Require().NoError(err)

			found, err := suite.single.Handle(context.Background(), query)
			if listed[pkg.ID()] {
				suite.Require().NoError(err)
				suite.Equal(pkg.TrackingNumber(), found.TrackingNumber())
			} else {
				suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
			}
		}
	}
}

func (suite *VisibilityIntegrationTestSuite) TestReadSide_BuildsSameAggregatesAsRepositories() {
	ctx := context.Background()
	admin := suite.principal(identity.SystemAdmin, false, nil, nil, nil)
	uow := postgresadapter.NewGormUnitOfWorkFactory(suite.DB).Create()

	query, err := queries.NewGetPackageQuery(admin, suite.p5.ID())
	suite.Require().NoError(err)
	fromQuery, err := suite.single.Handle(ctx, query)
	suite.Require().NoError(err)
	fromRepository, err := uow.PackageRepository().Get(ctx, suite.p5.ID())
	suite.Require().NoError(err)
	suite.Equal(fromRepository, fromQuery)
	suite.NotNil(fromQuery.DeliveredAt())

	ticketsQuery, err := queries.NewGetVisibleTicketsQuery(admin)
	suite.Require().NoError(err)
	tickets, err := suite.tickets.Handle(ctx, ticketsQuery)
	suite.Require().NoError(err)
	suite.Require().NotEmpty(tickets)
	ticket, err := uow.TicketRepository().Get(ctx, tickets[0].ID())
	suite.Require().NoError(err)
	suite.Equal(ticket, tickets[0])
}

func (suite *VisibilityIntegrationTestSuite) TestFindByTrackingNumber() {
	agent := suite.agentPrincipal(suite.world.MombasaAgent)

	query, err := queries.NewFindPackageByTrackingNumberQuery(agent, " "+suite.p1.TrackingNumber()+" ")
	suite.Require().NoError(err)
	found, err := suite.single.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Equal(suite.p1.ID(), found.ID())
	suite.Equal("100.00", found.ShippingFee().String())

	query, err = queries.NewFindPackageByTrackingNumberQuery(agent, suite.p3.TrackingNumber())
	suite.Require().NoError(err)
	_, err = suite.single.Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	query, err = queries.NewFindPackageByTrackingNumberQuery(agent, "PKG-FFFFFFFF")
	suite.Require().NoError(err)
	_, err = suite.single.Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *VisibilityIntegrationTestSuite) TestVisibleTickets_PerRole() {
	w := suite.world
	tests := []struct {
		name      string
		principal identity.Principal
		want      []kernel.UUID
	}{
		{"agent sees company tickets", suite.agentPrincipal(w.NairobiAgent), ids(suite.t5, suite.t2, suite.t1)},
		{"branch admin", suite.principal(identity.BranchAdmin, false, w.Acme, w.Mombasa, nil), ids(suite.t5, suite.t2)},
		{"company admin", suite.principal(identity.CompanyAdmin, false, w.Globex, nil, nil), ids(suite.t3)},
		{"superuser agent sees all", suite.principal(identity.Agent, true, w.Globex, w.Kisumu, w.KisumuAgent), ids(suite.t5, suite.t2, suite.t1, suite.t3)},
		{"system admin", suite.principal(identity.SystemAdmin, false, nil, nil, nil), ids(suite.t5, suite.t2, suite.t1, suite.t3)},
		{"anonymous", identity.Anonymous(), []kernel.UUID{}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			query, err := queries.NewGetVisibleTicketsQuery(tt.principal)
			suite.Require().NoError(err)

			result, err := suite.tickets.Handle(context.Background(), query)
			suite.Require().NoError(err)
			suite.Equal(tt.want, ids(result...))
		})
	}
}

func (suite *VisibilityIntegrationTestSuite) TestOverdueDepartures_OnlyPendingPastDeparture() {
	now := t0.Add(270 * time.Minute)

	result, err := suite.overdue.Handle(context.Background(), queries.NewGetOverdueDeparturesQuery(now))

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(suite.t2.ID(), result[0].TicketID)
	suite.Equal(suite.t2.Code(), result[0].TicketCode)
	suite.Equal(suite.p2.TrackingNumber(), result[0].TrackingNumber)
	suite.Equal(suite.world.Mombasa.ID(), result[0].BranchID)
	suite.Equal(30*time.Minute, result[0].Overdue)
}

func (suite *VisibilityIntegrationTestSuite) TestOverdueDepartures_NoneBeforeFirstDeparture() {
	result, err := suite.overdue.Handle(context.Background(), queries.NewGetOverdueDeparturesQuery(t0))

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *VisibilityIntegrationTestSuite) TestHandle_CancelledContext_ReturnsError() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	query, err := queries.NewGetVisiblePackagesQuery(suite.principal(identity.SystemAdmin, false, nil, nil, nil), "")
	suite.Require().NoError(err)

	_, err = suite.packages.Handle(ctx, query)

	suite.Require().Error(err)
}

func TestVisibilityIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(VisibilityIntegrationTestSuite))
}
