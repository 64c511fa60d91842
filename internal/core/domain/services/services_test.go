package services_test

import (
	"testing"
	"time"

	"parcelhub/internal/core/domain/model/identity"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/organization"
	"parcelhub/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

// world is two companies with two branches each.
type world struct {
	acme, globex                     kernel.UUID
	nairobi, mombasa, kisumu, nakuru *organization.Branch
}

func newWorld(t *testing.T) world {
	t.Helper()
	w := world{acme: kernel.NewUUID(), globex: kernel.NewUUID()}
	w.nairobi = branch(t, "Nairobi", w.acme)
	w.mombasa = branch(t, "Mombasa", w.acme)
	w.kisumu = branch(t, "Kisumu", w.globex)
	w.nakuru = branch(t, "Nakuru", w.globex)
	return w
}

func (w world) branches() []*organization.Branch {
	return []*organization.Branch{w.nairobi, w.mombasa, w.kisumu, w.nakuru}
}

func (w world) companyOf(branchID kernel.UUID) kernel.UUID {
	for _, b := range w.branches() {
		if b.ID().IsEqual(branchID) {
			return b.CompanyID()
		}
	}
	return kernel.UUID{}
}

func branch(t *testing.T, name string, companyID kernel.UUID) *organization.Branch {
	t.Helper()
	b, err := organization.NewBranch(kernel.NewUUID(), name, "", companyID)
	require.NoError(t, err)
	return b
}

func agentAt(t *testing.T, b *organization.Branch) *organization.Agent {
	t.Helper()
	a, err := organization.NewAgent(kernel.NewUUID(), kernel.NewUUID(), "agent", b.ID(), b.CompanyID())
	require.NoError(t, err)
	return a
}

func agentPrincipal(t *testing.T, a *organization.Agent) identity.Principal {
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

func principal(t *testing.T, role identity.Role, superuser bool, affiliation identity.Affiliation) identity.Principal {
	t.Helper()
	p, err := identity.NewPrincipal(kernel.NewUUID(), role, superuser, affiliation)
	require.NoError(t, err)
	return p
}

func newPackage(t *testing.T, sender *organization.Agent, destination *organization.Branch) *shipment.Package {
	t.Helper()
	pending, err := shipment.NewStatusRecord(kernel.NewUUID(), shipment.Pending, nil, now)
	require.NoError(t, err)
	value, err := kernel.ParseMoney("100")
	require.NoError(t, err)

	p, err := shipment.NewPackage(kernel.NewUUID(), shipment.RandomCodes{}.TrackingNumber(), shipment.Intake{
		Name:                "parcel",
		Value:               value,
		Sender:              shipment.Contact{Name: "s", Phone: "1"},
		Receiver:            shipment.Contact{Name: "r", Phone: "2"},
		SenderAgentID:       sender.ID(),
		OriginBranchID:      sender.BranchID(),
		DestinationBranchID: destination.ID(),
		Pending:             pending,
	}, now)
	require.NoError(t, err)
	return p
}

func newTicket(t *testing.T, p *shipment.Package, b *organization.Branch) *shipment.Ticket {
	t.Helper()
	ticket, err := shipment.NewTicket(kernel.NewUUID(), shipment.RandomCodes{}.TicketCode(), p, shipment.Assignment{
		DriverID:      kernel.NewUUID(),
		VehicleID:     kernel.NewUUID(),
		BranchID:      b.ID(),
		CompanyID:     b.CompanyID(),
		DepartureTime: now.Add(time.Hour),
	}, now)
	require.NoError(t, err)
	return ticket
}
