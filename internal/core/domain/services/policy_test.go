package services_test

import (
	"testing"

	"parcelhub/internal/core/domain/model/identity"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/organization"
	"parcelhub/internal/core/domain/services"
	"parcelhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntakePolicy(t *testing.T) {
	w := newWorld(t)
	policy := services.NewIntakePolicy()
	agent := agentAt(t, w.nairobi)

	driver, err := organization.NewDriver(kernel.NewUUID(), "D1", "DL-1", "", w.mombasa.ID(), w.acme)
	require.NoError(t, err)
	foreignDriver, err := organization.NewDriver(kernel.NewUUID(), "D2", "DL-2", "", w.kisumu.ID(), w.globex)
	require.NoError(t, err)
	vehicle, err := organization.NewVehicle(kernel.NewUUID(), "KDA 1", "", w.acme, driver.ID())
	require.NoError(t, err)
	otherVehicle, err := organization.NewVehicle(kernel.NewUUID(), "KDA 2", "", w.acme, kernel.NewUUID())
	require.NoError(t, err)
	foreignVehicle, err := organization.NewVehicle(kernel.NewUUID(), "KDB 3", "", w.globex, driver.ID())
	require.NoError(t, err)

	t.Run("destination", func(t *testing.T) {
		require.NoError(t, policy.CheckDestination(agent, w.mombasa))
		require.NoError(t, policy.CheckDestination(agent, w.nairobi))

		err := policy.CheckDestination(agent, w.kisumu)
		var invalid *errs.ValueIsInvalidError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "destination_branch", invalid.ParamName)
		assert.Equal(t, services.ErrCrossCompanyDestination, invalid.Cause)
	})

	t.Run("driver", func(t *testing.T) {
		require.NoError(t, policy.CheckDriver(agent, driver))

		var invalid *errs.ValueIsInvalidError
		require.ErrorAs(t, policy.CheckDriver(agent, foreignDriver), &invalid)
		assert.Equal(t, "driver", invalid.ParamName)
	})

	t.Run("vehicle", func(t *testing.T) {
		require.NoError(t, policy.CheckVehicle(agent, driver, vehicle))

		var invalid *errs.ValueIsInvalidError
		require.ErrorAs(t, policy.CheckVehicle(agent, driver, otherVehicle), &invalid)
		assert.Equal(t, "vehicle", invalid.ParamName)
		assert.Equal(t, services.ErrVehicleDriverMismatch, invalid.Cause)

		require.ErrorAs(t, policy.CheckVehicle(agent, driver, foreignVehicle), &invalid)
		assert.Equal(t, services.ErrCrossCompanyVehicle, invalid.Cause)
	})
}

func TestRequireAgent(t *testing.T) {
	w := newWorld(t)
	require.NoError(t, services.RequireAgent(agentPrincipal(t, agentAt(t, w.nairobi))))

	companyID := w.acme
	err := services.RequireAgent(principal(t, identity.CompanyAdmin, false, identity.Affiliation{CompanyID: &companyID}))
	require.ErrorIs(t, err, errs.ErrForbidden)

	require.ErrorIs(t, services.RequireAgent(identity.Anonymous()), errs.ErrForbidden)
}

func TestAuthorizeDelivery(t *testing.T) {
	w := newWorld(t)
	p := newPackage(t, agentAt(t, w.nairobi), w.mombasa)

	require.NoError(t, services.AuthorizeDelivery(agentAt(t, w.mombasa), p))

	err := services.AuthorizeDelivery(agentAt(t, w.nairobi), p)
	require.ErrorIs(t, err, errs.ErrForbidden)
	assert.Contains(t, err.Error(), p.TrackingNumber())
}

func TestTicketStatusPolicy(t *testing.T) {
	for raw, want := range map[string]services.TicketStatusPolicy{
		"":        services.VisibleTickets,
		"visible": services.VisibleTickets,
		"Scoped":  services.WithinTicketScope,
	} {
		got, err := services.ParseTicketStatusPolicy(raw)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	for _, raw := range []string{"admins", "authenticated"} {
		_, err := services.ParseTicketStatusPolicy(raw)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid, raw)
	}

	w := newWorld(t)
	sender := agentAt(t, w.nairobi)
	ticket := newTicket(t, newPackage(t, sender, w.mombasa), w.nairobi)
	outsider := agentPrincipal(t, agentAt(t, w.kisumu))
	companyID := w.acme
	unknown := principal(t, identity.UnknownRole, false, identity.Affiliation{CompanyID: &companyID})

	require.NoError(t, services.VisibleTickets.Authorize(agentPrincipal(t, sender), ticket))
	require.ErrorIs(t, services.VisibleTickets.Authorize(outsider, ticket), errs.ErrObjectNotFound)
	require.ErrorIs(t, services.VisibleTickets.Authorize(unknown, ticket), errs.ErrObjectNotFound)
	require.ErrorIs(t, services.VisibleTickets.Authorize(identity.Anonymous(), ticket), errs.ErrForbidden)

	require.NoError(t, services.WithinTicketScope.Authorize(agentPrincipal(t, sender), ticket))
	require.ErrorIs(t, services.WithinTicketScope.Authorize(outsider, ticket), errs.ErrForbidden)
	require.ErrorIs(t, services.WithinTicketScope.Authorize(unknown, ticket), errs.ErrForbidden)
}
