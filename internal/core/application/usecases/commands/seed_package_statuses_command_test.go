package commands_test

import (
	"errors"
	"testing"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSeedPackageStatusesCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	r := newRepos()
	for _, status := range shipment.AllStatuses() {
		record, err := shipment.NewStatusRecord(kernel.NewUUID(), status, nil, now)
		require.NoError(t, err)
		r.statuses.On("Ensure", mock.Anything, status, (*kernel.UUID)(nil)).Return(record, nil).Once()
	}

	uow := committedUoW(ctx, r)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	h := commands.NewSeedPackageStatusesCommandHandler(factory.status(), zap.NewNop())

	cmd, err := commands.NewSeedPackageStatusesCommand(nil)
	require.NoError(t, err)
	records, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Len(t, records, 5)
	for i, status := range shipment.AllStatuses() {
		assert.Equal(t, status, records[i].Status())
	}
	r.statuses.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSeedPackageStatusesCommandHandler_Handle_EnsureError(t *testing.T) {
	ctx := t.Context()
	r := newRepos()
	r.statuses.On("Ensure", mock.Anything, shipment.Pending, mock.Anything).
		Return(shipment.StatusRecord{}, errors.New("ensure error")).Once()

	uow := abortedUoW(ctx, r)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	h := commands.NewSeedPackageStatusesCommandHandler(factory.status(), zap.NewNop())

	cmd, err := commands.NewSeedPackageStatusesCommand(nil)
	require.NoError(t, err)
	_, err = h.Handle(ctx, cmd)

	require.EqualError(t, err, "ensure error")
	uow.AssertExpectations(t)
}

func TestNewSeedPackageStatusesCommand(t *testing.T) {
	updatedBy := kernel.NewUUID()
	cmd, err := commands.NewSeedPackageStatusesCommand(&updatedBy)
	require.NoError(t, err)
	assert.Equal(t, &updatedBy, cmd.UpdatedBy())

	_, err = commands.NewSeedPackageStatusesCommand(&kernel.UUID{})
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	require.ErrorIs(t, commands.SeedPackageStatusesCommand{}.Validate(), commands.ErrSeedPackageStatusesCommandIsNotConstructed)
}
