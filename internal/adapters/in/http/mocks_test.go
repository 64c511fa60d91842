package http_test

import (
	"context"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/application/usecases/queries"
	"parcelhub/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/mock"
)

type MockCreatePackageHandler struct{ mock.Mock }

func (m *MockCreatePackageHandler) Handle(ctx context.Context, cmd commands.CreatePackageCommand) (commands.CreatePackageResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.CreatePackageResult), args.Error(1)
}

type MockMarkPackageDeliveredHandler struct{ mock.Mock }

func (m *MockMarkPackageDeliveredHandler) Handle(ctx context.Context, cmd commands.MarkPackageDeliveredCommand) (*shipment.Package, error) {
	args := m.Called(ctx, cmd)
	pkg, _ := args.Get(0).(*shipment.Package)
	return pkg, args.Error(1)
}

type MockUpdateTicketStatusHandler struct{ mock.Mock }

func (m *MockUpdateTicketStatusHandler) Handle(ctx context.Context, cmd commands.UpdateTicketStatusCommand) (*shipment.Ticket, error) {
	args := m.Called(ctx, cmd)
	ticket, _ := args.Get(0).(*shipment.Ticket)
	return ticket, args.Error(1)
}

type MockGetVisiblePackagesHandler struct{ mock.Mock }

func (m *MockGetVisiblePackagesHandler) Handle(ctx context.Context, query queries.GetVisiblePackagesQuery) ([]*shipment.Package, error) {
	args := m.Called(ctx, query)
	packages, _ := args.Get(0).([]*shipment.Package)
	return packages, args.Error(1)
}

type MockGetPackageHandler struct{ mock.Mock }

func (m *MockGetPackageHandler) Handle(ctx context.Context, query queries.GetPackageQuery) (*shipment.Package, error) {
	args := m.Called(ctx, query)
	pkg, _ := args.Get(0).(*shipment.Package)
	return pkg, args.Error(1)
}

type MockGetVisibleTicketsHandler struct{ mock.Mock }

func (m *MockGetVisibleTicketsHandler) Handle(ctx context.Context, query queries.GetVisibleTicketsQuery) ([]*shipment.Ticket, error) {
	args := m.Called(ctx, query)
	tickets, _ := args.Get(0).([]*shipment.Ticket)
	return tickets, args.Error(1)
}
