// Package http exposes parcelhub over a JSON API. Handlers translate requests into
// commands and queries; the principal comes from the bearer token and every error is
// rendered by ErrorHandler.
package http

import (
	"context"
	"net/http"

	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/application/usecases/queries"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type (
	CreatePackageHandler interface {
		Handle(ctx context.Context, cmd commands.CreatePackageCommand) (commands.CreatePackageResult, error)
	}
	MarkPackageDeliveredHandler interface {
		Handle(ctx context.Context, cmd commands.MarkPackageDeliveredCommand) (*shipment.Package, error)
	}
	UpdateTicketStatusHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateTicketStatusCommand) (*shipment.Ticket, error)
	}
	GetVisiblePackagesHandler interface {
		Handle(ctx context.Context, query queries.GetVisiblePackagesQuery) ([]*shipment.Package, error)
	}
	GetPackageHandler interface {
		Handle(ctx context.Context, query queries.GetPackageQuery) (*shipment.Package, error)
	}
	GetVisibleTicketsHandler interface {
		Handle(ctx context.Context, query queries.GetVisibleTicketsQuery) ([]*shipment.Ticket, error)
	}
)

// Handlers groups the use cases the server delegates to.
type Handlers struct {
	CreatePackage        CreatePackageHandler
	MarkPackageDelivered MarkPackageDeliveredHandler
	UpdateTicketStatus   UpdateTicketStatusHandler
	GetVisiblePackages   GetVisiblePackagesHandler
	GetPackage           GetPackageHandler
	GetVisibleTickets    GetVisibleTicketsHandler
}

// Server implements the routes of openapi.yaml.
type Server struct {
	handlers Handlers
}

func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// CreatePackage handles POST /api/v1/packages.
func (s *Server) CreatePackage(ctx echo.Context) error {
	var body NewPackage
	if err := ctx.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	cmd, err := commands.NewCreatePackageCommand(principalFrom(ctx), body.toInput())
	if err != nil {
		return err
	}

	result, err := s.handlers.CreatePackage.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, Shipment{
		Package: toPackage(result.Package),
		Ticket:  toTicket(result.Ticket),
	})
}

// ListPackages handles GET /api/v1/packages.
func (s *Server) ListPackages(ctx echo.Context) error {
	var status *string
	if err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &status); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("status", err)
	}

	filter := ""
	if status != nil {
		filter = *status
	}
	return s.listPackages(ctx, filter)
}

// ListPendingPackages handles GET /api/v1/packages/pending.
func (s *Server) ListPendingPackages(ctx echo.Context) error {
	return s.listPackages(ctx, shipment.Pending.String())
}

func (s *Server) listPackages(ctx echo.Context, status string) error {
	query, err := queries.NewGetVisiblePackagesQuery(principalFrom(ctx), status)
	if err != nil {
		return err
	}

	packages, err := s.handlers.GetVisiblePackages.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toPackages(packages))
}

// FindPackage handles GET /api/v1/packages/search.
func (s *Server) FindPackage(ctx echo.Context) error {
	var trackingNumber *string
	err := runtime.BindQueryParameter("form", true, false, "tracking_number", ctx.QueryParams(), &trackingNumber)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("tracking_number", err)
	}
	if trackingNumber == nil {
		return errs.NewValueIsRequiredError("tracking_number")
	}

	query, err := queries.NewFindPackageByTrackingNumberQuery(principalFrom(ctx), *trackingNumber)
	if err != nil {
		return err
	}
	return s.getPackage(ctx, query)
}

// GetPackage handles GET /api/v1/packages/{id}.
func (s *Server) GetPackage(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	query, err := queries.NewGetPackageQuery(principalFrom(ctx), id)
	if err != nil {
		return err
	}
	return s.getPackage(ctx, query)
}

func (s *Server) getPackage(ctx echo.Context, query queries.GetPackageQuery) error {
	pkg, err := s.handlers.GetPackage.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toPackage(pkg))
}

// MarkPackageDelivered handles POST /api/v1/packages/{id}/mark-delivered.
func (s *Server) MarkPackageDelivered(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewMarkPackageDeliveredCommand(principalFrom(ctx), id)
	if err != nil {
		return err
	}

	pkg, err := s.handlers.MarkPackageDelivered.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toPackage(pkg))
}

// ListTickets handles GET /api/v1/tickets.
func (s *Server) ListTickets(ctx echo.Context) error {
	query, err := queries.NewGetVisibleTicketsQuery(principalFrom(ctx))
	if err != nil {
		return err
	}

	tickets, err := s.handlers.GetVisibleTickets.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toTickets(tickets))
}

// UpdateTicketStatus handles POST /api/v1/tickets/{id}/status.
func (s *Server) UpdateTicketStatus(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	var body TicketStatusChange
	if err = ctx.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	cmd, err := commands.NewUpdateTicketStatusCommand(principalFrom(ctx), id, body.Status)
	if err != nil {
		return err
	}

	ticket, err := s.handlers.UpdateTicketStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toTicket(ticket))
}

func pathID(ctx echo.Context) (kernel.UUID, error) {
	var raw openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &raw, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}

	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return id, nil
}
