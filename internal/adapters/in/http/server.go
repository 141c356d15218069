// Package http is the inbound REST adapter. Requests are validated against the
// embedded OpenAPI document and translated into orchestrator calls; failures
// are rendered as {kind, message} with a status derived from the kind.
package http

import (
	"context"
	"net/http"

	"parcelhub/internal/core/application/services"
	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/application/usecases/queries"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/model/rider"
	"parcelhub/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Lifecycle is the set of orchestrator operations the API exposes.
type Lifecycle interface {
	Create(ctx context.Context, cmd commands.CreateParcelCommand) (commands.CreateParcelResult, error)
	Assign(ctx context.Context, cmd commands.AssignRiderCommand) (commands.AssignRiderResult, error)
	SetStatus(ctx context.Context, cmd commands.SetDeliveryStatusCommand) (commands.SetDeliveryStatusResult, error)
	ConfirmPayment(ctx context.Context, cmd commands.ConfirmPaymentCommand) (services.PaymentConfirmationResult, error)
	CreateCheckout(ctx context.Context, cmd commands.CreateCheckoutCommand) (ports.CheckoutSession, error)
	History(ctx context.Context, query queries.GetTrackingHistoryQuery) ([]queries.TrackingEntryResponse, error)
	DeliveriesPerDay(ctx context.Context, query queries.GetDeliveriesPerDayQuery) ([]queries.DailyDeliveriesResponse, error)
	GetParcel(ctx context.Context, query queries.GetParcelQuery) (queries.ParcelResponse, error)
	GetRider(ctx context.Context, query queries.GetRiderQuery) (queries.RiderResponse, error)
	RegisterRider(ctx context.Context, cmd commands.RegisterRiderCommand) (*rider.Rider, error)
	DecideRider(ctx context.Context, cmd commands.RiderDecisionCommand) (services.RiderUpdateResult, error)
	SetWorkStatus(ctx context.Context, cmd commands.SetWorkStatusCommand) (services.RiderUpdateResult, error)
	RegisterUser(ctx context.Context, cmd commands.RegisterUserCommand) (commands.RegisterUserResult, error)
}

// Server implements ServerInterface on top of the parcel lifecycle.
type Server struct {
	lifecycle       Lifecycle
	defaultCurrency string
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates a server; defaultCurrency applies to parcels created
// without one.
func NewServer(lifecycle Lifecycle, defaultCurrency string) *Server {
	if defaultCurrency == "" {
		defaultCurrency = "usd"
	}
	return &Server{lifecycle: lifecycle, defaultCurrency: defaultCurrency}
}

// NewEcho wires the API, request validation, swagger UI, metrics and health
// endpoints.
func NewEcho(ctx context.Context, server ServerInterface) (*echo.Echo, error) {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}
	if err = registerDoc(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = errorHandler
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(validator)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	RegisterHandlers(e, server, "/api/v1")
	return e, nil
}

func parseID(name string, id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.ParseID(name, id.String())
}

// CreateParcel handles POST /api/v1/parcels.
func (s *Server) CreateParcel(ctx echo.Context) error {
	var body NewParcel
	if err := ctx.Bind(&body); err != nil {
		return err
	}
	if body.Currency == "" {
		body.Currency = s.defaultCurrency
	}

	cmd, err := commands.NewCreateParcelCommand(commands.ParcelInput(body))
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.lifecycle.Create(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedParcel{
		TrackingID:  result.Parcel.TrackingID().String(),
		Parcel:      toParcel(queries.NewParcelResponse(result.Parcel)),
		TrackingLog: toTrackingEntry(result.LedgerEntry),
	})
}

// GetParcel handles GET /api/v1/parcels/{parcelId}.
func (s *Server) GetParcel(ctx echo.Context, parcelID openapi_types.UUID) error {
	id, err := parseID("parcelId", parcelID)
	if err != nil {
		return writeError(ctx, err)
	}
	query, err := queries.NewGetParcelQuery(id)
	if err != nil {
		return writeError(ctx, err)
	}

	p, err := s.lifecycle.GetParcel(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toParcel(p))
}

// AssignRider handles PATCH /api/v1/parcels/{parcelId}.
func (s *Server) AssignRider(ctx echo.Context, parcelID openapi_types.UUID) error {
	var body RiderAssignment
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	id, err := parseID("parcelId", parcelID)
	if err != nil {
		return writeError(ctx, err)
	}
	riderID, err := parseID("riderId", body.RiderID)
	if err != nil {
		return writeError(ctx, err)
	}
	cmd, err := commands.NewAssignRiderCommand(id, riderID, body.RiderEmail, body.RiderName)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.lifecycle.Assign(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toAssignmentResult(result))
}

// SetDeliveryStatus handles PATCH /api/v1/parcels/{parcelId}/status.
func (s *Server) SetDeliveryStatus(ctx echo.Context, parcelID openapi_types.UUID) error {
	var body DeliveryStatusChange
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	id, err := parseID("parcelId", parcelID)
	if err != nil {
		return writeError(ctx, err)
	}
	var riderID *kernel.UUID
	if body.RiderID != nil {
		rid, parseErr := parseID("riderId", *body.RiderID)
		if parseErr != nil {
			return writeError(ctx, parseErr)
		}
		riderID = &rid
	}
	cmd, err := commands.NewSetDeliveryStatusCommand(id, body.DeliveryStatus, riderID)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.lifecycle.SetStatus(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, StatusResult{
		ParcelUpdate: toParcelUpdate(result.Parcel),
		RiderUpdate:  toRiderUpdate(result.Rider),
		TrackingLog:  toTrackingEntry(result.LedgerEntry),
	})
}

// CreateCheckoutSession handles POST /api/v1/payment-checkout-session.
func (s *Server) CreateCheckoutSession(ctx echo.Context) error {
	var body CheckoutRequest
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	id, err := parseID("parcelId", body.ParcelID)
	if err != nil {
		return writeError(ctx, err)
	}
	cmd, err := commands.NewCreateCheckoutCommand(id)
	if err != nil {
		return writeError(ctx, err)
	}

	session, err := s.lifecycle.CreateCheckout(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, CheckoutResponse{URL: session.URL})
}

// ConfirmPayment handles PATCH /api/v1/payment-success?session_id=.
// An unpaid session is a successful request with success=false.
func (s *Server) ConfirmPayment(ctx echo.Context, params ConfirmPaymentParams) error {
	cmd, err := commands.NewConfirmPaymentCommand(params.SessionID)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.lifecycle.ConfirmPayment(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toPaymentConfirmation(result))
}

// GetTrackingHistory handles GET /api/v1/trackings/{trackingId}/logs.
func (s *Server) GetTrackingHistory(ctx echo.Context, trackingID string) error {
	query, err := queries.NewGetTrackingHistoryQuery(trackingID)
	if err != nil {
		return writeError(ctx, err)
	}

	entries, err := s.lifecycle.History(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]TrackingEntry, len(entries))
	for i, e := range entries {
		response[i] = TrackingEntry(e)
	}
	return ctx.JSON(http.StatusOK, response)
}

// RegisterRider handles POST /api/v1/riders.
func (s *Server) RegisterRider(ctx echo.Context) error {
	var body NewRider
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	cmd, err := commands.NewRegisterRiderCommand(body.Email, body.Name, body.District)
	if err != nil {
		return writeError(ctx, err)
	}

	r, err := s.lifecycle.RegisterRider(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toRider(queries.NewRiderResponse(r)))
}

// GetDeliveriesPerDay handles GET /api/v1/riders/delivery-per-day?email=.
func (s *Server) GetDeliveriesPerDay(ctx echo.Context, params GetDeliveriesPerDayParams) error {
	query, err := queries.NewGetDeliveriesPerDayQuery(params.Email)
	if err != nil {
		return writeError(ctx, err)
	}

	days, err := s.lifecycle.DeliveriesPerDay(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]DailyDeliveries, len(days))
	for i, d := range days {
		response[i] = DailyDeliveries{Date: d.Date, DeliveredCount: d.Count}
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetRider handles GET /api/v1/riders/{riderId}.
func (s *Server) GetRider(ctx echo.Context, riderID openapi_types.UUID) error {
	id, err := parseID("riderId", riderID)
	if err != nil {
		return writeError(ctx, err)
	}
	query, err := queries.NewGetRiderQuery(id)
	if err != nil {
		return writeError(ctx, err)
	}

	r, err := s.lifecycle.GetRider(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toRider(r))
}

// DecideRider handles PATCH /api/v1/riders/{riderId}.
func (s *Server) DecideRider(ctx echo.Context, riderID openapi_types.UUID) error {
	var body RiderDecision
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	id, err := parseID("riderId", riderID)
	if err != nil {
		return writeError(ctx, err)
	}
	var decision commands.Decision
	switch body.Status {
	case rider.Approved.String():
		decision = commands.Approve
	case rider.Rejected.String():
		decision = commands.Reject
	}
	cmd, err := commands.NewRiderDecisionCommand(id, decision)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.lifecycle.DecideRider(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toRiderUpdate(&result))
}

// SetWorkStatus handles PATCH /api/v1/riders/{riderId}/work-status.
func (s *Server) SetWorkStatus(ctx echo.Context, riderID openapi_types.UUID) error {
	var body WorkStatusChange
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	id, err := parseID("riderId", riderID)
	if err != nil {
		return writeError(ctx, err)
	}
	cmd, err := commands.NewSetWorkStatusCommand(id, body.WorkStatus)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.lifecycle.SetWorkStatus(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toRiderUpdate(&result))
}

// RegisterUser handles POST /api/v1/users. An existing account is returned
// with 200 instead of 201.
func (s *Server) RegisterUser(ctx echo.Context) error {
	var body NewUser
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	cmd, err := commands.NewRegisterUserCommand(body.Email, body.DisplayName)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.lifecycle.RegisterUser(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	u := result.User
	return ctx.JSON(status, User{
		ID:          u.ID().String(),
		Email:       u.Email().String(),
		DisplayName: u.DisplayName(),
		Role:        string(u.Role()),
		CreatedAt:   u.CreatedAt(),
	})
}

