package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface is one method per operation of openapi.yaml.
type ServerInterface interface {
	CreateParcel(ctx echo.Context) error
	GetParcel(ctx echo.Context, parcelID openapi_types.UUID) error
	AssignRider(ctx echo.Context, parcelID openapi_types.UUID) error
	SetDeliveryStatus(ctx echo.Context, parcelID openapi_types.UUID) error
	CreateCheckoutSession(ctx echo.Context) error
	ConfirmPayment(ctx echo.Context, params ConfirmPaymentParams) error
	GetTrackingHistory(ctx echo.Context, trackingID string) error
	RegisterRider(ctx echo.Context) error
	GetDeliveriesPerDay(ctx echo.Context, params GetDeliveriesPerDayParams) error
	GetRider(ctx echo.Context, riderID openapi_types.UUID) error
	DecideRider(ctx echo.Context, riderID openapi_types.UUID) error
	SetWorkStatus(ctx echo.Context, riderID openapi_types.UUID) error
	RegisterUser(ctx echo.Context) error
}

type ConfirmPaymentParams struct {
	SessionID string `form:"session_id" json:"session_id"`
}

type GetDeliveriesPerDayParams struct {
	Email string `form:"email" json:"email"`
}

// ServerInterfaceWrapper binds path and query parameters before calling the server.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func bindPath(ctx echo.Context, name string, dest any) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter "+name+": "+err.Error())
	}
	return nil
}

func bindQuery(ctx echo.Context, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, true, name, ctx.QueryParams(), dest); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter "+name+": "+err.Error())
	}
	return nil
}

func (w *ServerInterfaceWrapper) CreateParcel(ctx echo.Context) error {
	return w.Handler.CreateParcel(ctx)
}

func (w *ServerInterfaceWrapper) GetParcel(ctx echo.Context) error {
	var parcelID openapi_types.UUID
	if err := bindPath(ctx, "parcelId", &parcelID); err != nil {
		return err
	}
	return w.Handler.GetParcel(ctx, parcelID)
}

func (w *ServerInterfaceWrapper) AssignRider(ctx echo.Context) error {
	var parcelID openapi_types.UUID
	if err := bindPath(ctx, "parcelId", &parcelID); err != nil {
		return err
	}
	return w.Handler.AssignRider(ctx, parcelID)
}

func (w *ServerInterfaceWrapper) SetDeliveryStatus(ctx echo.Context) error {
	var parcelID openapi_types.UUID
	if err := bindPath(ctx, "parcelId", &parcelID); err != nil {
		return err
	}
	return w.Handler.SetDeliveryStatus(ctx, parcelID)
}

func (w *ServerInterfaceWrapper) CreateCheckoutSession(ctx echo.Context) error {
	return w.Handler.CreateCheckoutSession(ctx)
}

func (w *ServerInterfaceWrapper) ConfirmPayment(ctx echo.Context) error {
	var params ConfirmPaymentParams
	if err := bindQuery(ctx, "session_id", &params.SessionID); err != nil {
		return err
	}
	return w.Handler.ConfirmPayment(ctx, params)
}

func (w *ServerInterfaceWrapper) GetTrackingHistory(ctx echo.Context) error {
	var trackingID string
	if err := bindPath(ctx, "trackingId", &trackingID); err != nil {
		return err
	}
	return w.Handler.GetTrackingHistory(ctx, trackingID)
}

func (w *ServerInterfaceWrapper) RegisterRider(ctx echo.Context) error {
	return w.Handler.RegisterRider(ctx)
}

func (w *ServerInterfaceWrapper) GetDeliveriesPerDay(ctx echo.Context) error {
	var params GetDeliveriesPerDayParams
	if err := bindQuery(ctx, "email", &params.Email); err != nil {
		return err
	}
	return w.Handler.GetDeliveriesPerDay(ctx, params)
}

func (w *ServerInterfaceWrapper) GetRider(ctx echo.Context) error {
	var riderID openapi_types.UUID
	if err := bindPath(ctx, "riderId", &riderID); err != nil {
		return err
	}
	return w.Handler.GetRider(ctx, riderID)
}

func (w *ServerInterfaceWrapper) DecideRider(ctx echo.Context) error {
	var riderID openapi_types.UUID
	if err := bindPath(ctx, "riderId", &riderID); err != nil {
		return err
	}
	return w.Handler.DecideRider(ctx, riderID)
}

func (w *ServerInterfaceWrapper) SetWorkStatus(ctx echo.Context) error {
	var riderID openapi_types.UUID
	if err := bindPath(ctx, "riderId", &riderID); err != nil {
		return err
	}
	return w.Handler.SetWorkStatus(ctx, riderID)
}

func (w *ServerInterfaceWrapper) RegisterUser(ctx echo.Context) error {
	return w.Handler.RegisterUser(ctx)
}

// RegisterHandlers adds every operation to the router under baseURL.
func RegisterHandlers(router *echo.Echo, si ServerInterface, baseURL string) {
	w := &ServerInterfaceWrapper{Handler: si}

	router.POST(baseURL+"/parcels", w.CreateParcel)
	router.GET(baseURL+"/parcels/:parcelId", w.GetParcel)
	router.PATCH(baseURL+"/parcels/:parcelId", w.AssignRider)
	router.PATCH(baseURL+"/parcels/:parcelId/status", w.SetDeliveryStatus)
	router.POST(baseURL+"/payment-checkout-session", w.CreateCheckoutSession)
	router.PATCH(baseURL+"/payment-success", w.ConfirmPayment)
	router.GET(baseURL+"/trackings/:trackingId/logs", w.GetTrackingHistory)
	router.POST(baseURL+"/riders", w.RegisterRider)
	router.GET(baseURL+"/riders/delivery-per-day", w.GetDeliveriesPerDay)
	router.GET(baseURL+"/riders/:riderId", w.GetRider)
	router.PATCH(baseURL+"/riders/:riderId", w.DecideRider)
	router.PATCH(baseURL+"/riders/:riderId/work-status", w.SetWorkStatus)
	router.POST(baseURL+"/users", w.RegisterUser)
}
