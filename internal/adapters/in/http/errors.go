package http

import (
	"errors"
	"net/http"

	"parcelhub/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Kind        string   `json:"kind"`
	Message     string   `json:"message"`
	Applied     []string `json:"applied,omitempty"`
	FailedStep  string   `json:"failedStep,omitempty"`
	Compensated *bool    `json:"compensated,omitempty"`
}

func statusOf(kind errs.Kind) int {
	switch kind {
	case errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindConflict:
		return http.StatusConflict
	case errs.KindExternalService:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err by its kind. Internal failures do not leak their message.
func writeError(c echo.Context, err error) error {
	kind := errs.KindOf(err)
	body := ErrorResponse{Kind: string(kind), Message: errs.Detail(err)}

	var pf *errs.PartialFailureError
	if errors.As(err, &pf) {
		body.Applied = pf.Applied
		body.FailedStep = pf.Failed
		body.Compensated = &pf.Compensated
	}
	if kind == errs.KindUnknown {
		c.Logger().Error(err)
		body.Message = "internal error"
	}
	return c.JSON(statusOf(kind), body)
}

// errorHandler renders errors that escape handlers, echo's own included.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		kind := errs.KindUnknown
		switch he.Code {
		case http.StatusBadRequest:
			kind = errs.KindValidation
		case http.StatusNotFound, http.StatusMethodNotAllowed:
			kind = errs.KindNotFound
		}
		msg, _ := he.Message.(string)
		if msg == "" {
			msg = http.StatusText(he.Code)
		}
		_ = c.JSON(he.Code, ErrorResponse{Kind: string(kind), Message: msg})
		return
	}
	_ = writeError(c, err)
}
