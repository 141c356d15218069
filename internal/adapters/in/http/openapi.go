package http

import (
	"context"
	_ "embed"
	"errors"
	"strings"
	"sync"

	"parcelhub/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openAPIDocument []byte

func init() {
	openapi3.DefineStringFormatValidator("uuid", openapi3.NewCallbackValidator(func(s string) error {
		_, err := uuid.Parse(s)
		return err
	}))
	openapi3.DefineStringFormatValidator("email", openapi3.NewRegexpFormatValidator(openapi3.FormatOfStringForEmail))
}

// LoadOpenAPI parses and validates the embedded API document.
func LoadOpenAPI(ctx context.Context) (*openapi3.T, error) {
	doc, err := openapi3.NewLoader().LoadFromData(openAPIDocument)
	if err != nil {
		return nil, err
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, err
	}
	return doc, nil
}

// RequestValidator rejects /api requests that do not match the document
// before they reach a handler.
func RequestValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if !strings.HasPrefix(req.URL.Path, "/api/") {
				return next(c)
			}

			route, pathParams, err := router.FindRoute(req)
			if errors.Is(err, routers.ErrPathNotFound) || errors.Is(err, routers.ErrMethodNotAllowed) {
				return next(c)
			}
			if err != nil {
				return err
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options: &openapi3filter.Options{
					MultiError: true,
				},
			}
			if err = openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return writeError(c, errs.NewValueIsInvalidErrorWithCause("request", err))
			}
			return next(c)
		}
	}, nil
}

// apiDoc serves the OpenAPI document to the swagger UI.
type apiDoc struct {
	json string
}

func (d apiDoc) ReadDoc() string {
	return d.json
}

var registerDocOnce sync.Once

// registerDoc makes doc the document behind /swagger/doc.json.
func registerDoc(doc *openapi3.T) error {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return err
	}
	registerDocOnce.Do(func() {
		swag.Register(swag.Name, apiDoc{json: string(raw)})
	})
	return nil
}
