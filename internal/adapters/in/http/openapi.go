package http

import (
	_ "embed"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
)

//go:embed openapi.json
var openAPIContract []byte

// LoadOpenAPIContract parses and validates the embedded API contract.
// A contract that does not validate is a build defect, so startup fails.
func LoadOpenAPIContract() (*openapi3.T, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(openAPIContract)
	if err != nil {
		return nil, fmt.Errorf("load openapi contract: %w", err)
	}

	if err = doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validate openapi contract: %w", err)
	}

	return doc, nil
}

// RegisterOpenAPIRoute serves the contract at /openapi.json, outside the
// session middleware so tooling can fetch it without a token.
func RegisterOpenAPIRoute(e *echo.Echo, doc *openapi3.T) {
	e.GET("/openapi.json", func(c echo.Context) error {
		return c.JSON(http.StatusOK, doc)
	})
}
