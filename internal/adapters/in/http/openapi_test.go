package http_test

import (
	"testing"

	freighthttp "freight/internal/adapters/in/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOpenAPIContract(t *testing.T) {
	doc, err := freighthttp.LoadOpenAPIContract()
	require.NoError(t, err)

	for _, path := range []string{
		"/api/v1/delivery/{shipmentId}/next",
		"/api/v1/delivery/{shipmentId}/package/{packageId}/otp",
		"/api/v1/delivery/{shipmentId}/package/{packageId}/otp/check",
		"/api/v1/delivery/{shipmentId}/package/{packageId}/delivered",
		"/api/v1/delivery/{shipmentId}/package/{packageId}/failed",
		"/api/v1/transfer/{transferShipmentId}/complete",
		"/api/v1/shipment/{id}/location",
	} {
		assert.NotNil(t, doc.Paths.Find(path), "contract is missing %s", path)
	}
}
