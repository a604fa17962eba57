package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"freight/internal/core/domain/model/kernel"
)

// geocodeResponse mirrors the GeoJSON shape of a Pelias-style
// /geocode/search endpoint. Coordinates arrive as [longitude, latitude].
type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// HTTPGeocoder resolves address lines through an external geocoding service.
type HTTPGeocoder struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPGeocoder creates a geocoder for the given service endpoint.
func NewHTTPGeocoder(baseURL, apiKey string) *HTTPGeocoder {
	return &HTTPGeocoder{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Geocode resolves one address line to coordinates. The best match wins; an
// address the service cannot place is an error, not a zero point.
func (g *HTTPGeocoder) Geocode(ctx context.Context, address string) (kernel.GeoPoint, error) {
	endpoint := g.baseURL + "/geocode/search"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return kernel.GeoPoint{}, fmt.Errorf("build geocode request: %w", err)
	}

	query := url.Values{}
	query.Set("text", address)
	query.Set("size", "1")
	req.URL.RawQuery = query.Encode()
	req.Header.Set("Authorization", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return kernel.GeoPoint{}, fmt.Errorf("execute geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return kernel.GeoPoint{}, fmt.Errorf("geocode service returned status %d", resp.StatusCode)
	}

	var decoded geocodeResponse
	if err = json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return kernel.GeoPoint{}, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return kernel.GeoPoint{}, fmt.Errorf("no geocode results for %q", address)
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return kernel.GeoPoint{}, fmt.Errorf("invalid coordinate format for %q", address)
	}

	return kernel.NewGeoPoint(coords[1], coords[0])
}
