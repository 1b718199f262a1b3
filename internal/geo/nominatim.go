// Package geo looks up free-text addresses against a Nominatim-compatible
// place service. Callers must treat every error as recoverable: the address
// extractor falls back to local parsing whenever a lookup fails.
package geo

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/notarialabs/intake/internal/extract"
)

const (
	// DefaultEndpoint is the public OpenStreetMap Nominatim instance.
	DefaultEndpoint = "https://nominatim.openstreetmap.org"
	userAgent       = "chat-notarial/1.0"
)

// Client queries the /search endpoint of a Nominatim server.
type Client struct {
	http *resty.Client
}

// NewClient builds a client against endpoint with the given request timeout.
// Zero values select the public endpoint and an 8 second timeout.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &Client{
		http: resty.New().
			SetBaseURL(endpoint).
			SetTimeout(timeout).
			SetHeader("User-Agent", userAgent).
			SetHeader("Accept", "application/json"),
	}
}

type searchResult struct {
	Address struct {
		CityDistrict  string `json:"city_district"`
		Suburb        string `json:"suburb"`
		Town          string `json:"town"`
		City          string `json:"city"`
		County        string `json:"county"`
		StateDistrict string `json:"state_district"`
		Region        string `json:"region"`
		State         string `json:"state"`
		Country       string `json:"country"`
	} `json:"address"`
}

// Lookup resolves a query string into a structured address. Non-200
// responses and empty result sets are errors; the caller decides the
// fallback.
func (c *Client) Lookup(ctx context.Context, query string) (extract.GeoAddress, error) {
	var results []searchResult
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":              query,
			"format":         "json",
			"addressdetails": "1",
			"limit":          "1",
		}).
		SetResult(&results).
		Get("/search")
	if err != nil {
		return extract.GeoAddress{}, fmt.Errorf("geo: search %q: %w", query, err)
	}
	if resp.StatusCode() != 200 {
		return extract.GeoAddress{}, fmt.Errorf("geo: search %q: status %d", query, resp.StatusCode())
	}
	if len(results) == 0 {
		return extract.GeoAddress{}, fmt.Errorf("geo: search %q: no results", query)
	}

	a := results[0].Address
	return extract.GeoAddress{
		Distrito:     firstNonEmpty(a.CityDistrict, a.Suburb, a.Town, a.City),
		Provincia:    firstNonEmpty(a.County, a.StateDistrict, a.Region),
		Departamento: a.State,
		Pais:         a.Country,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
