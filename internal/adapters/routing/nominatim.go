package routing

import (
	"context"
	"eld-trip-service/internal/domain"
	"eld-trip-service/internal/platform/obs"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// NominatimGeocoder resolves free-text locations with the OpenStreetMap
// Nominatim search API. Nominatim's usage policy allows roughly one
// request per second, so the client should be throttled accordingly.
type NominatimGeocoder struct {
	client  *apiClient
	baseURL string
}

func NewNominatimGeocoder(baseURL string, opts ClientOptions) *NominatimGeocoder {
	return &NominatimGeocoder{
		client:  newAPIClient(opts),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (n *NominatimGeocoder) Geocode(ctx context.Context, query string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "nominatim.Geocode")(&err)

	q := normalize(query)
	if q == "" {
		return domain.Coordinates{}, errors.New("geocode: query must be non-empty")
	}

	params := url.Values{}
	params.Set("q", q)
	params.Set("format", "json")
	params.Set("limit", "1")

	var results []nominatimResult
	if err := n.client.getJSON(ctx, n.baseURL+"/search", params, &results); err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", q, err)
	}

	if len(results) == 0 {
		return domain.Coordinates{}, fmt.Errorf("%w: %s", domain.ErrLocationNotFound, q)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: parse lat %q: %w", q, results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: parse lon %q: %w", q, results[0].Lon, err)
	}

	return domain.Coordinates{Lat: lat, Lon: lon}, nil
}
