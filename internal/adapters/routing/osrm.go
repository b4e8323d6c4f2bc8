package routing

import (
	"context"
	"eld-trip-service/internal/domain"
	"eld-trip-service/internal/platform/logging"
	"eld-trip-service/internal/platform/obs"
	"eld-trip-service/internal/ports"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
	Waypoints []struct {
		Location []float64 `json:"location"`
	} `json:"waypoints"`
}

// OSRMRouteProvider implements RouteProvider using an OSRM routing server.
//
// It coordinates:
//   - Geocoding of the three trip locations
//   - Persistent route caching
//   - A straight-line fallback when the routing service fails
//
// The provider is safe for concurrent use.
type OSRMRouteProvider struct {
	client   *apiClient
	baseURL  string
	profile  string
	geocoder ports.Geocoder
	cache    ports.RouteCache
}

func NewOSRMRouteProvider(
	baseURL string,
	opts ClientOptions,
	geocoder ports.Geocoder,
	cache ports.RouteCache,
) (*OSRMRouteProvider, error) {
	if geocoder == nil {
		return nil, errors.New("OSRM route provider: geocoder is nil")
	}
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("OSRM route provider: base url is empty")
	}

	return &OSRMRouteProvider{
		client:   newAPIClient(opts),
		baseURL:  strings.TrimRight(baseURL, "/"),
		profile:  "driving",
		geocoder: geocoder,
		cache:    cache,
	}, nil
}

// RouteKey is the cache key for a start -> pickup -> dropoff trip.
func RouteKey(start, pickup, dropoff string) string {
	return cacheKey(start) + "|" + cacheKey(pickup) + "|" + cacheKey(dropoff)
}

func (o *OSRMRouteProvider) CalculateRoute(
	ctx context.Context,
	start, pickup, dropoff string,
) (_ domain.RouteInfo, err error) {
	defer obs.Time(ctx, "osrm.CalculateRoute")(&err)
	logger := logging.FromContext(ctx)

	locations := []string{normalize(start), normalize(pickup), normalize(dropoff)}
	for _, l := range locations {
		if l == "" {
			return domain.RouteInfo{}, errors.New("calculate route: start, pickup and dropoff must be non-empty")
		}
	}

	key := RouteKey(start, pickup, dropoff)
	if o.cache != nil {
		cached, ok, err := o.cache.Get(ctx, key)
		if err != nil {
			logger.Warn("route cache read failed", "key", key, "error", err)
		} else if ok {
			return cached, nil
		}
	}

	// Geocoding failures propagate; only the routing call falls back.
	points := make([]domain.Coordinates, 0, len(locations))
	for _, l := range locations {
		c, err := o.geocoder.Geocode(ctx, l)
		if err != nil {
			return domain.RouteInfo{}, fmt.Errorf("calculate route: %w", err)
		}
		points = append(points, c)
	}

	route, err := o.fetchRoute(ctx, points)
	if err != nil {
		logger.Warn("OSRM failed, using straight-line estimate",
			"error", err,
			"status", statusCode(err),
		)
		return StraightLineRoute(points), nil
	}

	if o.cache != nil {
		if err := o.cache.Put(ctx, key, route); err != nil {
			logger.Warn("route cache write failed", "key", key, "error", err)
		}
	}

	return route, nil
}

// fetchRoute calls /route/v1/{profile}/{lon,lat;...} with full GeoJSON geometry.
func (o *OSRMRouteProvider) fetchRoute(ctx context.Context, points []domain.Coordinates) (domain.RouteInfo, error) {
	coords := make([]string, 0, len(points))
	for _, p := range points {
		coords = append(coords, p.LonLatString())
	}
	endpoint := fmt.Sprintf("%s/route/v1/%s/%s", o.baseURL, o.profile, strings.Join(coords, ";"))

	params := url.Values{}
	params.Set("overview", "full")
	params.Set("geometries", "geojson")

	var resp osrmResponse
	if err := o.client.getJSON(ctx, endpoint, params, &resp); err != nil {
		return domain.RouteInfo{}, err
	}

	if resp.Code != "Ok" {
		return domain.RouteInfo{}, fmt.Errorf("OSRM returned non-Ok code %q", resp.Code)
	}
	if len(resp.Routes) == 0 {
		return domain.RouteInfo{}, errors.New("OSRM returned no routes")
	}

	r := resp.Routes[0]

	// OSRM geometry is [lon, lat]; clients draw [lat, lon].
	path := make([][]float64, 0, len(r.Geometry.Coordinates))
	for _, c := range r.Geometry.Coordinates {
		if len(c) < 2 {
			continue
		}
		path = append(path, []float64{c[1], c[0]})
	}

	waypoints := make([][]float64, 0, len(resp.Waypoints))
	for _, wp := range resp.Waypoints {
		if len(wp.Location) >= 2 {
			waypoints = append(waypoints, []float64{wp.Location[1], wp.Location[0]})
		}
	}
	if len(waypoints) < len(points) {
		waypoints = latLonList(points)
	}

	return domain.RouteInfo{
		DistanceMiles: round2(r.Distance / MetersPerMile),
		DurationHours: round2(r.Duration / 3600),
		Path:          path,
		Waypoints:     waypoints,
	}, nil
}
