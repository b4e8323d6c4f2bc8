package routing

import (
	"context"
	"eld-trip-service/internal/domain"
	"fmt"
	"sync"
)

// MockRouteProvider returns canned routes keyed by RouteKey.
type MockRouteProvider struct {
	mu     sync.Mutex
	routes map[string]domain.RouteInfo
	errs   map[string]error
	Calls  int
}

func NewMockRouteProvider() *MockRouteProvider {
	return &MockRouteProvider{
		routes: make(map[string]domain.RouteInfo),
		errs:   make(map[string]error),
	}
}

func (m *MockRouteProvider) Add(start, pickup, dropoff string, route domain.RouteInfo) *MockRouteProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes[RouteKey(start, pickup, dropoff)] = route
	return m
}

func (m *MockRouteProvider) Fail(start, pickup, dropoff string, err error) *MockRouteProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[RouteKey(start, pickup, dropoff)] = err
	return m
}

func (m *MockRouteProvider) CalculateRoute(ctx context.Context, start, pickup, dropoff string) (domain.RouteInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++

	key := RouteKey(start, pickup, dropoff)
	if err, ok := m.errs[key]; ok {
		return domain.RouteInfo{}, err
	}
	r, ok := m.routes[key]
	if !ok {
		return domain.RouteInfo{}, fmt.Errorf("missing route %q", key)
	}
	return r, nil
}
