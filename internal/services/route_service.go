package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	cache "github.com/patrickmn/go-cache"
)

type RouteSummary struct {
	DistanceMeters  float64 `json:"distance_meters"`
	DurationSeconds float64 `json:"duration_seconds"`
}

type RouteServiceInterface interface {
	// GetRoute returns the driving route between two points. The
	// second value is false when the routing provider reports a
	// non-success code or is unreachable.
	GetRoute(ctx context.Context, startLon, startLat, endLon, endLat float64) (RouteSummary, bool)
}

// OSRMRouteService queries an OSRM instance for point-to-point driving
// routes.
type OSRMRouteService struct {
	httpClient *http.Client
	baseURL    string
	cache      *cache.Cache
}

func NewOSRMRouteService(baseURL string, c *cache.Cache) *OSRMRouteService {
	return &OSRMRouteService{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		cache:      c,
	}
}

func (s *OSRMRouteService) GetRoute(ctx context.Context, startLon, startLat, endLon, endLat float64) (RouteSummary, bool) {
	cacheKey := fmt.Sprintf("route|%.5f,%.5f|%.5f,%.5f", startLon, startLat, endLon, endLat)
	if cached, found := s.cache.Get(cacheKey); found {
		return cached.(RouteSummary), true
	}

	routeURL := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f?overview=false",
		s.baseURL, startLon, startLat, endLon, endLat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, routeURL, nil)
	if err != nil {
		log.Printf("osrm request error: %v", err)
		return RouteSummary{}, false
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Printf("osrm http error: %v", err)
		return RouteSummary{}, false
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		log.Printf("osrm bad status: %s", resp.Status)
		return RouteSummary{}, false
	}

	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Routes  []struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"routes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("osrm decode error: %v", err)
		return RouteSummary{}, false
	}
	if payload.Code != "Ok" || len(payload.Routes) == 0 {
		log.Printf("osrm returned an error: %s", payload.Message)
		return RouteSummary{}, false
	}

	summary := RouteSummary{
		DistanceMeters:  payload.Routes[0].Distance,
		DurationSeconds: payload.Routes[0].Duration,
	}
	s.cache.Set(cacheKey, summary, cache.DefaultExpiration)
	return summary, true
}
