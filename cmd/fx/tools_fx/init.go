package tools_fx

import (
	"fmt"
	"os"
	"time"

	cache "github.com/patrickmn/go-cache"
	"go.uber.org/fx"

	"backpackbuddy/internal/services"
)

var Module = fx.Provide(
	ProvideToolCache,
	ProvideSearchService,
	ProvidePlacesService,
	ProvideRouteService,
	ProvideToolbox,
)

// ProvideToolCache is the shared TTL cache for geodata lookups.
func ProvideToolCache() *cache.Cache {
	return cache.New(time.Hour, 2*time.Hour)
}

// ProvideSearchService fails fast when the search credential is
// missing: unlike the other providers, the planner cannot geocode
// anything without it.
func ProvideSearchService() (services.SearchServiceInterface, error) {
	apiKey := os.Getenv("SERPER_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("SERPER_API_KEY environment variable not set")
	}
	return services.NewSerperSearchService(apiKey), nil
}

// ProvidePlacesService tolerates a missing key; the adapter then
// returns empty results at call time.
func ProvidePlacesService(c *cache.Cache) services.PlacesServiceInterface {
	return services.NewOpenTripMapService(os.Getenv("OPENTRIPMAP_API_KEY"), c)
}

func ProvideRouteService(c *cache.Cache) services.RouteServiceInterface {
	baseURL := os.Getenv("OSRM_API_URL")
	if baseURL == "" {
		baseURL = "http://router.project-osrm.org"
	}
	return services.NewOSRMRouteService(baseURL, c)
}

func ProvideToolbox(
	search services.SearchServiceInterface,
	places services.PlacesServiceInterface,
	routes services.RouteServiceInterface,
) *services.Toolbox {
	return services.NewToolbox(search, places, routes)
}
