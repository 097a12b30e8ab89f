package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	cache "github.com/patrickmn/go-cache"
)

const (
	// DefaultPlacesRadius is the search radius in meters when the
	// model does not ask for one.
	DefaultPlacesRadius = 5000
	// MaxPlacesResults caps each lookup to bound downstream
	// reasoning cost.
	MaxPlacesResults = 20

	defaultPlaceKinds = "interesting_places"
)

type Place struct {
	Name  string  `json:"name"`
	Kinds string  `json:"kinds"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Dist  float64 `json:"dist,omitempty"`
}

type PlacesServiceInterface interface {
	// FindPlaces returns points of interest around (lon, lat). A
	// failed or unconfigured lookup returns an empty list, never an
	// error.
	FindPlaces(ctx context.Context, lon, lat float64, radius int, kinds string) []Place
}

// OpenTripMapService queries the OpenTripMap radius endpoint. Lookups
// are memoized because the model tends to re-query the same
// coordinates within one planning session.
type OpenTripMapService struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	cache      *cache.Cache
}

func NewOpenTripMapService(apiKey string, c *cache.Cache) *OpenTripMapService {
	return &OpenTripMapService{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		apiKey:     apiKey,
		baseURL:    "https://api.opentripmap.com",
		cache:      c,
	}
}

func (s *OpenTripMapService) FindPlaces(ctx context.Context, lon, lat float64, radius int, kinds string) []Place {
	if s.apiKey == "" {
		log.Printf("OPENTRIPMAP_API_KEY not set, skipping place search")
		return []Place{}
	}
	if radius <= 0 {
		radius = DefaultPlacesRadius
	}
	if kinds == "" {
		kinds = defaultPlaceKinds
	}

	cacheKey := fmt.Sprintf("places|%.5f|%.5f|%d|%s", lon, lat, radius, kinds)
	if cached, found := s.cache.Get(cacheKey); found {
		return cached.([]Place)
	}

	q := url.Values{}
	q.Set("radius", strconv.Itoa(radius))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("kinds", kinds)
	q.Set("apikey", s.apiKey)
	q.Set("format", "json")
	q.Set("limit", strconv.Itoa(MaxPlacesResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/0.1/en/places/radius?"+q.Encode(), nil)
	if err != nil {
		log.Printf("opentripmap request error: %v", err)
		return []Place{}
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Printf("opentripmap http error: %v", err)
		return []Place{}
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		log.Printf("opentripmap bad status: %s", resp.Status)
		return []Place{}
	}

	var payload []struct {
		Name  string  `json:"name"`
		Kinds string  `json:"kinds"`
		Dist  float64 `json:"dist"`
		Point struct {
			Lon float64 `json:"lon"`
			Lat float64 `json:"lat"`
		} `json:"point"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("opentripmap decode error: %v", err)
		return []Place{}
	}

	places := make([]Place, 0, len(payload))
	for _, item := range payload {
		if len(places) >= MaxPlacesResults {
			break
		}
		places = append(places, Place{
			Name:  item.Name,
			Kinds: item.Kinds,
			Lat:   item.Point.Lat,
			Lon:   item.Point.Lon,
			Dist:  item.Dist,
		})
	}

	s.cache.Set(cacheKey, places, cache.DefaultExpiration)
	return places
}
