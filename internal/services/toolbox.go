package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// The closed set of tools a reasoning session may invoke. The loop
// dispatches on these tags, never on free-form tool names.
const (
	ToolWebSearch  = "web_search"
	ToolFindPlaces = "find_places_of_interest"
	ToolGetRoute   = "get_route_information"
)

// ToolCall is one tool invocation as emitted by the model.
type ToolCall struct {
	Tool string          `json:"tool"`
	Args json.RawMessage `json:"args"`
}

type searchArgs struct {
	Query string `json:"query"`
}

type placesArgs struct {
	Lon    float64 `json:"lon"`
	Lat    float64 `json:"lat"`
	Radius int     `json:"radius"`
	Kinds  string  `json:"kinds"`
}

type routeArgs struct {
	StartLon float64 `json:"start_lon"`
	StartLat float64 `json:"start_lat"`
	EndLon   float64 `json:"end_lon"`
	EndLat   float64 `json:"end_lat"`
}

// Toolbox executes tool calls against the geodata adapters and turns
// the results into observation text for the model's context.
type Toolbox struct {
	search SearchServiceInterface
	places PlacesServiceInterface
	routes RouteServiceInterface
}

func NewToolbox(
	search SearchServiceInterface,
	places PlacesServiceInterface,
	routes RouteServiceInterface,
) *Toolbox {
	return &Toolbox{
		search: search,
		places: places,
		routes: routes,
	}
}

// Execute validates the call's arguments against the named tool's
// schema and runs it. Argument or tool-name errors are returned to the
// caller so the loop can feed them back as corrective observations;
// adapter-level failures surface only as empty observations.
func (t *Toolbox) Execute(ctx context.Context, call ToolCall) (string, error) {
	switch call.Tool {
	case ToolWebSearch:
		var args searchArgs
		if err := json.Unmarshal(call.Args, &args); err != nil {
			return "", fmt.Errorf("invalid %s arguments: %w", ToolWebSearch, err)
		}
		if strings.TrimSpace(args.Query) == "" {
			return "", fmt.Errorf("%s requires a non-empty \"query\"", ToolWebSearch)
		}
		result := t.search.Search(ctx, args.Query)
		if result == "" {
			return "no results", nil
		}
		return result, nil

	case ToolFindPlaces:
		var args placesArgs
		if err := json.Unmarshal(call.Args, &args); err != nil {
			return "", fmt.Errorf("invalid %s arguments: %w", ToolFindPlaces, err)
		}
		places := t.places.FindPlaces(ctx, args.Lon, args.Lat, args.Radius, args.Kinds)
		encoded, err := json.Marshal(places)
		if err != nil {
			return "", fmt.Errorf("encode %s result: %w", ToolFindPlaces, err)
		}
		return string(encoded), nil

	case ToolGetRoute:
		var args routeArgs
		if err := json.Unmarshal(call.Args, &args); err != nil {
			return "", fmt.Errorf("invalid %s arguments: %w", ToolGetRoute, err)
		}
		summary, found := t.routes.GetRoute(ctx, args.StartLon, args.StartLat, args.EndLon, args.EndLat)
		if !found {
			return "{}", nil
		}
		encoded, err := json.Marshal(summary)
		if err != nil {
			return "", fmt.Errorf("encode %s result: %w", ToolGetRoute, err)
		}
		return string(encoded), nil

	default:
		return "", fmt.Errorf("unknown tool %q", call.Tool)
	}
}

// Catalog describes the tools and their argument schemas for the
// planner prompt.
func (t *Toolbox) Catalog() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("- %s: broad, up-to-date web search. Good for finding geographic coordinates of a city, current events, weather, or general travel advice. Args: {\"query\": \"<string>\"}\n", ToolWebSearch))
	b.WriteString(fmt.Sprintf("- %s: finds attractions, restaurants, or points of interest near a coordinate. Args: {\"lon\": <float>, \"lat\": <float>, \"radius\": <int, optional, meters>, \"kinds\": \"<comma-separated categories, optional>\"}\n", ToolFindPlaces))
	b.WriteString(fmt.Sprintf("- %s: travel distance and time between two points. Args: {\"start_lon\": <float>, \"start_lat\": <float>, \"end_lon\": <float>, \"end_lat\": <float>}\n", ToolGetRoute))
	return b.String()
}
