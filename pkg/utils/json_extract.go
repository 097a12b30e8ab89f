package utils

import (
	"encoding/json"
	"strings"

	"backpackbuddy/internal/models/response_models"
)

// ExtractionErrorMessage marks an itinerary response the extractor
// could not turn into JSON.
const ExtractionErrorMessage = "Could not extract JSON from response"

// ExtractJSONObject locates the JSON object embedded in raw model text
// by taking the substring between the first '{' and the last '}'.
// The substring must be a syntactically complete JSON document; nested
// braces are covered because they sit inside the outermost pair.
func ExtractJSONObject(raw string) (map[string]json.RawMessage, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || start >= end {
		return nil, ErrNoJSONFound
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw[start:end+1]), &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// ExtractItinerary converts raw model text into an ItineraryResult.
// Any failure (no brace pair, invalid JSON, missing or malformed
// "itinerary" key) yields the error marker carrying the raw text
// instead of an error, so a bad model turn degrades the response
// rather than failing the request.
func ExtractItinerary(raw string) response_models.ItineraryResult {
	errorMarker := response_models.ItineraryResult{
		Error:       ExtractionErrorMessage,
		RawResponse: raw,
	}

	payload, err := ExtractJSONObject(raw)
	if err != nil {
		return errorMarker
	}

	rawDays, ok := payload["itinerary"]
	if !ok {
		return errorMarker
	}

	var days []response_models.DayPlan
	if err := json.Unmarshal(rawDays, &days); err != nil {
		return errorMarker
	}
	if days == nil {
		days = []response_models.DayPlan{}
	}
	return response_models.ItineraryResult{Itinerary: days}
}

// ExtractPackingList converts raw model text into a PackingResult,
// falling back to the hard-coded default list when the text cannot be
// parsed. It never fails.
func ExtractPackingList(raw string) response_models.PackingResult {
	payload, err := ExtractJSONObject(raw)
	if err != nil {
		return response_models.DefaultPackingResult()
	}

	rawList, ok := payload["packing_list"]
	if !ok {
		return response_models.DefaultPackingResult()
	}

	var list map[string][]string
	if err := json.Unmarshal(rawList, &list); err != nil || len(list) == 0 {
		return response_models.DefaultPackingResult()
	}

	result := response_models.PackingResult{PackingList: list}
	if rawSummary, ok := payload["weather_summary"]; ok {
		if err := json.Unmarshal(rawSummary, &result.WeatherSummary); err != nil {
			result.WeatherSummary = ""
		}
	}
	if result.WeatherSummary == "" {
		result.WeatherSummary = response_models.DefaultPackingResult().WeatherSummary
	}
	return result
}
