package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backpackbuddy/internal/models/response_models"
)

func TestExtractJSONObject_EmbeddedInProse(t *testing.T) {
	payload, err := ExtractJSONObject(`Sure! {"itinerary": []} Thanks.`)
	require.NoError(t, err)
	assert.Contains(t, payload, "itinerary")
}

func TestExtractJSONObject_NestedBraces(t *testing.T) {
	raw := `prefix {"a": {"b": {"c": 1}}} suffix`
	payload, err := ExtractJSONObject(raw)
	require.NoError(t, err)

	var inner map[string]any
	require.NoError(t, json.Unmarshal(payload["a"], &inner))
	assert.Contains(t, inner, "b")
}

func TestExtractJSONObject_NoBraces(t *testing.T) {
	_, err := ExtractJSONObject("no json here at all")
	assert.ErrorIs(t, err, ErrNoJSONFound)
}

func TestExtractJSONObject_TruncatedOutput(t *testing.T) {
	// Missing closing brace: no valid pair exists.
	_, err := ExtractJSONObject(`{"itinerary": [`)
	assert.ErrorIs(t, err, ErrNoJSONFound)
}

func TestExtractJSONObject_ReversedBraces(t *testing.T) {
	_, err := ExtractJSONObject(`} oops {`)
	assert.ErrorIs(t, err, ErrNoJSONFound)
}

func TestExtractJSONObject_BracesAroundProse(t *testing.T) {
	_, err := ExtractJSONObject(`{this is not json}`)
	assert.Error(t, err)
}

func TestExtractItinerary_EmptyItineraryIsSuccess(t *testing.T) {
	result := ExtractItinerary(`Sure! {"itinerary": []} Thanks.`)
	assert.Empty(t, result.Error)
	assert.NotNil(t, result.Itinerary)
	assert.Len(t, result.Itinerary, 0)
}

func TestExtractItinerary_FullPayload(t *testing.T) {
	raw := `Here you go: {
	  "itinerary": [
	    {
	      "day": 1,
	      "date": "2025-12-05",
	      "theme": "Temple Hopping",
	      "activities": [
	        {
	          "time": "09:00 - 12:00",
	          "description": "Visit Wat Chedi Luang.",
	          "location": {"name": "Wat Chedi Luang, Chiang Mai", "lat": 18.7869, "lon": 98.9863},
	          "budget_notes": "Entrance fee: 40 THB"
	        }
	      ]
	    }
	  ]
	} Enjoy!`

	result := ExtractItinerary(raw)
	require.Empty(t, result.Error)
	require.Len(t, result.Itinerary, 1)
	assert.Equal(t, 1, result.Itinerary[0].Day)
	assert.Equal(t, "Temple Hopping", result.Itinerary[0].Theme)
	require.Len(t, result.Itinerary[0].Activities, 1)
	assert.Equal(t, "Wat Chedi Luang, Chiang Mai", result.Itinerary[0].Activities[0].Location.Name)
	assert.InDelta(t, 98.9863, result.Itinerary[0].Activities[0].Location.Lon, 0.0001)
}

func TestExtractItinerary_UnbalancedBraces(t *testing.T) {
	raw := `{itinerary: [}`
	result := ExtractItinerary(raw)
	assert.Equal(t, ExtractionErrorMessage, result.Error)
	assert.Equal(t, raw, result.RawResponse)
	assert.Nil(t, result.Itinerary)
}

func TestExtractItinerary_MissingItineraryKey(t *testing.T) {
	result := ExtractItinerary(`{"tool": "web_search", "args": {"query": "x"}}`)
	assert.Equal(t, ExtractionErrorMessage, result.Error)
}

func TestExtractItinerary_Idempotent(t *testing.T) {
	raw := `noise {"itinerary": [{"day": 1, "date": "d", "theme": "t", "activities": []}]} noise`
	first := ExtractItinerary(raw)
	require.Empty(t, first.Error)

	encoded, err := json.Marshal(first)
	require.NoError(t, err)

	second := ExtractItinerary(string(encoded))
	assert.Equal(t, first.Itinerary, second.Itinerary)
}

func TestItineraryResultMarshal_SuccessShape(t *testing.T) {
	encoded, err := json.Marshal(response_models.ItineraryResult{Itinerary: []response_models.DayPlan{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"itinerary": []}`, string(encoded))
}

func TestItineraryResultMarshal_ErrorShape(t *testing.T) {
	encoded, err := json.Marshal(response_models.ItineraryResult{
		Error:       ExtractionErrorMessage,
		RawResponse: "{itinerary: [}",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"error": "Could not extract JSON from response", "raw_response": "{itinerary: [}"}`, string(encoded))
}

func TestExtractPackingList_Valid(t *testing.T) {
	raw := `{"packing_list": {"Clothing": ["3x T-shirts"], "Documents": ["Passport"]}, "weather_summary": "Warm and dry."}`
	result := ExtractPackingList(raw)
	assert.Equal(t, []string{"3x T-shirts"}, result.PackingList["Clothing"])
	assert.Equal(t, "Warm and dry.", result.WeatherSummary)
}

func TestExtractPackingList_InvalidFallsBackToDefault(t *testing.T) {
	result := ExtractPackingList("total nonsense")
	assert.Equal(t, response_models.DefaultPackingResult(), result)
}

func TestExtractPackingList_MissingKeyFallsBackToDefault(t *testing.T) {
	result := ExtractPackingList(`{"itinerary": []}`)
	assert.Equal(t, response_models.DefaultPackingResult(), result)
}

func TestExtractPackingList_MissingWeatherGetsDefaultSummary(t *testing.T) {
	result := ExtractPackingList(`{"packing_list": {"Clothing": ["Socks"]}}`)
	assert.Equal(t, []string{"Socks"}, result.PackingList["Clothing"])
	assert.Equal(t, response_models.DefaultPackingResult().WeatherSummary, result.WeatherSummary)
}
