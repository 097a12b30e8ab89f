package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backpackbuddy/internal/models/response_models"
	"backpackbuddy/pkg/utils"
)

const finalPackingReply = `{
  "packing_list": {
    "Clothing": ["3x T-shirts", "1x Rain jacket"],
    "Toiletries": ["Sunscreen"],
    "Electronics": ["Power bank"],
    "Documents": ["Passport"],
    "Miscellaneous": ["Day pack"]
  },
  "weather_summary": "Warm days, cool evenings, occasional showers."
}`

func packingItinerary() response_models.Itinerary {
	return response_models.Itinerary{
		Itinerary: []response_models.DayPlan{
			{Day: 1, Date: "2025-12-05", Theme: "Temples"},
			{Day: 2, Date: "2025-12-06", Theme: "Hiking"},
		},
	}
}

func TestGeneratePackingList_DirectFinalAnswer(t *testing.T) {
	llm := &scriptedLLM{replies: []string{finalPackingReply}}
	svc := NewPackingService(llm, &stubSearch{})

	result, err := svc.GeneratePackingList(context.Background(), packingItinerary())
	require.NoError(t, err)

	assert.Equal(t, 1, llm.calls)
	assert.Equal(t, []string{"3x T-shirts", "1x Rain jacket"}, result.PackingList["Clothing"])
	assert.Equal(t, "Warm days, cool evenings, occasional showers.", result.WeatherSummary)
}

func TestGeneratePackingList_WeatherSearchThenFinal(t *testing.T) {
	llm := &scriptedLLM{replies: []string{
		`{"tool": "web_search", "args": {"query": "Chiang Mai weather December 2025"}}`,
		finalPackingReply,
	}}
	search := &stubSearch{result: "Highs around 28C, lows 16C, mostly dry."}
	svc := NewPackingService(llm, search)

	result, err := svc.GeneratePackingList(context.Background(), packingItinerary())
	require.NoError(t, err)

	assert.Equal(t, 2, llm.calls)
	assert.Equal(t, []string{"Chiang Mai weather December 2025"}, search.queries)
	assert.NotEmpty(t, result.PackingList)
}

func TestGeneratePackingList_RejectsNonSearchTools(t *testing.T) {
	llm := &scriptedLLM{replies: []string{
		`{"tool": "find_places_of_interest", "args": {"lon": 1, "lat": 2}}`,
		finalPackingReply,
	}}
	search := &stubSearch{}
	svc := NewPackingService(llm, search)

	_, err := svc.GeneratePackingList(context.Background(), packingItinerary())
	require.NoError(t, err)

	assert.Empty(t, search.queries, "rejected tool calls must not hit the search adapter")
	assert.Equal(t, 2, llm.calls)
}

func TestGeneratePackingList_GarbageFallsBackToDefault(t *testing.T) {
	llm := &scriptedLLM{replies: []string{"I refuse to emit JSON"}}
	svc := NewPackingService(llm, &stubSearch{})

	result, err := svc.GeneratePackingList(context.Background(), packingItinerary())
	require.NoError(t, err)

	assert.Equal(t, maxReasoningTurns, llm.calls)
	assert.Equal(t, response_models.DefaultPackingResult(), result)
}

func TestGeneratePackingList_LLMErrorPropagates(t *testing.T) {
	llm := &scriptedLLM{err: errors.New("rate limited")}
	svc := NewPackingService(llm, &stubSearch{})

	_, err := svc.GeneratePackingList(context.Background(), packingItinerary())
	assert.ErrorIs(t, err, utils.ErrUnexpectedBehaviorOfAI)
}
