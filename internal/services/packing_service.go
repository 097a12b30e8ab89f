package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"backpackbuddy/internal/models/response_models"
	"backpackbuddy/pkg/utils"
)

type PackingServiceInterface interface {
	GeneratePackingList(ctx context.Context, itinerary response_models.Itinerary) (response_models.PackingResult, error)
}

// PackingService derives a categorized packing list from a completed
// itinerary. Same loop mechanics as the planner, but with a single tool
// (web search, for the weather forecast) and a single expected answer.
type PackingService struct {
	llm    utils.LLMClientInterface
	search SearchServiceInterface
}

func NewPackingService(llm utils.LLMClientInterface, search SearchServiceInterface) PackingServiceInterface {
	return &PackingService{
		llm:    llm,
		search: search,
	}
}

func (s *PackingService) GeneratePackingList(ctx context.Context, itinerary response_models.Itinerary) (response_models.PackingResult, error) {
	serialized, err := json.MarshalIndent(itinerary, "", "  ")
	if err != nil {
		return response_models.PackingResult{}, fmt.Errorf("serialize itinerary: %w", err)
	}

	log.Printf("Generating packing list for an itinerary of %d day(s)", len(itinerary.Itinerary))

	var observations []string
	var lastOutput string

	for turn := 1; turn <= maxReasoningTurns; turn++ {
		prompt := s.buildPackingPrompt(string(serialized), observations)

		raw, err := s.llm.Generate(ctx, prompt)
		if err != nil {
			return response_models.PackingResult{}, fmt.Errorf("%w: %v", utils.ErrUnexpectedBehaviorOfAI, err)
		}
		lastOutput = raw

		payload, err := utils.ExtractJSONObject(raw)
		if err != nil {
			log.Printf("packing turn %d: unparseable model output: %v", turn, err)
			observations = append(observations,
				"Observation: your previous reply was not a single valid JSON object. Reply with exactly one JSON object: a web_search call or the final packing list.")
			continue
		}

		if rawTool, ok := payload["tool"]; ok {
			observations = append(observations, s.runSearch(ctx, turn, rawTool, payload["args"]))
			continue
		}

		if _, ok := payload["packing_list"]; ok {
			log.Printf("packing list finalized after %d turn(s)", turn)
			return utils.ExtractPackingList(raw), nil
		}

		observations = append(observations,
			"Observation: your reply contained neither a \"tool\" key nor a \"packing_list\" key.")
	}

	log.Printf("packing loop exhausted %d turns, falling back to the default list", maxReasoningTurns)
	return utils.ExtractPackingList(lastOutput), nil
}

func (s *PackingService) runSearch(ctx context.Context, turn int, rawTool, rawArgs json.RawMessage) string {
	var name string
	if err := json.Unmarshal(rawTool, &name); err != nil || name != ToolWebSearch {
		log.Printf("packing turn %d: rejected tool call %s", turn, string(rawTool))
		return fmt.Sprintf("Observation: only %s is available in this session.", ToolWebSearch)
	}

	var args struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal(rawArgs, &args); err != nil || strings.TrimSpace(args.Query) == "" {
		return fmt.Sprintf("Observation: %s requires args of the form {\"query\": \"<string>\"}.", ToolWebSearch)
	}

	result := s.search.Search(ctx, args.Query)
	if result == "" {
		result = "no results"
	}
	log.Printf("packing turn %d: executed %s", turn, ToolWebSearch)
	return fmt.Sprintf("Observation from %s: %s", ToolWebSearch, result)
}

func (s *PackingService) buildPackingPrompt(itineraryJSON string, observations []string) string {
	var b strings.Builder

	b.WriteString("You are BackpackBuddy's \"Repack Expert\". Your job is to generate a practical packing list for a traveler based on their itinerary.\n\n")

	b.WriteString("Process:\n")
	b.WriteString("1. Review the destination, duration, and planned activities.\n")
	b.WriteString(fmt.Sprintf("2. Check the weather with the %s tool for the destination and dates. This is the most important step.\n", ToolWebSearch))
	b.WriteString("3. Group items into these categories: Clothing, Toiletries, Electronics, Documents, Miscellaneous.\n")
	b.WriteString("4. Be specific with quantities (e.g. \"3x T-shirts\", \"1x Rain jacket\") and match items to activities: hiking needs boots, beaches need swimwear.\n\n")

	b.WriteString(fmt.Sprintf("Available tool:\n- %s: search the web for current information, especially weather forecasts. Args: {\"query\": \"<string>\"}\n\n", ToolWebSearch))

	b.WriteString("Protocol: reply with exactly ONE JSON object per turn and nothing else.\n")
	b.WriteString(fmt.Sprintf("- To check the weather: {\"tool\": \"%s\", \"args\": {\"query\": \"<string>\"}}\n", ToolWebSearch))
	b.WriteString("- When done, emit the final packing list in this exact structure:\n")
	b.WriteString(`{
  "packing_list": {
    "Clothing": ["..."],
    "Toiletries": ["..."],
    "Electronics": ["..."],
    "Documents": ["..."],
    "Miscellaneous": ["..."]
  },
  "weather_summary": "<brief summary of the expected weather>"
}`)
	b.WriteString("\n\nItinerary details:\n")
	b.WriteString(itineraryJSON)
	b.WriteString("\n")

	if len(observations) > 0 {
		b.WriteString("\nObservations so far:\n")
		for _, obs := range observations {
			b.WriteString(obs)
			b.WriteString("\n")
		}
	}

	b.WriteString("\nNow respond with your next JSON object.")
	return b.String()
}
