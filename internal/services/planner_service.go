package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"backpackbuddy/internal/models/request_models"
	"backpackbuddy/internal/models/response_models"
	"backpackbuddy/pkg/utils"
)

// maxReasoningTurns bounds one reasoning session. Reaching the limit is
// a normal terminal state, not a failure: whatever the model said last
// still goes through the extractor.
const maxReasoningTurns = 15

type PlannerServiceInterface interface {
	GenerateItinerary(ctx context.Context, req request_models.TripRequest) (response_models.ItineraryResult, error)
	ReplanDay(ctx context.Context, itinerary response_models.Itinerary, day int, condition string) response_models.Itinerary
}

type PlannerService struct {
	llm     utils.LLMClientInterface
	toolbox *Toolbox
}

func NewPlannerService(llm utils.LLMClientInterface, toolbox *Toolbox) PlannerServiceInterface {
	return &PlannerService{
		llm:     llm,
		toolbox: toolbox,
	}
}

// GenerateItinerary runs one bounded reasoning session. Each turn the
// model must answer with a single JSON object: a tool call, or the
// final itinerary. Tool results and protocol mistakes both come back to
// the model as observations; only LLM transport failures abort the
// session.
func (p *PlannerService) GenerateItinerary(ctx context.Context, req request_models.TripRequest) (response_models.ItineraryResult, error) {
	if strings.TrimSpace(req.Destination) == "" {
		return response_models.ItineraryResult{}, utils.ErrInvalidInput
	}

	log.Printf("Generating itinerary for: %s", req.Destination)

	var observations []string
	var lastOutput string

	for turn := 1; turn <= maxReasoningTurns; turn++ {
		prompt := p.buildPlannerPrompt(req, observations)

		raw, err := p.llm.Generate(ctx, prompt)
		if err != nil {
			return response_models.ItineraryResult{}, fmt.Errorf("%w: %v", utils.ErrUnexpectedBehaviorOfAI, err)
		}
		lastOutput = raw

		payload, err := utils.ExtractJSONObject(raw)
		if err != nil {
			log.Printf("turn %d: unparseable model output: %v", turn, err)
			observations = append(observations,
				"Observation: your previous reply was not a single valid JSON object. Reply with exactly one JSON object: a tool call or the final itinerary.")
			continue
		}

		if rawTool, ok := payload["tool"]; ok {
			observations = append(observations, p.runTool(ctx, turn, rawTool, payload["args"]))
			continue
		}

		if _, ok := payload["itinerary"]; ok {
			log.Printf("planner finalized after %d turn(s)", turn)
			return utils.ExtractItinerary(raw), nil
		}

		log.Printf("turn %d: reply had neither a tool call nor an itinerary", turn)
		observations = append(observations,
			"Observation: your reply contained neither a \"tool\" key nor an \"itinerary\" key. Either call a tool or emit the final itinerary.")
	}

	log.Printf("planner exhausted %d turns without a final itinerary", maxReasoningTurns)
	return utils.ExtractItinerary(lastOutput), nil
}

// ReplanDay re-plans a single day of an itinerary after a new condition
// (e.g. a weather change). Placeholder for now: it logs the request and
// returns the itinerary unchanged. A real implementation must replace
// only the named day's activities and keep day numbering contiguous.
func (p *PlannerService) ReplanDay(ctx context.Context, itinerary response_models.Itinerary, day int, condition string) response_models.Itinerary {
	log.Printf("replan requested for day %d (condition: %q), returning itinerary unchanged", day, condition)
	return itinerary
}

// runTool decodes and executes one tool call, converting every failure
// mode into an observation string.
func (p *PlannerService) runTool(ctx context.Context, turn int, rawTool, rawArgs json.RawMessage) string {
	var name string
	if err := json.Unmarshal(rawTool, &name); err != nil {
		log.Printf("turn %d: non-string tool name: %v", turn, err)
		return "Observation: the \"tool\" field must be a string naming one of the available tools."
	}

	result, err := p.toolbox.Execute(ctx, ToolCall{Tool: name, Args: rawArgs})
	if err != nil {
		log.Printf("turn %d: tool call rejected: %v", turn, err)
		return fmt.Sprintf("Observation: %v. Available tools: %s, %s, %s.",
			err, ToolWebSearch, ToolFindPlaces, ToolGetRoute)
	}

	log.Printf("turn %d: executed %s", turn, name)
	return fmt.Sprintf("Observation from %s: %s", name, result)
}

func (p *PlannerService) buildPlannerPrompt(req request_models.TripRequest, observations []string) string {
	var b strings.Builder

	b.WriteString("You are BackpackBuddy, an expert travel agent AI. Your mission is to create a personalized, budget-friendly travel itinerary for a backpacker.\n\n")

	b.WriteString("User's requirements:\n")
	b.WriteString(fmt.Sprintf("- Destination: %s\n", req.Destination))
	b.WriteString(fmt.Sprintf("- Travel dates: %s\n", req.TravelDates))
	b.WriteString(fmt.Sprintf("- Budget: %s\n", req.BudgetMode))
	b.WriteString(fmt.Sprintf("- Preferences: %s\n\n", req.Preferences))

	b.WriteString("Available tools:\n")
	b.WriteString(p.toolbox.Catalog())
	b.WriteString("\n")

	b.WriteString("Protocol: reply with exactly ONE JSON object per turn and nothing else.\n")
	b.WriteString("- To call a tool: {\"tool\": \"<tool name>\", \"args\": {...}}\n")
	b.WriteString("- When the plan is complete, emit the final itinerary in this exact structure:\n")
	b.WriteString(`{
  "itinerary": [
    {
      "day": 1,
      "date": "<string>",
      "theme": "<string, e.g. 'Cultural Immersion & Street Food Tour'>",
      "activities": [
        {
          "time": "<string, e.g. '09:00 - 11:00'>",
          "description": "<detailed description>",
          "location": {"name": "<string>", "lat": <float>, "lon": <float>},
          "budget_notes": "<string>"
        }
      ]
    }
  ]
}`)
	b.WriteString("\n\n")

	b.WriteString("Suggested process: first geocode the destination with web_search, then build each day from find_places_of_interest results matching the user's preferences, and use get_route_information to keep daily travel realistic. Day numbers must start at 1 and be contiguous, and every day needs at least one activity. Include budget notes per activity (e.g. \"Free entry\", \"Expect to pay ~$10 for food\").\n")

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
