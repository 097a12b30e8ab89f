package planner_fx

import (
	"fmt"
	"log"
	"os"
	"strings"

	"go.uber.org/fx"

	"backpackbuddy/internal/api/controllers"
	"backpackbuddy/internal/services"
	"backpackbuddy/pkg/utils"
)

var Module = fx.Provide(
	ProvideLLMClient,
	ProvidePlannerService,
	ProvidePackingService,
	ProvidePlannerController,
	ProvidePDFController,
)

// LLMConfig holds configuration for the reasoning engine
type LLMConfig struct {
	Provider string
	APIKey   string
	Model    string
}

// ProvideLLMClient creates an LLM client based on environment variables
func ProvideLLMClient() (utils.LLMClientInterface, error) {
	config := getLLMConfig()

	log.Printf("Initializing %s LLM client with model: %s", config.Provider, config.Model)

	switch strings.ToLower(config.Provider) {
	case "groq":
		return utils.NewGroqClient(config.APIKey, config.Model), nil
	case "gemini":
		client, err := utils.NewGeminiClient(config.APIKey, config.Model)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s. Use 'groq' or 'gemini'", config.Provider)
	}
}

func ProvidePlannerService(
	llm utils.LLMClientInterface,
	toolbox *services.Toolbox,
) services.PlannerServiceInterface {
	return services.NewPlannerService(llm, toolbox)
}

func ProvidePackingService(
	llm utils.LLMClientInterface,
	search services.SearchServiceInterface,
) services.PackingServiceInterface {
	return services.NewPackingService(llm, search)
}

func ProvidePlannerController(
	plannerService services.PlannerServiceInterface,
	packingService services.PackingServiceInterface,
) *controllers.PlannerController {
	return controllers.NewPlannerController(plannerService, packingService)
}

func ProvidePDFController() *controllers.PDFController {
	return controllers.NewPDFController()
}

// getLLMConfig reads configuration from environment variables. A
// missing key for the chosen provider is fatal: credential problems
// must surface at startup, not in the middle of a session.
func getLLMConfig() LLMConfig {
	provider := getEnvWithDefault("LLM_PROVIDER", "groq")

	var apiKey, model string

	switch strings.ToLower(provider) {
	case "groq":
		apiKey = os.Getenv("GROQ_API_KEY")
		model = getEnvWithDefault("GROQ_MODEL", "llama-3.3-70b-versatile")
		if apiKey == "" {
			log.Fatal("GROQ_API_KEY is required when using Groq provider")
		}
	case "gemini":
		apiKey = os.Getenv("GEMINI_API_KEY")
		model = getEnvWithDefault("GEMINI_MODEL", "gemini-1.5-flash")
		if apiKey == "" {
			log.Fatal("GEMINI_API_KEY is required when using Gemini provider")
		}
	}

	return LLMConfig{
		Provider: provider,
		APIKey:   apiKey,
		Model:    model,
	}
}

// getEnvWithDefault returns environment variable or default value
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
