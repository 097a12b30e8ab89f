package request_models

import "backpackbuddy/internal/models/response_models"

type TripRequest struct {
	Destination string `json:"destination"`
	TravelDates string `json:"travel_dates"`
	BudgetMode  string `json:"budget_mode"`
	Preferences string `json:"preferences"`
}

type ItineraryData struct {
	Itinerary response_models.Itinerary `json:"itinerary"`
}

type ReplanRequest struct {
	Itinerary response_models.Itinerary `json:"itinerary"`
	Day       int                       `json:"day"`
	Condition string                    `json:"condition"`
}
