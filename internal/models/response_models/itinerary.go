package response_models

import "encoding/json"

type Location struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

type Activity struct {
	Time        string   `json:"time"`
	Description string   `json:"description"`
	Location    Location `json:"location"`
	BudgetNotes string   `json:"budget_notes"`
}

type DayPlan struct {
	Day        int        `json:"day"`
	Date       string     `json:"date"`
	Theme      string     `json:"theme"`
	Activities []Activity `json:"activities"`
}

// Itinerary is the day-by-day travel plan exchanged with clients.
type Itinerary struct {
	Itinerary []DayPlan `json:"itinerary"`
}

// ItineraryResult is what a planning session produces: either the
// itinerary, or the error marker carrying the unparseable model output.
type ItineraryResult struct {
	Itinerary   []DayPlan
	Error       string
	RawResponse string
}

func (r ItineraryResult) MarshalJSON() ([]byte, error) {
	if r.Error != "" {
		return json.Marshal(map[string]string{
			"error":        r.Error,
			"raw_response": r.RawResponse,
		})
	}
	days := r.Itinerary
	if days == nil {
		days = []DayPlan{}
	}
	return json.Marshal(map[string][]DayPlan{"itinerary": days})
}
