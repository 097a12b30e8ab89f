package utils

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"backpackbuddy/internal/models/response_models"
)

// CreateItineraryPDF renders an itinerary as a printable PDF document.
// The renderer is tolerant by contract: days without activities get a
// placeholder line, and missing location or budget details are simply
// omitted from the activity fragment.
func CreateItineraryPDF(data response_models.Itinerary) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(25, 25, 25)
	pdf.SetAutoPageBreak(true, 25)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 24)
	pdf.MultiCell(0, 12, fmt.Sprintf("BackpackBuddy Itinerary: %s", destinationLabel(data)), "", "C", false)
	pdf.Ln(20)

	for _, day := range data.Itinerary {
		pdf.SetFont("Helvetica", "B", 18)
		pdf.MultiCell(0, 9, fmt.Sprintf("Day %d: %s", day.Day, day.Theme), "", "L", false)

		date := day.Date
		if date == "" {
			date = "N/A"
		}
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, fmt.Sprintf("Date: %s", date), "", "L", false)
		pdf.Ln(3)

		if len(day.Activities) == 0 {
			pdf.MultiCell(0, 6, "No activities planned for this day.", "", "L", false)
			pdf.Ln(3)
			continue
		}

		for _, activity := range day.Activities {
			pdf.SetFont("Helvetica", "B", 11)
			pdf.MultiCell(0, 6, fmt.Sprintf("%s: %s", activity.Time, activity.Description), "", "L", false)

			if details := activityDetails(activity); details != "" {
				pdf.SetFont("Helvetica", "", 10)
				pdf.SetTextColor(128, 128, 128)
				pdf.MultiCell(0, 5, details, "", "L", false)
				pdf.SetTextColor(0, 0, 0)
			}
			pdf.Ln(2)
		}
		pdf.Ln(5)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render itinerary PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// destinationLabel guesses a headline destination from the first
// activity's location name, e.g. "Wat Pho, Bangkok" -> "Bangkok".
func destinationLabel(data response_models.Itinerary) string {
	const fallback = "Your Adventure"

	if len(data.Itinerary) == 0 || len(data.Itinerary[0].Activities) == 0 {
		return fallback
	}
	name := data.Itinerary[0].Activities[0].Location.Name
	if name == "" {
		return fallback
	}

	parts := strings.Split(name, ",")
	return strings.TrimSpace(parts[len(parts)-1])
}

func activityDetails(activity response_models.Activity) string {
	var fragments []string
	if activity.Location.Name != "" {
		fragments = append(fragments, fmt.Sprintf("Location: %s", activity.Location.Name))
	}
	if activity.BudgetNotes != "" {
		fragments = append(fragments, fmt.Sprintf("Budget: %s", activity.BudgetNotes))
	}
	return strings.Join(fragments, " | ")
}
