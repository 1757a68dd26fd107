package services

import (
	"fmt"
	"strings"
	"time"

	"tripgen/internal/models/request_models"
	"tripgen/pkg/utils"
)

// Directive is the full instruction text sent to the oracle. It is built once
// per invocation and never modified.
type Directive struct {
	intent string
}

// Text is the user intent followed by the output contract.
func (d Directive) Text() string {
	return d.intent + "\n\n" + itineraryOutputContract
}

// Intent is the request-specific half of the directive.
func (d Directive) Intent() string {
	return d.intent
}

func (d Directive) String() string {
	return d.Text()
}

// itineraryOutputContract must list the same fields NormalizeItinerary reads.
const itineraryOutputContract = `Respond with a single JSON object and nothing else: no markdown, no code fences, no commentary.
The object MUST have exactly this shape:
{
  "destination": "string, the city or region being visited",
  "duration": integer number of days,
  "estimatedBudget": "string, total estimated cost with currency, e.g. \"1200-1500 USD\"",
  "travelStyle": "string, relaxed | moderate | packed",
  "weatherOverview": "string, expected weather for the whole trip",
  "essentialTravelTips": ["string", "..."],
  "emergencyInfo": {
    "contacts": ["string, e.g. \"Police: 112\""],
    "hospitals": ["string, name and address"],
    "embassies": ["string, name and address"]
  },
  "days": [
    {
      "dayNumber": integer starting at 1,
      "date": "string, YYYY-MM-DD or \"Day N\"",
      "weather": {"tempRange": "string, e.g. \"18-24°C\"", "condition": "string", "tip": "string"},
      "dailyTips": ["string", "..."],
      "activities": [
        {
          "name": "string",
          "category": "string, e.g. sightseeing, food, culture, nature, nightlife",
          "type": "indoor | outdoor | flexible",
          "description": "string, 1-2 sentences",
          "duration": "string, e.g. \"2 hours\"",
          "location": "string, address or area",
          "cost": "string, price with currency or \"Free\"",
          "rating": "string, e.g. \"4.5/5\"",
          "photos": "string, a short image search phrase for this place"
        }
      ],
      "daySummary": "string"
    }
  ]
}
Rules:
- Provide exactly one entry in "days" per day of the trip, in chronological order, with 3 to 5 activities each.
- Never leave a field null, empty, "N/A" or "unknown". When the traveler did not say something, infer a plausible value.
- Numbers must be JSON numbers; every other value is a string or an array of strings as shown.`

// BuildDirective renders the oracle directive for in. It fails only for a
// nil or unrecognized input.
func BuildDirective(in request_models.RequestInput) (Directive, error) {
	switch v := in.(type) {
	case request_models.StructuredPreferences:
		return Directive{intent: preferencesIntent(&v)}, nil
	case *request_models.StructuredPreferences:
		if v != nil {
			return Directive{intent: preferencesIntent(v)}, nil
		}
	case request_models.NaturalLanguageQuery:
		return Directive{intent: queryIntent(v.Text)}, nil
	case *request_models.NaturalLanguageQuery:
		if v != nil {
			return Directive{intent: queryIntent(v.Text)}, nil
		}
	}
	return Directive{}, fmt.Errorf("%w: request must be preferences or a natural language query", utils.ErrInvalidInput)
}

func preferencesIntent(p *request_models.StructuredPreferences) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a detailed %d-day travel itinerary for %s.\n", p.Duration, p.Destination)

	if p.TravelStyle != "" {
		fmt.Fprintf(&b, "Travel style: %s pace.\n", p.TravelStyle)
	}
	if len(p.Interests) > 0 {
		fmt.Fprintf(&b, "Interests: %s.\n", strings.Join(p.Interests, ", "))
	}
	if p.Budget != "" {
		fmt.Fprintf(&b, "Budget level: %s.\n", p.Budget)
	}
	if p.GroupSize > 0 {
		noun := "travelers"
		if p.GroupSize == 1 {
			noun = "traveler"
		}
		fmt.Fprintf(&b, "Group size: %d %s.\n", p.GroupSize, noun)
	}
	if p.Accommodation != "" {
		fmt.Fprintf(&b, "Preferred accommodation: %s.\n", p.Accommodation)
	}
	if p.StartDate != "" {
		b.WriteString(startDateClause(p.StartDate, p.Duration))
	}
	if p.SpecificRequests != "" {
		fmt.Fprintf(&b, "Specific requests: %s\n", p.SpecificRequests)
	}

	return strings.TrimRight(b.String(), "\n")
}

// startDateClause pins each day's "date" to the calendar.
func startDateClause(startDate string, duration int) string {
	start, err := time.Parse(request_models.StartDateLayout, startDate)
	if err != nil {
		return fmt.Sprintf("The trip starts on %s.\n", startDate)
	}

	dates := make([]string, 0, duration)
	for i := 0; i < duration; i++ {
		dates = append(dates, fmt.Sprintf("day %d = %s", i+1, start.AddDate(0, 0, i).Format(request_models.StartDateLayout)))
	}
	return fmt.Sprintf("The trip starts on %s; use these dates for \"date\": %s.\n", startDate, strings.Join(dates, ", "))
}

func queryIntent(text string) string {
	return fmt.Sprintf(`A traveler described the trip they want in their own words:
"""
%s
"""
Work out the destination, the number of days and their preferences from that description and create a detailed day-by-day travel itinerary.`, text)
}
