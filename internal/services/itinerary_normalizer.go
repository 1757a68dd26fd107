package services

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"tripgen/internal/models/response_models"
	"tripgen/pkg/utils"
)

// UnknownDestination is used when neither the oracle nor the request names one.
const UnknownDestination = "Unknown"

// NormalizeHints are request values used when the oracle omits the same field.
type NormalizeHints struct {
	Destination string
	Duration    int
}

// NormalizeItinerary parses sanitized oracle text into a CanonicalItinerary.
// Only a document that cannot be parsed at all is an error; every missing or
// mistyped field is replaced by its default.
func NormalizeItinerary(text string) (*response_models.CanonicalItinerary, error) {
	return NormalizeItineraryWithHints(text, NormalizeHints{})
}

func NormalizeItineraryWithHints(text string, hints NormalizeHints) (*response_models.CanonicalItinerary, error) {
	doc, err := decodeDocument(text)
	if err != nil {
		return nil, err
	}
	return normalizeItinerary(unwrapItinerary(doc), hints), nil
}

// unwrapItinerary opens {"itinerary": {...}} style wrappers when the outer
// object carries no itinerary fields of its own.
func unwrapItinerary(obj map[string]any) map[string]any {
	if lookup(obj, "days", "destination") != nil {
		return obj
	}
	for _, key := range []string{"itinerary", "tripItinerary", "travelItinerary"} {
		if inner, ok := obj[key].(map[string]any); ok {
			return inner
		}
	}
	return obj
}

func decodeDocument(text string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrMalformedPayload, err)
	}

	switch v := tree.(type) {
	case map[string]any:
		return v, nil
	case []any:
		for _, elem := range v {
			if obj, ok := elem.(map[string]any); ok {
				return obj, nil
			}
		}
		return map[string]any{}, nil
	default:
		return nil, fmt.Errorf("%w: expected a JSON object, got %T", utils.ErrMalformedPayload, tree)
	}
}

func normalizeItinerary(obj map[string]any, hints NormalizeHints) *response_models.CanonicalItinerary {
	days := normalizeDays(dayList(obj))

	destination := asString(lookup(obj, "destination"))
	if destination == "" {
		destination = strings.TrimSpace(hints.Destination)
	}
	if destination == "" {
		destination = UnknownDestination
	}

	duration, ok := asInt(lookup(obj, "duration", "durationDays", "duration_days"))
	if !ok {
		if hints.Duration > 0 {
			duration = hints.Duration
		} else {
			duration = len(days)
		}
	}
	if duration < 0 {
		duration = 0
	}

	emergency := asObject(lookup(obj, "emergencyInfo", "emergency_info"))

	return &response_models.CanonicalItinerary{
		Destination:         destination,
		Duration:            duration,
		EstimatedBudget:     asString(lookup(obj, "estimatedBudget", "estimated_budget")),
		TravelStyle:         asString(lookup(obj, "travelStyle", "travel_style")),
		WeatherOverview:     asString(lookup(obj, "weatherOverview", "weather_overview")),
		EssentialTravelTips: asStringList(lookup(obj, "essentialTravelTips", "essential_travel_tips", "travelTips")),
		EmergencyInfo: response_models.EmergencyInfo{
			Contacts:  asStringList(lookup(emergency, "contacts", "emergencyContacts")),
			Hospitals: asStringList(lookup(emergency, "hospitals")),
			Embassies: asStringList(lookup(emergency, "embassies")),
		},
		Days: days,
	}
}

// dayList reads "days", coercing a lone day into a list. The alias keys
// only count when they hold a list, since they also name wrapper objects.
func dayList(obj map[string]any) any {
	if v := lookup(obj, "days"); v != nil {
		return v
	}
	for _, key := range []string{"itinerary", "dailyItinerary"} {
		if list, ok := obj[key].([]any); ok {
			return list
		}
	}
	return nil
}

// normalizeDays keeps the oracle's order; days are never sorted, merged or padded.
func normalizeDays(v any) []response_models.Day {
	elems := asList(v)
	days := make([]response_models.Day, 0, len(elems))
	for i, elem := range elems {
		days = append(days, normalizeDay(asObject(elem), i))
	}
	return days
}

func normalizeDay(obj map[string]any, index int) response_models.Day {
	dayNumber, ok := asInt(lookup(obj, "dayNumber", "day_number", "day"))
	if !ok || dayNumber < 1 {
		dayNumber = index + 1
	}

	return response_models.Day{
		DayNumber:  dayNumber,
		Date:       asString(lookup(obj, "date")),
		Weather:    normalizeWeather(lookup(obj, "weather")),
		DailyTips:  asStringList(lookup(obj, "dailyTips", "daily_tips", "tips")),
		Activities: normalizeActivities(lookup(obj, "activities")),
		DaySummary: asString(lookup(obj, "daySummary", "day_summary", "summary")),
	}
}

func normalizeWeather(v any) response_models.DayWeather {
	if s := asString(v); s != "" {
		return response_models.DayWeather{Condition: s}
	}
	obj := asObject(v)
	return response_models.DayWeather{
		TempRange: asString(lookup(obj, "tempRange", "temp_range", "temperature")),
		Condition: asString(lookup(obj, "condition")),
		Tip:       asString(lookup(obj, "tip")),
	}
}

func normalizeActivities(v any) []response_models.Activity {
	elems := asList(v)
	activities := make([]response_models.Activity, 0, len(elems))
	for _, elem := range elems {
		activities = append(activities, normalizeActivity(elem))
	}
	return activities
}

func normalizeActivity(v any) response_models.Activity {
	if name := asString(v); name != "" {
		return response_models.Activity{Name: name, Type: response_models.ActivityFlexible}
	}
	obj := asObject(v)
	return response_models.Activity{
		Name:        asString(lookup(obj, "name", "title")),
		Category:    asString(lookup(obj, "category")),
		Type:        activityType(asString(lookup(obj, "type"))),
		Description: asString(lookup(obj, "description")),
		Duration:    asString(lookup(obj, "duration")),
		Location:    asString(lookup(obj, "location", "address")),
		Cost:        asString(lookup(obj, "cost", "price")),
		Rating:      asString(lookup(obj, "rating")),
		Photos:      strings.Join(asStringList(lookup(obj, "photos", "photo")), ", "),
	}
}

func activityType(s string) string {
	switch t := strings.ToLower(s); t {
	case response_models.ActivityIndoor, response_models.ActivityOutdoor, response_models.ActivityFlexible:
		return t
	default:
		return response_models.ActivityFlexible
	}
}

// lookup returns the first non-null value stored under one of keys.
func lookup(obj map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := obj[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func asObject(v any) map[string]any {
	if obj, ok := v.(map[string]any); ok {
		return obj
	}
	return map[string]any{}
}

// asList wraps a lone value into a one-element list.
func asList(v any) []any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		return t
	default:
		return []any{t}
	}
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// asStringList keeps every element that reads as a non-empty string.
func asStringList(v any) []string {
	elems := asList(v)
	out := make([]string, 0, len(elems))
	for _, elem := range elems {
		if s := asString(elem); s != "" {
			out = append(out, s)
		}
	}
	return out
}

var leadingNumber = regexp.MustCompile(`^[+-]?\d+(\.\d+)?`)

// asInt reads numbers and numeric-looking strings such as "3" or "3 days".
func asInt(v any) (int, bool) {
	var f float64
	switch t := v.(type) {
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case float64:
		f = t
	case string:
		m := leadingNumber.FindString(strings.TrimSpace(t))
		if m == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(math.Round(f)), true
}
