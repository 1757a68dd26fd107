package request_models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tripgen/pkg/utils"
)

const (
	KeyPreferences          = "preferences"
	KeyNaturalLanguageQuery = "naturalLanguageQuery"

	MaxDurationDays = 30
	StartDateLayout = "2006-01-02"
)

var (
	TravelStyles   = []string{"relaxed", "moderate", "packed"}
	BudgetLevels   = []string{"budget", "mid-range", "luxury"}
	Accommodations = []string{"hostel", "hotel", "resort", "airbnb"}
)

// RequestInput is either StructuredPreferences or NaturalLanguageQuery.
type RequestInput interface {
	Kind() string
	isRequestInput()
}

// StructuredPreferences carries form input. Zero values mean "not supplied".
type StructuredPreferences struct {
	Destination      string   `json:"destination"`
	Duration         int      `json:"duration"`
	TravelStyle      string   `json:"travelStyle,omitempty"`
	Budget           string   `json:"budget,omitempty"`
	Interests        []string `json:"interests,omitempty"`
	GroupSize        int      `json:"groupSize,omitempty"`
	Accommodation    string   `json:"accommodation,omitempty"`
	StartDate        string   `json:"startDate,omitempty"`
	SpecificRequests string   `json:"specificRequests,omitempty"`
}

// NaturalLanguageQuery is a free-form sentence describing the trip.
type NaturalLanguageQuery struct {
	Text string
}

func (StructuredPreferences) Kind() string { return KeyPreferences }
func (StructuredPreferences) isRequestInput() {}
func (NaturalLanguageQuery) Kind() string  { return KeyNaturalLanguageQuery }
func (NaturalLanguageQuery) isRequestInput()  {}

// NewStructuredPreferences normalizes p (trimmed strings, lower-case enums,
// de-duplicated interests) and validates it.
func NewStructuredPreferences(p StructuredPreferences) (StructuredPreferences, error) {
	p.Destination = strings.TrimSpace(p.Destination)
	p.TravelStyle = strings.ToLower(strings.TrimSpace(p.TravelStyle))
	p.Budget = strings.ToLower(strings.TrimSpace(p.Budget))
	p.Accommodation = strings.ToLower(strings.TrimSpace(p.Accommodation))
	p.StartDate = strings.TrimSpace(p.StartDate)
	p.SpecificRequests = strings.TrimSpace(p.SpecificRequests)
	p.Interests = cleanInterests(p.Interests)

	if err := ValidateRequestInput(p); err != nil {
		return StructuredPreferences{}, err
	}
	return p, nil
}

func NewNaturalLanguageQuery(text string) (NaturalLanguageQuery, error) {
	q := NaturalLanguageQuery{Text: strings.TrimSpace(text)}
	if err := ValidateRequestInput(q); err != nil {
		return NaturalLanguageQuery{}, err
	}
	return q, nil
}

// ParseRequestInput decodes a request body. Exactly one of the
// "preferences" / "naturalLanguageQuery" keys must be present.
func ParseRequestInput(body []byte) (RequestInput, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: request body is not a JSON object: %v", utils.ErrInvalidInput, err)
	}

	prefsRaw, hasPrefs := raw[KeyPreferences]
	queryRaw, hasQuery := raw[KeyNaturalLanguageQuery]

	switch {
	case hasPrefs && hasQuery:
		return nil, fmt.Errorf("%w: supply either %q or %q, not both", utils.ErrInvalidInput, KeyPreferences, KeyNaturalLanguageQuery)
	case !hasPrefs && !hasQuery:
		return nil, fmt.Errorf("%w: one of %q or %q is required", utils.ErrInvalidInput, KeyPreferences, KeyNaturalLanguageQuery)
	case hasPrefs:
		if isJSONNull(prefsRaw) {
			return nil, fmt.Errorf("%w: %q must be an object", utils.ErrInvalidInput, KeyPreferences)
		}
		var prefs StructuredPreferences
		if err := json.Unmarshal(prefsRaw, &prefs); err != nil {
			return nil, fmt.Errorf("%w: invalid preferences: %v", utils.ErrInvalidInput, err)
		}
		return NormalizeRequestInput(prefs)
	default:
		var text string
		if err := json.Unmarshal(queryRaw, &text); err != nil || isJSONNull(queryRaw) {
			return nil, fmt.Errorf("%w: %q must be a string", utils.ErrInvalidInput, KeyNaturalLanguageQuery)
		}
		return NormalizeRequestInput(NaturalLanguageQuery{Text: text})
	}
}

// NormalizeRequestInput returns the normalized value form of in, or a nil
// input and ErrInvalidInput. Inputs built in code go through the same
// normalization as decoded ones.
func NormalizeRequestInput(in RequestInput) (RequestInput, error) {
	switch v := in.(type) {
	case StructuredPreferences:
		return normalizedPreferences(v)
	case *StructuredPreferences:
		if v != nil {
			return normalizedPreferences(*v)
		}
	case NaturalLanguageQuery:
		return normalizedQuery(v.Text)
	case *NaturalLanguageQuery:
		if v != nil {
			return normalizedQuery(v.Text)
		}
	}
	return nil, fmt.Errorf("%w: missing request", utils.ErrInvalidInput)
}

func normalizedPreferences(p StructuredPreferences) (RequestInput, error) {
	prefs, err := NewStructuredPreferences(p)
	if err != nil {
		return nil, err
	}
	return prefs, nil
}

func normalizedQuery(text string) (RequestInput, error) {
	q, err := NewNaturalLanguageQuery(text)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// ValidateRequestInput checks an input without normalizing it.
func ValidateRequestInput(in RequestInput) error {
	switch v := in.(type) {
	case StructuredPreferences:
		return validatePreferences(&v)
	case *StructuredPreferences:
		if v == nil {
			return fmt.Errorf("%w: missing request", utils.ErrInvalidInput)
		}
		return validatePreferences(v)
	case NaturalLanguageQuery:
		return validateQuery(&v)
	case *NaturalLanguageQuery:
		if v == nil {
			return fmt.Errorf("%w: missing request", utils.ErrInvalidInput)
		}
		return validateQuery(v)
	default:
		return fmt.Errorf("%w: missing request", utils.ErrInvalidInput)
	}
}

func validatePreferences(p *StructuredPreferences) error {
	if strings.TrimSpace(p.Destination) == "" {
		return fmt.Errorf("%w: destination is required", utils.ErrInvalidInput)
	}
	if p.Duration < 1 || p.Duration > MaxDurationDays {
		return fmt.Errorf("%w: duration must be between 1 and %d days", utils.ErrInvalidInput, MaxDurationDays)
	}
	if p.GroupSize < 0 {
		return fmt.Errorf("%w: groupSize must be at least 1", utils.ErrInvalidInput)
	}
	if err := checkEnum("travelStyle", p.TravelStyle, TravelStyles); err != nil {
		return err
	}
	if err := checkEnum("budget", p.Budget, BudgetLevels); err != nil {
		return err
	}
	if err := checkEnum("accommodation", p.Accommodation, Accommodations); err != nil {
		return err
	}
	if p.StartDate != "" {
		if _, err := time.Parse(StartDateLayout, p.StartDate); err != nil {
			return fmt.Errorf("%w: startDate must be formatted YYYY-MM-DD", utils.ErrInvalidInput)
		}
	}
	return nil
}

func validateQuery(q *NaturalLanguageQuery) error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w: naturalLanguageQuery must not be empty", utils.ErrInvalidInput)
	}
	return nil
}

func checkEnum(field, value string, allowed []string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s must be one of %s", utils.ErrInvalidInput, field, strings.Join(allowed, ", "))
}

func cleanInterests(interests []string) []string {
	seen := make(map[string]bool, len(interests))
	out := make([]string, 0, len(interests))
	for _, i := range interests {
		i = strings.TrimSpace(i)
		key := strings.ToLower(i)
		if i == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, i)
	}
	return out
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
