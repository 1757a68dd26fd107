package request_models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripgen/pkg/utils"
)

func TestParseRequestInput_Preferences(t *testing.T) {
	body := `{"preferences":{"destination":"  Lisbon ","duration":3,"travelStyle":"Relaxed","budget":"MID-RANGE",
		"interests":["food"," Food","history",""],"groupSize":2,"accommodation":"hotel","startDate":"2025-05-01"}}`

	in, err := ParseRequestInput([]byte(body))
	require.NoError(t, err)

	prefs, ok := in.(StructuredPreferences)
	require.True(t, ok)
	assert.Equal(t, KeyPreferences, prefs.Kind())
	assert.Equal(t, "Lisbon", prefs.Destination)
	assert.Equal(t, 3, prefs.Duration)
	assert.Equal(t, "relaxed", prefs.TravelStyle)
	assert.Equal(t, "mid-range", prefs.Budget)
	assert.Equal(t, []string{"food", "history"}, prefs.Interests)
	assert.Equal(t, 2, prefs.GroupSize)
	assert.Equal(t, "2025-05-01", prefs.StartDate)
}

func TestParseRequestInput_Query(t *testing.T) {
	in, err := ParseRequestInput([]byte(`{"naturalLanguageQuery":"  5 days in Tokyo, mostly food  "}`))
	require.NoError(t, err)

	q, ok := in.(NaturalLanguageQuery)
	require.True(t, ok)
	assert.Equal(t, KeyNaturalLanguageQuery, q.Kind())
	assert.Equal(t, "5 days in Tokyo, mostly food", q.Text)
}

func TestParseRequestInput_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"both keys", `{"preferences":{"destination":"Rome","duration":2},"naturalLanguageQuery":"Rome for 2 days"}`},
		{"neither key", `{"destination":"Rome"}`},
		{"empty object", `{}`},
		{"not json", `destination=Rome`},
		{"array body", `[{"naturalLanguageQuery":"Rome"}]`},
		{"null preferences", `{"preferences":null}`},
		{"preferences wrong type", `{"preferences":"Rome"}`},
		{"empty query", `{"naturalLanguageQuery":"   "}`},
		{"null query", `{"naturalLanguageQuery":null}`},
		{"numeric query", `{"naturalLanguageQuery":42}`},
		{"missing destination", `{"preferences":{"duration":2}}`},
		{"zero duration", `{"preferences":{"destination":"Rome","duration":0}}`},
		{"duration too long", `{"preferences":{"destination":"Rome","duration":31}}`},
		{"duration as string", `{"preferences":{"destination":"Rome","duration":"3"}}`},
		{"unknown travel style", `{"preferences":{"destination":"Rome","duration":2,"travelStyle":"extreme"}}`},
		{"unknown budget", `{"preferences":{"destination":"Rome","duration":2,"budget":"free"}}`},
		{"unknown accommodation", `{"preferences":{"destination":"Rome","duration":2,"accommodation":"tent"}}`},
		{"negative group", `{"preferences":{"destination":"Rome","duration":2,"groupSize":-1}}`},
		{"bad start date", `{"preferences":{"destination":"Rome","duration":2,"startDate":"05/01/2025"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := ParseRequestInput([]byte(tt.body))
			assert.Nil(t, in)
			assert.ErrorIs(t, err, utils.ErrInvalidInput)
		})
	}
}

func TestValidateRequestInput(t *testing.T) {
	assert.NoError(t, ValidateRequestInput(StructuredPreferences{Destination: "Rome", Duration: 1}))
	assert.NoError(t, ValidateRequestInput(&StructuredPreferences{Destination: "Rome", Duration: 30}))
	assert.NoError(t, ValidateRequestInput(NaturalLanguageQuery{Text: "Rome"}))
	assert.NoError(t, ValidateRequestInput(&NaturalLanguageQuery{Text: "Rome"}))

	var nilPrefs *StructuredPreferences
	var nilQuery *NaturalLanguageQuery
	for _, in := range []RequestInput{nil, nilPrefs, nilQuery, NaturalLanguageQuery{}, StructuredPreferences{Duration: 2}} {
		assert.ErrorIs(t, ValidateRequestInput(in), utils.ErrInvalidInput)
	}
}

func TestNewStructuredPreferences_OptionalFieldsStayEmpty(t *testing.T) {
	p, err := NewStructuredPreferences(StructuredPreferences{Destination: "Kyoto", Duration: 2})
	require.NoError(t, err)
	assert.Empty(t, p.Budget)
	assert.Empty(t, p.Accommodation)
	assert.Empty(t, p.Interests)
	assert.Zero(t, p.GroupSize)
}

func TestNewNaturalLanguageQuery(t *testing.T) {
	_, err := NewNaturalLanguageQuery("")
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	q, err := NewNaturalLanguageQuery(" weekend in Porto ")
	require.NoError(t, err)
	assert.Equal(t, "weekend in Porto", q.Text)
}

func TestParseRequestInput_InvalidReturnsNilInput(t *testing.T) {
	for _, body := range []string{
		`{"preferences":{"duration":2}}`,
		`{"naturalLanguageQuery":""}`,
	} {
		in, err := ParseRequestInput([]byte(body))
		require.Error(t, err)
		assert.True(t, in == nil, "input must be a nil interface for %s, got %#v", body, in)
	}
}

func TestNormalizeRequestInput(t *testing.T) {
	original := &StructuredPreferences{
		Destination: " Vienna ",
		Duration:    2,
		Budget:      "LUXURY",
		TravelStyle: "Packed",
		Interests:   []string{"Opera", "opera"},
	}

	in, err := NormalizeRequestInput(original)
	require.NoError(t, err)
	prefs, ok := in.(StructuredPreferences)
	require.True(t, ok)
	assert.Equal(t, "Vienna", prefs.Destination)
	assert.Equal(t, "luxury", prefs.Budget)
	assert.Equal(t, "packed", prefs.TravelStyle)
	assert.Equal(t, []string{"Opera"}, prefs.Interests)
	assert.Equal(t, "LUXURY", original.Budget)

	in, err = NormalizeRequestInput(&NaturalLanguageQuery{Text: "  Bruges  "})
	require.NoError(t, err)
	assert.Equal(t, NaturalLanguageQuery{Text: "Bruges"}, in)

	var nilQuery *NaturalLanguageQuery
	for _, bad := range []RequestInput{nil, nilQuery, StructuredPreferences{Destination: "Rome"}} {
		in, err := NormalizeRequestInput(bad)
		assert.True(t, in == nil)
		assert.ErrorIs(t, err, utils.ErrInvalidInput)
	}
}
