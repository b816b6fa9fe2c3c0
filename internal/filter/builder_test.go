package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rebeliceyang/lazyfilter/internal/models"
)

type stubInput struct {
	model  *models.Filter
	inputs []models.Param
}

func (s stubInput) Model() *models.Filter  { return s.model }
func (s stubInput) Inputs() []models.Param { return s.inputs }

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want models.Query
	}{
		{"empty", "", models.Query{}},
		{"bare", "name=bug", models.Query{{Key: "name", Value: "bug"}}},
		{"leading question mark", "?a=1&a=2", models.Query{{Key: "a", Value: "1"}, {Key: "a", Value: "2"}}},
		{"full url", "http://host/issues?status=OPEN#top", models.Query{{Key: "status", Value: "OPEN"}}},
		{"escaped", "q=a+b%26c", models.Query{{Key: "q", Value: "a b&c"}}},
		{"key without value", "flag&x=1", models.Query{{Key: "flag", Value: ""}, {Key: "x", Value: "1"}}},
		{"empty key dropped", "=1&x=2", models.Query{{Key: "x", Value: "2"}}},
		{"question mark in value", "q=why?", models.Query{{Key: "q", Value: "why?"}}},
		{"question mark in last value", "statuses=OPEN&q=who?", models.Query{{Key: "statuses", Value: "OPEN"}, {Key: "q", Value: "who?"}}},
		{"question mark mid query", "q=a?b&statuses=OPEN", models.Query{{Key: "q", Value: "a?b"}, {Key: "statuses", Value: "OPEN"}}},
		{"url with question mark in value", "https://host/issues?q=why?&x=1", models.Query{{Key: "q", Value: "why?"}, {Key: "x", Value: "1"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQuery(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseQuery_Malformed(t *testing.T) {
	_, err := ParseQuery("name=%zz")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedQuery)
}

func TestBuildQuery_SkipsDisabledAndSynthetic(t *testing.T) {
	name := models.NewFilter(models.FilterOptions{Property: "name", Enabled: true})
	status := models.NewFilter(models.FilterOptions{Property: "status", Enabled: false})
	more := models.NewFilter(models.FilterOptions{ID: "more", Kind: models.KindMoreCriteria, Enabled: true})
	created := models.NewFilter(models.FilterOptions{Kind: models.KindDateRange, PropertyFrom: "createdAfter", PropertyTo: "createdBefore", Enabled: true})

	inputs := []Input{
		stubInput{name, []models.Param{{Key: "name", Value: "bug fix"}}},
		stubInput{status, []models.Param{{Key: "status", Value: "OPEN"}}},
		stubInput{created, []models.Param{{Key: "createdAfter", Value: "2024-01-01"}, {Key: "createdBefore", Value: ""}}},
		stubInput{more, []models.Param{{Key: "ignored", Value: "x"}}},
	}

	got := NewBuilder().BuildQuery(inputs)
	assert.Equal(t, "name=bug+fix&createdAfter=2024-01-01", got)
}

func TestEncodeParseRoundTrip(t *testing.T) {
	q := models.Query{{Key: "createdAfter", Value: "1"}, {Key: "createdBefore", Value: "5"}, {Key: "name", Value: "a&b"}}

	got, err := ParseQuery(Encode(q))
	require.NoError(t, err)
	assert.Equal(t, q, got)
}
