package filter

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/rebeliceyang/lazyfilter/internal/models"
)

// ErrMalformedQuery is returned when a query string cannot be decoded
var ErrMalformedQuery = errors.New("malformed query")

// Input is anything that contributes hidden inputs to the query string
type Input interface {
	Model() *models.Filter
	Inputs() []models.Param
}

// Builder generates query strings from filter chips
type Builder struct{}

// NewBuilder creates a new query builder
func NewBuilder() *Builder {
	return &Builder{}
}

// BuildParams collects the non-empty inputs of every enabled chip in order.
// The more-criteria and favorite chips never contribute.
func (b *Builder) BuildParams(inputs []Input) models.Query {
	q := models.Query{}
	for _, in := range inputs {
		f := in.Model()
		if f == nil || !f.Enabled() || !Contributes(f.Kind) {
			continue
		}
		for _, p := range in.Inputs() {
			if p.Key == "" || p.Value == "" {
				continue
			}
			q = append(q, p)
		}
	}
	return q
}

// BuildQuery encodes the inputs of every enabled chip as a query string
func (b *Builder) BuildQuery(inputs []Input) string {
	return Encode(b.BuildParams(inputs))
}

// Contributes reports whether chips of kind add parameters to the query
func Contributes(kind models.Kind) bool {
	switch kind {
	case models.KindMoreCriteria, models.KindFavorite:
		return false
	default:
		return true
	}
}

// Encode renders params as a query string, keeping their order
func Encode(q models.Query) string {
	parts := make([]string, 0, len(q))
	for _, p := range q {
		parts = append(parts, url.QueryEscape(p.Key)+"="+url.QueryEscape(p.Value))
	}
	return strings.Join(parts, "&")
}

var schemePrefix = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*://`)

// ParseQuery parses a query string into ordered params.
// Accepts a bare query ("a=1&b=2"), one with a leading '?', or a full URL.
// A '?' inside a bare query is part of a value.
// Examples:
//   - "name=bug" → [{name bug}]
//   - "?a=1&a=2" → [{a 1} {a 2}]
//   - "q=why?" → [{q why?}]
//   - "http://host/issues?status=OPEN" → [{status OPEN}]
func ParseQuery(raw string) (models.Query, error) {
	raw = strings.TrimSpace(raw)
	if schemePrefix.MatchString(raw) {
		u, err := url.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedQuery, err)
		}
		raw = u.RawQuery
	} else {
		raw = strings.TrimPrefix(raw, "?")
		if i := strings.Index(raw, "#"); i >= 0 {
			raw = raw[:i]
		}
	}

	q := models.Query{}
	if raw == "" {
		return q, nil
	}

	for _, part := range strings.FieldsFunc(raw, func(r rune) bool { return r == '&' || r == ';' }) {
		key, value, _ := strings.Cut(part, "=")
		k, err := url.QueryUnescape(key)
		if err != nil {
			return nil, fmt.Errorf("%w: key %q: %v", ErrMalformedQuery, key, err)
		}
		v, err := url.QueryUnescape(value)
		if err != nil {
			return nil, fmt.Errorf("%w: value of %q: %v", ErrMalformedQuery, k, err)
		}
		if k == "" {
			continue
		}
		q = append(q, models.Param{Key: k, Value: v})
	}
	return q, nil
}
