package navigator

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rebeliceyang/lazyfilter/internal/models"
)

func rangeFilter() *models.Filter {
	return models.NewFilter(models.FilterOptions{
		Name:         "Lines",
		Kind:         models.KindRange,
		PropertyFrom: "linesFrom",
		PropertyTo:   "linesTo",
		Enabled:      true,
	})
}

func typeText(d DetailsView, s string) {
	d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestRangeView_IsDefaultValue(t *testing.T) {
	f := rangeFilter()
	v := NewRangeView(f, ViewOptions{})

	assert.True(t, v.IsDefaultValue())
	assert.Equal(t, "Any", v.RenderValue())

	f.SetValue(models.RangeValue{"linesTo": "5"})
	assert.False(t, v.IsDefaultValue())
	assert.Equal(t, "5", v.RenderValue())

	f.SetValue(models.RangeValue{"linesFrom": "1", "linesTo": "5"})
	assert.Equal(t, "1 — 5", v.RenderValue())

	f.SetValue(models.RangeValue{})
	assert.True(t, v.IsDefaultValue())
}

func TestDateRangeView_UnsetLabel(t *testing.T) {
	f := dateRange("createdAfter", "createdBefore")
	v := NewDateRangeView(f, ViewOptions{})

	assert.Equal(t, "Anytime", v.RenderValue())
	assert.Equal(t, TemplateRangeFilter, v.Template())

	d, ok := v.Details().(*rangeDetails)
	require.True(t, ok)
	assert.Equal(t, "1970-01-01", d.inputs[0].Placeholder)
	assert.Equal(t, "1970-01-01", d.inputs[1].Placeholder)
}

func TestRangeView_Inputs(t *testing.T) {
	f := rangeFilter()
	v := NewRangeView(f, ViewOptions{})
	f.SetValue(models.RangeValue{"linesFrom": "3"})

	assert.Equal(t, []models.Param{{Key: "linesFrom", Value: "3"}, {Key: "linesTo", Value: ""}}, v.Inputs())
}

func TestRangeView_RestoreFromQuery(t *testing.T) {
	f := rangeFilter()
	f.SetEnabled(false)
	v := NewRangeView(f, ViewOptions{})

	v.RestoreFromQuery(models.Query{{Key: "linesTo", Value: "9"}, {Key: "other", Value: "x"}})

	assert.Equal(t, models.RangeValue{"linesTo": "9"}, f.Value())
	assert.True(t, f.Enabled())

	d := v.Details().(*rangeDetails)
	assert.Equal(t, "", d.inputs[0].Value())
	assert.Equal(t, "9", d.inputs[1].Value())
}

func TestRangeView_RestoreFromQueryMissingParams(t *testing.T) {
	f := rangeFilter()
	f.SetEnabled(false)
	v := NewRangeView(f, ViewOptions{})

	v.RestoreFromQuery(models.Query{{Key: "name", Value: "bug"}})
	v.RestoreFromQuery(models.Query{{Key: "linesFrom", Value: ""}})
	v.RestoreFromQuery(nil)

	assert.Nil(t, f.Value())
	assert.False(t, f.Enabled())
}

func TestRangeView_RoundTrip(t *testing.T) {
	f := rangeFilter()
	v := NewRangeView(f, ViewOptions{})
	want := models.RangeValue{"linesFrom": "1", "linesTo": "5"}

	f.SetValue(want)
	v.Render()
	v.RestoreFromQuery(models.Query{{Key: "linesFrom", Value: "1"}, {Key: "linesTo", Value: "5"}})

	assert.Equal(t, want, f.Value())
}

func TestRangeView_RestoreList(t *testing.T) {
	f := rangeFilter()
	v := NewRangeView(f, ViewOptions{})

	v.Restore([]string{"", "7"})
	assert.Equal(t, models.RangeValue{"linesTo": "7"}, f.Value())

	v.Restore(42)
	assert.Equal(t, models.RangeValue{"linesTo": "7"}, f.Value())
}

func TestRangeDetails_EditWritesValue(t *testing.T) {
	f := rangeFilter()
	v := NewRangeView(f, ViewOptions{})
	v.ShowDetails()

	d := v.Details()
	typeText(d, "10")
	d.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, models.RangeValue{"linesFrom": "10"}, f.Value())
	assert.Equal(t, "10", v.Chip().Value)

	typeText(d, "20")
	v.HideDetails()
	assert.Equal(t, models.RangeValue{"linesFrom": "10", "linesTo": "20"}, f.Value())
	assert.Equal(t, "10 — 20", v.Chip().Value)
}

func TestTextDetails_EditWritesValue(t *testing.T) {
	f := text("name", true)
	v := NewTextView(f, ViewOptions{})
	v.ShowDetails()

	typeText(v.Details(), "crash")
	assert.Nil(t, f.Value(), "value is only written on commit")

	v.Details().Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "crash", f.Value())
	assert.Equal(t, "crash", v.Chip().Value)
	assert.True(t, v.IsDefaultValue())
}

func TestTextDetails_StaleInputDoesNotOverwriteRestore(t *testing.T) {
	f := text("name", true)
	v := NewTextView(f, ViewOptions{})
	v.ShowDetails()
	v.HideDetails()

	v.RestoreFromQuery(models.Query{{Key: "name", Value: "bug"}})
	v.HideDetails()

	assert.Equal(t, "bug", f.Value())
}

func TestTextView_RenderValueUnset(t *testing.T) {
	f := text("name", true)
	v := NewTextView(f, ViewOptions{})

	assert.Equal(t, "unset", v.RenderValue())
	f.SetValue("")
	assert.Equal(t, "unset", v.RenderValue())
}
