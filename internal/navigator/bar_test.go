package navigator

import (
	"math/rand"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rebeliceyang/lazyfilter/internal/models"
)

func newTestBar(t *testing.T, filters ...*models.Filter) *Bar {
	t.Helper()
	b := NewBar(models.NewCollection(filters...), DefaultRegistry())
	t.Cleanup(b.Close)
	return b
}

func text(property string, enabled bool) *models.Filter {
	return models.NewFilter(models.FilterOptions{Property: property, Name: property, Enabled: enabled, Optional: true})
}

func dateRange(from, to string) *models.Filter {
	return models.NewFilter(models.FilterOptions{
		Name:         "Created",
		Kind:         models.KindDateRange,
		PropertyFrom: from,
		PropertyTo:   to,
		Enabled:      true,
	})
}

func TestNewBar_AggregatesDisabledFilters(t *testing.T) {
	name := text("name", true)
	status := text("status", false)
	b := newTestBar(t, name, status)

	more := b.MoreCriteria()
	assert.Equal(t, models.KindMoreCriteria, more.Kind)
	assert.True(t, more.Enabled())
	assert.False(t, more.Optional())
	assert.Equal(t, []*models.Filter{status}, more.Filters())

	require.Equal(t, 3, b.Collection().Len())
	assert.Same(t, more, b.Collection().All()[2])
}

func TestNewBar_NoDisabledFilters(t *testing.T) {
	b := newTestBar(t, text("name", true))

	assert.False(t, b.MoreCriteria().Enabled())
	assert.Empty(t, b.MoreCriteria().Filters())
}

func TestDisable_UpdatesAggregate(t *testing.T) {
	name := text("name", true)
	status := text("status", true)
	b := newTestBar(t, name, status)

	b.View("status").Disable()
	assert.True(t, b.MoreCriteria().Enabled())
	assert.Equal(t, []*models.Filter{status}, b.MoreCriteria().Filters())

	require.True(t, b.EnableFilter("status"))
	assert.False(t, b.MoreCriteria().Enabled())
	assert.Empty(t, b.MoreCriteria().Filters())
}

func TestAggregateInvariant_RandomToggles(t *testing.T) {
	filters := []*models.Filter{
		text("a", true), text("b", false), text("c", true), dateRange("from", "to"),
	}
	b := newTestBar(t, filters...)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		f := filters[rng.Intn(len(filters))]
		if rng.Intn(2) == 0 {
			b.ViewFor(f).Disable()
		} else {
			b.EnableFilter(f.ID)
		}

		var disabled []*models.Filter
		for _, f := range filters {
			if !f.Enabled() {
				disabled = append(disabled, f)
			}
		}
		assert.Equal(t, len(disabled) > 0, b.MoreCriteria().Enabled(), "step %d", i)
		assert.ElementsMatch(t, disabled, b.MoreCriteria().Filters(), "step %d", i)
	}
}

func TestAggregateRerendersOnFiltersChange(t *testing.T) {
	b := newTestBar(t, text("name", true), text("status", true))
	mc := b.ViewFor(b.MoreCriteria())

	assert.Equal(t, "0", mc.Chip().Value)
	b.View("name").Disable()
	assert.Equal(t, "1", mc.Chip().Value)
}

func TestSingleOpenPopover(t *testing.T) {
	filters := []*models.Filter{text("a", true), text("b", true), dateRange("from", "to")}
	b := newTestBar(t, filters...)
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 100; i++ {
		views := b.Views()
		v := views[rng.Intn(len(views))]
		switch rng.Intn(3) {
		case 0, 1:
			v.ToggleDetails()
		default:
			b.HideDetails()
		}

		open := 0
		for _, v := range b.Views() {
			if v.Active() {
				open++
				assert.True(t, v.Details().Active())
			}
		}
		assert.LessOrEqual(t, open, 1, "step %d", i)
		assert.Equal(t, open == 1, b.DetailsShown())
	}
}

func TestShowDetails_ClosesPreviousFirst(t *testing.T) {
	b := newTestBar(t, text("a", true), text("b", true))
	a, bv := b.View("a"), b.View("b")

	a.ToggleDetails()
	require.True(t, a.Active())

	bv.ToggleDetails()
	assert.False(t, a.Active())
	assert.False(t, a.Details().Active())
	assert.True(t, bv.Active())
	assert.Same(t, bv, b.ShowedView())

	bv.ToggleDetails()
	assert.False(t, b.DetailsShown())
}

func TestDisable_DoesNotOpenDetails(t *testing.T) {
	b := newTestBar(t, text("a", true))
	v := b.View("a")

	v.Disable()
	assert.False(t, v.Active())
	assert.False(t, v.Model().Enabled())
	assert.False(t, v.Chip().Enabled)
}

func TestEnableFilter_MovesChipBeforeMoreCriteria(t *testing.T) {
	b := newTestBar(t, text("a", false), text("b", true), text("c", true))

	require.True(t, b.EnableFilter("a"))

	var ids []string
	for _, v := range b.Views() {
		ids = append(ids, v.Model().ID)
	}
	assert.Equal(t, []string{"b", "c", "a", MoreCriteriaID}, ids)
	assert.False(t, b.EnableFilter("missing"))
}

func TestMoreCriteriaDetails_EnablesChosenFilter(t *testing.T) {
	b := newTestBar(t, text("a", true), text("b", false), text("c", false))
	mc := b.ViewFor(b.MoreCriteria())

	mc.ToggleDetails()
	data := mc.Details().SerializeData()
	require.Len(t, data.Items, 2)
	assert.Equal(t, "b", data.Items[0].ID)

	mc.Details().Update(tea.KeyMsg{Type: tea.KeyDown})
	mc.Details().Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, b.View("c").Model().Enabled())
	assert.False(t, mc.Active())
	assert.Equal(t, []*models.Filter{b.View("b").Model()}, b.MoreCriteria().Filters())
}

func TestRestoreFromQuery_TextFilter(t *testing.T) {
	name := text("name", true)
	status := text("status", true)
	status.SetValue("OPEN")
	b := newTestBar(t, name, status)

	b.RestoreFromQuery(models.Query{{Key: "name", Value: "bug"}})

	assert.Equal(t, "bug", name.Value())
	assert.Equal(t, "OPEN", status.Value())
	assert.Equal(t, "bug", b.View("name").Chip().Value)
}

func TestRestoreFromQuery_EmptyValueIgnored(t *testing.T) {
	name := text("name", true)
	name.SetValue("keep")
	b := newTestBar(t, name)

	b.RestoreFromQuery(models.Query{{Key: "name", Value: ""}})
	assert.Equal(t, "keep", name.Value())
}

func TestQuery_RoundTrip(t *testing.T) {
	name := text("name", true)
	created := dateRange("createdAfter", "createdBefore")
	b := newTestBar(t, name, created)

	name.SetValue("bug")
	created.SetValue(models.RangeValue{"createdAfter": "1", "createdBefore": "5"})
	query := b.Query()
	assert.Equal(t, "name=bug&createdAfter=1&createdBefore=5", query)

	name2 := text("name", true)
	created2 := dateRange("createdAfter", "createdBefore")
	b2 := newTestBar(t, name2, created2)
	b2.RestoreFromQuery(b.Params())

	assert.Equal(t, name.Value(), name2.Value())
	assert.Equal(t, created.Value(), created2.Value())
}

type favoriteList []models.Favorite

func (l favoriteList) List() []models.Favorite { return l }

func TestFavoriteChip(t *testing.T) {
	fav := models.NewFilter(models.FilterOptions{ID: "favorites", Name: "Favorites", Kind: models.KindFavorite, Enabled: true})
	favs := favoriteList{{ID: "1", Name: "Open bugs", Query: "status=OPEN"}}
	b := NewBar(models.NewCollection(fav, text("status", true)), DefaultRegistry(), WithFavorites(favs))
	t.Cleanup(b.Close)

	assert.True(t, b.HasFavorites())

	v := b.View("favorites")
	v.ToggleDetails()
	cmd := v.Details().Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(ApplyFavoriteMsg)
	require.True(t, ok)
	assert.Equal(t, "status=OPEN", msg.Favorite.Query)
	assert.False(t, b.DetailsShown())
	assert.Equal(t, "", b.Query())
}

func TestRegistry_FallsBackToTextView(t *testing.T) {
	reg := Registry{}
	f := models.NewFilter(models.FilterOptions{Property: "x", Kind: "custom", Enabled: true})
	b := newTestBarWithRegistry(t, reg, f)

	assert.Equal(t, TemplateBaseFilter, b.View("x").Template())
	assert.Equal(t, TemplateMoreCriteriaFilter, b.ViewFor(b.MoreCriteria()).Template())
}

func newTestBarWithRegistry(t *testing.T, reg Registry, filters ...*models.Filter) *Bar {
	t.Helper()
	b := NewBar(models.NewCollection(filters...), reg)
	t.Cleanup(b.Close)
	return b
}

func TestActiveCount_SkipsSyntheticChips(t *testing.T) {
	fav := models.NewFilter(models.FilterOptions{ID: "favorites", Name: "Favorites", Kind: models.KindFavorite, Enabled: true})
	b := newTestBar(t, fav, text("name", true), text("status", false), dateRange("createdAfter", "createdBefore"))

	// favorites, name, created and the aggregate are visible
	require.Len(t, b.VisibleViews(), 4)
	assert.Equal(t, 2, b.ActiveCount())

	b.View("name").Disable()
	assert.Equal(t, 1, b.ActiveCount())
}
