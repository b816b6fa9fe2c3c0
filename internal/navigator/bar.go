package navigator

import (
	"log/slog"

	"github.com/rebeliceyang/lazyfilter/internal/filter"
	"github.com/rebeliceyang/lazyfilter/internal/models"
)

// Bar owns the filter collection and one view per filter. At most one
// popover is open at any time.
type Bar struct {
	collection   *models.Collection
	registry     Registry
	builder      *filter.Builder
	favorites    FavoriteLister
	moreCriteria *models.Filter

	views  map[*models.Filter]View
	order  []View
	showed View
	unsubs []func()
}

// Option configures a Bar
type Option func(*Bar)

// WithFavorites supplies the favorites listed by favorite chips
func WithFavorites(l FavoriteLister) Option {
	return func(b *Bar) {
		b.favorites = l
	}
}

// NewBar builds the views of every filter in c and appends the synthetic
// more-criteria filter aggregating the disabled ones.
func NewBar(c *models.Collection, registry Registry, opts ...Option) *Bar {
	if registry == nil {
		registry = DefaultRegistry()
	}
	b := &Bar{
		collection: c,
		registry:   registry,
		builder:    filter.NewBuilder(),
		views:      make(map[*models.Filter]View),
	}
	for _, opt := range opts {
		opt(b)
	}

	disabled := b.disabledFilters()
	b.moreCriteria = models.NewFilter(models.FilterOptions{
		ID:       MoreCriteriaID,
		Name:     "More criteria",
		Kind:     models.KindMoreCriteria,
		Enabled:  len(disabled) > 0,
		Optional: false,
		Filters:  disabled,
	})
	c.Add(b.moreCriteria)

	viewOpts := ViewOptions{Host: b, Favorites: b.favorites}
	c.Each(func(f *models.Filter) {
		v := registry.Constructor(f.Kind)(f, viewOpts)
		b.views[f] = v
		b.order = append(b.order, v)
	})

	b.unsubs = append(b.unsubs, c.OnChange(models.AttrEnabled, func(*models.Filter) {
		b.changeEnabled()
	}))

	b.Render()
	return b
}

// Render renders every view
func (b *Bar) Render() {
	for _, v := range b.order {
		v.Render()
	}
}

// Collection returns the filters owned by the bar, aggregate included
func (b *Bar) Collection() *models.Collection {
	return b.collection
}

// MoreCriteria returns the synthetic aggregate filter
func (b *Bar) MoreCriteria() *models.Filter {
	return b.moreCriteria
}

// Views returns every view in display order
func (b *Bar) Views() []View {
	out := make([]View, len(b.order))
	copy(out, b.order)
	return out
}

// VisibleViews returns the views of enabled filters in display order
func (b *Bar) VisibleViews() []View {
	var out []View
	for _, v := range b.order {
		if v.Model().Enabled() {
			out = append(out, v)
		}
	}
	return out
}

// ActiveCount returns the number of enabled chips that contribute to the query
func (b *Bar) ActiveCount() int {
	n := 0
	for _, v := range b.order {
		if f := v.Model(); f.Enabled() && filter.Contributes(f.Kind) {
			n++
		}
	}
	return n
}

// ViewFor returns the view attached to f
func (b *Bar) ViewFor(f *models.Filter) View {
	return b.views[f]
}

// View returns the view of the filter with the given ID
func (b *Bar) View(id string) View {
	f := b.collection.Get(id)
	if f == nil {
		return nil
	}
	return b.views[f]
}

// HasFavorites reports whether the bar holds a favorite chip
func (b *Bar) HasFavorites() bool {
	return len(b.collection.Where(func(f *models.Filter) bool {
		return f.Kind == models.KindFavorite
	})) > 0
}

// ShowedView returns the view whose popover was opened last, or nil
func (b *Bar) ShowedView() View {
	return b.showed
}

// DetailsShown reports whether a popover is currently open
func (b *Bar) DetailsShown() bool {
	return b.showed != nil && b.showed.Active()
}

// HideDetails closes the open popover, if any
func (b *Bar) HideDetails() {
	if b.showed != nil {
		b.showed.HideDetails()
	}
}

func (b *Bar) setShowed(v View) {
	b.showed = v
}

// EnableFilter moves the chip of the filter id back into the visible row,
// just before the more-criteria chip, and enables the filter.
func (b *Bar) EnableFilter(id string) bool {
	f := b.collection.Get(id)
	if f == nil {
		slog.Debug("enable unknown filter", "filter", id)
		return false
	}
	v := b.views[f]

	b.order = removeView(b.order, v)
	at := len(b.order)
	if mc := b.views[b.moreCriteria]; mc != nil && v != mc {
		for i, other := range b.order {
			if other == mc {
				at = i
				break
			}
		}
	}
	b.order = append(b.order[:at], append([]View{v}, b.order[at:]...)...)

	f.SetEnabled(true)
	return true
}

// RestoreFromQuery asks every view to pull its value from q
func (b *Bar) RestoreFromQuery(q models.Query) {
	b.collection.Each(func(f *models.Filter) {
		if v := b.views[f]; v != nil {
			v.RestoreFromQuery(q)
		}
	})
}

// Params returns the query parameters expressed by the enabled chips
func (b *Bar) Params() models.Query {
	return b.builder.BuildParams(b.inputs())
}

// Query returns the query string expressed by the enabled chips
func (b *Bar) Query() string {
	return b.builder.BuildQuery(b.inputs())
}

func (b *Bar) inputs() []filter.Input {
	inputs := make([]filter.Input, 0, len(b.order))
	for _, v := range b.order {
		inputs = append(inputs, v)
	}
	return inputs
}

// changeEnabled recomputes the aggregate after any enabled flag changed
func (b *Bar) changeEnabled() {
	disabled := b.disabledFilters()

	b.moreCriteria.SetEnabledSilently(len(disabled) > 0)
	b.moreCriteria.SetFilters(disabled)
}

func (b *Bar) disabledFilters() []*models.Filter {
	return b.collection.Where(func(f *models.Filter) bool {
		return !f.Enabled() && f.Kind != models.KindMoreCriteria
	})
}

// Close detaches the bar and its views from the filters
func (b *Bar) Close() {
	for _, unsub := range b.unsubs {
		unsub()
	}
	b.unsubs = nil
	for _, v := range b.order {
		v.Close()
	}
}

func removeView(views []View, v View) []View {
	out := views[:0:0]
	for _, other := range views {
		if other != v {
			out = append(out, other)
		}
	}
	return out
}
