package navigator

import "github.com/rebeliceyang/lazyfilter/internal/models"

// Constructor builds the view of a filter
type Constructor func(f *models.Filter, opts ViewOptions) View

// Registry maps filter kinds to view constructors
type Registry map[models.Kind]Constructor

// DefaultRegistry returns a fresh registry holding the built-in views
func DefaultRegistry() Registry {
	return Registry{
		models.KindText:         NewTextView,
		models.KindRange:        NewRangeView,
		models.KindDateRange:    NewDateRangeView,
		models.KindMoreCriteria: NewMoreCriteriaView,
		models.KindFavorite:     NewFavoriteView,
	}
}

// Constructor returns the constructor for kind, falling back to the text view
func (r Registry) Constructor(kind models.Kind) Constructor {
	if c, ok := r[kind]; ok && c != nil {
		return c
	}
	if kind == models.KindMoreCriteria {
		return NewMoreCriteriaView
	}
	return NewTextView
}
