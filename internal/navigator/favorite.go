package navigator

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rebeliceyang/lazyfilter/internal/models"
)

// ApplyFavoriteMsg is sent when a saved favorite is picked from the favorite chip
type ApplyFavoriteMsg struct {
	Favorite models.Favorite
}

// NewFavoriteView creates the view listing saved favorites
func NewFavoriteView(f *models.Filter, opts ViewOptions) View {
	details := newListDetails(f, "No favorites saved")
	byID := map[string]models.Favorite{}

	details.items = func() []DetailsItem {
		if opts.Favorites == nil {
			return nil
		}
		var items []DetailsItem
		for _, fav := range opts.Favorites.List() {
			byID[fav.ID] = fav
			items = append(items, DetailsItem{ID: fav.ID, Label: fav.Name, Hint: fav.Query})
		}
		return items
	}
	details.choose = func(item DetailsItem) tea.Cmd {
		fav, ok := byID[item.ID]
		if !ok {
			return nil
		}
		if opts.Host != nil {
			opts.Host.HideDetails()
		}
		return func() tea.Msg {
			return ApplyFavoriteMsg{Favorite: fav}
		}
	}
	return newFilterView(f, favoriteVariant{}, details, opts)
}

type favoriteVariant struct{}

func (favoriteVariant) template() string                           { return TemplateFavoriteFilter }
func (favoriteVariant) renderValue(*models.Filter) string          { return "" }
func (favoriteVariant) isDefaultValue(*models.Filter) bool         { return true }
func (favoriteVariant) restoreFromQuery(*FilterView, models.Query) {}
func (favoriteVariant) restore(*FilterView, any)                   {}
func (favoriteVariant) inputs(*models.Filter) []models.Param       { return nil }
