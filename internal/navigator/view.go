// Package navigator implements the filter bar: one chip view per filter, a
// details popover per chip and the bar that coordinates them.
package navigator

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rebeliceyang/lazyfilter/internal/models"
)

// Template identifiers for chips and popovers
const (
	TemplateBaseFilter         = "baseFilter"
	TemplateRangeFilter        = "rangeFilter"
	TemplateMoreCriteriaFilter = "moreCriteriaFilter"
	TemplateFavoriteFilter     = "favoriteFilter"
	TemplateDetailsFilter      = "detailsFilter"
	TemplateRangeDetails       = "rangeDetails"
	TemplateListDetails        = "listDetails"
)

// View is the chip of a single filter
type View interface {
	Model() *models.Filter
	Details() DetailsView
	Template() string

	Render()
	RenderBase()
	RenderValue() string
	IsDefaultValue() bool

	RestoreFromQuery(q models.Query)
	Restore(value any)

	ToggleDetails()
	ShowDetails()
	HideDetails()
	Active() bool
	Disable()

	SerializeData() ChipData
	Chip() ChipData
	Inputs() []models.Param
	Close()
}

// DetailsView is the popover editor of a single filter
type DetailsView interface {
	Template() string
	Render()
	OnShow()
	OnHide()
	Active() bool
	SetActive(active bool)
	Update(msg tea.Msg) tea.Cmd
	SerializeData() DetailsData
}

// ChipData is what a chip template renders
type ChipData struct {
	ID           string
	Name         string
	Value        string
	DefaultValue bool
	Enabled      bool
	Optional     bool
	Active       bool
	Kind         models.Kind
	Inputs       []models.Param
}

// DetailsItem is one selectable row of a list popover
type DetailsItem struct {
	ID    string
	Label string
	Hint  string
}

// DetailsData is what a popover template renders
type DetailsData struct {
	Title  string
	Inputs []string // rendered text inputs
	Focus  int
	Items  []DetailsItem
	Cursor int
	Empty  string
}

// Host is the bar seen from a view
type Host interface {
	HideDetails()
	setShowed(v View)
	EnableFilter(id string) bool
}

// FavoriteLister supplies the favorites shown by a favorite chip
type FavoriteLister interface {
	List() []models.Favorite
}

// ViewOptions are passed to every view constructor
type ViewOptions struct {
	Host      Host
	Favorites FavoriteLister
}
