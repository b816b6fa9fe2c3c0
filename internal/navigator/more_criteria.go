package navigator

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rebeliceyang/lazyfilter/internal/models"
)

// MoreCriteriaID identifies the synthetic aggregate filter
const MoreCriteriaID = "more-criteria"

// NewMoreCriteriaView creates the view of the aggregate of disabled filters
func NewMoreCriteriaView(f *models.Filter, opts ViewOptions) View {
	details := newListDetails(f, "No more criteria")
	details.items = func() []DetailsItem {
		var items []DetailsItem
		for _, hidden := range f.Filters() {
			items = append(items, DetailsItem{ID: hidden.ID, Label: displayName(hidden)})
		}
		return items
	}
	details.choose = func(item DetailsItem) tea.Cmd {
		if opts.Host == nil {
			return nil
		}
		opts.Host.HideDetails()
		opts.Host.EnableFilter(item.ID)
		return nil
	}
	return newFilterView(f, moreCriteriaVariant{}, details, opts)
}

type moreCriteriaVariant struct{}

func (moreCriteriaVariant) template() string { return TemplateMoreCriteriaFilter }

func (moreCriteriaVariant) renderValue(f *models.Filter) string {
	return fmt.Sprintf("%d", len(f.Filters()))
}

func (moreCriteriaVariant) isDefaultValue(*models.Filter) bool { return true }

// The aggregate has no value of its own to restore
func (moreCriteriaVariant) restoreFromQuery(*FilterView, models.Query) {}
func (moreCriteriaVariant) restore(*FilterView, any)                   {}
func (moreCriteriaVariant) inputs(*models.Filter) []models.Param       { return nil }

func displayName(f *models.Filter) string {
	if f.Name != "" {
		return f.Name
	}
	return f.ID
}

// listDetails is a popover with a selectable list
type listDetails struct {
	model  *models.Filter
	empty  string
	items  func() []DetailsItem
	choose func(item DetailsItem) tea.Cmd

	cached []DetailsItem
	cursor int
	active bool
}

func newListDetails(f *models.Filter, empty string) *listDetails {
	return &listDetails{
		model: f,
		empty: empty,
		items: func() []DetailsItem { return nil },
	}
}

func (d *listDetails) Template() string      { return TemplateListDetails }
func (d *listDetails) Active() bool          { return d.active }
func (d *listDetails) SetActive(active bool) { d.active = active }

func (d *listDetails) Render() {
	d.cached = d.items()
	if d.cursor >= len(d.cached) {
		d.cursor = len(d.cached) - 1
	}
	if d.cursor < 0 {
		d.cursor = 0
	}
}

func (d *listDetails) OnShow() {
	d.Render()
}

func (d *listDetails) OnHide() {}

func (d *listDetails) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch key.String() {
	case "up", "k":
		if d.cursor > 0 {
			d.cursor--
		}
	case "down", "j":
		if d.cursor < len(d.cached)-1 {
			d.cursor++
		}
	case "enter", " ":
		if d.cursor < len(d.cached) && d.choose != nil {
			return d.choose(d.cached[d.cursor])
		}
	}
	return nil
}

func (d *listDetails) SerializeData() DetailsData {
	return DetailsData{
		Title:  d.model.Name,
		Items:  d.cached,
		Cursor: d.cursor,
		Empty:  d.empty,
	}
}
