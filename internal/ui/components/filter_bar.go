package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/rebeliceyang/lazyfilter/internal/navigator"
	"github.com/rebeliceyang/lazyfilter/internal/ui/templates"
	"github.com/rebeliceyang/lazyfilter/internal/ui/theme"
)

// Zone IDs for mouse hit-testing
const (
	ZoneChipPrefix    = "filter-chip-"
	ZoneDisablePrefix = "filter-disable-"
	ZonePopover       = "filter-popover"
)

// FilterBarKeyMap holds the key bindings of the filter bar
type FilterBarKeyMap struct {
	Left         key.Binding
	Right        key.Binding
	Toggle       key.Binding
	Disable      key.Binding
	Hide         key.Binding
	MoreCriteria key.Binding
}

// DefaultFilterBarKeyMap returns the default filter bar bindings
func DefaultFilterBarKeyMap() FilterBarKeyMap {
	return FilterBarKeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("←/h", "previous filter"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("→/l", "next filter"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "open/close details"),
		),
		Disable: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "remove filter"),
		),
		Hide: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close details"),
		),
		MoreCriteria: key.NewBinding(
			key.WithKeys("m", "+"),
			key.WithHelp("m", "more criteria"),
		),
	}
}

// Bindings lists the bindings in display order
func (k FilterBarKeyMap) Bindings() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Toggle, k.Disable, k.Hide, k.MoreCriteria}
}

// FilterBar renders a navigator.Bar as a row of chips with one popover
type FilterBar struct {
	Width int
	Theme theme.Theme
	Keys  FilterBarKeyMap

	bar       *navigator.Bar
	templates *templates.Set
	cursor    int
}

// NewFilterBar creates a filter bar. It fails with templates.ErrUnknownTemplate
// when a view names a template missing from set.
func NewFilterBar(bar *navigator.Bar, set *templates.Set, th theme.Theme) (*FilterBar, error) {
	fb := &FilterBar{
		Width:     80,
		Theme:     th,
		Keys:      DefaultFilterBarKeyMap(),
		bar:       bar,
		templates: set,
	}
	if err := fb.checkTemplates(); err != nil {
		return nil, err
	}
	return fb, nil
}

func (fb *FilterBar) checkTemplates() error {
	for _, v := range fb.bar.Views() {
		if _, err := fb.templates.RenderChip(v.Template(), v.Chip()); err != nil {
			return fmt.Errorf("filter %q: %w", v.Model().ID, err)
		}
		d := v.Details()
		if _, err := fb.templates.RenderDetails(d.Template(), d.SerializeData()); err != nil {
			return fmt.Errorf("filter %q: %w", v.Model().ID, err)
		}
	}
	return nil
}

// SetTemplates swaps the renderers and theme. The previous ones are kept
// when set lacks a template in use.
func (fb *FilterBar) SetTemplates(set *templates.Set, th theme.Theme) error {
	prev := fb.templates
	fb.templates = set
	if err := fb.checkTemplates(); err != nil {
		fb.templates = prev
		return err
	}
	fb.Theme = th
	return nil
}

// Bar returns the underlying navigator bar
func (fb *FilterBar) Bar() *navigator.Bar {
	return fb.bar
}

// Selected returns the chip under the cursor, or nil when the row is empty
func (fb *FilterBar) Selected() navigator.View {
	views := fb.bar.VisibleViews()
	if len(views) == 0 {
		return nil
	}
	fb.clampCursor(len(views))
	return views[fb.cursor]
}

func (fb *FilterBar) clampCursor(n int) {
	if fb.cursor >= n {
		fb.cursor = n - 1
	}
	if fb.cursor < 0 {
		fb.cursor = 0
	}
}

// Select moves the cursor to the chip of the filter id
func (fb *FilterBar) Select(id string) bool {
	for i, v := range fb.bar.VisibleViews() {
		if v.Model().ID == id {
			fb.cursor = i
			return true
		}
	}
	return false
}

// HandleKey processes a key press. It reports whether the bar consumed it.
func (fb *FilterBar) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if fb.bar.DetailsShown() {
		if key.Matches(msg, fb.Keys.Hide) {
			fb.bar.HideDetails()
			return true, nil
		}
		return true, fb.bar.ShowedView().Details().Update(msg)
	}

	views := fb.bar.VisibleViews()
	switch {
	case key.Matches(msg, fb.Keys.Left):
		if fb.cursor > 0 {
			fb.cursor--
		}
	case key.Matches(msg, fb.Keys.Right):
		if fb.cursor < len(views)-1 {
			fb.cursor++
		}
	case key.Matches(msg, fb.Keys.Toggle):
		if v := fb.Selected(); v != nil {
			v.ToggleDetails()
		}
	case key.Matches(msg, fb.Keys.Disable):
		v := fb.Selected()
		if v == nil || !v.Model().Optional() {
			return true, nil
		}
		v.Disable()
		fb.clampCursor(len(fb.bar.VisibleViews()))
	case key.Matches(msg, fb.Keys.MoreCriteria):
		mc := fb.bar.MoreCriteria()
		if !mc.Enabled() {
			return true, nil
		}
		fb.Select(mc.ID)
		fb.bar.ViewFor(mc).ShowDetails()
	default:
		return false, nil
	}
	return true, nil
}

// HandleMouseClick handles clicks on chips, disable marks and outside the
// popover. It reports whether the click changed anything.
func (fb *FilterBar) HandleMouseClick(msg tea.MouseMsg) bool {
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionPress {
		return false
	}

	for i, v := range fb.bar.VisibleViews() {
		id := v.Model().ID
		if v.Model().Optional() && inZone(ZoneDisablePrefix+id, msg) {
			v.Disable()
			fb.clampCursor(len(fb.bar.VisibleViews()))
			return true
		}
		if inZone(ZoneChipPrefix+id, msg) {
			fb.cursor = i
			v.ToggleDetails()
			return true
		}
	}

	if fb.bar.DetailsShown() && !inZone(ZonePopover, msg) {
		fb.bar.HideDetails()
		return true
	}
	return false
}

func inZone(id string, msg tea.MouseMsg) bool {
	z := zone.Get(id)
	return z != nil && z.InBounds(msg)
}

// View renders the chip row and, below it, the open popover
func (fb *FilterBar) View() string {
	views := fb.bar.VisibleViews()
	if len(views) > 0 {
		fb.clampCursor(len(views))
	}

	cursorStyle := lipgloss.NewStyle().Foreground(fb.Theme.Cursor)
	disableStyle := lipgloss.NewStyle().Foreground(fb.Theme.ChipDisable)

	var parts []string
	popoverOffset := -1
	offset := 0
	if fb.bar.HasFavorites() {
		// left border of the row
		offset = 1
	}
	for i, v := range views {
		chip, err := fb.templates.RenderChip(v.Template(), v.Chip())
		if err != nil {
			chip = lipgloss.NewStyle().Foreground(fb.Theme.Error).Render(err.Error())
		}

		indicator := " "
		if i == fb.cursor {
			indicator = "▌"
		}
		piece := cursorStyle.Render(indicator) + zone.Mark(ZoneChipPrefix+v.Model().ID, chip)
		if v.Model().Optional() {
			piece += zone.Mark(ZoneDisablePrefix+v.Model().ID, disableStyle.Render("×"))
		}

		if v.Active() {
			popoverOffset = offset
		}
		offset += lipgloss.Width(piece) + 1
		parts = append(parts, piece)
	}

	rowStyle := lipgloss.NewStyle()
	if fb.bar.HasFavorites() {
		rowStyle = rowStyle.
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(fb.Theme.Favorite)
	}
	row := rowStyle.Render(strings.Join(parts, " "))

	if popoverOffset < 0 || !fb.bar.DetailsShown() {
		return row
	}

	d := fb.bar.ShowedView().Details()
	popover, err := fb.templates.RenderDetails(d.Template(), d.SerializeData())
	if err != nil {
		popover = lipgloss.NewStyle().Foreground(fb.Theme.Error).Render(err.Error())
	}

	if w := lipgloss.Width(popover); fb.Width > 0 && popoverOffset+w > fb.Width {
		popoverOffset = max(fb.Width-w, 0)
	}
	popover = lipgloss.NewStyle().MarginLeft(popoverOffset).Render(zone.Mark(ZonePopover, popover))

	return lipgloss.JoinVertical(lipgloss.Left, row, popover)
}
