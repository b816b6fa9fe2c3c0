// Package templates holds the named renderers for filter chips and their
// popovers. Views only name a template; the host decides how it looks.
package templates

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rebeliceyang/lazyfilter/internal/navigator"
	"github.com/rebeliceyang/lazyfilter/internal/ui/theme"
)

// ErrUnknownTemplate is returned when no renderer is registered under an id
var ErrUnknownTemplate = errors.New("unknown template")

// ChipFunc renders a chip
type ChipFunc func(data navigator.ChipData) string

// DetailsFunc renders a popover
type DetailsFunc func(data navigator.DetailsData) string

// Set is a collection of chip and popover renderers keyed by template id
type Set struct {
	chips   map[string]ChipFunc
	details map[string]DetailsFunc
}

// New creates an empty set
func New() *Set {
	return &Set{
		chips:   make(map[string]ChipFunc),
		details: make(map[string]DetailsFunc),
	}
}

// RegisterChip registers fn as the chip renderer for id
func (s *Set) RegisterChip(id string, fn ChipFunc) {
	s.chips[id] = fn
}

// RegisterDetails registers fn as the popover renderer for id
func (s *Set) RegisterDetails(id string, fn DetailsFunc) {
	s.details[id] = fn
}

// RenderChip renders data with the chip template id
func (s *Set) RenderChip(id string, data navigator.ChipData) (string, error) {
	fn, ok := s.chips[id]
	if !ok {
		return "", fmt.Errorf("%w: chip %q", ErrUnknownTemplate, id)
	}
	return fn(data), nil
}

// RenderDetails renders data with the popover template id
func (s *Set) RenderDetails(id string, data navigator.DetailsData) (string, error) {
	fn, ok := s.details[id]
	if !ok {
		return "", fmt.Errorf("%w: details %q", ErrUnknownTemplate, id)
	}
	return fn(data), nil
}

// Default returns the built-in templates styled with th
func Default(th theme.Theme) *Set {
	s := New()
	r := renderer{th: th}

	s.RegisterChip(navigator.TemplateBaseFilter, r.baseChip)
	s.RegisterChip(navigator.TemplateRangeFilter, r.rangeChip)
	s.RegisterChip(navigator.TemplateMoreCriteriaFilter, r.moreCriteriaChip)
	s.RegisterChip(navigator.TemplateFavoriteFilter, r.favoriteChip)

	s.RegisterDetails(navigator.TemplateDetailsFilter, r.textDetails)
	s.RegisterDetails(navigator.TemplateRangeDetails, r.rangeDetails)
	s.RegisterDetails(navigator.TemplateListDetails, r.listDetails)
	return s
}

const popoverWidth = 40

type renderer struct {
	th theme.Theme
}

func (r renderer) chipStyle(data navigator.ChipData) lipgloss.Style {
	style := lipgloss.NewStyle().
		Foreground(r.th.ChipForeground).
		Background(r.th.ChipBackground).
		Padding(0, 1)
	if data.Active {
		style = style.Background(r.th.ChipActiveBackground).Bold(true)
	}
	return style
}

func (r renderer) namedChip(data navigator.ChipData, muted bool) string {
	style := r.chipStyle(data)
	valueColor := r.th.ChipValue
	if muted {
		valueColor = r.th.ChipDefaultValue
	}
	name := style.Bold(true).UnsetPadding().Render(data.Name + ":")
	value := style.Foreground(valueColor).UnsetPadding().Render(" " + data.Value)

	return style.Render(name + value)
}

func (r renderer) baseChip(data navigator.ChipData) string {
	return r.namedChip(data, data.Value == "unset")
}

func (r renderer) rangeChip(data navigator.ChipData) string {
	return r.namedChip(data, data.DefaultValue)
}

func (r renderer) moreCriteriaChip(data navigator.ChipData) string {
	style := r.chipStyle(data).Foreground(r.th.MoreCriteria)
	return style.Render(fmt.Sprintf("+ %s (%s)", data.Name, data.Value))
}

func (r renderer) favoriteChip(data navigator.ChipData) string {
	style := r.chipStyle(data).Foreground(r.th.Favorite)
	return style.Render("★ " + data.Name)
}

func (r renderer) box(title string, body []string) string {
	titleStyle := lipgloss.NewStyle().
		Foreground(r.th.PopoverTitle).
		Bold(true)

	content := titleStyle.Render(title)
	if len(body) > 0 {
		content += "\n" + strings.Join(body, "\n")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(r.th.PopoverBorder).
		Padding(0, 1).
		Width(popoverWidth).
		Render(content)
}

func (r renderer) hint(s string) string {
	return lipgloss.NewStyle().Foreground(r.th.Muted).Italic(true).Render(s)
}

func (r renderer) textDetails(data navigator.DetailsData) string {
	body := make([]string, 0, len(data.Inputs)+1)
	body = append(body, data.Inputs...)
	body = append(body, r.hint("Enter: apply  Esc: close"))
	return r.box(data.Title, body)
}

func (r renderer) rangeDetails(data navigator.DetailsData) string {
	labels := []string{"from", "to"}
	var body []string
	for i, in := range data.Inputs {
		label := "     "
		if i < len(labels) {
			label = fmt.Sprintf("%-5s", labels[i])
		}
		style := lipgloss.NewStyle().Foreground(r.th.Muted)
		if i == data.Focus {
			style = style.Foreground(r.th.Cursor).Bold(true)
		}
		body = append(body, style.Render(label)+" "+in)
	}
	body = append(body, r.hint("Tab: switch  Enter: apply  Esc: close"))
	return r.box(data.Title, body)
}

func (r renderer) listDetails(data navigator.DetailsData) string {
	if len(data.Items) == 0 {
		return r.box(data.Title, []string{r.hint(data.Empty)})
	}

	body := make([]string, 0, len(data.Items)+1)
	for i, item := range data.Items {
		line := item.Label
		if item.Hint != "" {
			line += " " + r.hint(item.Hint)
		}
		style := lipgloss.NewStyle().Padding(0, 1)
		if i == data.Cursor {
			style = style.Background(r.th.Selection).Foreground(r.th.Foreground)
		}
		body = append(body, style.Render(line))
	}
	body = append(body, r.hint("↑↓: navigate  Enter: choose  Esc: close"))
	return r.box(data.Title, body)
}
