package navigator

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rebeliceyang/lazyfilter/internal/models"
)

// variant supplies the kind-specific behavior of a FilterView
type variant interface {
	template() string
	renderValue(f *models.Filter) string
	isDefaultValue(f *models.Filter) bool
	restoreFromQuery(v *FilterView, q models.Query)
	restore(v *FilterView, value any)
	inputs(f *models.Filter) []models.Param
}

// FilterView renders one filter chip and owns its details popover
type FilterView struct {
	model   *models.Filter
	details DetailsView
	host    Host
	kind    variant

	active bool
	chip   ChipData
	unsubs []func()
}

func newFilterView(f *models.Filter, kind variant, details DetailsView, opts ViewOptions) *FilterView {
	v := &FilterView{
		model:   f,
		details: details,
		host:    opts.Host,
		kind:    kind,
	}

	v.unsubs = append(v.unsubs,
		f.OnChange(models.AttrEnabled, func(*models.Filter) { v.focus() }),
		f.OnChange(models.AttrValue, func(*models.Filter) { v.RenderBase() }),
		// more criteria only
		f.OnChange(models.AttrFilters, func(*models.Filter) { v.Render() }),
	)
	return v
}

// NewTextView creates the view of a free text filter
func NewTextView(f *models.Filter, opts ViewOptions) View {
	return newFilterView(f, textVariant{}, newTextDetails(f), opts)
}

func (v *FilterView) Model() *models.Filter { return v.model }
func (v *FilterView) Details() DetailsView  { return v.details }
func (v *FilterView) Template() string      { return v.kind.template() }
func (v *FilterView) Active() bool          { return v.active }
func (v *FilterView) Chip() ChipData        { return v.chip }

// Render refreshes the chip and its popover
func (v *FilterView) Render() {
	v.RenderBase()
	v.details.Render()
}

// RenderBase refreshes the chip only
func (v *FilterView) RenderBase() {
	v.chip = v.SerializeData()
}

func (v *FilterView) focus() {
	v.Render()
}

func (v *FilterView) RenderValue() string {
	return v.kind.renderValue(v.model)
}

func (v *FilterView) IsDefaultValue() bool {
	return v.kind.isDefaultValue(v.model)
}

func (v *FilterView) Inputs() []models.Param {
	return v.kind.inputs(v.model)
}

// RestoreFromQuery pulls this filter's value out of q
func (v *FilterView) RestoreFromQuery(q models.Query) {
	v.kind.restoreFromQuery(v, q)
}

// Restore sets the value restored from a query
func (v *FilterView) Restore(value any) {
	v.kind.restore(v, value)
}

// ToggleDetails opens the popover, or closes it when already open
func (v *FilterView) ToggleDetails() {
	if v.active {
		v.HideDetails()
	} else {
		v.ShowDetails()
	}
}

// ShowDetails closes any other popover of the bar and opens this one
func (v *FilterView) ShowDetails() {
	if v.host != nil {
		v.host.HideDetails()
		v.host.setShowed(v)
	}

	v.active = true
	v.chip.Active = true
	v.details.SetActive(true)
	v.details.OnShow()
}

// HideDetails closes the popover
func (v *FilterView) HideDetails() {
	v.active = false
	v.chip.Active = false
	v.details.SetActive(false)
	v.details.OnHide()
}

// Disable removes the filter from the visible row without opening its popover
func (v *FilterView) Disable() {
	if v.active {
		v.HideDetails()
	}
	v.model.SetEnabled(false)
}

func (v *FilterView) SerializeData() ChipData {
	return ChipData{
		ID:           v.model.ID,
		Name:         v.model.Name,
		Value:        v.RenderValue(),
		DefaultValue: v.IsDefaultValue(),
		Enabled:      v.model.Enabled(),
		Optional:     v.model.Optional(),
		Active:       v.active,
		Kind:         v.model.Kind,
		Inputs:       v.Inputs(),
	}
}

// Close detaches the view from its model
func (v *FilterView) Close() {
	for _, unsub := range v.unsubs {
		unsub()
	}
	v.unsubs = nil
}

type textVariant struct{}

func (textVariant) template() string { return TemplateBaseFilter }

func (textVariant) renderValue(f *models.Filter) string {
	switch val := f.Value().(type) {
	case nil:
		return "unset"
	case string:
		if val == "" {
			return "unset"
		}
		return val
	case []string:
		if len(val) == 0 {
			return "unset"
		}
		return strings.Join(val, ", ")
	default:
		return fmt.Sprint(val)
	}
}

// A plain filter has no notion of a default value
func (textVariant) isDefaultValue(*models.Filter) bool { return true }

func (textVariant) restoreFromQuery(v *FilterView, q models.Query) {
	p, ok := q.Find(v.model.Property)
	if ok && p.Value != "" {
		slog.Debug("restore filter from query", "filter", v.model.ID, "value", p.Value)
		v.Restore(p.Value)
	}
}

func (textVariant) restore(v *FilterView, value any) {
	v.model.SetValue(value)
}

func (textVariant) inputs(f *models.Filter) []models.Param {
	return []models.Param{{Key: f.Property, Value: f.StringValue()}}
}

// textDetails edits a free text value in a single input
type textDetails struct {
	model  *models.Filter
	input  textinput.Model
	active bool
	dirty  bool
}

func newTextDetails(f *models.Filter) *textDetails {
	ti := textinput.New()
	ti.Placeholder = "value"
	ti.CharLimit = 256
	ti.Width = 30
	ti.Prompt = ""

	return &textDetails{model: f, input: ti}
}

func (d *textDetails) Template() string      { return TemplateDetailsFilter }
func (d *textDetails) Active() bool          { return d.active }
func (d *textDetails) SetActive(active bool) { d.active = active }

// Render copies the model value into the input
func (d *textDetails) Render() {
	d.input.SetValue(d.model.StringValue())
	d.dirty = false
}

func (d *textDetails) OnShow() {
	if !d.dirty {
		d.Render()
	}
	d.input.Focus()
}

func (d *textDetails) OnHide() {
	d.input.Blur()
	d.change()
}

// change writes an edited input back into the model
func (d *textDetails) change() {
	if !d.dirty {
		return
	}
	d.dirty = false

	value := strings.TrimSpace(d.input.Value())
	if value == "" {
		d.model.SetValue(nil)
		return
	}
	d.model.SetValue(value)
}

func (d *textDetails) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		d.change()
		return nil
	}

	before := d.input.Value()
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	if d.input.Value() != before {
		d.dirty = true
	}
	return cmd
}

func (d *textDetails) SerializeData() DetailsData {
	return DetailsData{
		Title:  d.model.Name,
		Inputs: []string{d.input.View()},
	}
}
