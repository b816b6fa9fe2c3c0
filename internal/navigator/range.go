package navigator

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rebeliceyang/lazyfilter/internal/models"
)

const rangeSeparator = " — "

// NewRangeView creates the view of a two-bound filter
func NewRangeView(f *models.Filter, opts ViewOptions) View {
	return newFilterView(f, rangeVariant{unset: "Any"}, newRangeDetails(f, "from", "to"), opts)
}

// NewDateRangeView creates the view of a two-bound date filter
func NewDateRangeView(f *models.Filter, opts ViewOptions) View {
	return newFilterView(f, rangeVariant{unset: "Anytime"}, newRangeDetails(f, "1970-01-01", "1970-01-01"), opts)
}

type rangeVariant struct {
	unset string
}

func (rangeVariant) template() string { return TemplateRangeFilter }

func (r rangeVariant) renderValue(f *models.Filter) string {
	if r.isDefaultValue(f) {
		return r.unset
	}
	from, to := f.RangeBounds()
	var parts []string
	for _, b := range []string{from, to} {
		if b != "" {
			parts = append(parts, b)
		}
	}
	return strings.Join(parts, rangeSeparator)
}

func (rangeVariant) isDefaultValue(f *models.Filter) bool {
	from, to := f.RangeBounds()
	return from == "" && to == ""
}

// Both bounds are looked up independently; a missing parameter is not an error.
func (rangeVariant) restoreFromQuery(v *FilterView, q models.Query) {
	f := v.model
	from, _ := q.Find(f.PropertyFrom)
	to, _ := q.Find(f.PropertyTo)
	if from.Value == "" && to.Value == "" {
		return
	}

	value := models.RangeValue{}
	if from.Value != "" {
		value[f.PropertyFrom] = from.Value
	}
	if to.Value != "" {
		value[f.PropertyTo] = to.Value
	}

	slog.Debug("restore range filter from query", "filter", f.ID, "from", from.Value, "to", to.Value)
	f.SetState(value, true)
	if d, ok := v.details.(*rangeDetails); ok {
		d.PopulateInputs()
	}
}

// restore accepts a RangeValue, a plain map or a [from, to] list
func (rangeVariant) restore(v *FilterView, value any) {
	f := v.model
	rv := models.RangeValue{}

	switch val := value.(type) {
	case models.RangeValue:
		for k, b := range val {
			rv[k] = b
		}
	case map[string]string:
		for k, b := range val {
			rv[k] = b
		}
	case []string:
		if len(val) > 0 && val[0] != "" {
			rv[f.PropertyFrom] = val[0]
		}
		if len(val) > 1 && val[1] != "" {
			rv[f.PropertyTo] = val[1]
		}
	default:
		return
	}
	if len(rv) == 0 {
		return
	}

	f.SetState(rv, true)
	if d, ok := v.details.(*rangeDetails); ok {
		d.PopulateInputs()
	}
}

func (rangeVariant) inputs(f *models.Filter) []models.Param {
	from, to := f.RangeBounds()
	return []models.Param{
		{Key: f.PropertyFrom, Value: from},
		{Key: f.PropertyTo, Value: to},
	}
}

// rangeDetails edits the from/to bounds in two inputs
type rangeDetails struct {
	model  *models.Filter
	inputs [2]textinput.Model
	focus  int
	active bool
	dirty  bool
}

func newRangeDetails(f *models.Filter, fromPlaceholder, toPlaceholder string) *rangeDetails {
	d := &rangeDetails{model: f}
	for i, placeholder := range []string{fromPlaceholder, toPlaceholder} {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 64
		ti.Width = 14
		ti.Prompt = ""
		d.inputs[i] = ti
	}
	return d
}

func (d *rangeDetails) Template() string      { return TemplateRangeDetails }
func (d *rangeDetails) Active() bool          { return d.active }
func (d *rangeDetails) SetActive(active bool) { d.active = active }

func (d *rangeDetails) Render() {
	d.PopulateInputs()
}

// PopulateInputs copies the model bounds into the inputs
func (d *rangeDetails) PopulateInputs() {
	from, to := d.model.RangeBounds()
	d.inputs[0].SetValue(from)
	d.inputs[1].SetValue(to)
	d.dirty = false
}

func (d *rangeDetails) OnShow() {
	if !d.dirty {
		d.PopulateInputs()
	}
	d.setFocus(0)
}

func (d *rangeDetails) OnHide() {
	d.inputs[0].Blur()
	d.inputs[1].Blur()
	d.change()
}

func (d *rangeDetails) setFocus(i int) {
	d.focus = i
	for j := range d.inputs {
		if j == i {
			d.inputs[j].Focus()
		} else {
			d.inputs[j].Blur()
		}
	}
}

// change writes the edited bounds back into the model, keeping only non-empty ones
func (d *rangeDetails) change() {
	if !d.dirty {
		return
	}
	d.dirty = false

	value := models.RangeValue{}
	if from := strings.TrimSpace(d.inputs[0].Value()); from != "" {
		value[d.model.PropertyFrom] = from
	}
	if to := strings.TrimSpace(d.inputs[1].Value()); to != "" {
		value[d.model.PropertyTo] = to
	}
	d.model.SetValue(value)
}

func (d *rangeDetails) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "shift+tab":
			d.change()
			d.setFocus(1 - d.focus)
			return nil
		case "enter":
			d.change()
			return nil
		}
	}

	before := d.inputs[d.focus].Value()
	var cmd tea.Cmd
	d.inputs[d.focus], cmd = d.inputs[d.focus].Update(msg)
	if d.inputs[d.focus].Value() != before {
		d.dirty = true
	}
	return cmd
}

func (d *rangeDetails) SerializeData() DetailsData {
	return DetailsData{
		Title:  d.model.Name,
		Inputs: []string{d.inputs[0].View(), d.inputs[1].View()},
		Focus:  d.focus,
	}
}
