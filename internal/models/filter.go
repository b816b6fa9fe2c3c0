package models

import (
	"reflect"
)

// Kind selects the view used to render a filter
type Kind string

const (
	KindText         Kind = "text"
	KindRange        Kind = "range"
	KindDateRange    Kind = "date-range"
	KindMoreCriteria Kind = "more-criteria"
	KindFavorite     Kind = "favorite"
)

// Attr names a filter attribute that emits change notifications
type Attr string

const (
	AttrValue   Attr = "value"
	AttrEnabled Attr = "enabled"
	AttrFilters Attr = "filters"
)

// RangeValue holds the bounds of a range filter keyed by property name
type RangeValue map[string]string

// ChangeFunc is called after an attribute of f changed
type ChangeFunc func(f *Filter)

type listener struct {
	id int
	fn ChangeFunc
}

// Filter is a single search criterion shown as a chip in the filter bar
type Filter struct {
	ID           string
	Name         string
	Property     string
	PropertyFrom string
	PropertyTo   string
	Kind         Kind

	value    any
	enabled  bool
	optional bool
	filters  []*Filter

	listeners map[Attr][]listener
	nextID    int
}

// FilterOptions holds the initial state of a filter
type FilterOptions struct {
	ID           string
	Name         string
	Property     string
	PropertyFrom string
	PropertyTo   string
	Kind         Kind
	Value        any
	Enabled      bool
	Optional     bool
	Filters      []*Filter
}

// NewFilter creates a filter from its initial state
func NewFilter(opts FilterOptions) *Filter {
	id := opts.ID
	if id == "" {
		id = opts.Property
	}
	if id == "" && opts.PropertyFrom != "" {
		id = opts.PropertyFrom + ":" + opts.PropertyTo
	}
	kind := opts.Kind
	if kind == "" {
		kind = KindText
	}
	return &Filter{
		ID:           id,
		Name:         opts.Name,
		Property:     opts.Property,
		PropertyFrom: opts.PropertyFrom,
		PropertyTo:   opts.PropertyTo,
		Kind:         kind,
		value:        opts.Value,
		enabled:      opts.Enabled,
		optional:     opts.Optional,
		filters:      opts.Filters,
		listeners:    make(map[Attr][]listener),
	}
}

// Value returns the current value
func (f *Filter) Value() any {
	return f.value
}

// Enabled reports whether the filter is shown in the bar
func (f *Filter) Enabled() bool {
	return f.enabled
}

// Optional reports whether the filter may be disabled by the user
func (f *Filter) Optional() bool {
	return f.optional
}

// Filters returns the aggregated filters (more-criteria only)
func (f *Filter) Filters() []*Filter {
	return f.filters
}

// SetValue stores v and notifies value subscribers when it changed
func (f *Filter) SetValue(v any) {
	if equalValues(f.value, v) {
		return
	}
	f.value = v
	f.emit(AttrValue)
}

// SetEnabled stores enabled and notifies enabled subscribers when it changed
func (f *Filter) SetEnabled(enabled bool) {
	if f.enabled == enabled {
		return
	}
	f.enabled = enabled
	f.emit(AttrEnabled)
}

// SetEnabledSilently stores enabled without notifying anyone
func (f *Filter) SetEnabledSilently(enabled bool) {
	f.enabled = enabled
}

// SetFilters replaces the aggregated filters
func (f *Filter) SetFilters(filters []*Filter) {
	if sameFilters(f.filters, filters) {
		return
	}
	f.filters = filters
	f.emit(AttrFilters)
}

// SetState stores value and enabled together. Notifications run once both
// attributes hold their new values.
func (f *Filter) SetState(v any, enabled bool) {
	var changed []Attr
	if !equalValues(f.value, v) {
		f.value = v
		changed = append(changed, AttrValue)
	}
	if f.enabled != enabled {
		f.enabled = enabled
		changed = append(changed, AttrEnabled)
	}
	for _, attr := range changed {
		f.emit(attr)
	}
}

// OnChange subscribes fn to changes of attr and returns the unsubscribe func
func (f *Filter) OnChange(attr Attr, fn ChangeFunc) func() {
	f.nextID++
	id := f.nextID
	f.listeners[attr] = append(f.listeners[attr], listener{id: id, fn: fn})

	return func() {
		ls := f.listeners[attr]
		for i, l := range ls {
			if l.id == id {
				f.listeners[attr] = append(ls[:i:i], ls[i+1:]...)
				return
			}
		}
	}
}

func (f *Filter) emit(attr Attr) {
	// Copy so handlers may unsubscribe while we iterate
	ls := append([]listener(nil), f.listeners[attr]...)
	for _, l := range ls {
		l.fn(f)
	}
}

// RangeBounds returns the from/to bounds of a range value, empty when unset
func (f *Filter) RangeBounds() (from, to string) {
	rv, ok := f.value.(RangeValue)
	if !ok {
		return "", ""
	}
	return rv[f.PropertyFrom], rv[f.PropertyTo]
}

// StringValue returns the value as a string, empty when it is not one
func (f *Filter) StringValue() string {
	s, _ := f.value.(string)
	return s
}

func equalValues(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

func sameFilters(a, b []*Filter) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Param is a single key/value pair of a parsed query string
type Param struct {
	Key   string
	Value string
}

// Query is an ordered list of query parameters
type Query []Param

// Find returns the first parameter with the given key
func (q Query) Find(key string) (Param, bool) {
	for _, p := range q {
		if p.Key == key {
			return p, true
		}
	}
	return Param{}, false
}
