package models

// Collection is an ordered set of filters, unique by identity
type Collection struct {
	filters   []*Filter
	listeners map[Attr][]listener
	nextID    int
	unsubs    map[*Filter][]func()
}

// NewCollection creates a collection holding filters in order
func NewCollection(filters ...*Filter) *Collection {
	c := &Collection{
		listeners: make(map[Attr][]listener),
		unsubs:    make(map[*Filter][]func()),
	}
	for _, f := range filters {
		c.Add(f)
	}
	return c
}

// Add appends f unless it is already a member
func (c *Collection) Add(f *Filter) bool {
	if f == nil {
		return false
	}
	if _, ok := c.unsubs[f]; ok {
		return false
	}
	c.filters = append(c.filters, f)

	// Forward member notifications to collection subscribers
	for _, attr := range []Attr{AttrValue, AttrEnabled, AttrFilters} {
		c.unsubs[f] = append(c.unsubs[f], f.OnChange(attr, func(changed *Filter) {
			c.emit(attr, changed)
		}))
	}
	return true
}

// Get returns the filter with the given ID, or nil
func (c *Collection) Get(id string) *Filter {
	for _, f := range c.filters {
		if f.ID == id {
			return f
		}
	}
	return nil
}

// Contains reports whether f is a member
func (c *Collection) Contains(f *Filter) bool {
	_, ok := c.unsubs[f]
	return ok
}

// All returns the members in order
func (c *Collection) All() []*Filter {
	out := make([]*Filter, len(c.filters))
	copy(out, c.filters)
	return out
}

// Len returns the number of members
func (c *Collection) Len() int {
	return len(c.filters)
}

// Each calls fn for every member in order
func (c *Collection) Each(fn func(f *Filter)) {
	for _, f := range c.All() {
		fn(f)
	}
}

// Where returns the members matching pred, in order
func (c *Collection) Where(pred func(f *Filter) bool) []*Filter {
	out := []*Filter{}
	for _, f := range c.filters {
		if pred(f) {
			out = append(out, f)
		}
	}
	return out
}

// OnChange subscribes fn to attr changes of any member
func (c *Collection) OnChange(attr Attr, fn ChangeFunc) func() {
	c.nextID++
	id := c.nextID
	c.listeners[attr] = append(c.listeners[attr], listener{id: id, fn: fn})

	return func() {
		ls := c.listeners[attr]
		for i, l := range ls {
			if l.id == id {
				c.listeners[attr] = append(ls[:i:i], ls[i+1:]...)
				return
			}
		}
	}
}

// Close detaches the collection from its members
func (c *Collection) Close() {
	for f, unsubs := range c.unsubs {
		for _, unsub := range unsubs {
			unsub()
		}
		delete(c.unsubs, f)
	}
}

func (c *Collection) emit(attr Attr, f *Filter) {
	ls := append([]listener(nil), c.listeners[attr]...)
	for _, l := range ls {
		l.fn(f)
	}
}
