// SPDX-License-Identifier: MIT

package samples

// Raw is an ordered list of opaque examples.
type Raw struct {
	items []interface{}
}

// NewRaw wraps items without copying the slice.
func NewRaw(items ...interface{}) *Raw {
	return &Raw{items: items}
}

// Len implements Set.
func (r *Raw) Len() int { return len(r.items) }

// Item returns example i.
func (r *Raw) Item(i int) interface{} { return r.items[i] }

// Items returns the backing slice.
func (r *Raw) Items() []interface{} { return r.items }

// Subset implements Set. Examples are shared, not deep-copied.
func (r *Raw) Subset(rows []int) Set {
	out := make([]interface{}, len(rows))
	for i, idx := range rows {
		out[i] = r.items[idx]
	}

	return &Raw{items: out}
}
