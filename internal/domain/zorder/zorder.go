// Package zorder computes a back-to-front draw order for scene entities.
package zorder

// Drawable is an entity that takes part in draw ordering.
// SortKey is the world y coordinate; y grows upward.
type Drawable interface {
	SortKey() float64
	SetDepth(depth int)
}

type tracked struct {
	d     Drawable
	index int // insertion order, breaks ties
}

// Resolver keeps the previous frame's order so a re-sort of a nearly
// sorted list is linear.
type Resolver struct {
	order []tracked
}

// NewResolver creates an empty resolver
func NewResolver() *Resolver {
	return &Resolver{}
}

// Reset rebuilds the tracked set in the given order
func (r *Resolver) Reset(entities []Drawable) {
	r.order = make([]tracked, len(entities))
	for i, e := range entities {
		r.order[i] = tracked{d: e, index: i}
	}
}

// Len returns the number of tracked entities
func (r *Resolver) Len() int {
	return len(r.order)
}

// before reports whether a draws behind b
func before(a, b tracked) bool {
	ka, kb := a.d.SortKey(), b.d.SortKey()
	if ka != kb {
		return ka > kb
	}
	return a.index < b.index
}

// Resolve re-sorts and hands every entity its depth, 0 being the back
func (r *Resolver) Resolve() {
	for i := 1; i < len(r.order); i++ {
		cur := r.order[i]
		j := i - 1
		for j >= 0 && before(cur, r.order[j]) {
			r.order[j+1] = r.order[j]
			j--
		}
		r.order[j+1] = cur
	}
	for depth, t := range r.order {
		t.d.SetDepth(depth)
	}
}

// Order returns the entities back to front
func (r *Resolver) Order() []Drawable {
	out := make([]Drawable, len(r.order))
	for i, t := range r.order {
		out[i] = t.d
	}
	return out
}
