package ecs

// Predicate is a cheap shape check over one entity.
type Predicate func(*Entity) bool

// With matches entities that carry every named component.
func With(names ...string) Predicate {
	return func(e *Entity) bool { return e.Has(names...) }
}

// Without matches entities that carry none of the named components.
func Without(names ...string) Predicate {
	return func(e *Entity) bool {
		for _, n := range names {
			if _, ok := e.components[n]; ok {
				return false
			}
		}
		return true
	}
}

// And matches when every predicate matches.
func And(preds ...Predicate) Predicate {
	return func(e *Entity) bool {
		for _, p := range preds {
			if !p(e) {
				return false
			}
		}
		return true
	}
}

// Each1 calls fn for every entity that has component A, in insertion order.
func Each1[A any](w *World, ka Key[A], fn func(*Entity, *A)) {
	for _, e := range w.Query(With(ka.name)) {
		if a, ok := ka.Get(e); ok {
			fn(e, a)
		}
	}
}

// Each2 calls fn for every entity that has both A and B.
func Each2[A, B any](w *World, ka Key[A], kb Key[B], fn func(*Entity, *A, *B)) {
	for _, e := range w.Query(With(ka.name, kb.name)) {
		a, okA := ka.Get(e)
		b, okB := kb.Get(e)
		if okA && okB {
			fn(e, a, b)
		}
	}
}

// Each3 calls fn for every entity that has A, B and C.
func Each3[A, B, C any](w *World, ka Key[A], kb Key[B], kc Key[C], fn func(*Entity, *A, *B, *C)) {
	for _, e := range w.Query(With(ka.name, kb.name, kc.name)) {
		a, okA := ka.Get(e)
		b, okB := kb.Get(e)
		c, okC := kc.Get(e)
		if okA && okB && okC {
			fn(e, a, b, c)
		}
	}
}

// First returns the first entity carrying component A.
func First[A any](w *World, ka Key[A]) (*Entity, *A, bool) {
	for _, e := range w.entities {
		if a, ok := ka.Get(e); ok {
			return e, a, true
		}
	}
	return nil, nil, false
}
