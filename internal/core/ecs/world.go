package ecs

// World owns every entity of one simulation instance. It keeps entities in
// insertion order and indexes nothing: each query is a linear scan, which is
// fine for the tens of entities a level holds.
//
// World is not safe for concurrent use; all access happens on the simulation
// goroutine.
type World struct {
	pool         *EntityPool
	entities     []*Entity
	destroyQueue []EntityID
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		entities:     make([]*Entity, 0, 64),
		destroyQueue: make([]EntityID, 0, 16),
	}
}

func (w *World) Pool() *EntityPool { return w.pool }

// NewID allocates a fresh entity id.
func (w *World) NewID() EntityID {
	return w.pool.Create()
}

// Add appends e. The caller guarantees a fresh id.
func (w *World) Add(e *Entity) {
	w.entities = append(w.entities, e)
}

// Remove drops the entity with the given id and retires the id.
// Absent ids are ignored.
func (w *World) Remove(id EntityID) {
	for i, e := range w.entities {
		if e.id == id {
			copy(w.entities[i:], w.entities[i+1:])
			w.entities[len(w.entities)-1] = nil
			w.entities = w.entities[:len(w.entities)-1]
			w.pool.Destroy(id)
			return
		}
	}
}

// Update makes e the canonical copy for its id. Absent ids are ignored.
func (w *World) Update(e *Entity) {
	for i, cur := range w.entities {
		if cur.id == e.id {
			w.entities[i] = e
			return
		}
	}
}

// Find looks an entity up by id.
func (w *World) Find(id EntityID) (*Entity, bool) {
	for _, e := range w.entities {
		if e.id == id {
			return e, true
		}
	}
	return nil, false
}

// Query returns every entity matching pred, in insertion order. The result
// is a fresh slice, so callers may add or remove entities while walking it.
func (w *World) Query(pred Predicate) []*Entity {
	var out []*Entity
	for _, e := range w.entities {
		if pred == nil || pred(e) {
			out = append(out, e)
		}
	}
	return out
}

// Len reports the number of live entities.
func (w *World) Len() int { return len(w.entities) }

// MarkForDestruction queues an entity for end-of-tick removal.
func (w *World) MarkForDestruction(id EntityID) {
	for _, queued := range w.destroyQueue {
		if queued == id {
			return
		}
	}
	w.destroyQueue = append(w.destroyQueue, id)
}

// PendingDestruction reports whether id is queued for removal.
func (w *World) PendingDestruction(id EntityID) bool {
	for _, queued := range w.destroyQueue {
		if queued == id {
			return true
		}
	}
	return false
}

// FlushDestroyQueue removes all queued entities and returns how many were
// still present. Called by the cleanup system at the end of each tick.
func (w *World) FlushDestroyQueue() int {
	removed := 0
	for _, id := range w.destroyQueue {
		if _, ok := w.Find(id); ok {
			w.Remove(id)
			removed++
		}
	}
	w.destroyQueue = w.destroyQueue[:0]
	return removed
}
