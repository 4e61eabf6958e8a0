package ecs

import "sort"

// EntityID encodes a 32-bit index in the lower bits and a 32-bit generation
// in the upper bits. Generation increments on destroy so a retired id is
// never handed out again.
type EntityID uint64

// NilEntity is never allocated. Index 0 is reserved for it.
const NilEntity EntityID = 0

func NewEntityID(index uint32, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }
func (id EntityID) IsZero() bool       { return id == NilEntity }

// EntityPool manages id allocation with generational indices and a free list.
type EntityPool struct {
	generations []uint32
	freeList    []uint32
	nextIndex   uint32
}

func NewEntityPool() *EntityPool {
	return &EntityPool{
		generations: make([]uint32, 1, 256),
		freeList:    make([]uint32, 0, 64),
		nextIndex:   1,
	}
}

func (p *EntityPool) Create() EntityID {
	if len(p.freeList) > 0 {
		idx := p.freeList[len(p.freeList)-1]
		p.freeList = p.freeList[:len(p.freeList)-1]
		return NewEntityID(idx, p.generations[idx])
	}
	idx := p.nextIndex
	p.nextIndex++
	if int(idx) >= len(p.generations) {
		p.generations = append(p.generations, 0)
	}
	return NewEntityID(idx, p.generations[idx])
}

func (p *EntityPool) Alive(id EntityID) bool {
	idx := id.Index()
	if idx == 0 || idx >= p.nextIndex {
		return false
	}
	return p.generations[idx] == id.Generation()
}

func (p *EntityPool) Destroy(id EntityID) {
	if !p.Alive(id) {
		return // never allocated or already destroyed
	}
	idx := id.Index()
	p.generations[idx]++
	p.freeList = append(p.freeList, idx)
}

// Entity is an id plus an open bag of named components. Entities carry no
// behavior; systems read and write their components through the World.
type Entity struct {
	id         EntityID
	components map[string]any
}

// NewEntity builds a detached entity. It becomes visible to queries only
// after World.Add.
func NewEntity(id EntityID, attachments ...Attachment) *Entity {
	e := &Entity{
		id:         id,
		components: make(map[string]any, len(attachments)),
	}
	for _, a := range attachments {
		e.components[a.name] = a.data
	}
	return e
}

func (e *Entity) ID() EntityID { return e.id }

// Has reports whether every named component is attached.
func (e *Entity) Has(names ...string) bool {
	for _, n := range names {
		if _, ok := e.components[n]; !ok {
			return false
		}
	}
	return true
}

// Component returns the raw data stored under name.
func (e *Entity) Component(name string) (any, bool) {
	c, ok := e.components[name]
	return c, ok
}

// Set attaches data under name, replacing whatever was there.
func (e *Entity) Set(name string, data any) {
	e.components[name] = data
}

// Delete detaches the named component and reports whether it was present.
func (e *Entity) Delete(name string) bool {
	if _, ok := e.components[name]; !ok {
		return false
	}
	delete(e.components, name)
	return true
}

// Names lists the attached component names in sorted order.
func (e *Entity) Names() []string {
	names := make([]string, 0, len(e.components))
	for n := range e.components {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Ref is a weak reference to an entity. It never owns the target: resolving
// a ref whose entity was removed simply reports false.
type Ref struct {
	id EntityID
}

func RefTo(id EntityID) Ref { return Ref{id: id} }

func (r Ref) ID() EntityID { return r.id }

// IsSet reports whether the ref points at anything at all.
func (r Ref) IsSet() bool { return !r.id.IsZero() }

// Resolve looks the target up in w.
func (r Ref) Resolve(w *World) (*Entity, bool) {
	if r.id.IsZero() {
		return nil, false
	}
	return w.Find(r.id)
}
