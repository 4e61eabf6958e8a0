package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/strikezone/server/internal/core/ecs"
)

var (
	ErrDuplicateSystem   = errors.New("system already registered")
	ErrDependencyCycle   = errors.New("system dependency cycle")
	ErrUnknownDependency = errors.New("unknown system dependency")
)

// Scheduler keeps the registered systems in dependency order. The order is
// recomputed with a topological sort on every registration; among systems
// that are free to run, registration order wins.
type Scheduler struct {
	registered []System // registration order
	order      []System // execution order
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		registered: make([]System, 0, 16),
		order:      make([]System, 0, 16),
	}
}

// Register adds s and re-sorts. On a cycle the registration is rolled back.
func (r *Scheduler) Register(s System) error {
	name := s.Name()
	for _, cur := range r.registered {
		if cur.Name() == name {
			return fmt.Errorf("register %q: %w", name, ErrDuplicateSystem)
		}
	}
	candidate := append(r.registered[:len(r.registered):len(r.registered)], s)
	order, err := sortSystems(candidate)
	if err != nil {
		return fmt.Errorf("register %q: %w", name, err)
	}
	r.registered = candidate
	r.order = order
	return nil
}

// Unregister removes the named system. The remaining order stays valid
// because dropping a node cannot introduce a cycle.
func (r *Scheduler) Unregister(name string) bool {
	for i, s := range r.registered {
		if s.Name() != name {
			continue
		}
		r.registered = append(r.registered[:i:i], r.registered[i+1:]...)
		order, err := sortSystems(r.registered)
		if err == nil {
			r.order = order
		}
		return true
	}
	return false
}

// Validate reports dependencies that name systems never registered.
func (r *Scheduler) Validate() error {
	known := make(map[string]bool, len(r.registered))
	for _, s := range r.registered {
		known[s.Name()] = true
	}
	for _, s := range r.registered {
		for _, dep := range dependenciesOf(s) {
			if !known[dep] {
				return fmt.Errorf("%q depends on %q: %w", s.Name(), dep, ErrUnknownDependency)
			}
		}
	}
	return nil
}

// Order returns the systems in execution order.
func (r *Scheduler) Order() []System {
	out := make([]System, len(r.order))
	copy(out, r.order)
	return out
}

// Names returns the execution order by name.
func (r *Scheduler) Names() []string {
	names := make([]string, len(r.order))
	for i, s := range r.order {
		names[i] = s.Name()
	}
	return names
}

func (r *Scheduler) Len() int { return len(r.order) }

func (r *Scheduler) InitAll(w *ecs.World) {
	for _, s := range r.order {
		if h, ok := s.(Initializer); ok {
			h.Init(w)
		}
	}
}

func (r *Scheduler) Tick(w *ecs.World, delta, elapsed float64) {
	for _, s := range r.order {
		if h, ok := s.(Updater); ok {
			h.Update(w, delta, elapsed)
		}
	}
}

func (r *Scheduler) CleanupAll(w *ecs.World) {
	for _, s := range r.order {
		if h, ok := s.(Cleaner); ok {
			h.Cleanup(w)
		}
	}
}

// sortSystems runs Kahn's algorithm over the declared dependencies.
// Dependencies on unregistered names do not constrain the order; Validate
// reports them separately.
func sortSystems(systems []System) ([]System, error) {
	index := make(map[string]int, len(systems))
	for i, s := range systems {
		index[s.Name()] = i
	}

	inDegree := make([]int, len(systems))
	dependents := make([][]int, len(systems))
	for i, s := range systems {
		for _, dep := range dependenciesOf(s) {
			j, ok := index[dep]
			if !ok {
				continue
			}
			inDegree[i]++
			dependents[j] = append(dependents[j], i)
		}
	}

	order := make([]System, 0, len(systems))
	emitted := make([]bool, len(systems))
	for len(order) < len(systems) {
		next := -1
		for i := range systems {
			if !emitted[i] && inDegree[i] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			var stuck []string
			for i, s := range systems {
				if !emitted[i] {
					stuck = append(stuck, s.Name())
				}
			}
			return nil, fmt.Errorf("%w among [%s]", ErrDependencyCycle, strings.Join(stuck, ", "))
		}
		emitted[next] = true
		order = append(order, systems[next])
		for _, d := range dependents[next] {
			inDegree[d]--
		}
	}
	return order, nil
}
