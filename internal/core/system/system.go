package system

import "github.com/strikezone/server/internal/core/ecs"

// System is a named behavior module. Every lifecycle hook is optional and
// discovered by interface assertion.
type System interface {
	Name() string
}

// Initializer is called once when the simulation starts, or on registration
// into a simulation that is already running.
type Initializer interface {
	Init(w *ecs.World)
}

// Updater is called once per fixed tick. delta is the fixed time step and
// elapsed the cumulative simulation time, both in seconds.
type Updater interface {
	Update(w *ecs.World, delta, elapsed float64)
}

// Cleaner is called once on simulation shutdown.
type Cleaner interface {
	Cleanup(w *ecs.World)
}

// Dependent lists the systems that must run before this one in a tick.
type Dependent interface {
	Dependencies() []string
}

func dependenciesOf(s System) []string {
	if d, ok := s.(Dependent); ok {
		return d.Dependencies()
	}
	return nil
}
