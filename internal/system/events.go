package system

import (
	"github.com/strikezone/server/internal/core/ecs"
	"github.com/strikezone/server/internal/core/event"
)

// EventsSystem delivers the events emitted during the previous tick. It runs
// first so every other system sees a consistent set of handlers fired.
type EventsSystem struct {
	bus *event.Bus
}

func NewEventsSystem(bus *event.Bus) *EventsSystem {
	return &EventsSystem{bus: bus}
}

func (s *EventsSystem) Name() string { return NameEvents }

func (s *EventsSystem) Update(_ *ecs.World, _, _ float64) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
