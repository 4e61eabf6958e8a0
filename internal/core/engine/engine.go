package engine

import (
	"errors"
	"fmt"

	"github.com/strikezone/server/internal/core/ecs"
	"github.com/strikezone/server/internal/core/system"
	"go.uber.org/zap"
)

// ErrComponentShape is returned when a component would replace one of a
// different Go type under the same name.
var ErrComponentShape = errors.New("component shape mismatch")

// Engine is the facade over one World and its ordered systems. It is the
// only thing gameplay code and the game loop talk to.
type Engine struct {
	world     *ecs.World
	scheduler *system.Scheduler
	running   bool
	log       *zap.Logger
}

func New(log *zap.Logger) *Engine {
	return &Engine{
		world:     ecs.NewWorld(),
		scheduler: system.NewScheduler(),
		log:       log,
	}
}

func (g *Engine) World() *ecs.World { return g.world }
func (g *Engine) Running() bool     { return g.running }

// SystemOrder lists registered systems in execution order.
func (g *Engine) SystemOrder() []string { return g.scheduler.Names() }

// CreateEntity allocates a fresh id, attaches the given components and
// inserts the entity into the World.
func (g *Engine) CreateEntity(attachments ...ecs.Attachment) *ecs.Entity {
	e := ecs.NewEntity(g.world.NewID(), attachments...)
	g.world.Add(e)
	return e
}

// RemoveEntity removes id from the World. Unknown ids are ignored.
func (g *Engine) RemoveEntity(id ecs.EntityID) {
	g.world.Remove(id)
}

func (g *Engine) GetEntity(id ecs.EntityID) (*ecs.Entity, bool) {
	return g.world.Find(id)
}

// AddComponent attaches data under name, replacing a component of the same
// shape wholesale. Unknown ids are ignored.
func (g *Engine) AddComponent(id ecs.EntityID, name string, data any) error {
	e, ok := g.world.Find(id)
	if !ok {
		return nil
	}
	if cur, ok := e.Component(name); ok && !ecs.SameShape(cur, data) {
		return fmt.Errorf("add %q to entity %d: %w (have %T, got %T)", name, id, ErrComponentShape, cur, data)
	}
	e.Set(name, data)
	g.world.Update(e)
	return nil
}

// RemoveComponent detaches name from the entity. Unknown ids and missing
// components are ignored.
func (g *Engine) RemoveComponent(id ecs.EntityID, name string) {
	e, ok := g.world.Find(id)
	if !ok {
		return
	}
	if e.Delete(name) {
		g.world.Update(e)
	}
}

// RegisterSystem adds s and re-sorts the execution order. If the simulation
// is already running, s is validated and initialized immediately; a system
// that fails validation is unregistered again.
func (g *Engine) RegisterSystem(s system.System) error {
	if err := g.scheduler.Register(s); err != nil {
		return err
	}
	g.log.Debug("system registered",
		zap.String("system", s.Name()),
		zap.Strings("order", g.scheduler.Names()),
	)
	if !g.running {
		return nil
	}
	if err := g.scheduler.Validate(); err != nil {
		g.scheduler.Unregister(s.Name())
		return fmt.Errorf("register %q into running simulation: %w", s.Name(), err)
	}
	if h, ok := s.(system.Initializer); ok {
		h.Init(g.world)
	}
	return nil
}

// Init validates the dependency graph and runs every Init hook in execution
// order. Calling Init on a running simulation does nothing.
func (g *Engine) Init() error {
	if g.running {
		return nil
	}
	if err := g.scheduler.Validate(); err != nil {
		return fmt.Errorf("init simulation: %w", err)
	}
	g.running = true
	g.scheduler.InitAll(g.world)
	g.log.Info("simulation started", zap.Strings("systems", g.scheduler.Names()))
	return nil
}

// Update runs one fixed tick. It matches the loop.Callback signature.
func (g *Engine) Update(delta, elapsed float64) {
	if !g.running {
		return
	}
	g.scheduler.Tick(g.world, delta, elapsed)
}

// Shutdown runs every Cleanup hook once. Calling it on a stopped simulation
// does nothing.
func (g *Engine) Shutdown() {
	if !g.running {
		return
	}
	g.running = false
	g.scheduler.CleanupAll(g.world)
	g.log.Info("simulation stopped", zap.Int("entities", g.world.Len()))
}
