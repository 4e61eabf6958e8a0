package system

import (
	"github.com/strikezone/server/internal/component"
	"github.com/strikezone/server/internal/core/ecs"
	"go.uber.org/zap"
)

// InputSystem drains client messages into the input singleton. Mouse deltas
// accumulate over one tick only; key and button state is whatever the last
// message reported. The source yields a single controller's messages, so
// held keys always come from one client.
type InputSystem struct {
	source InputSource
	log    *zap.Logger
}

func NewInputSystem(source InputSource, log *zap.Logger) *InputSystem {
	return &InputSystem{source: source, log: log}
}

func (s *InputSystem) Name() string           { return NameInput }
func (s *InputSystem) Dependencies() []string { return []string{NameEvents} }

// Init creates the singleton when the level did not.
func (s *InputSystem) Init(w *ecs.World) {
	if _, _, ok := ecs.First(w, component.InputKey); ok {
		return
	}
	w.Add(ecs.NewEntity(w.NewID(), component.InputKey.Of(&component.Input{Keys: map[string]bool{}})))
	s.log.Debug("input singleton created")
}

func (s *InputSystem) Update(w *ecs.World, _, _ float64) {
	_, in, ok := ecs.First(w, component.InputKey)
	if !ok {
		return
	}
	in.Tick++
	in.MouseDX, in.MouseDY = 0, 0
	if in.Keys == nil {
		in.Keys = map[string]bool{}
	}
	if s.source == nil {
		return
	}

	for _, msg := range s.source.Poll() {
		clear(in.Keys)
		for _, k := range msg.Keys {
			in.Keys[k] = true
		}
		in.MouseDX += msg.MouseDX
		in.MouseDY += msg.MouseDY
		in.PrimaryDown = msg.Primary
		in.Secondary = msg.Secondary
	}
}
