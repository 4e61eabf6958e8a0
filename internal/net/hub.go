package net

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Hub tracks live sessions on behalf of the game loop. The oldest live
// session controls the player; later sessions only watch, and their input is
// drained and dropped. Control passes on when the controller disconnects.
// Hub is not safe for concurrent use; only the simulation goroutine calls it.
type Hub struct {
	incoming   <-chan *Session
	sessions   []*Session
	controller uuid.UUID
	maxPerTick int
	welcome    func(*Session) any
	log        *zap.Logger
}

// NewHub reads new sessions from incoming. maxPerTick bounds how many
// messages one session may contribute to a single Poll; zero means no bound.
func NewHub(incoming <-chan *Session, maxPerTick int, log *zap.Logger) *Hub {
	return &Hub{incoming: incoming, maxPerTick: maxPerTick, log: log}
}

// OnAccept sets the frame sent to every newly accepted session.
func (h *Hub) OnAccept(welcome func(*Session) any) {
	h.welcome = welcome
}

func (h *Hub) Len() int { return len(h.sessions) }

// Poll drops closed sessions, accepts pending ones and returns the
// controller's queued input.
func (h *Hub) Poll() []ClientMessage {
	h.reap()
	h.accept()
	if len(h.sessions) == 0 {
		return nil
	}
	if c := h.sessions[0]; c.ID != h.controller {
		h.controller = c.ID
		h.log.Info("session took control", zap.Stringer("session", c.ID))
	}

	var out []ClientMessage
	for i, s := range h.sessions {
		n := 0
	drain:
		for h.maxPerTick <= 0 || n < h.maxPerTick {
			select {
			case msg := <-s.InQueue:
				if i == 0 {
					out = append(out, msg)
				}
				n++
			default:
				break drain
			}
		}
	}
	return out
}

// Broadcast encodes v once and sends it to every live session.
func (h *Hub) Broadcast(v any) error {
	if len(h.sessions) == 0 {
		return nil
	}
	data, err := Encode(v)
	if err != nil {
		return err
	}
	for _, s := range h.sessions {
		s.Send(data)
		s.FlushOutput()
	}
	return nil
}

// Controller returns the session that drives the player, or nil.
func (h *Hub) Controller() *Session {
	if len(h.sessions) == 0 {
		return nil
	}
	return h.sessions[0]
}

// Session returns the live session with the given id.
func (h *Hub) Session(id uuid.UUID) *Session {
	for _, s := range h.sessions {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// CloseAll disconnects every session.
func (h *Hub) CloseAll() {
	for _, s := range h.sessions {
		s.Close()
	}
	h.sessions = nil
}

func (h *Hub) accept() {
	for {
		select {
		case s := <-h.incoming:
			h.sessions = append(h.sessions, s)
			if h.welcome != nil {
				if data, err := Encode(h.welcome(s)); err == nil {
					s.Send(data)
					s.FlushOutput()
				} else {
					h.log.Error("encode welcome", zap.Error(err))
				}
			}
		default:
			return
		}
	}
}

func (h *Hub) reap() {
	live := h.sessions[:0]
	for _, s := range h.sessions {
		if s.IsClosed() {
			h.log.Info("client disconnected", zap.Stringer("session", s.ID))
			continue
		}
		live = append(live, s)
	}
	for i := len(live); i < len(h.sessions); i++ {
		h.sessions[i] = nil
	}
	h.sessions = live
}
