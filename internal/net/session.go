package net

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Session is one browser connection. Network I/O runs in dedicated
// goroutines; the game loop only touches the queues and outBuf.
type Session struct {
	ID   uuid.UUID
	conn *websocket.Conn

	InQueue  chan ClientMessage // game loop reads decoded input from here
	OutQueue chan []byte        // writer goroutine reads from here

	RemoteAddr string

	outBuf [][]byte // game loop only, flushed once per tick

	writeTimeout time.Duration

	closeCh   chan struct{}
	closeOnce sync.Once
	closed    atomic.Bool

	log *zap.Logger
}

func NewSession(conn *websocket.Conn, inSize, outSize int, writeTimeout time.Duration, log *zap.Logger) *Session {
	id := uuid.New()
	return &Session{
		ID:           id,
		conn:         conn,
		InQueue:      make(chan ClientMessage, inSize),
		OutQueue:     make(chan []byte, outSize),
		RemoteAddr:   conn.RemoteAddr().String(),
		writeTimeout: writeTimeout,
		closeCh:      make(chan struct{}),
		log:          log.With(zap.Stringer("session", id)),
	}
}

// Start launches the reader and writer goroutines.
func (s *Session) Start() {
	go s.readLoop()
	go s.writeLoop()
}

// Send buffers a frame. Nothing reaches the socket until FlushOutput.
func (s *Session) Send(data []byte) {
	if s.closed.Load() {
		return
	}
	s.outBuf = append(s.outBuf, data)
}

// FlushOutput hands buffered frames to the writer goroutine. A full
// OutQueue disconnects the session.
func (s *Session) FlushOutput() {
	for _, data := range s.outBuf {
		select {
		case s.OutQueue <- data:
		default:
			s.log.Warn("output queue full, dropping slow client")
			s.Close()
			s.outBuf = s.outBuf[:0]
			return
		}
	}
	s.outBuf = s.outBuf[:0]
}

func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		close(s.closeCh)
		s.conn.Close()
	})
}

func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

func (s *Session) readLoop() {
	defer s.Close()

	for {
		kind, data, err := s.conn.ReadMessage()
		if err != nil {
			if !s.closed.Load() && websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Debug("read error", zap.Error(err))
			}
			return
		}
		if kind != websocket.TextMessage {
			continue
		}

		msg, err := DecodeClient(data)
		if err != nil {
			s.log.Debug("bad client frame", zap.Error(err))
			continue
		}
		msg.Session = s.ID

		// Held-key state must not be lost, so block rather than drop.
		select {
		case s.InQueue <- msg:
		case <-s.closeCh:
			return
		}
	}
}

func (s *Session) writeLoop() {
	defer s.Close()

	for {
		select {
		case data := <-s.OutQueue:
			s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				if !s.closed.Load() {
					s.log.Debug("write error", zap.Error(err))
				}
				return
			}
		case <-s.closeCh:
			return
		}
	}
}
