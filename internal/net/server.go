package net

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/strikezone/server/internal/config"
	"go.uber.org/zap"
)

// Server upgrades HTTP requests to websocket sessions. New sessions reach
// the game loop through a channel.
type Server struct {
	cfg      config.NetworkConfig
	upgrader websocket.Upgrader
	newConns chan *Session
	log      *zap.Logger
}

func NewServer(cfg config.NetworkConfig, log *zap.Logger) *Server {
	return &Server{
		cfg: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The page is served by a separate dev server.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		newConns: make(chan *Session, 16),
		log:      log,
	}
}

// Handler returns the mux serving the websocket endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.cfg.Path, s.handleWebSocket)
	return mux
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	if s.cfg.ReadLimit > 0 {
		conn.SetReadLimit(s.cfg.ReadLimit)
	}

	sess := NewSession(conn, s.cfg.InQueueSize, s.cfg.OutQueueSize, s.cfg.WriteTimeout, s.log)
	sess.Start()

	select {
	case s.newConns <- sess:
		s.log.Info("client connected",
			zap.Stringer("session", sess.ID),
			zap.String("addr", sess.RemoteAddr),
		)
	default:
		s.log.Warn("connection queue full, rejecting client", zap.String("addr", sess.RemoteAddr))
		sess.Close()
	}
}

// NewSessions returns the channel of newly connected sessions.
func (s *Server) NewSessions() <-chan *Session {
	return s.newConns
}

// ListenAndServe serves until ctx is done, then shuts the listener down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.BindAddress,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("websocket listening", zap.String("addr", s.cfg.BindAddress), zap.String("path", s.cfg.Path))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
