package api

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"cookieserve/config"
	"cookieserve/logger"

	"github.com/gorilla/mux"
)

// State is a step in the server lifecycle.
type State int

const (
	StateStarting State = iota
	StateServing
	StateShuttingDown
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateServing:
		return "serving"
	case StateShuttingDown:
		return "shutting_down"
	case StateStopped:
		return "stopped"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Server serves the configured root directory with CORS headers added to
// every response.
type Server struct {
	cfg      *config.Config
	log      *logger.Logger
	router   *mux.Router
	handler  http.Handler
	server   *http.Server
	listener net.Listener

	mu    sync.Mutex
	state State
}

// NewServer builds a server for cfg. Nothing is bound until Listen.
func NewServer(cfg *config.Config, log *logger.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		log:    log,
		router: mux.NewRouter(),
		state:  StateStarting,
	}
	s.setupRoutes()

	// CORS sits outside the router so its own 404/405 paths get the headers too.
	s.handler = s.CORSMiddleware(s.AccessLogMiddleware(s.router))
	s.server = &http.Server{
		Addr:    cfg.Addr(),
		Handler: s.handler,
	}
	return s
}

// Handler returns the complete handler chain.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// State reports where the server is in its lifecycle.
func (s *Server) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Listen binds the configured address. A failure is final: the server moves
// to StateStopped and cannot be started again.
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateStarting || s.listener != nil {
		return fmt.Errorf("cannot listen in state %s", s.state)
	}

	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		s.state = StateStopped
		return fmt.Errorf("failed to bind %s: %w", s.cfg.Addr(), err)
	}
	s.listener = ln

	s.log.Info("Listening", map[string]interface{}{
		"addr": ln.Addr().String(),
		"root": s.cfg.Root(),
	})
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve accepts connections until Close is called. It returns nil after Close.
func (s *Server) Serve() error {
	s.mu.Lock()
	if s.state != StateStarting || s.listener == nil {
		st := s.state
		s.mu.Unlock()
		return fmt.Errorf("cannot serve in state %s", st)
	}
	s.state = StateServing
	ln := s.listener
	s.mu.Unlock()

	if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve failed: %w", err)
	}
	return nil
}

// Close stops the server immediately. In-flight requests are not drained.
func (s *Server) Close() error {
	s.mu.Lock()
	if s.state == StateStopped {
		s.mu.Unlock()
		return nil
	}
	s.state = StateShuttingDown
	ln := s.listener
	s.mu.Unlock()

	s.log.Info("Shutting down server", nil)

	// http.Server.Close also closes the listener once Serve is running; close
	// it directly for the case where Serve was never entered.
	err := s.server.Close()
	if ln != nil {
		if lerr := ln.Close(); lerr != nil && err == nil && !errors.Is(lerr, net.ErrClosed) {
			err = lerr
		}
	}

	s.mu.Lock()
	s.state = StateStopped
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("server close failed: %w", err)
	}
	return nil
}
