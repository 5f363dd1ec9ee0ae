package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/shoplist/internal/discovery"
	"github.com/muurk/shoplist/internal/logging"
)

// DefaultShutdownTimeout bounds how long Shutdown waits for in-flight requests.
const DefaultShutdownTimeout = 10 * time.Second

// Config holds the server configuration
type Config struct {
	Host string
	Port int

	// Advertise publishes the API over mDNS as InstanceName
	Advertise    bool
	InstanceName string

	// EventLogSize is how many analytics events are kept (0 = default)
	EventLogSize int
}

// Server serves the shopping list API
type Server struct {
	config *Config
	store  *Store
	events *EventLog

	mu        sync.Mutex
	listener  net.Listener
	httpSrv   *http.Server
	advert    *discovery.Advertisement
	serveDone chan struct{}
	serving   bool
}

// New creates a server for store.
func New(config *Config, store *Store) *Server {
	return &Server{
		config: config,
		store:  store,
		events: NewEventLog(config.EventLogSize),
	}
}

// Events returns the analytics events received so far.
func (s *Server) Events() *EventLog { return s.events }

// Addr returns the listening address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Listen binds the configured address and starts serving in the background.
func (s *Server) Listen() error {
	addr := net.JoinHostPort(s.config.Host, fmt.Sprint(s.config.Port))

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	httpSrv := &http.Server{
		Handler:           NewHandler(s.store, s.events),
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.mu.Lock()
	s.listener = listener
	s.httpSrv = httpSrv
	s.serveDone = make(chan struct{})
	s.mu.Unlock()

	logging.Info("Server listening for connections", zap.String("addr", listener.Addr().String()))

	if s.config.Advertise {
		port := listener.Addr().(*net.TCPAddr).Port
		advert, err := discovery.Advertise(s.config.InstanceName, port)
		if err != nil {
			// Discovery is optional; clients can still use an explicit URL.
			logging.Warn("mDNS advertisement failed", zap.Error(err))
		} else {
			s.mu.Lock()
			s.advert = advert
			s.mu.Unlock()
		}
	}

	return nil
}

// Serve runs the HTTP server on the bound listener until it is shut down.
func (s *Server) Serve() error {
	s.mu.Lock()
	httpSrv, listener, done := s.httpSrv, s.listener, s.serveDone
	if httpSrv == nil || s.serving {
		s.mu.Unlock()
		return errors.New("server is not listening or already serving")
	}
	s.serving = true
	s.mu.Unlock()
	defer close(done)

	if err := httpSrv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// Start listens and blocks until SIGINT/SIGTERM or a serve error.
func (s *Server) Start() error {
	logging.Info("Starting shopping list API",
		zap.String("host", s.config.Host),
		zap.Int("port", s.config.Port),
		zap.Bool("advertise", s.config.Advertise),
	)

	if err := s.Listen(); err != nil {
		return err
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Serve()
	}()

	select {
	case <-sigChan:
		logging.Info("Shutdown signal received, stopping server...")
		ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
		return s.Shutdown(ctx)
	case err := <-errChan:
		return err
	}
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")

	s.mu.Lock()
	httpSrv, advert, done := s.httpSrv, s.advert, s.serveDone
	listener, serving := s.listener, s.serving
	s.advert = nil
	s.mu.Unlock()

	if advert != nil {
		advert.Shutdown()
	}

	// Hijacked websocket connections are not tracked by http.Server.
	s.events.CloseStreams()

	if !serving && listener != nil {
		_ = listener.Close()
	}

	var err error
	if httpSrv != nil {
		if err = httpSrv.Shutdown(ctx); err != nil {
			logging.Warn("Shutdown timeout, forcing close", zap.Error(err))
			_ = httpSrv.Close()
		}
		if serving {
			select {
			case <-done:
			case <-ctx.Done():
			}
		}
	}

	logging.Info("Server stopped")
	logging.Sync()
	return err
}
