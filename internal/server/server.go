// Package server owns the network boundary: the accept loop, the
// line-oriented text protocol, and the dispatch of parsed commands onto
// the store. The store itself never touches a socket.
package server

import (
	"errors"
	"io"
	"net"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/Legacy-Engineers/medusa/internal/config"
	"github.com/Legacy-Engineers/medusa/internal/telemetry"
	"go.uber.org/zap"
)

// Server accepts client connections and runs one handler goroutine per
// connection. Connection count is capped by a counting semaphore sized from
// the configuration.
type Server struct {
	engine  *Engine
	logger  *zap.Logger
	timeout time.Duration
	sem     chan struct{}
	wg      sync.WaitGroup
}

func NewServer(engine *Engine, cfg *config.Config, logger *zap.Logger) *Server {
	var timeout time.Duration
	if cfg.Server.EnableTimeouts {
		timeout = cfg.Server.ConnectionTimeout
	}
	return &Server{
		engine:  engine,
		logger:  logger,
		timeout: timeout,
		sem:     make(chan struct{}, cfg.Server.MaxConnections),
	}
}

// Serve accepts connections until the listener is closed.
func (s *Server) Serve(listener net.Listener) error {
	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.logger.Error("accept error", zap.Error(err))
			continue
		}

		s.sem <- struct{}{}
		s.wg.Add(1)
		go func() {
			defer func() {
				s.wg.Done()
				<-s.sem
			}()
			s.handleConnection(conn)
		}()
	}
}

// Wait blocks until every in-flight connection handler has finished.
func (s *Server) Wait() {
	s.wg.Wait()
}

func (s *Server) handleConnection(conn net.Conn) {
	telemetry.ConnectionsTotal.Inc()
	telemetry.ConnectionsActive.Inc()
	defer telemetry.ConnectionsActive.Dec()

	peer := NewPeer(conn)
	defer peer.Close() //nolint:errcheck

	if s.logger.Core().Enabled(zap.DebugLevel) {
		s.logger.Debug("client connected", zap.String("addr", peer.RemoteAddr()))
	}
	defer func() {
		if s.logger.Core().Enabled(zap.DebugLevel) {
			s.logger.Debug("client disconnected", zap.String("addr", peer.RemoteAddr()))
		}
	}()

	if err := peer.Send(welcomeMessage); err != nil {
		s.logger.Warn("failed to send welcome message", zap.Error(err))
		return
	}

	for {
		if err := peer.SetReadDeadline(s.timeout); err != nil {
			return
		}

		line, err := peer.ReadLine()
		if err != nil {
			if err != io.EOF && !errors.Is(err, os.ErrDeadlineExceeded) {
				s.logger.Warn("read command failed", zap.Error(err))
			}
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err := peer.Send("ERROR: Empty command"); err != nil {
				return
			}
			continue
		}

		verb := strings.ToUpper(parts[0])
		if verb == "QUIT" || verb == "EXIT" {
			peer.Send("OK: Goodbye!") //nolint:errcheck
			return
		}

		response := s.engine.Execute(verb, parts[1:])

		if err := peer.Send(response); err != nil {
			s.logger.Error("error writing response", zap.Error(err))
			return
		}
	}
}
