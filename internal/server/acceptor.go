package server

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fablecore/fable/internal/config"
	"github.com/fablecore/fable/internal/game/session"
)

// Acceptor is the TCP line server: one connection is one play session. It
// reads input lines, feeds them to the runtime, and writes encoded
// responses back. Implements Service.
type Acceptor struct {
	cfg     config.ServerConfig
	runtime *session.Runtime
	encoder Encoder
	logger  *zap.Logger

	mu       sync.Mutex
	listener net.Listener
	conns    map[net.Conn]bool
	closed   bool
}

// NewAcceptor creates an Acceptor.
//
// Precondition: runtime and logger must be non-nil.
// Postcondition: Returns an error only for an unknown wire mode.
func NewAcceptor(cfg config.ServerConfig, runtime *session.Runtime, logger *zap.Logger) (*Acceptor, error) {
	enc, err := NewEncoder(cfg.Wire)
	if err != nil {
		return nil, err
	}
	return &Acceptor{
		cfg:     cfg,
		runtime: runtime,
		encoder: enc,
		logger:  logger,
		conns:   make(map[net.Conn]bool),
	}, nil
}

// Start listens and serves connections until Stop is called.
//
// Postcondition: Blocks until the listener closes; returns nil on a clean
// shutdown.
func (a *Acceptor) Start() error {
	ln, err := net.Listen("tcp", a.cfg.Addr())
	if err != nil {
		return fmt.Errorf("listening on %s: %w", a.cfg.Addr(), err)
	}

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		ln.Close()
		return nil
	}
	a.listener = ln
	a.mu.Unlock()

	a.logger.Info("listening",
		zap.String("addr", a.cfg.Addr()),
		zap.String("wire", a.cfg.Wire),
	)

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			a.logger.Warn("accept failed", zap.Error(err))
			continue
		}
		a.track(conn, true)
		go a.serve(conn)
	}
}

// ListenAddr returns the bound listener address, or nil before Start.
func (a *Acceptor) ListenAddr() net.Addr {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.listener == nil {
		return nil
	}
	return a.listener.Addr()
}

// Stop closes the listener and all live connections.
func (a *Acceptor) Stop() {
	a.mu.Lock()
	a.closed = true
	if a.listener != nil {
		a.listener.Close()
	}
	for c := range a.conns {
		c.Close()
	}
	a.mu.Unlock()
}

func (a *Acceptor) track(conn net.Conn, add bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if add {
		a.conns[conn] = true
	} else {
		delete(a.conns, conn)
	}
}

// serve runs one connection's session loop. The session dies with the
// connection.
func (a *Acceptor) serve(conn net.Conn) {
	defer conn.Close()
	defer a.track(conn, false)

	sessionID := uuid.NewString()
	defer a.runtime.EndSession(sessionID)

	a.logger.Info("connected",
		zap.String("session", sessionID),
		zap.String("remote", conn.RemoteAddr().String()),
	)

	if !a.write(conn, a.runtime.Greet(sessionID)) {
		return
	}

	scanner := bufio.NewScanner(conn)
	for {
		if a.cfg.ReadTimeout > 0 {
			_ = conn.SetReadDeadline(time.Now().Add(a.cfg.ReadTimeout))
		}
		if !scanner.Scan() {
			break
		}

		resp := a.runtime.ProcessCommand(sessionID, scanner.Text())
		if !a.write(conn, resp) {
			break
		}
		if resp.Done {
			break
		}
	}

	a.logger.Info("disconnected", zap.String("session", sessionID))
}

func (a *Acceptor) write(conn net.Conn, resp session.Response) bool {
	line, err := a.encoder.Encode(resp)
	if err != nil {
		a.logger.Error("encode failed", zap.Error(err))
		return false
	}
	if a.cfg.WriteTimeout > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(a.cfg.WriteTimeout))
	}
	if _, err := fmt.Fprintln(conn, line); err != nil {
		return false
	}
	return true
}
