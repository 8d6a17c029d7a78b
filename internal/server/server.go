// Package server implements the RESP connection server: an accept loop
// plus a per-connection read-decode-execute-encode loop.
package server

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/time/rate"

	"github.com/kvlabs/rudis/internal/command"
	"github.com/kvlabs/rudis/internal/executor"
	"github.com/kvlabs/rudis/internal/resp"
	"github.com/kvlabs/rudis/internal/store"
	"github.com/kvlabs/rudis/internal/telemetry/logger"
	"github.com/kvlabs/rudis/internal/telemetry/metric"
)

// Config holds the connection server configuration.
type Config struct {
	// Addr is the TCP address to listen on.
	Addr string
	// ReadTimeout is the per-command read deadline (default: 30s).
	ReadTimeout time.Duration
	// WriteTimeout is the reply write deadline (default: 30s).
	WriteTimeout time.Duration
	// IdleTimeout is the deadline for the next command on an otherwise
	// idle connection (default: 5m).
	IdleTimeout time.Duration
	// RateLimit is the maximum commands per second per connection.
	// Zero or negative means unlimited.
	RateLimit float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Addr:         "127.0.0.1:6379",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  5 * time.Minute,
		RateLimit:    0,
	}
}

// Server is the RESP connection server.
type Server struct {
	cfg     *Config
	store   *store.Store
	metrics *metric.Registry
	log     logger.Logger

	ln      net.Listener
	running atomic.Bool
	wg      sync.WaitGroup
}

// New creates a RESP connection server backed by st.
func New(cfg *Config, st *store.Store, metrics *metric.Registry, log logger.Logger) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if metrics == nil {
		metrics = metric.Global()
	}
	if log == nil {
		log = logger.Default()
	}
	return &Server{cfg: cfg, store: st, metrics: metrics, log: log}
}

// Start binds the listener and begins accepting connections in the
// background. It returns once the listener is bound.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.running.Store(true)

	s.log.Info("rudis listening", "addr", ln.Addr().String())

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.acceptLoop(ctx); err != nil && s.running.Load() {
			s.log.Error("accept loop error", "error", err)
		}
	}()

	return nil
}

// Shutdown closes the listener and waits for in-flight connections to
// finish, bounded by ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	s.running.Store(false)

	var firstErr error
	if s.ln != nil {
		if err := s.ln.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return firstErr
}

func (s *Server) acceptLoop(ctx context.Context) error {
	for {
		c, err := s.ln.Accept()
		if err != nil {
			if !s.running.Load() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			return err
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.serveConn(ctx, c)
		}()
	}
}

func (s *Server) serveConn(ctx context.Context, c net.Conn) {
	connID := ulid.Make().String()
	ctx = logger.WithConnID(ctx, connID)
	ctx = logger.WithLogger(ctx, s.log)
	log := logger.L(ctx)

	s.metrics.IncConnectionActive()
	defer s.metrics.DecConnectionActive()

	log.Info("connection accepted", "remote", c.RemoteAddr().String())
	defer func() {
		_ = c.Close()
		log.Info("connection closed", "remote", c.RemoteAddr().String())
	}()

	var limiter *rate.Limiter
	if s.cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(s.cfg.RateLimit), int(s.cfg.RateLimit))
	}

	br := bufio.NewReader(c)
	bw := bufio.NewWriter(c)

	for {
		if err := c.SetReadDeadline(time.Now().Add(s.cfg.IdleTimeout)); err != nil {
			return
		}
		if _, err := br.Peek(1); err != nil {
			logReadTermination(log, err)
			return
		}

		if err := c.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout)); err != nil {
			return
		}

		v, err := resp.Decode(br)
		if err != nil {
			if errors.Is(err, resp.ErrEOF) {
				return
			}
			s.metrics.IncProtocolError()
			logReadTermination(log, err)
			_ = writeReply(c, bw, s.cfg.WriteTimeout, resp.ErrorValue("ERR protocol error: "+err.Error()))
			return
		}

		args, err := requestArgs(v)
		if err != nil {
			s.metrics.IncProtocolError()
			_ = writeReply(c, bw, s.cfg.WriteTimeout, resp.ErrorValue("ERR "+err.Error()))
			continue
		}
		if len(args) == 0 {
			continue
		}

		if limiter != nil && !limiter.Allow() {
			log.Warn("rate limit exceeded", "remote", c.RemoteAddr().String())
			_ = writeReply(c, bw, s.cfg.WriteTimeout, resp.ErrorValue("ERR rate limit exceeded"))
			continue
		}

		reply := s.handle(args)

		if err := writeReply(c, bw, s.cfg.WriteTimeout, reply); err != nil {
			return
		}
	}
}

func (s *Server) handle(args [][]byte) resp.Value {
	start := time.Now()

	cmd, err := command.Parse(args)
	if err != nil {
		return resp.ErrorValue(err.Error())
	}

	reply := executor.Execute(cmd, s.store)

	s.metrics.RecordCommand(string(cmd.Name))
	s.metrics.ObserveCommandDuration(string(cmd.Name), time.Since(start).Seconds())

	return reply
}

func writeReply(c net.Conn, bw *bufio.Writer, timeout time.Duration, v resp.Value) error {
	if err := c.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
		return err
	}
	if err := resp.Encode(bw, v); err != nil {
		return err
	}
	return bw.Flush()
}

// requestArgs converts a decoded RESP value into command arguments. A
// client request is always an array of bulk strings per spec.md §4.3.
func requestArgs(v resp.Value) ([][]byte, error) {
	if v.Kind != resp.Array || v.IsNull || len(v.Items) == 0 {
		return nil, command.ErrEmptyRequest
	}
	args := make([][]byte, 0, len(v.Items))
	for _, item := range v.Items {
		if item.Kind != resp.BulkString || item.IsNull {
			return nil, command.ErrEmptyRequest
		}
		args = append(args, item.Bulk)
	}
	return args, nil
}

func logReadTermination(log logger.Logger, err error) {
	if errors.Is(err, io.EOF) {
		return
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		log.Debug("connection timed out")
		return
	}
	log.Debug("connection read error", "error", err)
}
