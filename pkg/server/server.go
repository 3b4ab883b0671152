// Package server owns the TCP listener and the per-connection pipeline:
// parse one request line, resolve it against the root, build a response and
// write it back. Each accepted connection runs in its own goroutine; the
// only shared state is the immutable configuration.
package server

import (
	"errors"
	"net"

	"github.com/niels/staticserve/pkg/config"
	"github.com/niels/staticserve/pkg/resolve"
	"github.com/niels/staticserve/pkg/response"
	"github.com/rs/zerolog"
)

// Server accepts connections and serves one request per connection
type Server struct {
	cfg      *config.Config
	resolver *resolve.Resolver
	builder  *response.Builder
	logger   zerolog.Logger

	listener net.Listener
}

// New creates a server for a validated configuration. The configuration
// must not be mutated after this point; it is read concurrently by every
// connection goroutine.
func New(cfg *config.Config, logger zerolog.Logger) *Server {
	return &Server{
		cfg:      cfg,
		resolver: resolve.New(cfg.Server.Root, cfg.Server.Suffix),
		builder:  response.NewBuilder(cfg.Server.Root),
		logger:   logger,
	}
}

// ListenAndServe binds the configured address and runs the accept loop.
// A bind failure is returned to the caller; the process decides whether it
// is fatal.
func (s *Server) ListenAndServe() error {
	listener, err := net.Listen("tcp", s.cfg.Server.Listen)
	if err != nil {
		return err
	}
	return s.Serve(listener)
}

// Serve runs the accept loop on an existing listener, dispatching each
// connection to its own goroutine. It returns when the listener is closed.
func (s *Server) Serve(l net.Listener) error {
	s.listener = l

	for {
		conn, err := l.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			// A single failed accept never stops the server
			s.logger.Warn().Err(err).Msg("accept failed")
			continue
		}
		go s.handleConn(conn)
	}
}

// Addr returns the listener's bound address, or empty before Serve
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Close stops the accept loop
func (s *Server) Close() error {
	if s.listener == nil {
		return nil
	}
	return s.listener.Close()
}
