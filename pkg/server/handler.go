package server

import (
	"errors"
	"net"

	"github.com/niels/staticserve/pkg/request"
	"github.com/niels/staticserve/pkg/resolve"
	"github.com/niels/staticserve/pkg/response"
)

// handleConn serves exactly one request on conn and closes it.
//
// Per connection the flow is parse, resolve, build, write; any stage may
// short-circuit straight to writing an error response, and an unreadable
// request line drops the connection with no response at all.
func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	remote := conn.RemoteAddr().String()

	req, err := request.Parse(conn)
	if errors.Is(err, request.ErrConnectionClosed) {
		// Peer went away before sending a line; nothing to answer
		s.logger.Debug().Str("remote", remote).Msg("connection closed before request line")
		return
	}

	resp := s.buildResponse(req, err)

	n, werr := resp.WriteTo(conn)
	if werr != nil {
		s.logger.Debug().Err(werr).Str("remote", remote).Msg("failed to write response")
		return
	}

	method, path := "", ""
	if req != nil {
		method, path = req.Method, req.RawPath
	}
	s.logger.Info().
		Str("remote", remote).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Int64("bytes", n).
		Msg("request served")
}

// buildResponse classifies the parse outcome and resolves the path into a
// complete response. A non-GET method is rejected before the path is even
// looked at, so a bad path on a POST is still a 405.
func (s *Server) buildResponse(req *request.Request, parseErr error) response.Response {
	if req == nil {
		// Request line too long to split into tokens at all
		return s.builder.BadRequest()
	}
	if req.Method != "GET" {
		return s.builder.MethodNotAllowed()
	}
	if parseErr != nil {
		// Only ErrMalformedPath reaches this point
		return s.builder.BadRequest()
	}

	res := s.resolver.Resolve(req.Path)
	if res.Outcome == resolve.Fault {
		s.logger.Error().Err(res.Err).Str("path", req.Path).Msg("path resolution failed")
	}
	return s.builder.FromResolution(res)
}
