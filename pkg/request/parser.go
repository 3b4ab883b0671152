// Package request reads and decodes the first line of an HTTP request.
//
// The server answers exactly one request per connection and never looks at
// headers or a body, so this is the whole inbound protocol surface: one
// line of the form "METHOD SP PATH [SP VERSION]".
package request

import (
	"bufio"
	"errors"
	"io"
	"net/url"
	"strings"
	"unicode/utf8"
)

// MaxLineLength bounds the request line so a misbehaving client cannot make
// the server buffer without limit.
const MaxLineLength = 8192

var (
	// ErrConnectionClosed is returned when the stream ends before a
	// complete request line arrives
	ErrConnectionClosed = errors.New("connection closed before request line")
	// ErrMalformedPath is returned when the request path cannot be
	// percent-decoded to valid UTF-8, or the request line is oversized
	ErrMalformedPath = errors.New("malformed request path")
)

// Request is the parsed first line of one connection's input
type Request struct {
	Method  string
	RawPath string // path exactly as sent
	Path    string // percent-decoded path
}

// Parse reads one request line from r and splits it into method and path.
//
// A stream that closes before the line terminator fails with
// ErrConnectionClosed and no request. A path that does not percent-decode
// to valid UTF-8 fails with ErrMalformedPath; the returned request still
// carries the method and raw path so the caller can reject a non-GET method
// before reporting the bad encoding.
func Parse(r io.Reader) (*Request, error) {
	reader := bufio.NewReaderSize(r, MaxLineLength)

	// ReadSlice fails with ErrBufferFull instead of growing, which is the
	// bound we want on the line length
	raw, err := reader.ReadSlice('\n')
	if err != nil {
		if err == bufio.ErrBufferFull {
			return nil, ErrMalformedPath
		}
		// io.EOF or any transport error before the terminator
		return nil, ErrConnectionClosed
	}
	line := strings.TrimRight(string(raw), "\r\n")

	req := &Request{RawPath: "/"}

	parts := strings.Fields(line)
	if len(parts) > 0 {
		req.Method = parts[0]
	}
	if len(parts) > 1 {
		req.RawPath = parts[1]
	}
	// The version token and everything after it is ignored

	decoded, err := url.PathUnescape(req.RawPath)
	if err != nil || !utf8.ValidString(decoded) {
		return req, ErrMalformedPath
	}
	req.Path = decoded

	return req, nil
}
