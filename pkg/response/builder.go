// Package response selects HTTP statuses, loads response bodies and
// serializes them onto the wire.
package response

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/niels/staticserve/pkg/resolve"
)

// Fixed bodies used when no file backs the response
const (
	notFoundFallback   = "404 Not Found"
	badRequestBody     = "Bad Request"
	methodNotAllowed   = "Method Not Allowed"
	internalServerBody = "Internal Server Error"
)

// Response is a complete HTTP response ready for serialization
type Response struct {
	StatusCode    int
	StatusMessage string
	Body          []byte
}

// Builder constructs responses for one server root. It holds no mutable
// state and is shared by every connection goroutine.
type Builder struct {
	root string
}

// NewBuilder creates a builder serving fallback pages from the given root
func NewBuilder(root string) *Builder {
	return &Builder{root: root}
}

// FromResolution turns a path resolution into a response.
//
// A Found path that cannot be read as a file (a directory, or a file
// removed since resolution) is answered exactly like NotFound; only a
// Fault outcome produces a 500.
func (b *Builder) FromResolution(res resolve.Resolution) Response {
	switch res.Outcome {
	case resolve.Found:
		body, err := os.ReadFile(res.Path)
		if err != nil {
			return b.NotFound()
		}
		return Response{StatusCode: 200, StatusMessage: "OK", Body: body}
	case resolve.NotFound:
		return b.NotFound()
	default:
		return b.InternalServerError()
	}
}

// NotFound builds a 404 response, serving root/404.html when it is
// readable and a literal fallback body otherwise. The status is 404
// either way.
func (b *Builder) NotFound() Response {
	body, err := os.ReadFile(filepath.Join(b.root, "404.html"))
	if err != nil {
		body = []byte(notFoundFallback)
	}
	return Response{StatusCode: 404, StatusMessage: "Not Found", Body: body}
}

// BadRequest builds the response for an undecodable request path
func (b *Builder) BadRequest() Response {
	return Response{StatusCode: 400, StatusMessage: "Bad Request", Body: []byte(badRequestBody)}
}

// MethodNotAllowed builds the response for any method other than GET
func (b *Builder) MethodNotAllowed() Response {
	return Response{StatusCode: 405, StatusMessage: "Method Not Allowed", Body: []byte(methodNotAllowed)}
}

// InternalServerError builds the response for a server-side fault
func (b *Builder) InternalServerError() Response {
	return Response{StatusCode: 500, StatusMessage: "Internal Server Error", Body: []byte(internalServerBody)}
}

// WriteTo serializes the response onto w and returns the bytes written.
// The content type is always text/html; the server serves HTML pages and
// deliberately does no sniffing.
func (r Response) WriteTo(w io.Writer) (int64, error) {
	header := fmt.Sprintf("HTTP/1.1 %d %s\r\nContent-Length: %d\r\nContent-Type: text/html\r\n\r\n",
		r.StatusCode, r.StatusMessage, len(r.Body))

	n, err := io.WriteString(w, header)
	if err != nil {
		return int64(n), err
	}
	m, err := w.Write(r.Body)
	return int64(n + m), err
}
