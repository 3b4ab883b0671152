package response

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/niels/staticserve/pkg/resolve"
)

func newTestRoot(t *testing.T) string {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "staticserve-response-test")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	return tempDir
}

func TestFromResolutionFound(t *testing.T) {
	root := newTestRoot(t)
	content := []byte("<h1>hello</h1>")
	path := filepath.Join(root, "page.html")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	builder := NewBuilder(root)
	resp := builder.FromResolution(resolve.Resolution{Outcome: resolve.Found, Path: path})

	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
	if resp.StatusMessage != "OK" {
		t.Errorf("Expected status message 'OK', got '%s'", resp.StatusMessage)
	}
	if !bytes.Equal(resp.Body, content) {
		t.Errorf("Expected body %q, got %q", content, resp.Body)
	}
}

func TestFromResolutionUnreadableFile(t *testing.T) {
	root := newTestRoot(t)

	// A directory at the resolved path cannot be read as a file; the
	// response must be the same 404 as for a missing file, never a 500
	dirPath := filepath.Join(root, "subdir")
	if err := os.Mkdir(dirPath, 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	builder := NewBuilder(root)
	resp := builder.FromResolution(resolve.Resolution{Outcome: resolve.Found, Path: dirPath})

	if resp.StatusCode != 404 {
		t.Errorf("Expected status 404 for unreadable-as-file path, got %d", resp.StatusCode)
	}
	if string(resp.Body) != "404 Not Found" {
		t.Errorf("Expected literal fallback body, got %q", resp.Body)
	}
}

func TestNotFoundWithFallbackPage(t *testing.T) {
	root := newTestRoot(t)
	fallback := []byte("<h1>custom not found</h1>")
	if err := os.WriteFile(filepath.Join(root, "404.html"), fallback, 0644); err != nil {
		t.Fatalf("Failed to write 404.html: %v", err)
	}

	builder := NewBuilder(root)
	resp := builder.FromResolution(resolve.Resolution{Outcome: resolve.NotFound})

	if resp.StatusCode != 404 {
		t.Errorf("Expected status 404, got %d", resp.StatusCode)
	}
	if !bytes.Equal(resp.Body, fallback) {
		t.Errorf("Expected 404.html bytes %q, got %q", fallback, resp.Body)
	}
}

func TestNotFoundWithoutFallbackPage(t *testing.T) {
	root := newTestRoot(t)

	builder := NewBuilder(root)
	resp := builder.NotFound()

	if resp.StatusCode != 404 {
		t.Errorf("Expected status 404, got %d", resp.StatusCode)
	}
	if string(resp.Body) != "404 Not Found" {
		t.Errorf("Expected literal body '404 Not Found', got %q", resp.Body)
	}
}

func TestFixedResponses(t *testing.T) {
	builder := NewBuilder(newTestRoot(t))

	resp := builder.BadRequest()
	if resp.StatusCode != 400 || string(resp.Body) != "Bad Request" {
		t.Errorf("Unexpected 400 response: %d %q", resp.StatusCode, resp.Body)
	}

	resp = builder.MethodNotAllowed()
	if resp.StatusCode != 405 || string(resp.Body) != "Method Not Allowed" {
		t.Errorf("Unexpected 405 response: %d %q", resp.StatusCode, resp.Body)
	}

	resp = builder.InternalServerError()
	if resp.StatusCode != 500 || string(resp.Body) != "Internal Server Error" {
		t.Errorf("Unexpected 500 response: %d %q", resp.StatusCode, resp.Body)
	}

	resp = builder.FromResolution(resolve.Resolution{Outcome: resolve.Fault, Err: os.ErrPermission})
	if resp.StatusCode != 500 {
		t.Errorf("Expected Fault outcome to map to 500, got %d", resp.StatusCode)
	}
}

func TestWriteTo(t *testing.T) {
	resp := Response{StatusCode: 200, StatusMessage: "OK", Body: []byte("<p>hi</p>")}

	var buf bytes.Buffer
	n, err := resp.WriteTo(&buf)
	if err != nil {
		t.Fatalf("Failed to serialize response: %v", err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("Expected %d bytes written, got %d", buf.Len(), n)
	}

	expected := fmt.Sprintf("HTTP/1.1 200 OK\r\nContent-Length: %d\r\nContent-Type: text/html\r\n\r\n<p>hi</p>", len("<p>hi</p>"))
	if buf.String() != expected {
		t.Errorf("Expected wire format %q, got %q", expected, buf.String())
	}
}
