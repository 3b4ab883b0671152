// Package resolve maps decoded request paths to files under the server root.
//
// The containment check here is what keeps the server from ever serving a
// file outside the configured root: candidates are canonicalized through the
// filesystem (symlinks included) before being compared against the canonical
// root, and anything that lands outside is reported exactly like a file that
// does not exist.
package resolve

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"syscall"
)

// Outcome classifies the result of resolving one request path
type Outcome int

const (
	// Found means the path canonicalized to a file inside the root
	Found Outcome = iota
	// NotFound covers both a missing file and a canonical path outside
	// the root; callers must not be able to tell the two apart
	NotFound
	// Fault is a filesystem error unrelated to existence, such as a
	// permission failure while canonicalizing
	Fault
)

// Resolution is the ephemeral result of resolving one request path.
// Path is only meaningful when Outcome is Found; Err only when it is Fault.
type Resolution struct {
	Outcome Outcome
	Path    string
	Err     error
}

// Resolver maps request paths to canonical file paths beneath a root
// directory. The root must already be canonical (absolute, symlinks
// resolved), which config.Validate guarantees.
type Resolver struct {
	root   string
	suffix string
}

// New creates a resolver for the given canonical root and file suffix
func New(root, suffix string) *Resolver {
	return &Resolver{root: root, suffix: suffix}
}

// Resolve maps a decoded request path to a file beneath the root.
//
// "/" maps to root/index.html; any other path has one leading slash
// stripped and the suffix appended. The candidate is canonicalized through
// the filesystem and must remain inside the root.
func (r *Resolver) Resolve(path string) Resolution {
	var candidate string
	if path == "/" {
		candidate = filepath.Join(r.root, "index.html")
	} else {
		// Join is not used here: it would clean ".." segments away and
		// mask traversal attempts instead of letting the containment
		// check reject them
		candidate = r.root + string(filepath.Separator) + strings.TrimPrefix(path, "/") + r.suffix
	}

	canonical, err := filepath.EvalSymlinks(candidate)
	if err != nil {
		// ENOTDIR means a path component exists but is a regular file,
		// so the candidate itself does not exist. It must classify as
		// a plain miss: answering it differently would reveal the
		// existence of files the path traverses through
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return Resolution{Outcome: NotFound}
		}
		return Resolution{Outcome: Fault, Err: err}
	}

	if !r.contains(canonical) {
		// Indistinguishable from a missing file on purpose
		return Resolution{Outcome: NotFound}
	}

	return Resolution{Outcome: Found, Path: canonical}
}

// contains reports whether the canonical path is the root itself or a
// descendant of it. The comparison is component-wise: "/root-evil" must not
// match a root of "/root".
func (r *Resolver) contains(canonical string) bool {
	if canonical == r.root {
		return true
	}
	prefix := r.root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(canonical, prefix)
}
