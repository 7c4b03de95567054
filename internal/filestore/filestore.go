package filestore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when a request path resolves to no regular
// file under the document root.
var ErrNotFound = errors.New("file not found")

// Store resolves request paths against a document root and opens them
// for reading. Directory-style paths (trailing slash) are rewritten to
// the configured index file.
type Store struct {
	root  string
	index string
}

// New creates a new Store rooted at root, using index as the filename
// appended to directory-style request paths.
func New(root, index string) *Store {
	return &Store{
		root:  root,
		index: index,
	}
}

// Open resolves requestPath under the document root and opens the
// resulting file for reading. The caller owns the returned resource and
// must close it.
//
// Missing paths and directories yield ErrNotFound. Files that exist but
// cannot be opened yield a wrapped error; callers are expected to
// present both cases identically to clients.
func (s *Store) Open(requestPath string) (*FileResource, error) {
	// Prevent directory traversal
	if strings.Contains(requestPath, "..") {
		return nil, ErrNotFound
	}

	if requestPath == "" || strings.HasSuffix(requestPath, "/") {
		requestPath += s.index
	}

	fullPath := filepath.Join(s.root, filepath.FromSlash(requestPath))

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("stat %s: %w", fullPath, err)
	}
	if info.IsDir() {
		return nil, ErrNotFound
	}

	file, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", fullPath, err)
	}

	return newFileResource(file, fullPath, info), nil
}
