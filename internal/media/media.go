// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package media stores generated media bytes under a local root and returns
// servable URL paths.
package media

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// NewStore returns a Store writing under root, serving at baseURL
// (e.g. /media).
func NewStore(root string, baseURL string) *Store {
	return &Store{
		root:    root,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Store writes media files to the local filesystem.
type Store struct {
	root    string
	baseURL string
}

// Write stores data at the given relative path and returns the URL path it
// is served from. Parent directories are created as needed.
func (s *Store) Write(_ context.Context, name string, data []byte) (string, error) {
	name = path.Clean("/" + name)[1:]
	dst := filepath.Join(s.root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("media: creating media directory: %w", err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", fmt.Errorf("media: writing media file: %w", err)
	}
	return s.baseURL + "/" + name, nil
}

// Root returns the filesystem root for serving.
func (s *Store) Root() string {
	return s.root
}
