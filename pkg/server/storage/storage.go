/* Copyright 2025 Orthodox Hymn Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package storage persists uploaded release artifacts. Version rows keep
// the relative path returned by Save; the path is resolved against the
// store root when serving.
package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Artifact describes a stored file
type Artifact struct {
	Path string
	Size int64
}

// Store is an interface to the artifact storage
type Store interface {
	Save(src io.Reader, originalName string) (Artifact, error)
	Open(path string) (io.ReadSeekCloser, error)
	Remove(path string) error
}

// LocalStore stores artifacts on the local filesystem under Root
type LocalStore struct {
	Root string
}

// NewLocalStore creates the root directory if needed and returns a store
func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, errors.Wrapf(err, "creating upload directory at %s", root)
	}

	return &LocalStore{Root: root}, nil
}

// Save writes the given content under a generated name, keeping the
// original extension. It returns the relative path and the number of
// bytes written.
func (s *LocalStore) Save(src io.Reader, originalName string) (Artifact, error) {
	name, err := uuid.NewRandom()
	if err != nil {
		return Artifact{}, errors.Wrap(err, "generating artifact name")
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	relPath := name.String() + ext

	f, err := os.Create(filepath.Join(s.Root, relPath))
	if err != nil {
		return Artifact{}, errors.Wrap(err, "creating artifact file")
	}

	size, err := io.Copy(f, src)
	if err != nil {
		f.Close()
		os.Remove(filepath.Join(s.Root, relPath))
		return Artifact{}, errors.Wrap(err, "writing artifact")
	}

	if err := f.Close(); err != nil {
		return Artifact{}, errors.Wrap(err, "closing artifact file")
	}

	return Artifact{Path: relPath, Size: size}, nil
}

// Open opens the artifact at the given relative path for reading
func (s *LocalStore) Open(path string) (io.ReadSeekCloser, error) {
	f, err := os.Open(filepath.Join(s.Root, path))
	if err != nil {
		return nil, errors.Wrap(err, "opening artifact")
	}

	return f, nil
}

// Remove deletes the artifact at the given relative path
func (s *LocalStore) Remove(path string) error {
	if err := os.Remove(filepath.Join(s.Root, path)); err != nil {
		return errors.Wrap(err, "removing artifact")
	}

	return nil
}
