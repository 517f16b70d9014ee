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

package storage

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// MemStore is an in-memory artifact store used in tests
type MemStore struct {
	mu    sync.Mutex
	Files map[string][]byte
	// RemoveErr, when set, is returned by Remove to simulate a failing
	// cleanup
	RemoveErr error
}

type memFile struct {
	*bytes.Reader
}

func (f memFile) Close() error { return nil }

// Save stores the content in memory under a generated name
func (s *MemStore) Save(src io.Reader, originalName string) (Artifact, error) {
	name, err := uuid.NewRandom()
	if err != nil {
		return Artifact{}, errors.Wrap(err, "generating artifact name")
	}

	content, err := io.ReadAll(src)
	if err != nil {
		return Artifact{}, errors.Wrap(err, "reading artifact")
	}

	relPath := name.String() + strings.ToLower(filepath.Ext(originalName))

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Files == nil {
		s.Files = map[string][]byte{}
	}
	s.Files[relPath] = content

	return Artifact{Path: relPath, Size: int64(len(content))}, nil
}

// Open returns a reader over the stored content
func (s *MemStore) Open(path string) (io.ReadSeekCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	content, ok := s.Files[path]
	if !ok {
		return nil, errors.Wrap(os.ErrNotExist, "opening artifact")
	}

	return memFile{bytes.NewReader(content)}, nil
}

// Remove deletes the stored content
func (s *MemStore) Remove(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.RemoveErr != nil {
		return s.RemoveErr
	}

	if _, ok := s.Files[path]; !ok {
		return errors.Wrap(os.ErrNotExist, "removing artifact")
	}
	delete(s.Files, path)

	return nil
}
