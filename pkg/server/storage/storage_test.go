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
	"io"
	"os"
	"strings"
	"testing"

	"github.com/orthodoxhymn/site/pkg/assert"
	"github.com/pkg/errors"
)

func TestSaveOpenRemove(t *testing.T) {
	s, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatal(errors.Wrap(err, "creating store"))
	}

	artifact, err := s.Save(strings.NewReader("apk bytes"), "hymn-1.0.0.apk")
	if err != nil {
		t.Fatal(errors.Wrap(err, "saving artifact"))
	}

	assert.Equal(t, artifact.Size, int64(len("apk bytes")), "size mismatch")
	assert.Equal(t, strings.HasSuffix(artifact.Path, ".apk"), true, "extension mismatch")
	assert.Equal(t, strings.Contains(artifact.Path, "/"), false, "path should be relative to root")

	f, err := s.Open(artifact.Path)
	if err != nil {
		t.Fatal(errors.Wrap(err, "opening artifact"))
	}
	content, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		t.Fatal(errors.Wrap(err, "reading artifact"))
	}
	assert.Equal(t, string(content), "apk bytes", "content mismatch")

	if err := s.Remove(artifact.Path); err != nil {
		t.Fatal(errors.Wrap(err, "removing artifact"))
	}

	_, err = s.Open(artifact.Path)
	assert.Equal(t, os.IsNotExist(errors.Cause(err)), true, "artifact should be gone")
}
