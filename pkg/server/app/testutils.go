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

package app

import (
	"time"

	"github.com/orthodoxhymn/site/pkg/clock"
	"github.com/orthodoxhymn/site/pkg/server/mailer"
	"github.com/orthodoxhymn/site/pkg/server/storage"
)

// NewTest returns an app configured for a test environment. Individual
// tests override the fields they care about.
func NewTest() App {
	return App{
		Clock:          clock.NewMock(),
		EmailBackend:   &mailer.NoopBackend{},
		Storage:        &storage.MemStore{Files: map[string][]byte{}},
		WebURL:         "http://mock.url",
		AppEnv:         "TEST",
		JWTSecret:      "test-jwt-secret",
		TokenTTL:       time.Hour,
		MaxUploadBytes: 100 << 20,
	}
}
