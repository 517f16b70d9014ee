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

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/orthodoxhymn/site/pkg/assert"
)

func TestLookupIP(t *testing.T) {
	t.Run("remote addr", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "203.0.113.7:1234"

		assert.Equal(t, LookupIP(req), "203.0.113.7:1234", "ip mismatch")
	})

	t.Run("x-real-ip", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		req.Header.Set("X-Real-IP", "203.0.113.7")

		assert.Equal(t, LookupIP(req), "203.0.113.7", "ip mismatch")
	})

	t.Run("x-forwarded-for wins", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		req.Header.Set("X-Real-IP", "198.51.100.1")
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 198.51.100.2")

		assert.Equal(t, LookupIP(req), "203.0.113.7", "the first forwarded address should win")
	})
}

func TestLimit(t *testing.T) {
	rl := NewRateLimiter(1, time.Hour, 2)

	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	doReq := func(ip string) int {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("X-Real-IP", ip)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w.Code
	}

	// burst of 2, then rejected
	assert.Equal(t, doReq("203.0.113.7"), http.StatusOK, "first request should pass")
	assert.Equal(t, doReq("203.0.113.7"), http.StatusOK, "second request should pass")
	assert.Equal(t, doReq("203.0.113.7"), http.StatusTooManyRequests, "third request should be limited")

	// the limit is per IP
	assert.Equal(t, doReq("203.0.113.8"), http.StatusOK, "another ip should not be limited")
}
