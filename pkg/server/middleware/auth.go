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

// Package middleware provides the http middlewares
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/orthodoxhymn/site/pkg/server/context"
	"github.com/orthodoxhymn/site/pkg/server/database"
	"github.com/orthodoxhymn/site/pkg/server/log"
	"github.com/orthodoxhymn/site/pkg/server/token"
	pkgErrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// GetCredential extracts the bearer token from the Authorization header.
// It returns an empty string if the header is absent.
func GetCredential(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", nil
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("malformed authorization header")
	}

	return parts[1], nil
}

func authWithToken(db *gorm.DB, jwtSecret string, r *http.Request) (database.User, bool, error) {
	var user database.User

	credential, err := GetCredential(r)
	if err != nil {
		return user, false, pkgErrors.Wrap(err, "getting credential")
	}
	if credential == "" {
		return user, false, nil
	}

	claims, err := token.Verify(jwtSecret, credential)
	if err != nil {
		return user, false, pkgErrors.Wrap(err, "verifying token")
	}

	err = db.Where("id = ?", claims.UserID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user, false, nil
	} else if err != nil {
		return user, false, pkgErrors.Wrap(err, "finding user")
	}

	return user, true, nil
}

// Auth is an authentication middleware. It requires a valid bearer token
// and loads the current account state before invoking the handler.
func Auth(db *gorm.DB, jwtSecret string, next http.HandlerFunc) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		credential, err := GetCredential(r)
		if err != nil || credential == "" {
			RespondUnauthorized(w, "Access token required")
			return
		}

		user, ok, err := authWithToken(db, jwtSecret, r)
		if err != nil {
			if pkgErrors.Is(err, token.ErrInvalid) {
				RespondUnauthorized(w, "Invalid or expired token")
				return
			}

			DoError(w, "authenticating with token", err, http.StatusInternalServerError)
			return
		}
		if !ok {
			RespondUnauthorized(w, "Invalid or expired token")
			return
		}

		ctx := context.WithUser(r.Context(), &user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth is an authentication middleware that attaches the account
// when a valid bearer token is present, and proceeds anonymously otherwise.
func OptionalAuth(db *gorm.DB, jwtSecret string, next http.HandlerFunc) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok, err := authWithToken(db, jwtSecret, r)
		if err != nil && !pkgErrors.Is(err, token.ErrInvalid) {
			// log the error and continue anonymously
			log.ErrorWrap(err, "authenticating with token")
		}

		ctx := r.Context()
		if ok {
			ctx = context.WithUser(ctx, &user)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
