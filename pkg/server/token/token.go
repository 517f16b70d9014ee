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

// Package token signs and verifies the bearer credentials that carry
// an authenticated identity
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/orthodoxhymn/site/pkg/server/database"
	"github.com/pkg/errors"
)

// ErrInvalid is an error for a credential that fails verification,
// including an expired one
var ErrInvalid = errors.New("invalid or expired token")

// Claims is the payload encoded in a signed credential
type Claims struct {
	UserID   int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Create signs a new credential for the given user. The credential
// expires at now+ttl.
func Create(secret string, user database.User, now time.Time, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}

	return signed, nil
}

// Verify parses the given credential and validates its signature and
// expiry against the secret. Any failure is reported as ErrInvalid so
// that callers reject expired and forged credentials the same way.
func Verify(secret, value string) (Claims, error) {
	var claims Claims

	t, err := jwt.ParseWithClaims(value, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}

		return []byte(secret), nil
	})
	if err != nil || !t.Valid {
		return Claims{}, ErrInvalid
	}

	return claims, nil
}
