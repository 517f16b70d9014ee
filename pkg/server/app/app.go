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

// Package app implements the application core. Every entity operation is
// a method on App and takes the acting user explicitly where it matters.
package app

import (
	"math"
	"time"

	"github.com/orthodoxhymn/site/pkg/clock"
	"github.com/orthodoxhymn/site/pkg/server/mailer"
	"github.com/orthodoxhymn/site/pkg/server/storage"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	// ErrEmptyDB is an error for missing database connection in the app configuration
	ErrEmptyDB = errors.New("No database connection was provided")
	// ErrEmptyClock is an error for missing clock in the app configuration
	ErrEmptyClock = errors.New("No clock was provided")
	// ErrEmptyWebURL is an error for missing WebURL content in the app configuration
	ErrEmptyWebURL = errors.New("No WebURL was provided")
	// ErrEmptyEmailBackend is an error for missing EmailBackend content in the app configuration
	ErrEmptyEmailBackend = errors.New("No EmailBackend was provided")
	// ErrEmptyStorage is an error for missing artifact storage in the app configuration
	ErrEmptyStorage = errors.New("No artifact storage was provided")
	// ErrEmptyJWTSecret is an error for missing token signing secret in the app configuration
	ErrEmptyJWTSecret = errors.New("No JWT secret was provided")
)

// App is an application context
type App struct {
	DB                  *gorm.DB
	Clock               clock.Clock
	EmailBackend        mailer.Backend
	Storage             storage.Store
	WebURL              string
	AppEnv              string
	JWTSecret           string
	TokenTTL            time.Duration
	MaxUploadBytes      int64
	DisableRegistration bool
	Port                string
	DBPath              string
}

// Validate validates the app configuration
func (a *App) Validate() error {
	if a.WebURL == "" {
		return ErrEmptyWebURL
	}
	if a.Clock == nil {
		return ErrEmptyClock
	}
	if a.EmailBackend == nil {
		return ErrEmptyEmailBackend
	}
	if a.DB == nil {
		return ErrEmptyDB
	}
	if a.Storage == nil {
		return ErrEmptyStorage
	}
	if a.JWTSecret == "" {
		return ErrEmptyJWTSecret
	}

	return nil
}

// IsProd checks if the app environment is configured to be production
func (a *App) IsProd() bool {
	return a.AppEnv == "PRODUCTION"
}

// Pagination describes the position of a page within a filtered listing
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// normalizePageLimit clamps the given page and limit to their valid ranges
func normalizePageLimit(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	return page, limit
}

func newPagination(page, limit int, total int64) Pagination {
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}
}
