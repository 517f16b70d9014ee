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

package controllers

import (
	"net/http"

	"github.com/orthodoxhymn/site/pkg/server/app"
	"github.com/orthodoxhymn/site/pkg/server/middleware"
)

// NewRatings creates a new Ratings controller
func NewRatings(app *app.App) *Ratings {
	return &Ratings{app: app}
}

// Ratings is a rating controller. Ratings are keyed by client IP, so
// none of the handlers require authentication.
type Ratings struct {
	app *app.App
}

// SubmitRatingForm is the payload for submitting a rating
type SubmitRatingForm struct {
	VersionID int `json:"versionId"`
	Rating    int `json:"rating"`
}

// Create handles POST /ratings. Submitting again from the same IP for
// the same version replaces the earlier rating.
func (c *Ratings) Create(w http.ResponseWriter, r *http.Request) {
	var form SubmitRatingForm
	if err := parseRequestData(r, &form); err != nil {
		handleJSONError(c.app, w, err, "parsing payload")
		return
	}

	if err := c.app.SubmitRating(form.VersionID, form.Rating, middleware.LookupIP(r)); err != nil {
		handleJSONError(c.app, w, err, "submitting rating")
		return
	}

	respondMessage(w, http.StatusCreated, "Rating submitted successfully")
}

// Stats handles GET /versions/{versionID}/ratings
func (c *Ratings) Stats(w http.ResponseWriter, r *http.Request) {
	id, err := getIntParam(r, "versionID")
	if err != nil {
		handleJSONError(c.app, w, err, "parsing version id")
		return
	}

	if _, err := c.app.GetVersion(id); err != nil {
		handleJSONError(c.app, w, err, "getting version")
		return
	}

	stats, err := c.app.GetRatingStats(id)
	if err != nil {
		handleJSONError(c.app, w, err, "getting rating stats")
		return
	}

	respondData(w, http.StatusOK, stats)
}

// RatingCheckQuery identifies the version a rating check is about
type RatingCheckQuery struct {
	VersionID int `schema:"versionId"`
}

// Check handles GET /ratings/check. It reports whether the calling IP
// has already rated the given version.
func (c *Ratings) Check(w http.ResponseWriter, r *http.Request) {
	var q RatingCheckQuery
	if err := parseQuery(r, &q); err != nil || q.VersionID == 0 {
		handleJSONError(c.app, w, app.ErrNotFound, "parsing version id")
		return
	}

	rated, err := c.app.HasRated(q.VersionID, middleware.LookupIP(r))
	if err != nil {
		handleJSONError(c.app, w, err, "checking rating")
		return
	}

	respondData(w, http.StatusOK, map[string]interface{}{
		"hasRated": rated,
	})
}
