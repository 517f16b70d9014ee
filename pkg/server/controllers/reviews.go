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
	"github.com/orthodoxhymn/site/pkg/server/context"
	"github.com/orthodoxhymn/site/pkg/server/permissions"
	"github.com/orthodoxhymn/site/pkg/server/presenters"
)

// NewReviews creates a new Reviews controller
func NewReviews(app *app.App) *Reviews {
	return &Reviews{app: app}
}

// Reviews is a review controller
type Reviews struct {
	app *app.App
}

// ReviewListQuery is the query string filter for listing reviews
type ReviewListQuery struct {
	VersionID *int  `schema:"versionId"`
	Approved  *bool `schema:"approved"`
	Featured  *bool `schema:"featured"`
	Page      int   `schema:"page"`
	Limit     int   `schema:"limit"`
}

// Index handles GET /reviews. Anonymous callers see approved reviews
// only; moderators may filter by approval state.
func (c *Reviews) Index(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	var q ReviewListQuery
	if err := parseQuery(r, &q); err != nil {
		respondBadRequest(w, "Invalid query parameters")
		return
	}

	result, err := c.app.GetReviews(user, app.ReviewFilters{
		VersionID: q.VersionID,
		Approved:  q.Approved,
		Featured:  q.Featured,
		Page:      q.Page,
		Limit:     q.Limit,
	})
	if err != nil {
		handleJSONError(c.app, w, err, "getting reviews")
		return
	}

	respondData(w, http.StatusOK, map[string]interface{}{
		"reviews":    presenters.PresentReviews(result.Reviews),
		"pagination": result.Pagination,
	})
}

// Mine handles GET /reviews/my
func (c *Reviews) Mine(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	reviews, err := c.app.GetUserReviews(*user)
	if err != nil {
		handleJSONError(c.app, w, err, "getting user reviews")
		return
	}

	respondData(w, http.StatusOK, map[string]interface{}{
		"reviews": presenters.PresentReviews(reviews),
	})
}

// CreateReviewForm is the payload for creating a review
type CreateReviewForm struct {
	VersionID    int    `json:"versionId"`
	ReviewerName string `json:"reviewerName"`
	ReviewText   string `json:"reviewText"`
}

// Create handles POST /reviews
func (c *Reviews) Create(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	var form CreateReviewForm
	if err := parseRequestData(r, &form); err != nil {
		handleJSONError(c.app, w, err, "parsing payload")
		return
	}

	review, err := c.app.CreateReview(*user, form.VersionID, form.ReviewerName, form.ReviewText)
	if err != nil {
		handleJSONError(c.app, w, err, "creating review")
		return
	}

	respondData(w, http.StatusCreated, presenters.PresentReview(review))
}

// UpdateReviewForm is the payload for editing a review
type UpdateReviewForm struct {
	ReviewerName *string `json:"reviewerName"`
	ReviewText   *string `json:"reviewText"`
}

// Update handles PUT /reviews/{reviewID}
func (c *Reviews) Update(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	id, err := getIntParam(r, "reviewID")
	if err != nil {
		handleJSONError(c.app, w, err, "parsing review id")
		return
	}

	var form UpdateReviewForm
	if err := parseRequestData(r, &form); err != nil {
		handleJSONError(c.app, w, err, "parsing payload")
		return
	}

	review, err := c.app.UpdateOwnReview(*user, id, app.UpdateReviewParams{
		ReviewerName: form.ReviewerName,
		ReviewText:   form.ReviewText,
	})
	if err != nil {
		handleJSONError(c.app, w, err, "updating review")
		return
	}

	respondData(w, http.StatusOK, presenters.PresentReview(review))
}

// Delete handles DELETE /reviews/{reviewID}
func (c *Reviews) Delete(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	id, err := getIntParam(r, "reviewID")
	if err != nil {
		handleJSONError(c.app, w, err, "parsing review id")
		return
	}

	if err := c.app.DeleteOwnReview(*user, id); err != nil {
		handleJSONError(c.app, w, err, "deleting review")
		return
	}

	respondMessage(w, http.StatusOK, "Review deleted successfully")
}

// Approve handles PATCH /reviews/{reviewID}/approve
func (c *Reviews) Approve(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	if d := permissions.Check(user, permissions.ModerateContent, 0); !d.Allowed {
		respondForbidden(w)
		return
	}

	id, err := getIntParam(r, "reviewID")
	if err != nil {
		handleJSONError(c.app, w, err, "parsing review id")
		return
	}

	review, err := c.app.ApproveReview(id)
	if err != nil {
		handleJSONError(c.app, w, err, "approving review")
		return
	}

	respondData(w, http.StatusOK, presenters.PresentReview(review))
}

// FeatureForm is the payload for setting the featured flag
type FeatureForm struct {
	IsFeatured bool `json:"isFeatured"`
}

// Feature handles PATCH /reviews/{reviewID}/feature
func (c *Reviews) Feature(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	if d := permissions.Check(user, permissions.ModerateContent, 0); !d.Allowed {
		respondForbidden(w)
		return
	}

	id, err := getIntParam(r, "reviewID")
	if err != nil {
		handleJSONError(c.app, w, err, "parsing review id")
		return
	}

	var form FeatureForm
	if err := parseRequestData(r, &form); err != nil {
		handleJSONError(c.app, w, err, "parsing payload")
		return
	}

	review, err := c.app.SetReviewFeatured(id, form.IsFeatured)
	if err != nil {
		handleJSONError(c.app, w, err, "featuring review")
		return
	}

	respondData(w, http.StatusOK, presenters.PresentReview(review))
}
