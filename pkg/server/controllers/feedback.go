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

// NewFeedback creates a new Feedback controller
func NewFeedback(app *app.App) *Feedback {
	return &Feedback{app: app}
}

// Feedback is a feedback controller
type Feedback struct {
	app *app.App
}

// SubmitFeedbackForm is the payload for submitting feedback
type SubmitFeedbackForm struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Create handles POST /feedback
func (c *Feedback) Create(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	var form SubmitFeedbackForm
	if err := parseRequestData(r, &form); err != nil {
		handleJSONError(c.app, w, err, "parsing payload")
		return
	}

	feedback, err := c.app.SubmitFeedback(*user, form.Type, form.Name, form.Email, form.Message)
	if err != nil {
		handleJSONError(c.app, w, err, "submitting feedback")
		return
	}

	respondData(w, http.StatusCreated, presenters.PresentFeedback(feedback))
}

// FeedbackListQuery is the query string filter for listing feedback
type FeedbackListQuery struct {
	Type   string `schema:"type"`
	Status string `schema:"status"`
	Page   int    `schema:"page"`
	Limit  int    `schema:"limit"`
}

// Index handles GET /feedback
func (c *Feedback) Index(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	if d := permissions.Check(user, permissions.ModerateContent, 0); !d.Allowed {
		respondForbidden(w)
		return
	}

	var q FeedbackListQuery
	if err := parseQuery(r, &q); err != nil {
		respondBadRequest(w, "Invalid query parameters")
		return
	}

	result, err := c.app.GetFeedback(app.FeedbackFilters{
		Type:   q.Type,
		Status: q.Status,
		Page:   q.Page,
		Limit:  q.Limit,
	})
	if err != nil {
		handleJSONError(c.app, w, err, "getting feedback")
		return
	}

	respondData(w, http.StatusOK, map[string]interface{}{
		"feedback":   presenters.PresentFeedbackItems(result.Feedback),
		"pagination": result.Pagination,
	})
}

// Mine handles GET /feedback/my
func (c *Feedback) Mine(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	items, err := c.app.GetUserFeedback(*user)
	if err != nil {
		handleJSONError(c.app, w, err, "getting user feedback")
		return
	}

	respondData(w, http.StatusOK, map[string]interface{}{
		"feedback": presenters.PresentFeedbackItems(items),
	})
}

// UpdateFeedbackForm is the payload for editing feedback
type UpdateFeedbackForm struct {
	Type    *string `json:"type"`
	Message *string `json:"message"`
}

// Update handles PUT /feedback/{feedbackID}
func (c *Feedback) Update(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	id, err := getIntParam(r, "feedbackID")
	if err != nil {
		handleJSONError(c.app, w, err, "parsing feedback id")
		return
	}

	var form UpdateFeedbackForm
	if err := parseRequestData(r, &form); err != nil {
		handleJSONError(c.app, w, err, "parsing payload")
		return
	}

	feedback, err := c.app.UpdateOwnFeedback(*user, id, app.UpdateFeedbackParams{
		Type:    form.Type,
		Message: form.Message,
	})
	if err != nil {
		handleJSONError(c.app, w, err, "updating feedback")
		return
	}

	respondData(w, http.StatusOK, presenters.PresentFeedback(feedback))
}

// Delete handles DELETE /feedback/{feedbackID}
func (c *Feedback) Delete(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	id, err := getIntParam(r, "feedbackID")
	if err != nil {
		handleJSONError(c.app, w, err, "parsing feedback id")
		return
	}

	if err := c.app.DeleteOwnFeedback(*user, id); err != nil {
		handleJSONError(c.app, w, err, "deleting feedback")
		return
	}

	respondMessage(w, http.StatusOK, "Feedback deleted successfully")
}

// RespondForm is the payload for responding to feedback
type RespondForm struct {
	Response string `json:"response"`
	Status   string `json:"status"`
}

// Respond handles PATCH /feedback/{feedbackID}/respond
func (c *Feedback) Respond(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	if d := permissions.Check(user, permissions.ModerateContent, 0); !d.Allowed {
		respondForbidden(w)
		return
	}

	id, err := getIntParam(r, "feedbackID")
	if err != nil {
		handleJSONError(c.app, w, err, "parsing feedback id")
		return
	}

	var form RespondForm
	if err := parseRequestData(r, &form); err != nil {
		handleJSONError(c.app, w, err, "parsing payload")
		return
	}

	feedback, err := c.app.RespondToFeedback(*user, id, form.Response, form.Status)
	if err != nil {
		handleJSONError(c.app, w, err, "responding to feedback")
		return
	}

	respondData(w, http.StatusOK, presenters.PresentFeedback(feedback))
}

// Stats handles GET /feedback/stats
func (c *Feedback) Stats(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	if d := permissions.Check(user, permissions.ModerateContent, 0); !d.Allowed {
		respondForbidden(w)
		return
	}

	stats, err := c.app.GetFeedbackStats()
	if err != nil {
		handleJSONError(c.app, w, err, "getting feedback stats")
		return
	}

	respondData(w, http.StatusOK, map[string]interface{}{
		"stats": stats,
	})
}
