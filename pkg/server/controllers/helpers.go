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
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	"github.com/orthodoxhymn/site/pkg/server/app"
	"github.com/orthodoxhymn/site/pkg/server/log"
	"github.com/pkg/errors"
)

var queryDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

// parseRequestData decodes the JSON request body into dst
func parseRequestData(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.Wrap(err, "decoding payload")
	}

	return nil
}

// parseQuery decodes the URL query string into dst
func parseQuery(r *http.Request, dst interface{}) error {
	if err := queryDecoder.Decode(dst, r.URL.Query()); err != nil {
		return errors.Wrap(err, "decoding query")
	}

	return nil
}

// getIntParam parses the named mux path variable as an integer
func getIntParam(r *http.Request, name string) (int, error) {
	vars := mux.Vars(r)

	val, err := strconv.Atoi(vars[name])
	if err != nil {
		return 0, app.ErrNotFound
	}

	return val, nil
}

type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, e envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(e); err != nil {
		log.ErrorWrap(err, "writing response")
	}
}

// respondData writes a successful JSON envelope with the given data
func respondData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

// respondMessage writes a successful JSON envelope with a message only
func respondMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: true, Message: message})
}

// statusForError maps application errors to http status codes
func statusForError(err error) int {
	cause := errors.Cause(err)

	switch cause {
	case app.ErrNotFound:
		return http.StatusNotFound
	case app.ErrLoginInvalid:
		return http.StatusUnauthorized
	case app.ErrDuplicateEmail,
		app.ErrDuplicateUsername,
		app.ErrDuplicateVersionNumber:
		return http.StatusConflict
	case app.ErrEmailRequired,
		app.ErrUsernameRequired,
		app.ErrPasswordRequired,
		app.ErrPasswordTooShort,
		app.ErrPasswordConfirmationMismatch,
		app.ErrRegistrationDisabled,
		app.ErrReviewerNameRequired,
		app.ErrReviewTextLength,
		app.ErrInvalidFeedbackType,
		app.ErrInvalidFeedbackStatus,
		app.ErrFeedbackMessageLength,
		app.ErrFeedbackResponseRequired,
		app.ErrRatingOutOfRange,
		app.ErrVersionNumberRequired,
		app.ErrVersionNameRequired,
		app.ErrArtifactRequired,
		app.ErrArtifactNotAPK:
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// handleJSONError logs the error and responds with a JSON error envelope.
// Internal error details are redacted in production.
func handleJSONError(a *app.App, w http.ResponseWriter, err error, msg string) {
	status := statusForError(err)

	var message string
	if status == http.StatusInternalServerError {
		log.ErrorWrap(err, msg)

		if a.IsProd() {
			message = "Something went wrong"
		} else {
			message = fmt.Sprintf("%s: %s", msg, err.Error())
		}
	} else {
		message = errors.Cause(err).Error()
	}

	writeJSON(w, status, envelope{Success: false, Message: message})
}

// respondForbidden writes a 403 JSON envelope
func respondForbidden(w http.ResponseWriter) {
	writeJSON(w, http.StatusForbidden, envelope{Success: false, Message: "Insufficient permissions"})
}

// respondBadRequest writes a 400 JSON envelope
func respondBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, envelope{Success: false, Message: message})
}
