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

	"github.com/gorilla/mux"
	"github.com/orthodoxhymn/site/pkg/server/app"
	mw "github.com/orthodoxhymn/site/pkg/server/middleware"
	"github.com/pkg/errors"
)

// Route represents a single route
type Route struct {
	Method    string
	Pattern   string
	Handler   http.HandlerFunc
	RateLimit bool
}

// RouteConfig is the configuration for routes
type RouteConfig struct {
	Controllers *Controllers
	APIRoutes   []Route
}

// NewAPIRoutes returns a new api routes
func NewAPIRoutes(a *app.App, c *Controllers) []Route {
	ret := []Route{
		{"POST", "/auth/login", mw.ApplyLoginLimit(c.Users.Login), false},
		{"POST", "/auth/logout", c.Users.Logout, true},
		{"GET", "/auth/verify", mw.Auth(a.DB, a.JWTSecret, c.Users.Verify), true},

		{"GET", "/versions", mw.OptionalAuth(a.DB, a.JWTSecret, c.Versions.Index), true},
		{"GET", "/versions/latest", c.Versions.Latest, true},
		{"GET", "/versions/{versionID}", c.Versions.Show, true},
		{"GET", "/versions/{versionID}/stats", c.Versions.Stats, true},
		{"GET", "/versions/{versionID}/ratings", c.Ratings.Stats, true},
		{"GET", "/versions/{versionID}/download", c.Versions.Download, true},
		{"POST", "/versions", mw.Auth(a.DB, a.JWTSecret, c.Versions.Create), true},
		{"PUT", "/versions/{versionID}", mw.Auth(a.DB, a.JWTSecret, c.Versions.Update), true},
		{"DELETE", "/versions/{versionID}", mw.Auth(a.DB, a.JWTSecret, c.Versions.Delete), true},

		{"GET", "/reviews", mw.OptionalAuth(a.DB, a.JWTSecret, c.Reviews.Index), true},
		{"GET", "/reviews/my", mw.Auth(a.DB, a.JWTSecret, c.Reviews.Mine), true},
		{"POST", "/reviews", mw.Auth(a.DB, a.JWTSecret, c.Reviews.Create), true},
		{"PUT", "/reviews/{reviewID}", mw.Auth(a.DB, a.JWTSecret, c.Reviews.Update), true},
		{"DELETE", "/reviews/{reviewID}", mw.Auth(a.DB, a.JWTSecret, c.Reviews.Delete), true},
		{"PATCH", "/reviews/{reviewID}/approve", mw.Auth(a.DB, a.JWTSecret, c.Reviews.Approve), true},
		{"PATCH", "/reviews/{reviewID}/feature", mw.Auth(a.DB, a.JWTSecret, c.Reviews.Feature), true},

		{"POST", "/feedback", mw.Auth(a.DB, a.JWTSecret, c.Feedback.Create), true},
		{"GET", "/feedback", mw.Auth(a.DB, a.JWTSecret, c.Feedback.Index), true},
		{"GET", "/feedback/my", mw.Auth(a.DB, a.JWTSecret, c.Feedback.Mine), true},
		{"GET", "/feedback/stats", mw.Auth(a.DB, a.JWTSecret, c.Feedback.Stats), true},
		{"PUT", "/feedback/{feedbackID}", mw.Auth(a.DB, a.JWTSecret, c.Feedback.Update), true},
		{"DELETE", "/feedback/{feedbackID}", mw.Auth(a.DB, a.JWTSecret, c.Feedback.Delete), true},
		{"PATCH", "/feedback/{feedbackID}/respond", mw.Auth(a.DB, a.JWTSecret, c.Feedback.Respond), true},

		{"POST", "/ratings", c.Ratings.Create, true},
		{"GET", "/ratings/check", c.Ratings.Check, true},

		{"GET", "/analytics/dashboard", mw.Auth(a.DB, a.JWTSecret, c.Analytics.Dashboard), true},

		{"GET", "/health", c.Health.Index, true},
	}

	if !a.DisableRegistration {
		ret = append(ret, Route{"POST", "/auth/register", c.Users.Register, true})
	}

	return ret
}

func registerRoutes(router *mux.Router, routes []Route) {
	for _, route := range routes {
		wrappedHandler := mw.ApplyLimit(route.Handler, route.RateLimit)

		router.
			Handle(route.Pattern, wrappedHandler).
			Methods(route.Method)
	}
}

// NewRouter creates and returns a new router
func NewRouter(app *app.App, rc RouteConfig) (http.Handler, error) {
	if err := app.Validate(); err != nil {
		return nil, errors.Wrap(err, "validating the app parameters")
	}

	router := mux.NewRouter().StrictSlash(true)

	apiRouter := router.PathPrefix("/api").Subrouter()
	registerRoutes(apiRouter, rc.APIRoutes)

	router.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("User-agent: *\nAllow: /"))
	})

	// catch-all
	router.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, envelope{Success: false, Message: "Route not found"})
	})

	return mw.Global(router), nil
}
