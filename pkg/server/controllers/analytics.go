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
)

// NewAnalytics creates a new Analytics controller
func NewAnalytics(app *app.App) *Analytics {
	return &Analytics{app: app}
}

// Analytics is a controller for the admin dashboard
type Analytics struct {
	app *app.App
}

// Dashboard handles GET /analytics/dashboard. The rollup is computed
// from the database on every request.
func (c *Analytics) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	if d := permissions.Check(user, permissions.ViewDashboard, 0); !d.Allowed {
		respondForbidden(w)
		return
	}

	dashboard, err := c.app.GetDashboard()
	if err != nil {
		handleJSONError(c.app, w, err, "getting dashboard")
		return
	}

	respondData(w, http.StatusOK, dashboard)
}
