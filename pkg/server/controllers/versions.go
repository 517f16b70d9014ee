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
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/orthodoxhymn/site/pkg/server/app"
	"github.com/orthodoxhymn/site/pkg/server/context"
	"github.com/orthodoxhymn/site/pkg/server/log"
	"github.com/orthodoxhymn/site/pkg/server/middleware"
	"github.com/orthodoxhymn/site/pkg/server/permissions"
	"github.com/orthodoxhymn/site/pkg/server/presenters"
	"github.com/pkg/errors"
)

// NewVersions creates a new Versions controller
func NewVersions(app *app.App) *Versions {
	return &Versions{app: app}
}

// Versions is a controller for app versions and their artifacts
type Versions struct {
	app *app.App
}

// VersionListQuery is the query string pagination for listing versions
type VersionListQuery struct {
	Page  int `schema:"page"`
	Limit int `schema:"limit"`
}

// Index handles GET /versions
func (v *Versions) Index(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	var q VersionListQuery
	if err := parseQuery(r, &q); err != nil {
		respondBadRequest(w, "Invalid query parameters")
		return
	}

	// Only version managers see inactive versions
	activeOnly := !permissions.Check(user, permissions.ManageVersions, 0).Allowed

	result, err := v.app.GetVersions(q.Page, q.Limit, activeOnly)
	if err != nil {
		handleJSONError(v.app, w, err, "getting versions")
		return
	}

	respondData(w, http.StatusOK, map[string]interface{}{
		"versions":   presenters.PresentVersions(result.Versions),
		"pagination": result.Pagination,
	})
}

// Latest handles GET /versions/latest
func (v *Versions) Latest(w http.ResponseWriter, r *http.Request) {
	version, err := v.app.GetLatestVersion()
	if err != nil {
		handleJSONError(v.app, w, err, "getting latest version")
		return
	}

	stats, err := v.app.GetVersionStats(version.ID)
	if err != nil {
		handleJSONError(v.app, w, err, "getting version stats")
		return
	}

	respondData(w, http.StatusOK, presenters.PresentVersionWithStats(version, stats))
}

// Show handles GET /versions/{versionID}
func (v *Versions) Show(w http.ResponseWriter, r *http.Request) {
	id, err := getIntParam(r, "versionID")
	if err != nil {
		handleJSONError(v.app, w, err, "parsing version id")
		return
	}

	version, err := v.app.GetVersion(id)
	if err != nil {
		handleJSONError(v.app, w, err, "getting version")
		return
	}

	respondData(w, http.StatusOK, presenters.PresentVersion(version))
}

// Stats handles GET /versions/{versionID}/stats
func (v *Versions) Stats(w http.ResponseWriter, r *http.Request) {
	id, err := getIntParam(r, "versionID")
	if err != nil {
		handleJSONError(v.app, w, err, "parsing version id")
		return
	}

	if _, err := v.app.GetVersion(id); err != nil {
		handleJSONError(v.app, w, err, "getting version")
		return
	}

	stats, err := v.app.GetVersionStats(id)
	if err != nil {
		handleJSONError(v.app, w, err, "getting version stats")
		return
	}

	respondData(w, http.StatusOK, stats)
}

// Create handles POST /versions. The request is a multipart form with
// the APK artifact under the "file" field.
func (v *Versions) Create(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	if d := permissions.Check(user, permissions.ManageVersions, 0); !d.Allowed {
		respondForbidden(w)
		return
	}

	if err := r.ParseMultipartForm(v.app.MaxUploadBytes); err != nil {
		handleJSONError(v.app, w, errors.Wrap(app.ErrArtifactRequired, err.Error()), "parsing form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handleJSONError(v.app, w, app.ErrArtifactRequired, "reading artifact")
		return
	}
	defer file.Close()

	if strings.ToLower(filepath.Ext(header.Filename)) != ".apk" {
		handleJSONError(v.app, w, app.ErrArtifactNotAPK, "validating artifact")
		return
	}

	artifact, err := v.app.Storage.Save(file, header.Filename)
	if err != nil {
		handleJSONError(v.app, w, err, "storing artifact")
		return
	}

	var releaseDate time.Time
	if raw := r.FormValue("releaseDate"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			parsed, err = time.Parse(time.RFC3339, raw)
		}
		if err == nil {
			releaseDate = parsed
		}
	}

	version, err := v.app.CreateVersion(app.CreateVersionParams{
		VersionNumber: r.FormValue("versionNumber"),
		VersionName:   r.FormValue("versionName"),
		Changelog:     r.FormValue("changelog"),
		ReleaseDate:   releaseDate,
		FilePath:      artifact.Path,
		FileSize:      artifact.Size,
	})
	if err != nil {
		// The row was not created, so the stored artifact is orphaned
		if removeErr := v.app.Storage.Remove(artifact.Path); removeErr != nil {
			log.ErrorWrap(removeErr, "removing orphaned artifact")
		}

		handleJSONError(v.app, w, err, "creating version")
		return
	}

	respondData(w, http.StatusCreated, presenters.PresentVersion(version))
}

// UpdateForm is the payload for a partial version update
type UpdateForm struct {
	VersionNumber *string `json:"versionNumber"`
	VersionName   *string `json:"versionName"`
	Changelog     *string `json:"changelog"`
	ReleaseDate   *string `json:"releaseDate"`
	IsActive      *bool   `json:"isActive"`
}

// Update handles PUT /versions/{versionID}
func (v *Versions) Update(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	if d := permissions.Check(user, permissions.ManageVersions, 0); !d.Allowed {
		respondForbidden(w)
		return
	}

	id, err := getIntParam(r, "versionID")
	if err != nil {
		handleJSONError(v.app, w, err, "parsing version id")
		return
	}

	var form UpdateForm
	if err := parseRequestData(r, &form); err != nil {
		handleJSONError(v.app, w, err, "parsing payload")
		return
	}

	params := app.UpdateVersionParams{
		VersionNumber: form.VersionNumber,
		VersionName:   form.VersionName,
		Changelog:     form.Changelog,
		IsActive:      form.IsActive,
	}
	if form.ReleaseDate != nil {
		parsed, err := time.Parse("2006-01-02", *form.ReleaseDate)
		if err != nil {
			parsed, err = time.Parse(time.RFC3339, *form.ReleaseDate)
		}
		if err == nil {
			params.ReleaseDate = &parsed
		}
	}

	version, err := v.app.UpdateVersion(id, params)
	if err != nil {
		handleJSONError(v.app, w, err, "updating version")
		return
	}

	respondData(w, http.StatusOK, presenters.PresentVersion(version))
}

// Delete handles DELETE /versions/{versionID}
func (v *Versions) Delete(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	if d := permissions.Check(user, permissions.ManageVersions, 0); !d.Allowed {
		respondForbidden(w)
		return
	}

	id, err := getIntParam(r, "versionID")
	if err != nil {
		handleJSONError(v.app, w, err, "parsing version id")
		return
	}

	if err := v.app.DeleteVersion(id); err != nil {
		handleJSONError(v.app, w, err, "deleting version")
		return
	}

	respondMessage(w, http.StatusOK, "Version deleted successfully")
}

// Download handles GET /versions/{versionID}/download. The download is
// recorded before the artifact is streamed, so an interrupted transfer
// still counts.
func (v *Versions) Download(w http.ResponseWriter, r *http.Request) {
	id, err := getIntParam(r, "versionID")
	if err != nil {
		handleJSONError(v.app, w, err, "parsing version id")
		return
	}

	version, err := v.app.GetVersion(id)
	if err != nil {
		handleJSONError(v.app, w, err, "getting version")
		return
	}

	if err := v.app.LogDownload(version, middleware.LookupIP(r), r.UserAgent()); err != nil {
		handleJSONError(v.app, w, err, "logging download")
		return
	}

	f, err := v.app.Storage.Open(version.FilePath)
	if err != nil {
		handleJSONError(v.app, w, errors.Wrap(err, "opening artifact"), "opening artifact")
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("orthodox-hymn-%s.apk", version.VersionNumber)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Type", "application/vnd.android.package-archive")

	http.ServeContent(w, r, filename, version.UpdatedAt, f)
}
