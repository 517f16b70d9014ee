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

package app

import (
	"errors"
	"strings"
	"time"

	"github.com/orthodoxhymn/site/pkg/server/database"
	"github.com/orthodoxhymn/site/pkg/server/log"
	pkgErrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// VersionStats are the derived statistics of a version, recomputed on
// every read from the rating and download logs.
type VersionStats struct {
	AvgRating     float64 `json:"avgRating"`
	RatingCount   int64   `json:"ratingCount"`
	DownloadCount int64   `json:"downloadCount"`
}

// VersionList is a page of versions with pagination info
type VersionList struct {
	Versions   []database.AppVersion
	Pagination Pagination
}

// CreateVersionParams is the parameters for creating a version. The
// artifact is stored before CreateVersion is called; FilePath and
// FileSize describe the stored artifact.
type CreateVersionParams struct {
	VersionNumber string
	VersionName   string
	Changelog     string
	ReleaseDate   time.Time
	FilePath      string
	FileSize      int64
}

// UpdateVersionParams is the parameters for a partial version patch
type UpdateVersionParams struct {
	VersionNumber *string
	VersionName   *string
	Changelog     *string
	ReleaseDate   *time.Time
	IsActive      *bool
}

// CreateVersion inserts a version row for an already-stored artifact.
// Callers remove the artifact if this fails.
func (a *App) CreateVersion(p CreateVersionParams) (database.AppVersion, error) {
	if p.VersionNumber == "" {
		return database.AppVersion{}, ErrVersionNumberRequired
	}
	if p.VersionName == "" {
		return database.AppVersion{}, ErrVersionNameRequired
	}
	if p.FilePath == "" {
		return database.AppVersion{}, ErrArtifactRequired
	}

	releaseDate := p.ReleaseDate
	if releaseDate.IsZero() {
		releaseDate = a.Clock.Now()
	}

	version := database.AppVersion{
		VersionNumber: p.VersionNumber,
		VersionName:   p.VersionName,
		Changelog:     p.Changelog,
		FilePath:      p.FilePath,
		FileSize:      p.FileSize,
		ReleaseDate:   releaseDate,
		IsActive:      true,
	}
	if err := a.DB.Create(&version).Error; err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return version, ErrDuplicateVersionNumber
		}
		return version, pkgErrors.Wrap(err, "inserting version")
	}

	return version, nil
}

// UpdateVersion applies a partial patch to a version
func (a *App) UpdateVersion(id int, p UpdateVersionParams) (database.AppVersion, error) {
	version, err := a.getVersion(id)
	if err != nil {
		return database.AppVersion{}, err
	}

	if p.VersionNumber != nil {
		if *p.VersionNumber == "" {
			return database.AppVersion{}, ErrVersionNumberRequired
		}
		version.VersionNumber = *p.VersionNumber
	}
	if p.VersionName != nil {
		if *p.VersionName == "" {
			return database.AppVersion{}, ErrVersionNameRequired
		}
		version.VersionName = *p.VersionName
	}
	if p.Changelog != nil {
		version.Changelog = *p.Changelog
	}
	if p.ReleaseDate != nil {
		version.ReleaseDate = *p.ReleaseDate
	}
	if p.IsActive != nil {
		version.IsActive = *p.IsActive
	}

	if err := a.DB.Save(&version).Error; err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return version, ErrDuplicateVersionNumber
		}
		return version, pkgErrors.Wrap(err, "saving version")
	}

	return version, nil
}

// DeleteVersion removes the version row and its stored artifact. A
// failure to remove the artifact is logged and does not block the row
// deletion.
func (a *App) DeleteVersion(id int) error {
	version, err := a.getVersion(id)
	if err != nil {
		return err
	}

	if version.FilePath != "" {
		if err := a.Storage.Remove(version.FilePath); err != nil {
			log.WithFields(log.Fields{
				"version_id": version.ID,
				"path":       version.FilePath,
			}).ErrorWrap(err, "removing version artifact")
		}
	}

	if err := a.DB.Delete(&version).Error; err != nil {
		return pkgErrors.Wrap(err, "deleting version")
	}

	return nil
}

func (a *App) getVersion(id int) (database.AppVersion, error) {
	var version database.AppVersion
	err := a.DB.Where("id = ?", id).First(&version).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return version, ErrNotFound
	} else if err != nil {
		return version, pkgErrors.Wrap(err, "finding version")
	}

	return version, nil
}

// GetVersion retrieves a version by id
func (a *App) GetVersion(id int) (database.AppVersion, error) {
	return a.getVersion(id)
}

// GetVersions lists versions, newest release first
func (a *App) GetVersions(page, limit int, activeOnly bool) (VersionList, error) {
	page, limit = normalizePageLimit(page, limit)

	scope := func(db *gorm.DB) *gorm.DB {
		q := db.Model(&database.AppVersion{})
		if activeOnly {
			q = q.Where("is_active = ?", true)
		}
		return q
	}

	var total int64
	if err := scope(a.DB).Count(&total).Error; err != nil {
		return VersionList{}, pkgErrors.Wrap(err, "counting versions")
	}

	versions := []database.AppVersion{}
	err := scope(a.DB).
		Order("release_date DESC, created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&versions).Error
	if err != nil {
		return VersionList{}, pkgErrors.Wrap(err, "finding versions")
	}

	return VersionList{
		Versions:   versions,
		Pagination: newPagination(page, limit, total),
	}, nil
}

// GetLatestVersion returns the active version with the most recent
// release date, tie-broken by creation time
func (a *App) GetLatestVersion() (database.AppVersion, error) {
	var version database.AppVersion
	err := a.DB.
		Where("is_active = ?", true).
		Order("release_date DESC, created_at DESC").
		First(&version).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return version, ErrNotFound
	} else if err != nil {
		return version, pkgErrors.Wrap(err, "finding latest version")
	}

	return version, nil
}

// GetVersionStats aggregates ratings and downloads for a version
func (a *App) GetVersionStats(versionID int) (VersionStats, error) {
	ratingStats, err := a.GetRatingStats(versionID)
	if err != nil {
		return VersionStats{}, pkgErrors.Wrap(err, "aggregating ratings")
	}

	var downloadCount int64
	err = a.DB.
		Model(&database.Download{}).
		Where("version_id = ?", versionID).
		Count(&downloadCount).Error
	if err != nil {
		return VersionStats{}, pkgErrors.Wrap(err, "counting downloads")
	}

	return VersionStats{
		AvgRating:     ratingStats.Average,
		RatingCount:   ratingStats.Total,
		DownloadCount: downloadCount,
	}, nil
}
