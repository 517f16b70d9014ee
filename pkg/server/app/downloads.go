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
	"time"

	"github.com/orthodoxhymn/site/pkg/server/database"
	pkgErrors "github.com/pkg/errors"
)

// VersionDownloadCount is a per-version download tally
type VersionDownloadCount struct {
	VersionNumber string `json:"version_number"`
	VersionName   string `json:"version_name"`
	DownloadCount int64  `json:"download_count"`
}

// LogDownload appends a download log entry. Entries are never mutated
// or deleted.
func (a *App) LogDownload(version database.AppVersion, ipAddress, userAgent string) error {
	row := database.Download{
		VersionID:    version.ID,
		IPAddress:    ipAddress,
		UserAgent:    userAgent,
		DownloadedAt: a.Clock.Now(),
	}
	if err := a.DB.Create(&row).Error; err != nil {
		return pkgErrors.Wrap(err, "inserting download log")
	}

	return nil
}

// GetTotalDownloads counts all downloads ever logged
func (a *App) GetTotalDownloads() (int64, error) {
	var total int64
	if err := a.DB.Model(&database.Download{}).Count(&total).Error; err != nil {
		return 0, pkgErrors.Wrap(err, "counting downloads")
	}

	return total, nil
}

// GetDownloadsByVersion tallies downloads per version. When since is
// non-nil, only downloads at or after it are counted; versions with no
// downloads in the window still appear with a zero count.
func (a *App) GetDownloadsByVersion(since *time.Time) ([]VersionDownloadCount, error) {
	counts := []VersionDownloadCount{}

	join := "LEFT JOIN downloads d ON app_versions.id = d.version_id"
	args := []interface{}{}
	if since != nil {
		join += " AND d.downloaded_at >= ?"
		args = append(args, *since)
	}

	err := a.DB.
		Model(&database.AppVersion{}).
		Select("app_versions.version_number, app_versions.version_name, COUNT(d.id) as download_count").
		Joins(join, args...).
		Group("app_versions.id").
		Order("download_count DESC").
		Scan(&counts).Error
	if err != nil {
		return nil, pkgErrors.Wrap(err, "tallying downloads by version")
	}

	return counts, nil
}

// CountDownloadsSince counts downloads logged at or after the given time
func (a *App) CountDownloadsSince(t time.Time) (int64, error) {
	var count int64
	err := a.DB.
		Model(&database.Download{}).
		Where("downloaded_at >= ?", t).
		Count(&count).Error
	if err != nil {
		return 0, pkgErrors.Wrap(err, "counting recent downloads")
	}

	return count, nil
}
