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

package presenters

import (
	"time"

	"github.com/orthodoxhymn/site/pkg/server/app"
	"github.com/orthodoxhymn/site/pkg/server/database"
)

// Version is a result of PresentVersion
type Version struct {
	ID            int       `json:"id"`
	VersionNumber string    `json:"version_number"`
	VersionName   string    `json:"version_name"`
	Changelog     string    `json:"changelog"`
	FileSize      int64     `json:"file_size"`
	ReleaseDate   time.Time `json:"release_date"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// VersionWithStats is a version with its aggregate stats
type VersionWithStats struct {
	Version
	Stats app.VersionStats `json:"stats"`
}

// PresentVersion presents a version. The artifact path is never
// exposed; artifacts are served through the download endpoint.
func PresentVersion(version database.AppVersion) Version {
	return Version{
		ID:            version.ID,
		VersionNumber: version.VersionNumber,
		VersionName:   version.VersionName,
		Changelog:     version.Changelog,
		FileSize:      version.FileSize,
		ReleaseDate:   FormatTS(version.ReleaseDate),
		IsActive:      version.IsActive,
		CreatedAt:     FormatTS(version.CreatedAt),
		UpdatedAt:     FormatTS(version.UpdatedAt),
	}
}

// PresentVersions presents versions
func PresentVersions(versions []database.AppVersion) []Version {
	ret := []Version{}

	for _, version := range versions {
		p := PresentVersion(version)
		ret = append(ret, p)
	}

	return ret
}

// PresentVersionWithStats presents a version with its aggregate stats
func PresentVersionWithStats(version database.AppVersion, stats app.VersionStats) VersionWithStats {
	return VersionWithStats{
		Version: PresentVersion(version),
		Stats:   stats,
	}
}
