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
	"github.com/orthodoxhymn/site/pkg/server/database"
	pkgErrors "github.com/pkg/errors"
	"gorm.io/gorm/clause"
)

// RatingStats are the aggregated ratings of a version
type RatingStats struct {
	Average      float64       `json:"average"`
	Total        int64         `json:"total"`
	Distribution map[int]int64 `json:"distribution"`
}

// SubmitRating upserts a rating for the given version keyed by the
// submitter's network address. The store's conflict clause guarantees
// at most one row per (version, address) pair even under concurrent
// submissions; the last submitted value wins.
func (a *App) SubmitRating(versionID, rating int, ipAddress string) error {
	if rating < 1 || rating > 5 {
		return ErrRatingOutOfRange
	}

	if _, err := a.getVersion(versionID); err != nil {
		return err
	}

	row := database.Rating{
		VersionID: versionID,
		Rating:    rating,
		IPAddress: ipAddress,
	}
	err := a.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "version_id"}, {Name: "ip_address"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"rating": rating}),
	}).Create(&row).Error
	if err != nil {
		return pkgErrors.Wrap(err, "upserting rating")
	}

	return nil
}

type ratingAggregate struct {
	Average   float64
	Total     int64
	FiveStar  int64
	FourStar  int64
	ThreeStar int64
	TwoStar   int64
	OneStar   int64
}

// GetRatingStats aggregates the ratings of a version. The average is 0
// when the version has no ratings.
func (a *App) GetRatingStats(versionID int) (RatingStats, error) {
	var agg ratingAggregate
	err := a.DB.
		Model(&database.Rating{}).
		Select(`COALESCE(AVG(rating), 0) as average,
			COUNT(*) as total,
			SUM(CASE WHEN rating = 5 THEN 1 ELSE 0 END) as five_star,
			SUM(CASE WHEN rating = 4 THEN 1 ELSE 0 END) as four_star,
			SUM(CASE WHEN rating = 3 THEN 1 ELSE 0 END) as three_star,
			SUM(CASE WHEN rating = 2 THEN 1 ELSE 0 END) as two_star,
			SUM(CASE WHEN rating = 1 THEN 1 ELSE 0 END) as one_star`).
		Where("version_id = ?", versionID).
		Scan(&agg).Error
	if err != nil {
		return RatingStats{}, pkgErrors.Wrap(err, "aggregating ratings")
	}

	return RatingStats{
		Average: agg.Average,
		Total:   agg.Total,
		Distribution: map[int]int64{
			5: agg.FiveStar,
			4: agg.FourStar,
			3: agg.ThreeStar,
			2: agg.TwoStar,
			1: agg.OneStar,
		},
	}, nil
}

// HasRated reports whether the given network address has already rated
// the version. It is informational only; SubmitRating tolerates repeat
// submissions regardless.
func (a *App) HasRated(versionID int, ipAddress string) (bool, error) {
	var count int64
	err := a.DB.
		Model(&database.Rating{}).
		Where("version_id = ? AND ip_address = ?", versionID, ipAddress).
		Count(&count).Error
	if err != nil {
		return false, pkgErrors.Wrap(err, "counting ratings")
	}

	return count > 0, nil
}
