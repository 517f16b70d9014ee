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

	"github.com/orthodoxhymn/site/pkg/server/database"
)

// Review is a result of PresentReview
type Review struct {
	ID           int       `json:"id"`
	VersionID    int       `json:"version_id"`
	UserID       int       `json:"user_id"`
	ReviewerName string    `json:"reviewer_name"`
	ReviewText   string    `json:"review_text"`
	IsApproved   bool      `json:"is_approved"`
	IsFeatured   bool      `json:"is_featured"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PresentReview presents a review
func PresentReview(review database.Review) Review {
	return Review{
		ID:           review.ID,
		VersionID:    review.VersionID,
		UserID:       review.UserID,
		ReviewerName: review.ReviewerName,
		ReviewText:   review.ReviewText,
		IsApproved:   review.IsApproved,
		IsFeatured:   review.IsFeatured,
		CreatedAt:    FormatTS(review.CreatedAt),
		UpdatedAt:    FormatTS(review.UpdatedAt),
	}
}

// PresentReviews presents reviews
func PresentReviews(reviews []database.Review) []Review {
	ret := []Review{}

	for _, review := range reviews {
		p := PresentReview(review)
		ret = append(ret, p)
	}

	return ret
}
