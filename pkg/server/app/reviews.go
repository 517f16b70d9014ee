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
	"unicode/utf8"

	"github.com/orthodoxhymn/site/pkg/server/database"
	"github.com/orthodoxhymn/site/pkg/server/permissions"
	pkgErrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	reviewTextMinLen = 10
	reviewTextMaxLen = 1000
)

// ReviewFilters are the filters for listing reviews
type ReviewFilters struct {
	VersionID *int
	Approved  *bool
	Featured  *bool
	Page      int
	Limit     int
}

// ReviewList is a page of reviews with pagination info
type ReviewList struct {
	Reviews    []database.Review `json:"reviews"`
	Pagination Pagination        `json:"pagination"`
}

// UpdateReviewParams is the parameters for an owner edit of a review.
// Only text and reviewer name may change; approval state is untouched,
// so an already-approved review stays approved after an edit.
type UpdateReviewParams struct {
	ReviewText   *string
	ReviewerName *string
}

// CreateReview creates a review pending moderation. It is never
// auto-approved, regardless of the submitter's role.
func (a *App) CreateReview(user database.User, versionID int, reviewerName, reviewText string) (database.Review, error) {
	textLen := utf8.RuneCountInString(reviewText)
	if textLen < reviewTextMinLen || textLen > reviewTextMaxLen {
		return database.Review{}, ErrReviewTextLength
	}

	if reviewerName == "" {
		reviewerName = user.Username
	}
	if reviewerName == "" {
		return database.Review{}, ErrReviewerNameRequired
	}

	if _, err := a.getVersion(versionID); err != nil {
		return database.Review{}, err
	}

	review := database.Review{
		VersionID:    versionID,
		UserID:       user.ID,
		ReviewerName: reviewerName,
		ReviewText:   reviewText,
		IsApproved:   false,
		IsFeatured:   false,
	}
	if err := a.DB.Create(&review).Error; err != nil {
		return review, pkgErrors.Wrap(err, "inserting review")
	}

	return review, nil
}

// GetReviews lists reviews visible to the given actor. Anonymous callers
// and plain users see approved reviews only; moderators and admins see
// both approval states unless they filter explicitly.
func (a *App) GetReviews(actor *database.User, f ReviewFilters) (ReviewList, error) {
	page, limit := normalizePageLimit(f.Page, f.Limit)

	approved := f.Approved
	if !permissions.Check(actor, permissions.ModerateContent, 0).Allowed {
		// non-elevated callers never see pending reviews, whatever they filter by
		t := true
		approved = &t
	}

	scope := func(db *gorm.DB) *gorm.DB {
		q := db.Model(&database.Review{}).Where("deleted_at IS NULL")
		if f.VersionID != nil {
			q = q.Where("version_id = ?", *f.VersionID)
		}
		if approved != nil {
			q = q.Where("is_approved = ?", *approved)
		}
		if f.Featured != nil {
			q = q.Where("is_featured = ?", *f.Featured)
		}
		return q
	}

	var total int64
	if err := scope(a.DB).Count(&total).Error; err != nil {
		return ReviewList{}, pkgErrors.Wrap(err, "counting reviews")
	}

	reviews := []database.Review{}
	err := scope(a.DB).
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&reviews).Error
	if err != nil {
		return ReviewList{}, pkgErrors.Wrap(err, "finding reviews")
	}

	return ReviewList{
		Reviews:    reviews,
		Pagination: newPagination(page, limit, total),
	}, nil
}

// GetUserReviews lists the given user's own reviews, newest first
func (a *App) GetUserReviews(user database.User) ([]database.Review, error) {
	reviews := []database.Review{}
	err := a.DB.
		Where("user_id = ? AND deleted_at IS NULL", user.ID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, pkgErrors.Wrap(err, "finding user reviews")
	}

	return reviews, nil
}

// getReview retrieves a non-deleted review by id
func (a *App) getReview(id int) (database.Review, error) {
	var review database.Review
	err := a.DB.Where("id = ? AND deleted_at IS NULL", id).First(&review).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return review, ErrNotFound
	} else if err != nil {
		return review, pkgErrors.Wrap(err, "finding review")
	}

	return review, nil
}

// UpdateOwnReview applies an owner edit to a review. A denied policy
// decision is reported as ErrNotFound so callers cannot probe for
// other users' review ids.
func (a *App) UpdateOwnReview(user database.User, id int, p UpdateReviewParams) (database.Review, error) {
	review, err := a.getReview(id)
	if err != nil {
		return database.Review{}, err
	}

	if d := permissions.Check(&user, permissions.EditContent, review.UserID); !d.Allowed {
		return database.Review{}, ErrNotFound
	}

	if p.ReviewText != nil {
		textLen := utf8.RuneCountInString(*p.ReviewText)
		if textLen < reviewTextMinLen || textLen > reviewTextMaxLen {
			return database.Review{}, ErrReviewTextLength
		}
		review.ReviewText = *p.ReviewText
	}
	if p.ReviewerName != nil {
		if *p.ReviewerName == "" {
			return database.Review{}, ErrReviewerNameRequired
		}
		review.ReviewerName = *p.ReviewerName
	}

	if err := a.DB.Save(&review).Error; err != nil {
		return review, pkgErrors.Wrap(err, "saving review")
	}

	return review, nil
}

// DeleteOwnReview soft-deletes a review on behalf of its owner. Denials
// are merged into ErrNotFound like UpdateOwnReview.
func (a *App) DeleteOwnReview(user database.User, id int) error {
	review, err := a.getReview(id)
	if err != nil {
		return err
	}

	if d := permissions.Check(&user, permissions.EditContent, review.UserID); !d.Allowed {
		return ErrNotFound
	}

	return a.softDeleteReview(review)
}

func (a *App) softDeleteReview(review database.Review) error {
	now := a.Clock.Now()
	if err := a.DB.Model(&review).Update("deleted_at", &now).Error; err != nil {
		return pkgErrors.Wrap(err, "soft deleting review")
	}

	return nil
}

// ApproveReview marks a review approved. Approving an already-approved
// review is a no-op.
func (a *App) ApproveReview(id int) (database.Review, error) {
	review, err := a.getReview(id)
	if err != nil {
		return database.Review{}, err
	}

	if review.IsApproved {
		return review, nil
	}

	if err := a.DB.Model(&review).Update("is_approved", true).Error; err != nil {
		return review, pkgErrors.Wrap(err, "approving review")
	}
	review.IsApproved = true

	return review, nil
}

// SetReviewFeatured toggles the featured flag independent of approval state
func (a *App) SetReviewFeatured(id int, featured bool) (database.Review, error) {
	review, err := a.getReview(id)
	if err != nil {
		return database.Review{}, err
	}

	if err := a.DB.Model(&review).Update("is_featured", featured).Error; err != nil {
		return review, pkgErrors.Wrap(err, "updating featured flag")
	}
	review.IsFeatured = featured

	return review, nil
}

// DeleteReview soft-deletes any review on behalf of a moderator
func (a *App) DeleteReview(id int) error {
	review, err := a.getReview(id)
	if err != nil {
		return err
	}

	return a.softDeleteReview(review)
}
