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
	"github.com/orthodoxhymn/site/pkg/server/log"
	"github.com/orthodoxhymn/site/pkg/server/permissions"
	pkgErrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	feedbackMessageMinLen = 10
	feedbackMessageMaxLen = 2000
)

func validFeedbackType(t string) bool {
	switch t {
	case database.FeedbackTypeBug, database.FeedbackTypeSuggestion, database.FeedbackTypeBlessing:
		return true
	}
	return false
}

func validFeedbackStatus(s string) bool {
	switch s {
	case database.FeedbackStatusPending, database.FeedbackStatusReviewed, database.FeedbackStatusResolved:
		return true
	}
	return false
}

// FeedbackFilters are the filters for listing feedback
type FeedbackFilters struct {
	Type   string
	Status string
	Page   int
	Limit  int
}

// FeedbackList is a page of feedback items with pagination info
type FeedbackList struct {
	Feedback   []database.Feedback `json:"feedback"`
	Pagination Pagination          `json:"pagination"`
}

// UpdateFeedbackParams is the parameters for an owner edit of a
// feedback item. Only the type and the message may change.
type UpdateFeedbackParams struct {
	Type    *string
	Message *string
}

// FeedbackStat is a count of feedback items for a (type, status) pair
type FeedbackStat struct {
	Type   string `json:"type"`
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// SubmitFeedback creates a pending feedback item. Name and email
// default to the submitting user's.
func (a *App) SubmitFeedback(user database.User, typ, name, email, message string) (database.Feedback, error) {
	if !validFeedbackType(typ) {
		return database.Feedback{}, ErrInvalidFeedbackType
	}

	msgLen := utf8.RuneCountInString(message)
	if msgLen < feedbackMessageMinLen || msgLen > feedbackMessageMaxLen {
		return database.Feedback{}, ErrFeedbackMessageLength
	}

	if name == "" {
		name = user.Username
	}
	if email == "" {
		email = user.Email
	}

	feedback := database.Feedback{
		UserID:  user.ID,
		Type:    typ,
		Name:    name,
		Email:   email,
		Message: message,
		Status:  database.FeedbackStatusPending,
	}
	if err := a.DB.Create(&feedback).Error; err != nil {
		return feedback, pkgErrors.Wrap(err, "inserting feedback")
	}

	return feedback, nil
}

// GetFeedback lists feedback for the back office
func (a *App) GetFeedback(f FeedbackFilters) (FeedbackList, error) {
	page, limit := normalizePageLimit(f.Page, f.Limit)

	scope := func(db *gorm.DB) *gorm.DB {
		q := db.Model(&database.Feedback{})
		if f.Type != "" {
			q = q.Where("type = ?", f.Type)
		}
		if f.Status != "" {
			q = q.Where("status = ?", f.Status)
		}
		return q
	}

	var total int64
	if err := scope(a.DB).Count(&total).Error; err != nil {
		return FeedbackList{}, pkgErrors.Wrap(err, "counting feedback")
	}

	feedback := []database.Feedback{}
	err := scope(a.DB).
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&feedback).Error
	if err != nil {
		return FeedbackList{}, pkgErrors.Wrap(err, "finding feedback")
	}

	return FeedbackList{
		Feedback:   feedback,
		Pagination: newPagination(page, limit, total),
	}, nil
}

// GetUserFeedback lists the given user's own feedback, newest first
func (a *App) GetUserFeedback(user database.User) ([]database.Feedback, error) {
	feedback := []database.Feedback{}
	err := a.DB.
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&feedback).Error
	if err != nil {
		return nil, pkgErrors.Wrap(err, "finding user feedback")
	}

	return feedback, nil
}

func (a *App) getFeedback(id int) (database.Feedback, error) {
	var feedback database.Feedback
	err := a.DB.Where("id = ?", id).First(&feedback).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return feedback, ErrNotFound
	} else if err != nil {
		return feedback, pkgErrors.Wrap(err, "finding feedback")
	}

	return feedback, nil
}

// UpdateOwnFeedback applies an owner edit. A feedback item stays
// editable after moderation has responded; the response keeps its
// responded_at timestamp so staleness is detectable. Denied policy
// decisions are reported as ErrNotFound.
func (a *App) UpdateOwnFeedback(user database.User, id int, p UpdateFeedbackParams) (database.Feedback, error) {
	feedback, err := a.getFeedback(id)
	if err != nil {
		return database.Feedback{}, err
	}

	if d := permissions.Check(&user, permissions.EditContent, feedback.UserID); !d.Allowed {
		return database.Feedback{}, ErrNotFound
	}

	if p.Type != nil {
		if !validFeedbackType(*p.Type) {
			return database.Feedback{}, ErrInvalidFeedbackType
		}
		feedback.Type = *p.Type
	}
	if p.Message != nil {
		msgLen := utf8.RuneCountInString(*p.Message)
		if msgLen < feedbackMessageMinLen || msgLen > feedbackMessageMaxLen {
			return database.Feedback{}, ErrFeedbackMessageLength
		}
		feedback.Message = *p.Message
	}

	if err := a.DB.Save(&feedback).Error; err != nil {
		return feedback, pkgErrors.Wrap(err, "saving feedback")
	}

	return feedback, nil
}

// DeleteOwnFeedback removes a feedback item on behalf of its owner
func (a *App) DeleteOwnFeedback(user database.User, id int) error {
	feedback, err := a.getFeedback(id)
	if err != nil {
		return err
	}

	if d := permissions.Check(&user, permissions.EditContent, feedback.UserID); !d.Allowed {
		return ErrNotFound
	}

	if err := a.DB.Delete(&feedback).Error; err != nil {
		return pkgErrors.Wrap(err, "deleting feedback")
	}

	return nil
}

// RespondToFeedback records a moderation response. An omitted status
// advances the item to reviewed. Responding again overwrites the
// previous response; only the latest text is kept. The submitter is
// notified by email on a best-effort basis.
func (a *App) RespondToFeedback(moderator database.User, id int, response, status string) (database.Feedback, error) {
	if response == "" {
		return database.Feedback{}, ErrFeedbackResponseRequired
	}
	if status == "" {
		status = database.FeedbackStatusReviewed
	}
	if !validFeedbackStatus(status) {
		return database.Feedback{}, ErrInvalidFeedbackStatus
	}

	feedback, err := a.getFeedback(id)
	if err != nil {
		return database.Feedback{}, err
	}

	now := a.Clock.Now()
	feedback.AdminResponse = &response
	feedback.RespondedBy = &moderator.ID
	feedback.RespondedAt = &now
	feedback.Status = status

	if err := a.DB.Save(&feedback).Error; err != nil {
		return feedback, pkgErrors.Wrap(err, "saving feedback response")
	}

	if feedback.Email != "" {
		if err := a.SendFeedbackResponseEmail(feedback, response); err != nil {
			log.ErrorWrap(err, "sending feedback response email")
		}
	}

	return feedback, nil
}

// GetFeedbackStats counts feedback items grouped by type and status
func (a *App) GetFeedbackStats() ([]FeedbackStat, error) {
	stats := []FeedbackStat{}
	err := a.DB.
		Model(&database.Feedback{}).
		Select("type, status, COUNT(*) as count").
		Group("type").
		Group("status").
		Scan(&stats).Error
	if err != nil {
		return nil, pkgErrors.Wrap(err, "counting feedback stats")
	}

	return stats, nil
}
