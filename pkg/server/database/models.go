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

package database

import (
	"time"
)

// User roles
const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleUser      = "user"
)

// Feedback types
const (
	FeedbackTypeBug        = "bug"
	FeedbackTypeSuggestion = "suggestion"
	FeedbackTypeBlessing   = "blessing"
)

// Feedback statuses
const (
	FeedbackStatusPending  = "pending"
	FeedbackStatusReviewed = "reviewed"
	FeedbackStatusResolved = "resolved"
)

// Model is the base model definition
type Model struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// User is a model for a user account
type User struct {
	Model
	Username    string     `json:"username" gorm:"uniqueIndex;type:text"`
	Email       string     `json:"email" gorm:"uniqueIndex;type:text"`
	Password    string     `json:"-"`
	Role        string     `json:"role" gorm:"default:user;index"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

// AppVersion is a model for a released version of the app
type AppVersion struct {
	Model
	VersionNumber string    `json:"version_number" gorm:"uniqueIndex;type:text"`
	VersionName   string    `json:"version_name"`
	Changelog     string    `json:"changelog"`
	FilePath      string    `json:"-"`
	FileSize      int64     `json:"file_size"`
	ReleaseDate   time.Time `json:"release_date" gorm:"index"`
	IsActive      bool      `json:"is_active" gorm:"default:true;index"`
}

// Review is a model for a user review of a version. Reviews are
// soft-deleted: DeletedAt is set instead of removing the row, so that
// ownership lookups keep working after deletion.
type Review struct {
	Model
	VersionID    int        `json:"version_id" gorm:"index"`
	UserID       int        `json:"user_id" gorm:"index"`
	ReviewerName string     `json:"reviewer_name"`
	ReviewText   string     `json:"review_text"`
	IsApproved   bool       `json:"is_approved" gorm:"default:false;index"`
	IsFeatured   bool       `json:"is_featured" gorm:"default:false"`
	DeletedAt    *time.Time `json:"-" gorm:"index"`
}

// Feedback is a model for user feedback
type Feedback struct {
	Model
	UserID        int        `json:"user_id" gorm:"index"`
	Type          string     `json:"type" gorm:"index"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Message       string     `json:"message"`
	Status        string     `json:"status" gorm:"default:pending;index"`
	AdminResponse *string    `json:"admin_response"`
	RespondedBy   *int       `json:"responded_by"`
	RespondedAt   *time.Time `json:"responded_at"`
}

// Rating is a model for a star rating of a version. At most one row
// exists per (version_id, ip_address) pair; submissions are upserted.
type Rating struct {
	Model
	VersionID int    `json:"version_id" gorm:"uniqueIndex:idx_ratings_version_ip"`
	Rating    int    `json:"rating"`
	IPAddress string `json:"-" gorm:"uniqueIndex:idx_ratings_version_ip;type:text"`
}

// Download is an append-only log entry for a served artifact
type Download struct {
	Model
	VersionID    int       `json:"version_id" gorm:"index"`
	IPAddress    string    `json:"-"`
	UserAgent    string    `json:"-"`
	DownloadedAt time.Time `json:"downloaded_at" gorm:"index"`
}
