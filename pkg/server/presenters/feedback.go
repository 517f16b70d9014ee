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

// Feedback is a result of PresentFeedback
type Feedback struct {
	ID            int        `json:"id"`
	UserID        int        `json:"user_id"`
	Type          string     `json:"type"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Message       string     `json:"message"`
	Status        string     `json:"status"`
	AdminResponse *string    `json:"admin_response"`
	RespondedBy   *int       `json:"responded_by"`
	RespondedAt   *time.Time `json:"responded_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// PresentFeedback presents a feedback item
func PresentFeedback(feedback database.Feedback) Feedback {
	return Feedback{
		ID:            feedback.ID,
		UserID:        feedback.UserID,
		Type:          feedback.Type,
		Name:          feedback.Name,
		Email:         feedback.Email,
		Message:       feedback.Message,
		Status:        feedback.Status,
		AdminResponse: feedback.AdminResponse,
		RespondedBy:   feedback.RespondedBy,
		RespondedAt:   formatTSPtr(feedback.RespondedAt),
		CreatedAt:     FormatTS(feedback.CreatedAt),
		UpdatedAt:     FormatTS(feedback.UpdatedAt),
	}
}

// PresentFeedbackItems presents feedback items
func PresentFeedbackItems(items []database.Feedback) []Feedback {
	ret := []Feedback{}

	for _, item := range items {
		p := PresentFeedback(item)
		ret = append(ret, p)
	}

	return ret
}
