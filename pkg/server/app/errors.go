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
	"github.com/pkg/errors"
)

var (
	// ErrNotFound is an error for a missing resource. It is also returned
	// when the resource exists but the caller may not act on it, so that
	// ownership checks do not leak existence.
	ErrNotFound = errors.New("not found")

	// ErrLoginInvalid is an error for invalid credentials during login
	ErrLoginInvalid = errors.New("Wrong email and password combination")
	// ErrEmailRequired is an error for an empty email
	ErrEmailRequired = errors.New("Email is required")
	// ErrUsernameRequired is an error for an empty username
	ErrUsernameRequired = errors.New("Username is required")
	// ErrPasswordRequired is an error for an empty password
	ErrPasswordRequired = errors.New("Password is required")
	// ErrPasswordTooShort is an error for a password that is too short
	ErrPasswordTooShort = errors.New("Password should be longer than 8 characters")
	// ErrPasswordConfirmationMismatch is an error for a password that does not match its confirmation
	ErrPasswordConfirmationMismatch = errors.New("Password does not match the confirmation")
	// ErrDuplicateEmail is an error for an email that is already registered
	ErrDuplicateEmail = errors.New("Duplicate email")
	// ErrDuplicateUsername is an error for a username that is already registered
	ErrDuplicateUsername = errors.New("Duplicate username")
	// ErrRegistrationDisabled is an error for registering when registration is disabled
	ErrRegistrationDisabled = errors.New("Registration is disabled")

	// ErrReviewerNameRequired is an error for an empty reviewer name
	ErrReviewerNameRequired = errors.New("Reviewer name is required")
	// ErrReviewTextLength is an error for review text outside the allowed length
	ErrReviewTextLength = errors.New("Review must be between 10 and 1000 characters")

	// ErrInvalidFeedbackType is an error for an unknown feedback type
	ErrInvalidFeedbackType = errors.New("Invalid feedback type")
	// ErrInvalidFeedbackStatus is an error for an unknown feedback status
	ErrInvalidFeedbackStatus = errors.New("Invalid status")
	// ErrFeedbackMessageLength is an error for a feedback message outside the allowed length
	ErrFeedbackMessageLength = errors.New("Message must be between 10 and 2000 characters")
	// ErrFeedbackResponseRequired is an error for an empty moderation response
	ErrFeedbackResponseRequired = errors.New("Response is required")

	// ErrRatingOutOfRange is an error for a rating value outside [1, 5]
	ErrRatingOutOfRange = errors.New("Rating must be between 1 and 5")

	// ErrVersionNumberRequired is an error for an empty version number
	ErrVersionNumberRequired = errors.New("Version number is required")
	// ErrVersionNameRequired is an error for an empty version name
	ErrVersionNameRequired = errors.New("Version name is required")
	// ErrDuplicateVersionNumber is an error for a version number that already exists
	ErrDuplicateVersionNumber = errors.New("Duplicate version number")
	// ErrArtifactRequired is an error for creating a version without an APK file
	ErrArtifactRequired = errors.New("APK file is required")
	// ErrArtifactNotAPK is an error for an uploaded artifact that is not an APK
	ErrArtifactNotAPK = errors.New("Only APK files are allowed")
)
