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

package controllers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/orthodoxhymn/site/pkg/assert"
	"github.com/orthodoxhymn/site/pkg/server/app"
	"github.com/orthodoxhymn/site/pkg/server/database"
	"github.com/orthodoxhymn/site/pkg/server/presenters"
	"github.com/orthodoxhymn/site/pkg/server/testutils"
	"gorm.io/gorm"
)

// reviewListPayload is the data portion of review listing responses
type reviewListPayload struct {
	Reviews    []presenters.Review `json:"reviews"`
	Pagination app.Pagination      `json:"pagination"`
}

func setupReviewData(db *gorm.DB, user database.User, version database.AppVersion, text string, approved bool) database.Review {
	review := database.Review{
		VersionID:    version.ID,
		UserID:       user.ID,
		ReviewerName: user.Username,
		ReviewText:   text,
		IsApproved:   approved,
	}
	if err := db.Save(&review).Error; err != nil {
		panic(err)
	}

	return review
}

func TestGetReviews(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	// Setup
	a := app.NewTest()
	a.DB = db
	server := MustNewServer(t, &a)
	defer server.Close()

	alice := testutils.SetupUserData(db, "alice", "alice@example.com", "pass1234", database.RoleUser)
	moderator := testutils.SetupUserData(db, "mod", "mod@example.com", "pass1234", database.RoleModerator)
	version := testutils.SetupVersionData(db, "1.0.0", "First Light", time.Now())

	setupReviewData(db, alice, version, "a truly helpful companion", true)
	setupReviewData(db, alice, version, "pending thoughts", false)

	t.Run("anonymous", func(t *testing.T) {
		req := testutils.MakeReq(server.URL, "GET", "/api/reviews", "")

		// Execute
		res := testutils.HTTPDo(t, req)

		// Test
		assert.StatusCodeEquals(t, res, http.StatusOK, "status code mismatch")

		var got reviewListPayload
		decodeData(t, res, &got)
		assert.Equal(t, len(got.Reviews), 1, "anonymous callers should only see approved reviews")
		assert.Equal(t, got.Reviews[0].IsApproved, true, "approval mismatch")
		assert.Equal(t, got.Pagination.Total, int64(1), "pagination total mismatch")
	})

	t.Run("moderator sees pending", func(t *testing.T) {
		req := testutils.MakeReq(server.URL, "GET", "/api/reviews", "")

		// Execute
		res := testutils.HTTPAuthDo(t, req, moderator)

		// Test
		assert.StatusCodeEquals(t, res, http.StatusOK, "status code mismatch")

		var got reviewListPayload
		decodeData(t, res, &got)
		assert.Equal(t, len(got.Reviews), 2, "moderators should see all reviews")
	})

	t.Run("moderator filters pending", func(t *testing.T) {
		req := testutils.MakeReq(server.URL, "GET", "/api/reviews?approved=false", "")

		// Execute
		res := testutils.HTTPAuthDo(t, req, moderator)

		// Test
		assert.StatusCodeEquals(t, res, http.StatusOK, "status code mismatch")

		var got reviewListPayload
		decodeData(t, res, &got)
		assert.Equal(t, len(got.Reviews), 1, "review count mismatch")
		assert.Equal(t, got.Reviews[0].IsApproved, false, "approval mismatch")
	})

	t.Run("plain user filter is ignored", func(t *testing.T) {
		req := testutils.MakeReq(server.URL, "GET", "/api/reviews?approved=false", "")

		// Execute
		res := testutils.HTTPAuthDo(t, req, alice)

		// Test
		assert.StatusCodeEquals(t, res, http.StatusOK, "status code mismatch")

		var got reviewListPayload
		decodeData(t, res, &got)
		assert.Equal(t, len(got.Reviews), 1, "review count mismatch")
		assert.Equal(t, got.Reviews[0].IsApproved, true, "plain users should only see approved reviews")
	})

	t.Run("anonymous filter is ignored", func(t *testing.T) {
		req := testutils.MakeReq(server.URL, "GET", "/api/reviews?approved=false", "")

		// Execute
		res := testutils.HTTPDo(t, req)

		// Test
		assert.StatusCodeEquals(t, res, http.StatusOK, "status code mismatch")

		var got reviewListPayload
		decodeData(t, res, &got)
		assert.Equal(t, len(got.Reviews), 1, "review count mismatch")
		assert.Equal(t, got.Reviews[0].IsApproved, true, "anonymous callers should only see approved reviews")
	})

	t.Run("malformed filter", func(t *testing.T) {
		req := testutils.MakeReq(server.URL, "GET", "/api/reviews?approved=banana", "")

		// Execute
		res := testutils.HTTPDo(t, req)

		// Test
		assert.StatusCodeEquals(t, res, http.StatusBadRequest, "status code mismatch")
	})
}

func TestCreateReview(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		// Setup
		a := app.NewTest()
		a.DB = db
		server := MustNewServer(t, &a)
		defer server.Close()

		user := testutils.SetupUserData(db, "alice", "alice@example.com", "pass1234", database.RoleUser)
		version := testutils.SetupVersionData(db, "1.0.0", "First Light", time.Now())

		dat := fmt.Sprintf(`{"versionId": %d, "reviewText": "this app changed my morning routine"}`, version.ID)
		req := testutils.MakeReq(server.URL, "POST", "/api/reviews", dat)

		// Execute
		res := testutils.HTTPAuthDo(t, req, user)

		// Test
		assert.StatusCodeEquals(t, res, http.StatusCreated, "status code mismatch")

		var got presenters.Review
		decodeData(t, res, &got)
		assert.Equal(t, got.ReviewerName, "alice", "reviewer name should default to the username")
		assert.Equal(t, got.IsApproved, false, "new reviews should be pending")

		var review database.Review
		testutils.MustExec(t, db.First(&review), "finding review")
		assert.Equal(t, review.UserID, user.ID, "user id mismatch")
	})

	t.Run("unauthenticated", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		// Setup
		a := app.NewTest()
		a.DB = db
		server := MustNewServer(t, &a)
		defer server.Close()

		version := testutils.SetupVersionData(db, "1.0.0", "First Light", time.Now())

		dat := fmt.Sprintf(`{"versionId": %d, "reviewText": "this app changed my morning routine"}`, version.ID)
		req := testutils.MakeReq(server.URL, "POST", "/api/reviews", dat)

		// Execute
		res := testutils.HTTPDo(t, req)

		// Test
		assert.StatusCodeEquals(t, res, http.StatusUnauthorized, "status code mismatch")

		var reviewCount int64
		testutils.MustExec(t, db.Model(&database.Review{}).Count(&reviewCount), "counting reviews")
		assert.Equal(t, reviewCount, int64(0), "review count mismatch")
	})

	t.Run("text too short", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		// Setup
		a := app.NewTest()
		a.DB = db
		server := MustNewServer(t, &a)
		defer server.Close()

		user := testutils.SetupUserData(db, "alice", "alice@example.com", "pass1234", database.RoleUser)
		version := testutils.SetupVersionData(db, "1.0.0", "First Light", time.Now())

		dat := fmt.Sprintf(`{"versionId": %d, "reviewText": "meh"}`, version.ID)
		req := testutils.MakeReq(server.URL, "POST", "/api/reviews", dat)

		// Execute
		res := testutils.HTTPAuthDo(t, req, user)

		// Test
		assert.StatusCodeEquals(t, res, http.StatusBadRequest, "status code mismatch")
	})
}

func TestApproveReview(t *testing.T) {
	t.Run("moderator", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		// Setup
		a := app.NewTest()
		a.DB = db
		server := MustNewServer(t, &a)
		defer server.Close()

		alice := testutils.SetupUserData(db, "alice", "alice@example.com", "pass1234", database.RoleUser)
		moderator := testutils.SetupUserData(db, "mod", "mod@example.com", "pass1234", database.RoleModerator)
		version := testutils.SetupVersionData(db, "1.0.0", "First Light", time.Now())
		review := setupReviewData(db, alice, version, "pending thoughts", false)

		req := testutils.MakeReq(server.URL, "PATCH", fmt.Sprintf("/api/reviews/%d/approve", review.ID), "")

		// Execute
		res := testutils.HTTPAuthDo(t, req, moderator)

		// Test
		assert.StatusCodeEquals(t, res, http.StatusOK, "status code mismatch")

		var updated database.Review
		testutils.MustExec(t, db.Where("id = ?", review.ID).First(&updated), "finding review")
		assert.Equal(t, updated.IsApproved, true, "review should have been approved")
	})

	t.Run("plain user", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)

		// Setup
		a := app.NewTest()
		a.DB = db
		server := MustNewServer(t, &a)
		defer server.Close()

		alice := testutils.SetupUserData(db, "alice", "alice@example.com", "pass1234", database.RoleUser)
		version := testutils.SetupVersionData(db, "1.0.0", "First Light", time.Now())
		review := setupReviewData(db, alice, version, "pending thoughts", false)

		req := testutils.MakeReq(server.URL, "PATCH", fmt.Sprintf("/api/reviews/%d/approve", review.ID), "")

		// Execute
		res := testutils.HTTPAuthDo(t, req, alice)

		// Test
		assert.StatusCodeEquals(t, res, http.StatusForbidden, "status code mismatch")
		assert.Equal(t, decodeMessage(t, res), "Insufficient permissions", "message mismatch")

		var updated database.Review
		testutils.MustExec(t, db.Where("id = ?", review.ID).First(&updated), "finding review")
		assert.Equal(t, updated.IsApproved, false, "review should not have been approved")
	})
}

func TestUpdateReviewOwnership(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	// Setup
	a := app.NewTest()
	a.DB = db
	server := MustNewServer(t, &a)
	defer server.Close()

	alice := testutils.SetupUserData(db, "alice", "alice@example.com", "pass1234", database.RoleUser)
	bob := testutils.SetupUserData(db, "bob", "bob@example.com", "pass1234", database.RoleUser)
	version := testutils.SetupVersionData(db, "1.0.0", "First Light", time.Now())
	review := setupReviewData(db, alice, version, "original thoughts here", true)

	dat := `{"reviewText": "revised thoughts after a month"}`
	req := testutils.MakeReq(server.URL, "PUT", fmt.Sprintf("/api/reviews/%d", review.ID), dat)

	// Execute
	res := testutils.HTTPAuthDo(t, req, bob)

	// Test

	// the review belongs to another user, so its existence is not revealed
	assert.StatusCodeEquals(t, res, http.StatusNotFound, "status code mismatch")

	var unchanged database.Review
	testutils.MustExec(t, db.Where("id = ?", review.ID).First(&unchanged), "finding review")
	assert.Equal(t, unchanged.ReviewText, "original thoughts here", "review should not have been updated")
}
