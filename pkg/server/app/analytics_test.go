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
	"testing"
	"time"

	"github.com/orthodoxhymn/site/pkg/assert"
	"github.com/orthodoxhymn/site/pkg/clock"
	"github.com/orthodoxhymn/site/pkg/server/database"
	"github.com/orthodoxhymn/site/pkg/server/testutils"
	"github.com/pkg/errors"
)

func TestGetDashboard(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	user := testutils.SetupUserData(db, "daniel", "daniel@test.com", "password123", database.RoleUser)
	now := time.Now()
	old := testutils.SetupVersionData(db, "1.0.0", "First Light", now.AddDate(0, -2, 0))
	latest := testutils.SetupVersionData(db, "2.0.0", "Second Light", now.AddDate(0, -1, 0))

	a := NewTest()
	a.DB = db
	mock := a.Clock.(*clock.Mock)
	mock.SetNow(now)

	// two current downloads and one outside the 7-day window
	if err := a.LogDownload(latest, "10.0.0.1", "agent"); err != nil {
		t.Fatal(errors.Wrap(err, "logging download"))
	}
	if err := a.LogDownload(latest, "10.0.0.2", "agent"); err != nil {
		t.Fatal(errors.Wrap(err, "logging download"))
	}
	mock.SetNow(now.AddDate(0, 0, -10))
	if err := a.LogDownload(old, "10.0.0.3", "agent"); err != nil {
		t.Fatal(errors.Wrap(err, "logging download"))
	}
	mock.SetNow(now)

	review, err := a.CreateReview(user, latest.ID, "", "A review for the dashboard rollup")
	if err != nil {
		t.Fatal(errors.Wrap(err, "creating review"))
	}
	if _, err := a.ApproveReview(review.ID); err != nil {
		t.Fatal(errors.Wrap(err, "approving review"))
	}
	if _, err := a.CreateReview(user, latest.ID, "", "A pending review for the rollup"); err != nil {
		t.Fatal(errors.Wrap(err, "creating review"))
	}
	if _, err := a.SubmitFeedback(user, database.FeedbackTypeBug, "", "", "The player crashes on startup"); err != nil {
		t.Fatal(errors.Wrap(err, "submitting feedback"))
	}
	if err := a.SubmitRating(latest.ID, 5, "10.0.0.1"); err != nil {
		t.Fatal(errors.Wrap(err, "submitting rating"))
	}

	d, err := a.GetDashboard()
	if err != nil {
		t.Fatal(errors.Wrap(err, "getting dashboard"))
	}

	assert.Equal(t, d.Overview.TotalDownloads, int64(3), "total downloads mismatch")
	assert.Equal(t, d.Overview.RecentDownloads, int64(2), "recent downloads mismatch")
	assert.Equal(t, d.Overview.TotalReviews, int64(2), "total reviews mismatch")
	assert.Equal(t, d.Overview.ApprovedReviews, int64(1), "approved reviews mismatch")
	assert.Equal(t, d.Overview.PendingReviews, int64(1), "pending reviews mismatch")
	assert.Equal(t, d.Overview.RecentFeedback, int64(1), "recent feedback mismatch")

	if d.LatestVersion == nil {
		t.Fatal("latest version should be present")
	}
	assert.Equal(t, d.LatestVersion.ID, latest.ID, "latest version mismatch")
	assert.Equal(t, d.LatestVersionStats.RatingCount, int64(1), "latest version rating count mismatch")
	assert.Equal(t, d.LatestVersionStats.DownloadCount, int64(2), "latest version download count mismatch")

	assert.Equal(t, len(d.FeedbackStats), 1, "feedback stats size mismatch")

	// the 10-day-old download is still inside the 30-day per-version window
	counts := map[string]int64{}
	for _, c := range d.DownloadsByVersion {
		counts[c.VersionNumber] = c.DownloadCount
	}
	assert.Equal(t, counts["2.0.0"], int64(2), "per-version download count mismatch")
	assert.Equal(t, counts["1.0.0"], int64(1), "per-version download count mismatch")
}

func TestGetDashboardEmpty(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	a := NewTest()
	a.DB = db

	d, err := a.GetDashboard()
	if err != nil {
		t.Fatal(errors.Wrap(err, "getting dashboard"))
	}

	assert.Equal(t, d.Overview.TotalDownloads, int64(0), "total downloads mismatch")
	assert.Equal(t, d.Overview.TotalReviews, int64(0), "total reviews mismatch")
	if d.LatestVersion != nil {
		t.Error("latest version should be absent")
	}
	assert.Equal(t, len(d.DownloadsByVersion), 0, "downloads by version should be empty")
}
