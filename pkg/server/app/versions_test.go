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
	"github.com/orthodoxhymn/site/pkg/server/database"
	"github.com/orthodoxhymn/site/pkg/server/storage"
	"github.com/orthodoxhymn/site/pkg/server/testutils"
	"github.com/pkg/errors"
)

func TestCreateVersion(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	a := NewTest()
	a.DB = db

	version, err := a.CreateVersion(CreateVersionParams{
		VersionNumber: "1.0.0",
		VersionName:   "First Light",
		Changelog:     "Initial release",
		FilePath:      "abc.apk",
		FileSize:      2048,
	})
	if err != nil {
		t.Fatal(errors.Wrap(err, "creating version"))
	}

	assert.Equal(t, version.VersionNumber, "1.0.0", "version number mismatch")
	assert.Equal(t, version.IsActive, true, "new version should be active")
	assert.Equal(t, version.ReleaseDate.IsZero(), false, "release date should default")

	t.Run("duplicate version number", func(t *testing.T) {
		_, err := a.CreateVersion(CreateVersionParams{
			VersionNumber: "1.0.0",
			VersionName:   "First Light Again",
			FilePath:      "def.apk",
		})
		assert.Equal(t, err, ErrDuplicateVersionNumber, "error mismatch")
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := a.CreateVersion(CreateVersionParams{VersionName: "No Number", FilePath: "x.apk"})
		assert.Equal(t, err, ErrVersionNumberRequired, "error mismatch")

		_, err = a.CreateVersion(CreateVersionParams{VersionNumber: "9.9.9", FilePath: "x.apk"})
		assert.Equal(t, err, ErrVersionNameRequired, "error mismatch")

		_, err = a.CreateVersion(CreateVersionParams{VersionNumber: "9.9.9", VersionName: "No Artifact"})
		assert.Equal(t, err, ErrArtifactRequired, "error mismatch")
	})
}

func TestUpdateVersion(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	version := testutils.SetupVersionData(db, "1.0.0", "First Light", time.Now())

	a := NewTest()
	a.DB = db

	name := "First Light, Revised"
	inactive := false
	updated, err := a.UpdateVersion(version.ID, UpdateVersionParams{
		VersionName: &name,
		IsActive:    &inactive,
	})
	if err != nil {
		t.Fatal(errors.Wrap(err, "updating version"))
	}

	assert.Equal(t, updated.VersionName, name, "version name mismatch")
	assert.Equal(t, updated.IsActive, false, "is_active mismatch")
	assert.Equal(t, updated.VersionNumber, "1.0.0", "untouched field should survive")

	t.Run("missing version", func(t *testing.T) {
		_, err := a.UpdateVersion(version.ID+999, UpdateVersionParams{VersionName: &name})
		assert.Equal(t, err, ErrNotFound, "error mismatch")
	})
}

func TestDeleteVersion(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	a := NewTest()
	a.DB = db
	store := a.Storage.(*storage.MemStore)
	store.Files["abc.apk"] = []byte("apk bytes")

	version, err := a.CreateVersion(CreateVersionParams{
		VersionNumber: "1.0.0",
		VersionName:   "First Light",
		FilePath:      "abc.apk",
		FileSize:      9,
	})
	if err != nil {
		t.Fatal(errors.Wrap(err, "creating version"))
	}

	if err := a.DeleteVersion(version.ID); err != nil {
		t.Fatal(errors.Wrap(err, "deleting version"))
	}

	var count int64
	if err := db.Model(&database.AppVersion{}).Count(&count).Error; err != nil {
		t.Fatal(errors.Wrap(err, "counting versions"))
	}
	assert.Equal(t, count, int64(0), "version row should be removed")

	if _, ok := store.Files["abc.apk"]; ok {
		t.Error("artifact should be removed")
	}
}

func TestDeleteVersionArtifactFailure(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	a := NewTest()
	a.DB = db
	store := a.Storage.(*storage.MemStore)
	store.Files["abc.apk"] = []byte("apk bytes")
	store.RemoveErr = errors.New("disk detached")

	version, err := a.CreateVersion(CreateVersionParams{
		VersionNumber: "1.0.0",
		VersionName:   "First Light",
		FilePath:      "abc.apk",
		FileSize:      9,
	})
	if err != nil {
		t.Fatal(errors.Wrap(err, "creating version"))
	}

	// the row goes away even when the artifact cannot be removed
	if err := a.DeleteVersion(version.ID); err != nil {
		t.Fatal(errors.Wrap(err, "deleting version"))
	}

	var count int64
	if err := db.Model(&database.AppVersion{}).Count(&count).Error; err != nil {
		t.Fatal(errors.Wrap(err, "counting versions"))
	}
	assert.Equal(t, count, int64(0), "version row should be removed")
}

func TestGetVersions(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	now := time.Now()
	older := testutils.SetupVersionData(db, "1.0.0", "First Light", now.AddDate(0, -2, 0))
	newer := testutils.SetupVersionData(db, "2.0.0", "Second Light", now.AddDate(0, -1, 0))
	inactive := testutils.SetupVersionData(db, "3.0.0", "Hidden", now)
	testutils.MustExec(t, db.Model(&inactive).Update("is_active", false), "deactivating version")

	a := NewTest()
	a.DB = db

	t.Run("active only", func(t *testing.T) {
		result, err := a.GetVersions(1, 10, true)
		if err != nil {
			t.Fatal(errors.Wrap(err, "getting versions"))
		}

		assert.Equal(t, len(result.Versions), 2, "version count mismatch")
		assert.Equal(t, result.Versions[0].ID, newer.ID, "newest release should come first")
		assert.Equal(t, result.Versions[1].ID, older.ID, "ordering mismatch")
	})

	t.Run("including inactive", func(t *testing.T) {
		result, err := a.GetVersions(1, 10, false)
		if err != nil {
			t.Fatal(errors.Wrap(err, "getting versions"))
		}

		assert.Equal(t, len(result.Versions), 3, "version count mismatch")
	})
}

func TestGetLatestVersion(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	now := time.Now()
	testutils.SetupVersionData(db, "1.0.0", "First Light", now.AddDate(0, -2, 0))
	latest := testutils.SetupVersionData(db, "2.0.0", "Second Light", now.AddDate(0, -1, 0))
	hidden := testutils.SetupVersionData(db, "3.0.0", "Hidden", now)
	testutils.MustExec(t, db.Model(&hidden).Update("is_active", false), "deactivating version")

	a := NewTest()
	a.DB = db

	version, err := a.GetLatestVersion()
	if err != nil {
		t.Fatal(errors.Wrap(err, "getting latest version"))
	}

	assert.Equal(t, version.ID, latest.ID, "inactive versions should not be latest")

	t.Run("no versions", func(t *testing.T) {
		emptyDB := testutils.InitMemoryDB(t)
		b := NewTest()
		b.DB = emptyDB

		_, err := b.GetLatestVersion()
		assert.Equal(t, err, ErrNotFound, "error mismatch")
	})
}

func TestGetVersionStats(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	version := testutils.SetupVersionData(db, "1.0.0", "First Light", time.Now())

	a := NewTest()
	a.DB = db

	if err := a.SubmitRating(version.ID, 5, "10.0.0.1"); err != nil {
		t.Fatal(errors.Wrap(err, "submitting rating"))
	}
	if err := a.SubmitRating(version.ID, 4, "10.0.0.2"); err != nil {
		t.Fatal(errors.Wrap(err, "submitting rating"))
	}
	if err := a.LogDownload(version, "10.0.0.1", "test-agent"); err != nil {
		t.Fatal(errors.Wrap(err, "logging download"))
	}

	stats, err := a.GetVersionStats(version.ID)
	if err != nil {
		t.Fatal(errors.Wrap(err, "getting stats"))
	}

	assert.Equal(t, stats.RatingCount, int64(2), "rating count mismatch")
	assert.Equal(t, stats.AvgRating, 4.5, "average mismatch")
	assert.Equal(t, stats.DownloadCount, int64(1), "download count mismatch")
}
