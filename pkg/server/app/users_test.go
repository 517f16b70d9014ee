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
	"github.com/orthodoxhymn/site/pkg/server/token"
	"github.com/pkg/errors"
)

func TestCreateUser(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	a := NewTest()
	a.DB = db

	user, err := a.CreateUser("daniel", "daniel@test.com", "password123", "password123")
	if err != nil {
		t.Fatal(errors.Wrap(err, "creating user"))
	}

	assert.Equal(t, user.Username, "daniel", "username mismatch")
	assert.Equal(t, user.Email, "daniel@test.com", "email mismatch")
	assert.Equal(t, user.Role, database.RoleUser, "new accounts should get the default role")
	assert.NotEqual(t, user.Password, "password123", "password should be hashed")

	t.Run("duplicate email", func(t *testing.T) {
		_, err := a.CreateUser("daniel2", "daniel@test.com", "password123", "password123")
		assert.Equal(t, err, ErrDuplicateEmail, "error mismatch")
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := a.CreateUser("daniel", "daniel2@test.com", "password123", "password123")
		assert.Equal(t, err, ErrDuplicateUsername, "error mismatch")
	})

	t.Run("short password", func(t *testing.T) {
		_, err := a.CreateUser("short", "short@test.com", "pass", "pass")
		assert.Equal(t, err, ErrPasswordTooShort, "error mismatch")
	})

	t.Run("confirmation mismatch", func(t *testing.T) {
		_, err := a.CreateUser("mismatch", "mismatch@test.com", "password123", "password124")
		assert.Equal(t, err, ErrPasswordConfirmationMismatch, "error mismatch")
	})

	t.Run("registration disabled", func(t *testing.T) {
		b := NewTest()
		b.DB = db
		b.DisableRegistration = true

		_, err := b.CreateUser("late", "late@test.com", "password123", "password123")
		assert.Equal(t, err, ErrRegistrationDisabled, "error mismatch")
	})
}

func TestAuthenticate(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	testutils.SetupUserData(db, "daniel", "daniel@test.com", "password123", database.RoleUser)

	a := NewTest()
	a.DB = db

	t.Run("valid credentials", func(t *testing.T) {
		user, err := a.Authenticate("daniel@test.com", "password123")
		if err != nil {
			t.Fatal(errors.Wrap(err, "authenticating"))
		}

		assert.Equal(t, user.Username, "daniel", "username mismatch")
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := a.Authenticate("daniel@test.com", "wrongpass123")
		assert.Equal(t, err, ErrLoginInvalid, "error mismatch")
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := a.Authenticate("nobody@test.com", "password123")
		assert.Equal(t, err, ErrNotFound, "error mismatch")
	})
}

func TestSignIn(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	user := testutils.SetupUserData(db, "daniel", "daniel@test.com", "password123", database.RoleModerator)

	a := NewTest()
	a.DB = db
	// issue the token at real time so that its expiry validates
	a.Clock.(*clock.Mock).SetNow(time.Now())

	value, err := a.SignIn(&user)
	if err != nil {
		t.Fatal(errors.Wrap(err, "signing in"))
	}

	claims, err := token.Verify(a.JWTSecret, value)
	if err != nil {
		t.Fatal(errors.Wrap(err, "verifying token"))
	}

	assert.Equal(t, claims.UserID, user.ID, "token user id mismatch")
	assert.Equal(t, claims.Username, "daniel", "token username mismatch")
	assert.Equal(t, claims.Role, database.RoleModerator, "token role mismatch")

	var record database.User
	if err := db.Where("id = ?", user.ID).First(&record).Error; err != nil {
		t.Fatal(errors.Wrap(err, "finding user"))
	}
	if record.LastLoginAt == nil {
		t.Error("last_login_at should be set")
	}
}
