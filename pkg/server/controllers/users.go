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
	"net/http"

	"github.com/orthodoxhymn/site/pkg/server/app"
	"github.com/orthodoxhymn/site/pkg/server/context"
	"github.com/orthodoxhymn/site/pkg/server/log"
	"github.com/orthodoxhymn/site/pkg/server/presenters"
)

// NewUsers creates a new Users controller
func NewUsers(app *app.App) *Users {
	return &Users{app: app}
}

// Users is a user controller
type Users struct {
	app *app.App
}

// RegistrationForm is the payload for registering
type RegistrationForm struct {
	Username             string `json:"username"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// Register handles POST /auth/register
func (u *Users) Register(w http.ResponseWriter, r *http.Request) {
	var form RegistrationForm
	if err := parseRequestData(r, &form); err != nil {
		handleJSONError(u.app, w, err, "parsing payload")
		return
	}

	if u.app.DisableRegistration {
		handleJSONError(u.app, w, app.ErrRegistrationDisabled, "registering user")
		return
	}

	user, err := u.app.CreateUser(form.Username, form.Email, form.Password, form.PasswordConfirmation)
	if err != nil {
		handleJSONError(u.app, w, err, "creating user")
		return
	}

	if err := u.app.SendWelcomeEmail(user.Email, user.Username); err != nil {
		log.ErrorWrap(err, "sending welcome email")
	}

	tokenValue, err := u.app.SignIn(&user)
	if err != nil {
		handleJSONError(u.app, w, err, "signing in a user")
		return
	}

	respondData(w, http.StatusCreated, map[string]interface{}{
		"token": tokenValue,
		"user":  presenters.PresentUser(user),
	})
}

// LoginForm is the payload for logging in
type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (u *Users) login(form LoginForm) (string, *presenters.User, error) {
	if form.Email == "" {
		return "", nil, app.ErrEmailRequired
	}
	if form.Password == "" {
		return "", nil, app.ErrPasswordRequired
	}

	user, err := u.app.Authenticate(form.Email, form.Password)
	if err != nil {
		// If the user is not found, treat it as invalid login
		if err == app.ErrNotFound {
			return "", nil, app.ErrLoginInvalid
		}

		return "", nil, err
	}

	tokenValue, err := u.app.SignIn(user)
	if err != nil {
		return "", nil, err
	}

	presented := presenters.PresentUser(*user)

	return tokenValue, &presented, nil
}

// Login handles POST /auth/login
func (u *Users) Login(w http.ResponseWriter, r *http.Request) {
	var form LoginForm
	if err := parseRequestData(r, &form); err != nil {
		handleJSONError(u.app, w, err, "parsing payload")
		return
	}

	tokenValue, user, err := u.login(form)
	if err != nil {
		handleJSONError(u.app, w, err, "logging in user")
		return
	}

	respondData(w, http.StatusOK, map[string]interface{}{
		"token": tokenValue,
		"user":  user,
	})
}

// Logout handles POST /auth/logout. Tokens are stateless, so there is
// nothing to revoke server-side; the client discards its token.
func (u *Users) Logout(w http.ResponseWriter, r *http.Request) {
	respondMessage(w, http.StatusOK, "Logged out successfully")
}

// Verify handles GET /auth/verify. It returns the account that the
// presented token resolves to.
func (u *Users) Verify(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())

	respondData(w, http.StatusOK, map[string]interface{}{
		"user": presenters.PresentUser(*user),
	})
}
