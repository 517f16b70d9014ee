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

// Package controllers provides the http handlers
package controllers

import (
	"github.com/orthodoxhymn/site/pkg/server/app"
)

// Controllers is a group of controllers
type Controllers struct {
	Users     *Users
	Versions  *Versions
	Reviews   *Reviews
	Feedback  *Feedback
	Ratings   *Ratings
	Analytics *Analytics
	Health    *Health
}

// New returns a new group of controllers
func New(a *app.App) *Controllers {
	c := Controllers{}

	c.Users = NewUsers(a)
	c.Versions = NewVersions(a)
	c.Reviews = NewReviews(a)
	c.Feedback = NewFeedback(a)
	c.Ratings = NewRatings(a)
	c.Analytics = NewAnalytics(a)
	c.Health = NewHealth(a)

	return &c
}
