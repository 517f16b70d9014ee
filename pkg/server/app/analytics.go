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
	"github.com/orthodoxhymn/site/pkg/server/database"
	pkgErrors "github.com/pkg/errors"
)

// DashboardOverview is the headline numbers of the back office dashboard
type DashboardOverview struct {
	TotalDownloads  int64 `json:"totalDownloads"`
	TotalReviews    int64 `json:"totalReviews"`
	ApprovedReviews int64 `json:"approvedReviews"`
	PendingReviews  int64 `json:"pendingReviews"`
	RecentDownloads int64 `json:"recentDownloads"`
	RecentFeedback  int64 `json:"recentFeedback"`
}

// Dashboard is the aggregate rollup served to moderators and admins.
// Everything is recomputed from the underlying rows on every read.
type Dashboard struct {
	Overview           DashboardOverview      `json:"overview"`
	LatestVersion      *database.AppVersion   `json:"latestVersion"`
	LatestVersionStats *VersionStats          `json:"latestVersionStats"`
	DownloadsByVersion []VersionDownloadCount `json:"downloadsByVersion"`
	FeedbackStats      []FeedbackStat         `json:"feedbackStats"`
}

// GetDashboard assembles the dashboard rollup
func (a *App) GetDashboard() (Dashboard, error) {
	var d Dashboard

	totalDownloads, err := a.GetTotalDownloads()
	if err != nil {
		return d, err
	}

	var totalReviews, approvedReviews int64
	err = a.DB.
		Model(&database.Review{}).
		Where("deleted_at IS NULL").
		Count(&totalReviews).Error
	if err != nil {
		return d, pkgErrors.Wrap(err, "counting reviews")
	}
	err = a.DB.
		Model(&database.Review{}).
		Where("deleted_at IS NULL AND is_approved = ?", true).
		Count(&approvedReviews).Error
	if err != nil {
		return d, pkgErrors.Wrap(err, "counting approved reviews")
	}

	weekAgo := a.Clock.Now().AddDate(0, 0, -7)
	recentDownloads, err := a.CountDownloadsSince(weekAgo)
	if err != nil {
		return d, err
	}

	var recentFeedback int64
	err = a.DB.
		Model(&database.Feedback{}).
		Where("created_at >= ?", weekAgo).
		Count(&recentFeedback).Error
	if err != nil {
		return d, pkgErrors.Wrap(err, "counting recent feedback")
	}

	d.Overview = DashboardOverview{
		TotalDownloads:  totalDownloads,
		TotalReviews:    totalReviews,
		ApprovedReviews: approvedReviews,
		PendingReviews:  totalReviews - approvedReviews,
		RecentDownloads: recentDownloads,
		RecentFeedback:  recentFeedback,
	}

	latest, err := a.GetLatestVersion()
	if err == nil {
		stats, err := a.GetVersionStats(latest.ID)
		if err != nil {
			return d, err
		}
		d.LatestVersion = &latest
		d.LatestVersionStats = &stats
	} else if err != ErrNotFound {
		return d, err
	}

	monthAgo := a.Clock.Now().AddDate(0, 0, -30)
	downloadsByVersion, err := a.GetDownloadsByVersion(&monthAgo)
	if err != nil {
		return d, err
	}
	d.DownloadsByVersion = downloadsByVersion

	feedbackStats, err := a.GetFeedbackStats()
	if err != nil {
		return d, err
	}
	d.FeedbackStats = feedbackStats

	return d, nil
}
