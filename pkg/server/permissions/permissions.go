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

// Package permissions decides whether an acting identity may perform an
// operation. Every endpoint resolves its access question through Check
// rather than comparing roles inline.
package permissions

import (
	"github.com/orthodoxhymn/site/pkg/server/database"
)

// Capability is an operation class that requires a policy decision
type Capability string

const (
	// SubmitContent covers creating reviews and feedback
	SubmitContent Capability = "submit_content"
	// EditContent covers mutating a review or feedback item. The owner
	// of the item and elevated roles are allowed.
	EditContent Capability = "edit_content"
	// ModerateContent covers approve/feature/respond/delete actions on
	// other users' content
	ModerateContent Capability = "moderate_content"
	// ManageVersions covers creating, updating and deleting app versions
	ManageVersions Capability = "manage_versions"
	// ViewDashboard covers the analytics rollup and moderation listings
	ViewDashboard Capability = "view_dashboard"
)

// Decision is the outcome of a policy check
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

func elevated(user *database.User) bool {
	return user.Role == database.RoleAdmin || user.Role == database.RoleModerator
}

// Check decides whether the actor may exercise the given capability.
// ownerID identifies the owner of the resource being acted on; it is
// ignored for capabilities that are not ownership-aware. A nil actor is
// an anonymous caller.
func Check(actor *database.User, c Capability, ownerID int) Decision {
	if actor == nil {
		return deny("authentication required")
	}

	switch c {
	case SubmitContent:
		return allow()
	case EditContent:
		if ownerID != 0 && actor.ID == ownerID {
			return allow()
		}
		if elevated(actor) {
			return allow()
		}
		return deny("not the owner")
	case ModerateContent, ViewDashboard:
		if elevated(actor) {
			return allow()
		}
		return deny("Moderator or Admin access required")
	case ManageVersions:
		if actor.Role == database.RoleAdmin {
			return allow()
		}
		return deny("Admin access required")
	}

	return deny("unknown capability")
}
