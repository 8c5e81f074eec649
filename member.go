/************************************************************************************
 *
 * ember, a Go client library for a Discord-shaped chat-service gateway + REST API
 *
 * SPDX-License-Identifier: BSD-3-Clause
 *
 ************************************************************************************/

package ember

import "time"

// Member represents a guild member: a User plus per-guild state.
//
// Grounded on original_source/src/model/member.rs.
type Member struct {
	User         User       `json:"user"`
	Nick         string     `json:"nick,omitempty"`
	Avatar       string     `json:"avatar,omitempty"`
	Roles        []RoleID   `json:"roles"`
	JoinedAt     time.Time  `json:"joined_at"`
	PremiumSince *time.Time `json:"premium_since,omitempty"`
	Deaf         bool       `json:"deaf"`
	Mute         bool       `json:"mute"`
	Pending      bool       `json:"pending,omitempty"`
	Permissions  string     `json:"permissions,omitempty"`
}

// PartialMember is the shape embedded in a Message's `member` field: the
// same data as Member, but without a guaranteed User (the message's
// top-level `author` carries that instead).
type PartialMember struct {
	User         *User      `json:"user,omitempty"`
	Nick         string     `json:"nick,omitempty"`
	Avatar       string     `json:"avatar,omitempty"`
	Roles        []RoleID   `json:"roles"`
	JoinedAt     time.Time  `json:"joined_at"`
	PremiumSince *time.Time `json:"premium_since,omitempty"`
	Deaf         bool       `json:"deaf"`
	Mute         bool       `json:"mute"`
	Pending      bool       `json:"pending,omitempty"`
	Permissions  string     `json:"permissions,omitempty"`
}
