/************************************************************************************
 *
 * ember, a Go client library for a Discord-shaped chat-service gateway + REST API
 *
 * SPDX-License-Identifier: BSD-3-Clause
 *
 ************************************************************************************/

package ember

import "time"

// ChannelKind distinguishes guild text/voice channels from DMs and threads.
//
// Grounded on original_source/src/model/channel.rs.
type ChannelKind uint8

const (
	ChannelKindGuildText       ChannelKind = 0
	ChannelKindDM              ChannelKind = 1
	ChannelKindGuildVoice      ChannelKind = 2
	ChannelKindGroupDM         ChannelKind = 3
	ChannelKindGuildCategory   ChannelKind = 4
	ChannelKindGuildNews       ChannelKind = 5
	ChannelKindGuildStore      ChannelKind = 6
	ChannelKindGuildNewsThread ChannelKind = 10
	ChannelKindGuildPubThread  ChannelKind = 11
	ChannelKindGuildPrivThread ChannelKind = 12
	ChannelKindGuildStageVoice ChannelKind = 13
)

// Channel represents a guild channel, DM, or group DM.
type Channel struct {
	ID                ChannelID   `json:"id"`
	Kind              ChannelKind `json:"type"`
	GuildID           *GuildID    `json:"guild_id,omitempty"`
	Position          uint64      `json:"position,omitempty"`
	Name              string      `json:"name,omitempty"`
	Topic             string      `json:"topic,omitempty"`
	NSFW              bool        `json:"nsfw,omitempty"`
	LastMessageID     *MessageID  `json:"last_message_id,omitempty"`
	Bitrate           uint64      `json:"bitrate,omitempty"`
	UserLimit         uint64      `json:"user_limit,omitempty"`
	RateLimitPerUser  uint64      `json:"rate_limit_per_user,omitempty"`
	Recipients        []User      `json:"recipients,omitempty"`
	Icon              string      `json:"icon,omitempty"`
	OwnerID           *UserID     `json:"owner_id,omitempty"`
	LastPinTimestamp  *time.Time  `json:"last_pin_timestamp,omitempty"`
	RTCRegion         string      `json:"rtc_region,omitempty"`
	VideoQualityMode  uint64      `json:"video_quality_mode,omitempty"`
	Permissions       string      `json:"permissions,omitempty"`
}
