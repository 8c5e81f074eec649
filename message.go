/************************************************************************************
 *
 * ember, a Go client library for a Discord-shaped chat-service gateway + REST API
 *
 * SPDX-License-Identifier: BSD-3-Clause
 *
 ************************************************************************************/

package ember

import "time"

// MessageKind distinguishes an ordinary message from system messages
// (member joins, pins, thread creation, replies, ...).
//
// Grounded on original_source/src/model/message.rs.
type MessageKind uint8

const (
	MessageKindDefault                         MessageKind = 0
	MessageKindRecipientAdd                    MessageKind = 1
	MessageKindRecipientRemove                 MessageKind = 2
	MessageKindCall                            MessageKind = 3
	MessageKindChannelNameChange               MessageKind = 4
	MessageKindChannelIconChange               MessageKind = 5
	MessageKindChannelPinnedMessage             MessageKind = 6
	MessageKindGuildMemberJoin                  MessageKind = 7
	MessageKindReply                           MessageKind = 19
	MessageKindChatInputCommand                MessageKind = 20
	MessageKindThreadStarterMessage            MessageKind = 21
	MessageKindContextMenuCommand              MessageKind = 23
)

// Message represents a message posted to a channel.
type Message struct {
	ID               MessageID        `json:"id"`
	ChannelID        ChannelID        `json:"channel_id"`
	GuildID          *GuildID         `json:"guild_id,omitempty"`
	Author           User             `json:"author"`
	Member           *PartialMember   `json:"member,omitempty"`
	Content          string           `json:"content"`
	Timestamp        time.Time        `json:"timestamp"`
	EditedTimestamp  *time.Time       `json:"edited_timestamp,omitempty"`
	TTS              bool             `json:"tts"`
	MentionEveryone  bool             `json:"mention_everyone"`
	Mentions         []User           `json:"mentions"`
	MentionRoles     []RoleID         `json:"mention_roles"`
	Pinned           bool             `json:"pinned"`
	WebhookID        *WebhookID       `json:"webhook_id,omitempty"`
	Kind             MessageKind      `json:"type"`
	ReferencedMessage *Message        `json:"referenced_message,omitempty"`
	Embeds           []Embed          `json:"embeds,omitempty"`
}
