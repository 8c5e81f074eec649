/************************************************************************************
 *
 * ember, a Go client library for a Discord-shaped chat-service gateway + REST API
 *
 * SPDX-License-Identifier: BSD-3-Clause
 *
 ************************************************************************************/

package ember

// WebhookKind distinguishes incoming webhooks from channel-follower and
// application-owned ones.
//
// Grounded on original_source/src/model/webhook.rs.
type WebhookKind uint8

const (
	WebhookKindIncoming       WebhookKind = 1
	WebhookKindChannelFollower WebhookKind = 2
	WebhookKindApplication    WebhookKind = 3
)

// Webhook represents a channel webhook.
type Webhook struct {
	ID        WebhookID  `json:"id"`
	Kind      WebhookKind `json:"type"`
	GuildID   *GuildID   `json:"guild_id,omitempty"`
	ChannelID *ChannelID `json:"channel_id,omitempty"`
	User      *User      `json:"user,omitempty"`
	Name      string     `json:"name,omitempty"`
	Avatar    string     `json:"avatar,omitempty"`
	Token     string     `json:"token,omitempty"`
	URL       string     `json:"url,omitempty"`
}
