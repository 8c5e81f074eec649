/************************************************************************************
 *
 * ember, a Go client library for a Discord-shaped chat-service gateway + REST API
 *
 * SPDX-License-Identifier: BSD-3-Clause
 *
 ************************************************************************************/

package ember

// GatewayIntent is a 64-bit bitmask of opt-in event categories, sent once
// in the Identify payload. Values and bit positions are grounded on
// original_source/src/gateway/intents.rs.
type GatewayIntent uint64

const (
	IntentGuilds                 GatewayIntent = 1 << 0
	IntentGuildMembers           GatewayIntent = 1 << 1
	IntentGuildBans              GatewayIntent = 1 << 2
	IntentGuildEmojis            GatewayIntent = 1 << 3
	IntentGuildIntegrations      GatewayIntent = 1 << 4
	IntentGuildWebhooks          GatewayIntent = 1 << 5
	IntentGuildInvites           GatewayIntent = 1 << 6
	IntentGuildVoiceStates       GatewayIntent = 1 << 7
	IntentGuildPresences         GatewayIntent = 1 << 8
	IntentGuildMessages          GatewayIntent = 1 << 9
	IntentGuildMessageReactions  GatewayIntent = 1 << 10
	IntentGuildMessageTyping     GatewayIntent = 1 << 11
	IntentDirectMessages         GatewayIntent = 1 << 12
	IntentDirectMessageReactions GatewayIntent = 1 << 13
	IntentDirectMessageTyping    GatewayIntent = 1 << 14
)

// Add returns intents with the given bits set.
func (i GatewayIntent) Add(bits ...GatewayIntent) GatewayIntent {
	return BitMaskAdd(i, bits...)
}

// Has reports whether every given bit is set.
func (i GatewayIntent) Has(bits ...GatewayIntent) bool {
	return BitMaskHas(i, bits...)
}
