/************************************************************************************
 *
 * ember, a Go client library for a Discord-shaped chat-service gateway + REST API
 *
 * SPDX-License-Identifier: BSD-3-Clause
 *
 ************************************************************************************/

package ember

import (
	"strconv"

	"github.com/bytedance/sonic"
)

// Snowflake is a 64-bit server-assigned ID. Unlike the original Rust source
// (which deserializes only the string form), the wire protocol here may
// send either a JSON number or a decimal string for the same field across
// different payloads, so Snowflake accepts both on decode and always emits
// the number form on encode.
type Snowflake uint64

// String renders the decimal form of the snowflake.
func (s Snowflake) String() string {
	return strconv.FormatUint(uint64(s), 10)
}

// MarshalJSON always emits the number form.
func (s Snowflake) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatUint(uint64(s), 10)), nil
}

// UnmarshalJSON accepts either a bare JSON number (123) or a quoted decimal
// string ("123"), since servers are inconsistent about which form a given
// field uses across endpoints and gateway payloads.
func (s *Snowflake) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if data[0] == '"' {
		var str string
		if err := sonic.Unmarshal(data, &str); err != nil {
			return jsonErr(err)
		}
		n, err := strconv.ParseUint(str, 10, 64)
		if err != nil {
			return jsonErr(err)
		}
		*s = Snowflake(n)
		return nil
	}
	n, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return jsonErr(err)
	}
	*s = Snowflake(n)
	return nil
}

// ChannelID, GuildID, MessageID, RoleID, UserID, and WebhookID wrap
// Snowflake so the compiler keeps them from being mixed up at call sites,
// mirroring the original Rust `id_u64!` macro's distinct newtypes.
type (
	ChannelID Snowflake
	GuildID   Snowflake
	MessageID Snowflake
	RoleID    Snowflake
	UserID    Snowflake
	WebhookID Snowflake
)

func (id ChannelID) String() string { return Snowflake(id).String() }
func (id GuildID) String() string   { return Snowflake(id).String() }
func (id MessageID) String() string { return Snowflake(id).String() }
func (id RoleID) String() string    { return Snowflake(id).String() }
func (id UserID) String() string    { return Snowflake(id).String() }
func (id WebhookID) String() string { return Snowflake(id).String() }

func (id ChannelID) MarshalJSON() ([]byte, error) { return Snowflake(id).MarshalJSON() }
func (id GuildID) MarshalJSON() ([]byte, error)   { return Snowflake(id).MarshalJSON() }
func (id MessageID) MarshalJSON() ([]byte, error) { return Snowflake(id).MarshalJSON() }
func (id RoleID) MarshalJSON() ([]byte, error)    { return Snowflake(id).MarshalJSON() }
func (id UserID) MarshalJSON() ([]byte, error)    { return Snowflake(id).MarshalJSON() }
func (id WebhookID) MarshalJSON() ([]byte, error) { return Snowflake(id).MarshalJSON() }

func (id *ChannelID) UnmarshalJSON(data []byte) error { return (*Snowflake)(id).UnmarshalJSON(data) }
func (id *GuildID) UnmarshalJSON(data []byte) error   { return (*Snowflake)(id).UnmarshalJSON(data) }
func (id *MessageID) UnmarshalJSON(data []byte) error { return (*Snowflake)(id).UnmarshalJSON(data) }
func (id *RoleID) UnmarshalJSON(data []byte) error    { return (*Snowflake)(id).UnmarshalJSON(data) }
func (id *UserID) UnmarshalJSON(data []byte) error    { return (*Snowflake)(id).UnmarshalJSON(data) }
func (id *WebhookID) UnmarshalJSON(data []byte) error { return (*Snowflake)(id).UnmarshalJSON(data) }

// Mention renders the mention token for a channel, e.g. <#123>.
func (id ChannelID) Mention() string { return "<#" + id.String() + ">" }

// Mention renders the mention token for a role, e.g. <@&123>.
func (id RoleID) Mention() string { return "<@&" + id.String() + ">" }

// Mention renders the mention token for a user, e.g. <@123>.
func (id UserID) Mention() string { return "<@" + id.String() + ">" }
