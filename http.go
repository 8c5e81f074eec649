/************************************************************************************
 *
 * ember, a Go client library for a Discord-shaped chat-service gateway + REST API
 *
 * SPDX-License-Identifier: BSD-3-Clause
 *
 ************************************************************************************/

package ember

import (
	"fmt"
	"net/url"

	"github.com/goccy/go-json"
	"github.com/gorilla/schema"
)

var queryEncoder = schema.NewEncoder()

// Http is the stateless REST surface. A single Http may be shared across
// goroutines; per-route serialization is handled internally by its
// RateLimiter.
//
// Grounded on original_source/src/http.rs, which exposes the same
// operations as inherent methods on a Http struct wrapping a reqwest
// client and a RateLimiter.
type Http struct {
	req *requester
}

// NewHttp creates a Http bound to token (expected in "Bot {token}" or
// "Bearer {token}" form, per spec).
func NewHttp(token string, logger Logger) *Http {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &Http{req: newRequester(token, logger)}
}

// newHttpWithBaseURL is used by tests to point the REST surface at an
// httptest.Server instead of the real API host.
func newHttpWithBaseURL(token, baseURL string, logger Logger) *Http {
	h := NewHttp(token, logger)
	h.req.baseURL = baseURL
	return h
}

// GetChannel fetches a channel by ID. Unbucketed: no Route.
func (h *Http) GetChannel(id ChannelID) (*Channel, error) {
	body, _, err := h.req.do("GET", fmt.Sprintf("/channels/%s", id), nil, nil)
	if err != nil {
		return nil, err
	}
	var ch Channel
	if err := json.Unmarshal(body, &ch); err != nil {
		return nil, jsonErr(err)
	}
	return &ch, nil
}

// GetGuildChannels lists the channels of a guild.
func (h *Http) GetGuildChannels(guild GuildID) ([]Channel, error) {
	route := RouteForGuild(guild)
	body, _, err := h.req.do("GET", fmt.Sprintf("/guilds/%s/channels", guild), nil, &route)
	if err != nil {
		return nil, err
	}
	var chans []Channel
	if err := json.Unmarshal(body, &chans); err != nil {
		return nil, jsonErr(err)
	}
	return chans, nil
}

// CreateMessage is the request body for Http.CreateMessage.
//
// Grounded on original_source/src/http/create_message.rs's builder shape,
// translated to a value type with chained setters in place of the Rust
// consuming-self builder.
type CreateMessage struct {
	Content         string  `json:"content,omitempty"`
	TTS             bool    `json:"tts,omitempty"`
	Embeds          []Embed `json:"embeds,omitempty"`
	ReplyToMessage  *MessageID `json:"-"`
}

func NewCreateMessage() *CreateMessage { return &CreateMessage{} }

func (m *CreateMessage) SetContent(content string) *CreateMessage {
	m.Content = content
	return m
}

func (m *CreateMessage) SetTTS(tts bool) *CreateMessage {
	m.TTS = tts
	return m
}

func (m *CreateMessage) AddEmbed(e Embed) *CreateMessage {
	m.Embeds = append(m.Embeds, e)
	return m
}

func (m *CreateMessage) SetReplyTo(id MessageID) *CreateMessage {
	m.ReplyToMessage = &id
	return m
}

type messageReference struct {
	MessageID MessageID `json:"message_id"`
}

// marshal serializes m, threading ReplyToMessage into the wire-level
// message_reference object.
func (m *CreateMessage) marshal() ([]byte, error) {
	type wire struct {
		Content          string             `json:"content,omitempty"`
		TTS              bool               `json:"tts,omitempty"`
		Embeds           []Embed            `json:"embeds,omitempty"`
		MessageReference *messageReference  `json:"message_reference,omitempty"`
	}
	w := wire{Content: m.Content, TTS: m.TTS, Embeds: m.Embeds}
	if m.ReplyToMessage != nil {
		w.MessageReference = &messageReference{MessageID: *m.ReplyToMessage}
	}
	return json.Marshal(w)
}

// CreateMessage sends a message to a channel.
func (h *Http) CreateMessage(channel ChannelID, msg *CreateMessage) (*Message, error) {
	body, err := msg.marshal()
	if err != nil {
		return nil, jsonErr(err)
	}
	route := RouteForChannel(channel)
	resp, _, err := h.req.do("POST", fmt.Sprintf("/channels/%s/messages", channel), body, &route)
	if err != nil {
		return nil, err
	}
	var out Message
	if err := json.Unmarshal(resp, &out); err != nil {
		return nil, jsonErr(err)
	}
	return &out, nil
}

// SendFiles sends a message with one or more file attachments to a
// channel, carrying msg as the multipart form's payload_json part.
//
// Grounded on original_source/src/http.rs's send_files and
// switchupcb-disgo's createMultipartForm.
func (h *Http) SendFiles(channel ChannelID, files []File, msg *CreateMessage) (*Message, error) {
	if msg == nil {
		msg = NewCreateMessage()
	}
	payload, err := msg.marshal()
	if err != nil {
		return nil, jsonErr(err)
	}
	contentType, body, err := createMultipartForm(payload, files)
	if err != nil {
		return nil, wrapErr(ErrCustom, err)
	}
	route := RouteForChannel(channel)
	resp, _, err := h.req.doWithContentType("POST", fmt.Sprintf("/channels/%s/messages", channel), body, contentType, &route)
	if err != nil {
		return nil, err
	}
	var out Message
	if err := json.Unmarshal(resp, &out); err != nil {
		return nil, jsonErr(err)
	}
	return &out, nil
}

// EditMessage is the request body for Http.EditMessage.
//
// Grounded on original_source/src/http/edit_message.rs. Fields are
// pointers so an unset field is omitted (leaves the existing value
// untouched server-side) rather than cleared.
type EditMessage struct {
	Content *string  `json:"content,omitempty"`
	Embeds  *[]Embed `json:"embeds,omitempty"`
}

func NewEditMessage() *EditMessage { return &EditMessage{} }

func (m *EditMessage) SetContent(content string) *EditMessage {
	m.Content = &content
	return m
}

func (m *EditMessage) SetEmbeds(embeds []Embed) *EditMessage {
	m.Embeds = &embeds
	return m
}

// EditMessage edits an existing message.
func (h *Http) EditMessage(channel ChannelID, message MessageID, edit *EditMessage) (*Message, error) {
	body, err := json.Marshal(edit)
	if err != nil {
		return nil, jsonErr(err)
	}
	route := RouteForChannelMessage(channel, message)
	resp, _, err := h.req.do("PATCH", fmt.Sprintf("/channels/%s/messages/%s", channel, message), body, &route)
	if err != nil {
		return nil, err
	}
	var out Message
	if err := json.Unmarshal(resp, &out); err != nil {
		return nil, jsonErr(err)
	}
	return &out, nil
}

// DeleteMessage deletes a message.
func (h *Http) DeleteMessage(channel ChannelID, message MessageID) error {
	route := RouteForChannelMessage(channel, message)
	_, _, err := h.req.do("DELETE", fmt.Sprintf("/channels/%s/messages/%s", channel, message), nil, &route)
	return err
}

// GetGuildMember fetches a single member of a guild. A 404 means the
// member is absent and is reported as (nil, nil), not an error.
func (h *Http) GetGuildMember(guild GuildID, user UserID) (*Member, error) {
	route := RouteForGuild(guild)
	body, _, err := h.req.do("GET", fmt.Sprintf("/guilds/%s/members/%s", guild, user), nil, &route)
	if err != nil {
		if embedErr, ok := err.(*Error); ok && embedErr.Status == 404 {
			return nil, nil
		}
		return nil, err
	}
	var m Member
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, jsonErr(err)
	}
	return &m, nil
}

// ListGuildMembersParams is the query string for Http.ListGuildMembers,
// encoded with gorilla/schema the way switchupcb-disgo encodes query
// params for its generated GET requests.
type ListGuildMembersParams struct {
	Limit int       `schema:"limit,omitempty"`
	After UserID    `schema:"after,omitempty"`
}

// ListGuildMembers pages through the members of a guild.
func (h *Http) ListGuildMembers(guild GuildID, params ListGuildMembersParams) ([]Member, error) {
	values := url.Values{}
	if err := queryEncoder.Encode(params, values); err != nil {
		return nil, wrapErr(ErrCustom, err)
	}
	route := RouteForGuild(guild)
	endpoint := fmt.Sprintf("/guilds/%s/members", guild)
	if q := values.Encode(); q != "" {
		endpoint += "?" + q
	}
	body, _, err := h.req.do("GET", endpoint, nil, &route)
	if err != nil {
		return nil, err
	}
	var members []Member
	if err := json.Unmarshal(body, &members); err != nil {
		return nil, jsonErr(err)
	}
	return members, nil
}

// SearchGuildMembersParams is the query string for Http.SearchGuildMembers.
type SearchGuildMembersParams struct {
	Query string `schema:"query"`
	Limit int    `schema:"limit,omitempty"`
}

// SearchGuildMembers searches guild members by username/nickname prefix.
func (h *Http) SearchGuildMembers(guild GuildID, params SearchGuildMembersParams) ([]Member, error) {
	values := url.Values{}
	if err := queryEncoder.Encode(params, values); err != nil {
		return nil, wrapErr(ErrCustom, err)
	}
	route := RouteForGuild(guild)
	endpoint := fmt.Sprintf("/guilds/%s/members/search?%s", guild, values.Encode())
	body, _, err := h.req.do("GET", endpoint, nil, &route)
	if err != nil {
		return nil, err
	}
	var members []Member
	if err := json.Unmarshal(body, &members); err != nil {
		return nil, jsonErr(err)
	}
	return members, nil
}

// AddGuildMemberRole grants role to user in guild.
func (h *Http) AddGuildMemberRole(guild GuildID, user UserID, role RoleID) error {
	route := RouteForGuildMember(guild, user)
	_, _, err := h.req.do("PUT", fmt.Sprintf("/guilds/%s/members/%s/roles/%s", guild, user, role), nil, &route)
	return err
}

// RemoveGuildMemberRole revokes role from user in guild.
func (h *Http) RemoveGuildMemberRole(guild GuildID, user UserID, role RoleID) error {
	route := RouteForGuildMember(guild, user)
	_, _, err := h.req.do("DELETE", fmt.Sprintf("/guilds/%s/members/%s/roles/%s", guild, user, role), nil, &route)
	return err
}

// GetGuildRoles lists the roles of a guild. Unbucketed: no Route.
func (h *Http) GetGuildRoles(guild GuildID) ([]Role, error) {
	body, _, err := h.req.do("GET", fmt.Sprintf("/guilds/%s/roles", guild), nil, nil)
	if err != nil {
		return nil, err
	}
	var roles []Role
	if err := json.Unmarshal(body, &roles); err != nil {
		return nil, jsonErr(err)
	}
	return roles, nil
}

// CreateGuildRole is the request body for Http.CreateGuildRole.
//
// Grounded on original_source/src/http/create_guild_role.rs.
type CreateGuildRole struct {
	Name        string `json:"name,omitempty"`
	Permissions string `json:"permissions,omitempty"`
	Color       Color  `json:"color,omitempty"`
	Hoist       bool   `json:"hoist,omitempty"`
	Mentionable bool   `json:"mentionable,omitempty"`
}

func NewCreateGuildRole() *CreateGuildRole { return &CreateGuildRole{} }

func (r *CreateGuildRole) SetName(name string) *CreateGuildRole {
	r.Name = name
	return r
}

func (r *CreateGuildRole) SetColor(c Color) *CreateGuildRole {
	r.Color = c
	return r
}

func (r *CreateGuildRole) SetHoist(hoist bool) *CreateGuildRole {
	r.Hoist = hoist
	return r
}

func (r *CreateGuildRole) SetMentionable(m bool) *CreateGuildRole {
	r.Mentionable = m
	return r
}

// CreateGuildRole creates a new role in guild.
func (h *Http) CreateGuildRole(guild GuildID, role *CreateGuildRole) (*Role, error) {
	body, err := json.Marshal(role)
	if err != nil {
		return nil, jsonErr(err)
	}
	route := RouteForGuild(guild)
	resp, _, err := h.req.do("POST", fmt.Sprintf("/guilds/%s/roles", guild), body, &route)
	if err != nil {
		return nil, err
	}
	var out Role
	if err := json.Unmarshal(resp, &out); err != nil {
		return nil, jsonErr(err)
	}
	return &out, nil
}

// DeleteGuildRole deletes a role from guild. Unbucketed: no Route.
func (h *Http) DeleteGuildRole(guild GuildID, role RoleID) error {
	_, _, err := h.req.do("DELETE", fmt.Sprintf("/guilds/%s/roles/%s", guild, role), nil, nil)
	return err
}

// CreateDM opens (or fetches the existing) DM channel with user.
func (h *Http) CreateDM(user UserID) (*Channel, error) {
	body, err := json.Marshal(struct {
		RecipientID UserID `json:"recipient_id"`
	}{RecipientID: user})
	if err != nil {
		return nil, jsonErr(err)
	}
	resp, _, err := h.req.do("POST", "/users/@me/channels", body, nil)
	if err != nil {
		return nil, err
	}
	var ch Channel
	if err := json.Unmarshal(resp, &ch); err != nil {
		return nil, jsonErr(err)
	}
	return &ch, nil
}

// ExecuteWebhook is the request body for Http.ExecuteWebhook.
//
// Grounded on original_source/src/http/execute_webhook.rs.
type ExecuteWebhook struct {
	Content   string  `json:"content,omitempty"`
	Username  string  `json:"username,omitempty"`
	AvatarURL string  `json:"avatar_url,omitempty"`
	TTS       bool    `json:"tts,omitempty"`
	Embeds    []Embed `json:"embeds,omitempty"`
}

func NewExecuteWebhook() *ExecuteWebhook { return &ExecuteWebhook{} }

func (w *ExecuteWebhook) SetContent(content string) *ExecuteWebhook {
	w.Content = content
	return w
}

func (w *ExecuteWebhook) SetUsername(username string) *ExecuteWebhook {
	w.Username = username
	return w
}

func (w *ExecuteWebhook) SetAvatarURL(url string) *ExecuteWebhook {
	w.AvatarURL = url
	return w
}

func (w *ExecuteWebhook) AddEmbed(e Embed) *ExecuteWebhook {
	w.Embeds = append(w.Embeds, e)
	return w
}

// ExecuteWebhook posts a message through a webhook. If wait is false the
// server does not report the created message and ExecuteWebhook returns
// (nil, nil) on success.
func (h *Http) ExecuteWebhook(webhook WebhookID, token string, wait bool, msg *ExecuteWebhook) (*Message, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return nil, jsonErr(err)
	}
	route := RouteForWebhook(webhook)
	endpoint := fmt.Sprintf("/webhooks/%s/%s?wait=%t", webhook, token, wait)
	resp, _, err := h.req.do("POST", endpoint, body, &route)
	if err != nil {
		return nil, err
	}
	if !wait {
		return nil, nil
	}
	var out Message
	if err := json.Unmarshal(resp, &out); err != nil {
		return nil, jsonErr(err)
	}
	return &out, nil
}

// DeleteWebhookMessage deletes a message previously sent through a webhook.
func (h *Http) DeleteWebhookMessage(webhook WebhookID, token string, message MessageID) error {
	route := RouteForWebhook(webhook)
	_, _, err := h.req.do("DELETE", fmt.Sprintf("/webhooks/%s/%s/messages/%s", webhook, token, message), nil, &route)
	return err
}
