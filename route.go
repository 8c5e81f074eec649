/************************************************************************************
 *
 * ember, a Go client library for a Discord-shaped chat-service gateway + REST API
 *
 * SPDX-License-Identifier: BSD-3-Clause
 *
 ************************************************************************************/

package ember

// RouteKind discriminates the variants of Route. Route is a small closed
// tagged union (not an open string bucket key, unlike the teacher's
// regex-derived routeData in requester.go) because the server's rate-limit
// buckets for this surface partition along exactly five dimensions, per
// original_source/src/http/route.rs plus the GuildMember variant the
// member-role endpoints need that the original source never implemented.
type RouteKind int

const (
	RouteChannel RouteKind = iota
	RouteChannelMessage
	RouteGuild
	RouteGuildMember
	RouteWebhook
)

// Route is the rate-limit bucket key for a REST request. It is a value
// type: two Routes with equal fields are the same bucket, so Route is safe
// to use directly as a map key.
type Route struct {
	Kind      RouteKind
	Channel   ChannelID
	Message   MessageID
	Guild     GuildID
	User      UserID
	Webhook   WebhookID
}

func RouteForChannel(ch ChannelID) Route {
	return Route{Kind: RouteChannel, Channel: ch}
}

func RouteForChannelMessage(ch ChannelID, msg MessageID) Route {
	return Route{Kind: RouteChannelMessage, Channel: ch, Message: msg}
}

func RouteForGuild(g GuildID) Route {
	return Route{Kind: RouteGuild, Guild: g}
}

func RouteForGuildMember(g GuildID, u UserID) Route {
	return Route{Kind: RouteGuildMember, Guild: g, User: u}
}

func RouteForWebhook(w WebhookID) Route {
	return Route{Kind: RouteWebhook, Webhook: w}
}
