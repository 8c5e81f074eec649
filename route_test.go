/************************************************************************************
 *
 * ember, a Go client library for a Discord-shaped chat-service gateway + REST API
 *
 * SPDX-License-Identifier: BSD-3-Clause
 *
 ************************************************************************************/

package ember

import "testing"

func TestRouteEqualityAsMapKey(t *testing.T) {
	m := make(map[Route]int)
	m[RouteForChannel(ChannelID(1))] = 1
	m[RouteForChannelMessage(ChannelID(1), MessageID(2))] = 2
	m[RouteForGuild(GuildID(3))] = 3

	if got := m[RouteForChannel(ChannelID(1))]; got != 1 {
		t.Fatalf("Channel route lookup = %d, want 1", got)
	}
	if got := m[RouteForChannelMessage(ChannelID(1), MessageID(2))]; got != 2 {
		t.Fatalf("ChannelMessage route lookup = %d, want 2", got)
	}
	// Same channel, no message id: distinct bucket from ChannelMessage.
	if _, ok := m[RouteForChannel(ChannelID(1))]; !ok {
		t.Fatal("expected Channel(1) route present")
	}
	if got := len(m); got != 3 {
		t.Fatalf("map len = %d, want 3", got)
	}
}

func TestRouteDistinguishesKindsWithSharedFields(t *testing.T) {
	r1 := RouteForGuild(GuildID(5))
	r2 := RouteForGuildMember(GuildID(5), UserID(0))
	if r1 == r2 {
		t.Fatal("Guild(5) and GuildMember(5, 0) must not compare equal")
	}
}
