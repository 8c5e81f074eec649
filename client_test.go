/************************************************************************************
 *
 * ember, a Go client library for a Discord-shaped chat-service gateway + REST API
 *
 * SPDX-License-Identifier: BSD-3-Clause
 *
 ************************************************************************************/

package ember

import "testing"

func TestClientBuilderBotTokenShapesAuthAndIdentify(t *testing.T) {
	c := NewClientBuilder().
		WithBotToken("secret").
		WithIntents(IntentGuilds, IntentGuildMessages).
		Build()

	if c.authHeader != "Bot secret" {
		t.Fatalf("authHeader = %q, want %q", c.authHeader, "Bot secret")
	}
	if c.rawToken != "secret" {
		t.Fatalf("rawToken = %q, want %q", c.rawToken, "secret")
	}
	if !c.intents.Has(IntentGuilds, IntentGuildMessages) {
		t.Fatalf("intents = %v, missing configured bits", c.intents)
	}
	if c.http == nil {
		t.Fatal("expected Build to construct an Http facade")
	}
}

func TestClientBuilderBearerToken(t *testing.T) {
	c := NewClientBuilder().WithBearerToken("xyz").Build()
	if c.authHeader != "Bearer xyz" {
		t.Fatalf("authHeader = %q, want %q", c.authHeader, "Bearer xyz")
	}
}

func TestClientBuilderDefaultsToNopLogger(t *testing.T) {
	c := NewClientBuilder().Build()
	if c.logger == nil {
		t.Fatal("expected a default logger")
	}
}
