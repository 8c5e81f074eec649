/************************************************************************************
 *
 * ember, a Go client library for a Discord-shaped chat-service gateway + REST API
 *
 * SPDX-License-Identifier: BSD-3-Clause
 *
 ************************************************************************************/

package ember

import "testing"

// TestDecodeEventHello verifies P6: op=10 with d.heartbeat_interval=X
// yields Hello{X ms}.
func TestDecodeEventHello(t *testing.T) {
	ev, err := decodeEvent([]byte(`{"op":10,"d":{"heartbeat_interval":41250}}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ev.Kind != EventHello {
		t.Fatalf("kind = %v, want EventHello", ev.Kind)
	}
	if ev.HelloHeartbeatInterval != 41250 {
		t.Fatalf("heartbeat interval = %d, want 41250", ev.HelloHeartbeatInterval)
	}
}

// TestDecodeEventInvalidSession verifies P6: op=9 with d=true yields
// InvalidSession(true).
func TestDecodeEventInvalidSession(t *testing.T) {
	ev, err := decodeEvent([]byte(`{"op":9,"d":true}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ev.Kind != EventInvalidSession {
		t.Fatalf("kind = %v, want EventInvalidSession", ev.Kind)
	}
	if !ev.InvalidSessionResumable {
		t.Fatalf("expected resumable = true")
	}
}

// TestDecodeEventDispatchMessageCreate verifies P6: op=0 with
// t="MESSAGE_CREATE" yields Dispatch(MessageCreate).
func TestDecodeEventDispatchMessageCreate(t *testing.T) {
	raw := `{"op":0,"s":5,"t":"MESSAGE_CREATE","d":{"id":"1","channel_id":"2","content":"hi","author":{"id":"3","username":"bob"}}}`
	ev, err := decodeEvent([]byte(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ev.Kind != EventDispatch {
		t.Fatalf("kind = %v, want EventDispatch", ev.Kind)
	}
	if ev.Dispatch.Kind != DispatchMessageCreate {
		t.Fatalf("dispatch kind = %v, want DispatchMessageCreate", ev.Dispatch.Kind)
	}
	if ev.Dispatch.SequenceNumber != 5 {
		t.Fatalf("sequence number = %d, want 5", ev.Dispatch.SequenceNumber)
	}
	if ev.Dispatch.MessageCreate.Content != "hi" {
		t.Fatalf("content = %q, want %q", ev.Dispatch.MessageCreate.Content, "hi")
	}
}

func TestDecodeEventUnknownOpPreserved(t *testing.T) {
	ev, err := decodeEvent([]byte(`{"op":99,"d":{"x":1}}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ev.Kind != EventUnknown || ev.UnknownOp != 99 {
		t.Fatalf("expected unknown op 99, got kind=%v op=%d", ev.Kind, ev.UnknownOp)
	}
}

func TestDecodeEventMalformedReturnsError(t *testing.T) {
	if _, err := decodeEvent([]byte(`not json`)); err == nil {
		t.Fatal("expected error for malformed frame")
	}
}

func TestEncodeHeartbeatNilSeq(t *testing.T) {
	b, err := encodeHeartbeat(nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(b) != `{"op":1,"d":null}` {
		t.Fatalf("unexpected encoding: %s", b)
	}
}

func TestEncodeIdentifyShape(t *testing.T) {
	b, err := encodeIdentify("secret", IntentGuilds.Add(IntentGuildMessages))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	// op=2 isn't a consumed inbound op, so it round-trips through
	// decodeEvent as Unknown — confirms the envelope is valid JSON
	// carrying op=2.
	ev, err := decodeEvent(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ev.Kind != EventUnknown || ev.UnknownOp != 2 {
		t.Fatalf("expected unknown op 2 round-trip, got kind=%v op=%d", ev.Kind, ev.UnknownOp)
	}
}
