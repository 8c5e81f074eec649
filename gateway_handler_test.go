/************************************************************************************
 *
 * ember, a Go client library for a Discord-shaped chat-service gateway + REST API
 *
 * SPDX-License-Identifier: BSD-3-Clause
 *
 ************************************************************************************/

package ember

import (
	"context"
	"sync"
	"testing"
	"time"
)

// fakeGateway is an in-memory stand-in for *Gateway that records every
// send primitive invocation, so tests can assert on the sequence of
// Identify/Resume/Heartbeat calls without a real socket.
type fakeGateway struct {
	mu sync.Mutex

	queued []Event

	identifyCalls  int
	resumeCalls    int
	heartbeatCalls int
	reconnectCalls int

	lastResumeSessionID string
	lastResumeSeq        uint64
}

func (f *fakeGateway) connect(ctx context.Context) error { return nil }

func (f *fakeGateway) reconnect(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reconnectCalls++
	return nil
}

func (f *fakeGateway) pollEvents() []Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	ev := f.queued
	f.queued = nil
	return ev
}

func (f *fakeGateway) heartbeat(seq *uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.heartbeatCalls++
	return nil
}

func (f *fakeGateway) identify(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.identifyCalls++
	return nil
}

func (f *fakeGateway) resume(token, sessionID string, seq uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resumeCalls++
	f.lastResumeSessionID = sessionID
	f.lastResumeSeq = seq
	return nil
}

func (f *fakeGateway) push(ev Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queued = append(f.queued, ev)
}

// TestGatewayHandlerHelloIdentifiesWithoutSession verifies the Hello
// transition: no session yet, so Hello triggers Identify, never Resume
// (P1).
func TestGatewayHandlerHelloIdentifiesWithoutSession(t *testing.T) {
	fg := &fakeGateway{}
	events := make(chan DispatchEvent, 4)
	h := newGatewayHandler(fg, "token", events, nil)

	if err := h.handle(context.Background(), Event{Kind: EventHello, HelloHeartbeatInterval: 1000}); err != nil {
		t.Fatalf("handle: %v", err)
	}

	if fg.identifyCalls != 1 {
		t.Fatalf("identifyCalls = %d, want 1", fg.identifyCalls)
	}
	if fg.resumeCalls != 0 {
		t.Fatalf("resumeCalls = %d, want 0 (P1: no Resume while session_id unset)", fg.resumeCalls)
	}
}

// TestGatewayHandlerHelloMidSessionIsNoop verifies the Open Question
// resolution: Hello with an existing session does nothing (resume is
// handled by the reconnect path, not by Hello).
func TestGatewayHandlerHelloMidSessionIsNoop(t *testing.T) {
	fg := &fakeGateway{}
	events := make(chan DispatchEvent, 4)
	h := newGatewayHandler(fg, "token", events, nil)
	h.state.hasSession = true
	h.state.sessionID = "abc"

	if err := h.handle(context.Background(), Event{Kind: EventHello, HelloHeartbeatInterval: 1000}); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if fg.identifyCalls != 0 || fg.resumeCalls != 0 {
		t.Fatalf("expected no-op, got identify=%d resume=%d", fg.identifyCalls, fg.resumeCalls)
	}
}

// TestGatewayHandlerReadyForwardsAndSetsSession verifies the Ready
// dispatch transition: session_id captured, sequence number updated, the
// event forwarded to the channel.
func TestGatewayHandlerReadyForwardsAndSetsSession(t *testing.T) {
	fg := &fakeGateway{}
	events := make(chan DispatchEvent, 4)
	h := newGatewayHandler(fg, "token", events, nil)

	de := DispatchEvent{SequenceNumber: 1, Kind: DispatchReady, Ready: &ReadyPayload{SessionID: "abc"}}
	if err := h.handle(context.Background(), Event{Kind: EventDispatch, Dispatch: &de}); err != nil {
		t.Fatalf("handle: %v", err)
	}

	sessionID, hasSession, seq := h.state.snapshot()
	if !hasSession || sessionID != "abc" || seq != 1 {
		t.Fatalf("unexpected state: sessionID=%q hasSession=%v seq=%d", sessionID, hasSession, seq)
	}

	select {
	case got := <-events:
		if got.Kind != DispatchReady {
			t.Fatalf("forwarded event kind = %v, want DispatchReady", got.Kind)
		}
	default:
		t.Fatal("expected Ready event to be forwarded")
	}
}

// TestGatewayHandlerHeartbeatAck verifies P2: after a HeartbeatAck,
// last_heartbeat_ack is true until the next heartbeat send.
func TestGatewayHandlerHeartbeatAck(t *testing.T) {
	fg := &fakeGateway{}
	events := make(chan DispatchEvent, 1)
	h := newGatewayHandler(fg, "token", events, nil)

	if err := h.handle(context.Background(), Event{Kind: EventHeartbeatAck}); err != nil {
		t.Fatalf("handle: %v", err)
	}
	h.state.mu.RLock()
	ack := h.state.lastHeartbeatAck
	h.state.mu.RUnlock()
	if !ack {
		t.Fatal("expected lastHeartbeatAck = true after HeartbeatAck")
	}
}

// TestGatewayHandlerMissedAckReconnectsAndResumes verifies P3: if a
// heartbeat tick is due and the previous ack never arrived, the handler
// reconnects then resumes before sending the next heartbeat.
func TestGatewayHandlerMissedAckReconnectsAndResumes(t *testing.T) {
	fg := &fakeGateway{}
	events := make(chan DispatchEvent, 1)
	h := newGatewayHandler(fg, "token", events, nil)

	h.state.hasSession = true
	h.state.sessionID = "abc"
	h.state.sequenceNumber = 7
	h.state.heartbeatInterval = time.Millisecond
	h.state.lastHeartbeat = time.Now().Add(-time.Hour)
	h.state.lastHeartbeatAck = false

	// maybeHeartbeat sleeps a [1s, 5s] jitter before recovering (spec.md
	// §4.2); run off the test goroutine and bound the wait generously.
	done := make(chan error, 1)
	go func() { done <- h.maybeHeartbeat(context.Background()) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("maybeHeartbeat: %v", err)
		}
	case <-time.After(6 * time.Second):
		t.Fatal("maybeHeartbeat did not return within 6s")
	}

	if fg.reconnectCalls != 1 {
		t.Fatalf("reconnectCalls = %d, want 1", fg.reconnectCalls)
	}
	if fg.resumeCalls != 1 {
		t.Fatalf("resumeCalls = %d, want 1", fg.resumeCalls)
	}
	if fg.lastResumeSessionID != "abc" || fg.lastResumeSeq != 7 {
		t.Fatalf("resume called with sessionID=%q seq=%d, want abc/7", fg.lastResumeSessionID, fg.lastResumeSeq)
	}
	if fg.heartbeatCalls != 1 {
		t.Fatalf("expected exactly one heartbeat sent after recovery, got %d", fg.heartbeatCalls)
	}
}

// TestGatewayHandlerInvalidSessionNonResumable verifies scenario 3: a
// non-resumable InvalidSession clears the session and sends Identify,
// never Resume.
func TestGatewayHandlerInvalidSessionNonResumable(t *testing.T) {
	fg := &fakeGateway{}
	events := make(chan DispatchEvent, 1)
	h := newGatewayHandler(fg, "token", events, nil)
	h.state.hasSession = true
	h.state.sessionID = "abc"

	done := make(chan error, 1)
	go func() {
		done <- h.handle(context.Background(), Event{Kind: EventInvalidSession, InvalidSessionResumable: false})
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("handle: %v", err)
		}
	case <-time.After(6 * time.Second):
		t.Fatal("handle did not return within the spec's max 5s jitter window")
	}

	if fg.resumeCalls != 0 {
		t.Fatalf("resumeCalls = %d, want 0 for non-resumable invalid session", fg.resumeCalls)
	}
	if fg.identifyCalls != 1 {
		t.Fatalf("identifyCalls = %d, want 1", fg.identifyCalls)
	}
	_, hasSession, _ := h.state.snapshot()
	if hasSession {
		t.Fatal("expected session to be cleared")
	}
}
