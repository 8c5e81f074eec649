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
	"math/rand/v2"
	"sync"
	"time"
)

// SessionState is the gateway session's mutable bookkeeping, read and
// written only from the GatewayHandler's own goroutine except where
// noted.
//
// Grounded on spec.md §3 SessionState; mirrors the field set kept on
// _examples/marouanesouiri-dwaz/shard.go's Shard (seq, sessionID,
// lastHeartbeatACK).
type SessionState struct {
	mu sync.RWMutex

	sessionID         string
	hasSession        bool
	sequenceNumber    uint64
	heartbeatInterval time.Duration
	lastHeartbeat     time.Time
	lastHeartbeatAck  bool
}

func (s *SessionState) snapshot() (sessionID string, hasSession bool, seq uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID, s.hasSession, s.sequenceNumber
}

// gatewaySession is the subset of *Gateway's operations GatewayHandler
// needs, narrowed to an interface so tests can drive the state machine
// against a fake instead of a real socket.
type gatewaySession interface {
	connect(ctx context.Context) error
	reconnect(ctx context.Context) error
	pollEvents() []Event
	heartbeat(seq *uint64) error
	identify(token string) error
	resume(token, sessionID string, seq uint64) error
}

var _ gatewaySession = (*Gateway)(nil)

// GatewayHandler drives the protocol state machine over a Gateway: the
// heartbeat timer, ack tracking, and the Hello/Dispatch/Reconnect/
// InvalidSession transition table. Decoded DispatchEvents are forwarded
// to events.
//
// Grounded on spec.md §4.2 and on _examples/marouanesouiri-dwaz/shard.go's
// handleGatewayPayload + startHeartbeat, restructured as a pollable loop
// (poll_events + a heartbeat-due check) instead of a dedicated heartbeat
// goroutine, per spec's single-worker-iteration design.
type GatewayHandler struct {
	gw     gatewaySession
	token  string
	logger Logger

	state  SessionState
	events chan<- DispatchEvent
}

func newGatewayHandler(gw gatewaySession, token string, events chan<- DispatchEvent, logger Logger) *GatewayHandler {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &GatewayHandler{gw: gw, token: token, events: events, logger: logger}
}

// run drives one session to completion (until an unrecoverable error
// occurs), blocking the calling goroutine. It returns the error that
// ended the session, for the Client supervisor to act on.
func (h *GatewayHandler) run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := h.tick(ctx); err != nil {
			return err
		}
	}
}

// tick performs one iteration: the heartbeat-due check, then a poll of
// whatever events are available, each run through the transition table.
func (h *GatewayHandler) tick(ctx context.Context) error {
	if err := h.maybeHeartbeat(ctx); err != nil {
		return err
	}

	for _, ev := range h.gw.pollEvents() {
		if err := h.handle(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}

func (h *GatewayHandler) maybeHeartbeat(ctx context.Context) error {
	h.state.mu.Lock()
	interval := h.state.heartbeatInterval
	due := interval > 0 && time.Since(h.state.lastHeartbeat) >= interval
	ackMissing := due && !h.state.lastHeartbeatAck && !h.state.lastHeartbeat.IsZero()
	h.state.mu.Unlock()

	if !due {
		return nil
	}

	if ackMissing {
		h.logger.Warn("heartbeat ack missing, presuming link dead")
		sleepJitter()
		if err := h.reconnectAndResume(ctx); err != nil {
			return err
		}
	}

	_, _, seq := h.state.snapshot()
	var seqPtr *uint64
	if seq > 0 {
		seqPtr = &seq
	}
	if err := h.gw.heartbeat(seqPtr); err != nil {
		return err
	}

	h.state.mu.Lock()
	h.state.lastHeartbeat = time.Now()
	h.state.lastHeartbeatAck = false
	h.state.mu.Unlock()
	return nil
}

// handle runs a single decoded Event through the transition table.
func (h *GatewayHandler) handle(ctx context.Context, ev Event) error {
	switch ev.Kind {
	case EventHello:
		h.state.mu.Lock()
		h.state.heartbeatInterval = time.Duration(ev.HelloHeartbeatInterval) * time.Millisecond
		hasSession := h.state.hasSession
		h.state.mu.Unlock()

		if !hasSession {
			return h.gw.identify(h.token)
		}
		return nil

	case EventDispatch:
		de := *ev.Dispatch
		if de.Kind == DispatchReady {
			h.state.mu.Lock()
			h.state.sessionID = de.Ready.SessionID
			h.state.hasSession = true
			h.state.sequenceNumber = de.SequenceNumber
			h.state.mu.Unlock()
		} else {
			h.state.mu.Lock()
			h.state.sequenceNumber = de.SequenceNumber
			h.state.mu.Unlock()
		}
		h.forward(de)
		return nil

	case EventHeartbeat:
		_, _, seq := h.state.snapshot()
		var seqPtr *uint64
		if seq > 0 {
			seqPtr = &seq
		}
		if err := h.gw.heartbeat(seqPtr); err != nil {
			return err
		}
		h.state.mu.Lock()
		h.state.lastHeartbeat = time.Now()
		h.state.mu.Unlock()
		return nil

	case EventHeartbeatAck:
		h.state.mu.Lock()
		h.state.lastHeartbeatAck = true
		h.state.mu.Unlock()
		return nil

	case EventReconnect:
		return h.reconnectAndResume(ctx)

	case EventInvalidSession:
		sleepJitter()
		if err := h.gw.reconnect(ctx); err != nil {
			return err
		}
		if ev.InvalidSessionResumable {
			sessionID, _, seq := h.state.snapshot()
			return h.gw.resume(h.token, sessionID, seq)
		}
		h.state.mu.Lock()
		h.state.sessionID = ""
		h.state.hasSession = false
		h.state.sequenceNumber = 0
		h.state.mu.Unlock()
		return h.gw.identify(h.token)

	case EventUnknown:
		h.logger.WithField("op", ev.UnknownOp).Debug("unknown gateway op-code")
		return nil
	}
	return nil
}

// sleepJitter blocks for a uniformly random delay in [1s, 5s], the
// reconnect jitter spec.md §4.2 requires both for InvalidSession and for
// the missed-heartbeat-ack recovery path, to avoid synchronised
// reconnect storms across clients.
func sleepJitter() {
	time.Sleep(time.Duration(1000+rand.IntN(4000)) * time.Millisecond)
}

// reconnectAndResume implements the Reconnect/missed-ack recovery path:
// reconnect(), then resume using the session's last known sequence
// number. Never sends Resume while session_id is unset (P1).
func (h *GatewayHandler) reconnectAndResume(ctx context.Context) error {
	if err := h.gw.reconnect(ctx); err != nil {
		return err
	}
	sessionID, hasSession, seq := h.state.snapshot()
	if !hasSession {
		return h.gw.identify(h.token)
	}
	return h.gw.resume(h.token, sessionID, seq)
}

// forward hands de to the single EventHandler consumer. The channel is
// large-buffered to stand in for the spec's conceptually unbounded
// multi-producer-single-consumer channel; a blocking send here only
// stalls the network actor if the dispatch actor has fallen far behind.
func (h *GatewayHandler) forward(de DispatchEvent) {
	h.events <- de
}
