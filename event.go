/************************************************************************************
 *
 * ember, a Go client library for a Discord-shaped chat-service gateway + REST API
 *
 * SPDX-License-Identifier: BSD-3-Clause
 *
 ************************************************************************************/

package ember

import (
	"encoding/json"

	"github.com/bytedance/sonic"
)

// Gateway op-codes, inbound and outbound.
//
// Grounded on original_source/src/gateway/event.rs and the opcode
// constants in _examples/marouanesouiri-dwaz/shard.go (gatewayOpcodeX).
const (
	opDispatch            = 0
	opHeartbeat           = 1
	opIdentify            = 2
	opPresenceUpdate      = 3
	opResume              = 6
	opReconnect           = 7
	opInvalidSession      = 9
	opHello               = 10
	opHeartbeatAck        = 11
)

// envelope is the raw shape of every inbound/outbound gateway frame.
type envelope struct {
	Op int             `json:"op"`
	D  json.RawMessage `json:"d,omitempty"`
	S  *uint64         `json:"s,omitempty"`
	T  string          `json:"t,omitempty"`
}

// EventKind discriminates the variants of Event.
type EventKind int

const (
	EventDispatch EventKind = iota
	EventHeartbeat
	EventReconnect
	EventInvalidSession
	EventHello
	EventHeartbeatAck
	EventUnknown
)

// Event is the decoded gateway control envelope, a tagged union over the
// server's op-codes.
//
// Grounded on original_source/src/gateway/event.rs's Event enum.
type Event struct {
	Kind EventKind

	// Dispatch carries the DispatchEvent when Kind == EventDispatch.
	Dispatch *DispatchEvent

	// InvalidSessionResumable carries the `d` boolean when
	// Kind == EventInvalidSession.
	InvalidSessionResumable bool

	// HelloHeartbeatInterval carries `d.heartbeat_interval` when
	// Kind == EventHello.
	HelloHeartbeatInterval uint64

	// UnknownOp and UnknownRaw carry the op-code and raw frame bytes when
	// Kind == EventUnknown.
	UnknownOp  int
	UnknownRaw []byte
}

// DispatchEventKind discriminates the variants of DispatchEvent.
type DispatchEventKind int

const (
	DispatchReady DispatchEventKind = iota
	DispatchMessageCreate
	DispatchUnknown
)

// ReadyPayload is the minimal subset of the READY dispatch this client
// needs, per spec.
type ReadyPayload struct {
	Version   int    `json:"v"`
	User      User   `json:"user"`
	SessionID string `json:"session_id"`
	Shard     *[2]int `json:"shard,omitempty"`
}

// DispatchEvent is a single server push delivered over the event channel.
//
// Grounded on original_source/src/gateway/dispatch_event.rs's manual
// map-based deserialization, adapted to a parse-by-`t`-then-store-typed-
// payload shape idiomatic in Go.
type DispatchEvent struct {
	SequenceNumber uint64
	Kind           DispatchEventKind

	Ready          *ReadyPayload
	MessageCreate  *Message

	// UnknownType and UnknownRaw carry the `t` field and raw `d` bytes
	// when Kind == DispatchUnknown.
	UnknownType string
	UnknownRaw  []byte
}

// decodeEvent parses one raw gateway text frame into an Event. Parse
// failures return an error; callers (Gateway.poll_events) drop frames
// that fail to parse rather than propagating the error, per spec.
func decodeEvent(raw []byte) (*Event, error) {
	var env envelope
	if err := sonic.Unmarshal(raw, &env); err != nil {
		return nil, jsonErr(err)
	}

	switch env.Op {
	case opDispatch:
		de, err := decodeDispatchEvent(env)
		if err != nil {
			return nil, err
		}
		return &Event{Kind: EventDispatch, Dispatch: de}, nil

	case opHeartbeat:
		return &Event{Kind: EventHeartbeat}, nil

	case opReconnect:
		return &Event{Kind: EventReconnect}, nil

	case opInvalidSession:
		var resumable bool
		_ = sonic.Unmarshal(env.D, &resumable)
		return &Event{Kind: EventInvalidSession, InvalidSessionResumable: resumable}, nil

	case opHello:
		var hello struct {
			HeartbeatInterval uint64 `json:"heartbeat_interval"`
		}
		if err := sonic.Unmarshal(env.D, &hello); err != nil {
			return nil, jsonErr(err)
		}
		return &Event{Kind: EventHello, HelloHeartbeatInterval: hello.HeartbeatInterval}, nil

	case opHeartbeatAck:
		return &Event{Kind: EventHeartbeatAck}, nil

	default:
		return &Event{Kind: EventUnknown, UnknownOp: env.Op, UnknownRaw: raw}, nil
	}
}

func decodeDispatchEvent(env envelope) (*DispatchEvent, error) {
	var seq uint64
	if env.S != nil {
		seq = *env.S
	}

	switch env.T {
	case "READY":
		var ready ReadyPayload
		if err := sonic.Unmarshal(env.D, &ready); err != nil {
			return nil, jsonErr(err)
		}
		return &DispatchEvent{SequenceNumber: seq, Kind: DispatchReady, Ready: &ready}, nil

	case "MESSAGE_CREATE":
		var msg Message
		if err := sonic.Unmarshal(env.D, &msg); err != nil {
			return nil, jsonErr(err)
		}
		return &DispatchEvent{SequenceNumber: seq, Kind: DispatchMessageCreate, MessageCreate: &msg}, nil

	default:
		return &DispatchEvent{
			SequenceNumber: seq,
			Kind:           DispatchUnknown,
			UnknownType:    env.T,
			UnknownRaw:     []byte(env.D),
		}, nil
	}
}

// encodeHeartbeat builds the op=1 outbound envelope. seq is nil for "no
// sequence number yet".
func encodeHeartbeat(seq *uint64) ([]byte, error) {
	return sonic.Marshal(struct {
		Op int     `json:"op"`
		D  *uint64 `json:"d"`
	}{Op: opHeartbeat, D: seq})
}

type identifyProperties struct {
	OS      string `json:"$os"`
	Browser string `json:"$browser"`
	Device  string `json:"$device"`
}

// encodeIdentify builds the op=2 outbound envelope.
func encodeIdentify(token string, intents GatewayIntent) ([]byte, error) {
	return sonic.Marshal(struct {
		Op int `json:"op"`
		D  struct {
			Token      string             `json:"token"`
			Properties identifyProperties `json:"properties"`
			Intents    GatewayIntent      `json:"intents"`
		} `json:"d"`
	}{
		Op: opIdentify,
		D: struct {
			Token      string             `json:"token"`
			Properties identifyProperties `json:"properties"`
			Intents    GatewayIntent      `json:"intents"`
		}{
			Token:      token,
			Properties: identifyProperties{OS: "linux", Browser: "ember", Device: "ember"},
			Intents:    intents,
		},
	})
}

// encodeResume builds the op=6 outbound envelope.
func encodeResume(token, sessionID string, seq uint64) ([]byte, error) {
	return sonic.Marshal(struct {
		Op int `json:"op"`
		D  struct {
			Token     string `json:"token"`
			SessionID string `json:"session_id"`
			Seq       uint64 `json:"seq"`
		} `json:"d"`
	}{
		Op: opResume,
		D: struct {
			Token     string `json:"token"`
			SessionID string `json:"session_id"`
			Seq       uint64 `json:"seq"`
		}{Token: token, SessionID: sessionID, Seq: seq},
	})
}

// encodePresenceUpdate builds the op=3 outbound envelope.
func encodePresenceUpdate(status Status, activity *Activity) ([]byte, error) {
	activities := []Activity{}
	if activity != nil {
		activities = append(activities, *activity)
	}
	return sonic.Marshal(struct {
		Op int `json:"op"`
		D  struct {
			Since      int64      `json:"since"`
			Activities []Activity `json:"activities"`
			Status     Status     `json:"status"`
			AFK        bool       `json:"afk"`
		} `json:"d"`
	}{
		Op: opPresenceUpdate,
		D: struct {
			Since      int64      `json:"since"`
			Activities []Activity `json:"activities"`
			Status     Status     `json:"status"`
			AFK        bool       `json:"afk"`
		}{Since: 0, Activities: activities, Status: status, AFK: false},
	})
}
