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
	"testing"
	"time"
)

// TestEventHandlerDeliversInOrder verifies P7: given inbound dispatches
// D1, D2 in that order, on_message_create observes them in that order.
func TestEventHandlerDeliversInOrder(t *testing.T) {
	var observed []string
	onMessage := func(ctx *Context, msg Message) error {
		observed = append(observed, msg.Content)
		return nil
	}

	h := newEventHandler(nil, nil, onMessage, nil, nil)
	events := make(chan DispatchEvent, 2)
	events <- DispatchEvent{Kind: DispatchMessageCreate, MessageCreate: &Message{Content: "first"}}
	events <- DispatchEvent{Kind: DispatchMessageCreate, MessageCreate: &Message{Content: "second"}}
	close(events)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := h.run(ctx, events); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(observed) != 2 || observed[0] != "first" || observed[1] != "second" {
		t.Fatalf("unexpected delivery order: %v", observed)
	}
}

// TestEventHandlerCallbackErrorReportedNotFatal verifies that an error
// returned from a callback is reported to the error sink and does not
// stop subsequent dispatches.
func TestEventHandlerCallbackErrorReportedNotFatal(t *testing.T) {
	var errs []error
	var delivered int
	onMessage := func(ctx *Context, msg Message) error {
		delivered++
		return errBoom
	}
	onError := func(err error) { errs = append(errs, err) }

	h := newEventHandler(nil, nil, onMessage, onError, nil)
	events := make(chan DispatchEvent, 2)
	events <- DispatchEvent{Kind: DispatchMessageCreate, MessageCreate: &Message{Content: "a"}}
	events <- DispatchEvent{Kind: DispatchMessageCreate, MessageCreate: &Message{Content: "b"}}
	close(events)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := h.run(ctx, events); err != nil {
		t.Fatalf("run: %v", err)
	}

	if delivered != 2 {
		t.Fatalf("delivered = %d, want 2", delivered)
	}
	if len(errs) != 2 {
		t.Fatalf("errs = %d, want 2", len(errs))
	}
}

// TestEventHandlerIgnoresUnknown verifies Unknown dispatch events are
// silently ignored.
func TestEventHandlerIgnoresUnknown(t *testing.T) {
	called := false
	onMessage := func(ctx *Context, msg Message) error {
		called = true
		return nil
	}
	h := newEventHandler(nil, nil, onMessage, nil, nil)
	events := make(chan DispatchEvent, 1)
	events <- DispatchEvent{Kind: DispatchUnknown, UnknownType: "SOMETHING_NEW"}
	close(events)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := h.run(ctx, events); err != nil {
		t.Fatalf("run: %v", err)
	}
	if called {
		t.Fatal("expected unknown dispatch to be ignored")
	}
}

type boomError struct{}

func (boomError) Error() string { return "boom" }

var errBoom = boomError{}
