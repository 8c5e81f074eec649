/************************************************************************************
 *
 * ember, a Go client library for a Discord-shaped chat-service gateway + REST API
 *
 * SPDX-License-Identifier: BSD-3-Clause
 *
 ************************************************************************************/

package ember

import "context"

// OnReadyFunc is the embedder's Ready callback.
type OnReadyFunc func(ctx *Context, ready ReadyPayload) error

// OnMessageCreateFunc is the embedder's MessageCreate callback.
type OnMessageCreateFunc func(ctx *Context, msg Message) error

// OnErrorFunc receives errors returned by user callbacks. Optional; if
// nil, callback errors are dropped (still logged at debug).
type OnErrorFunc func(err error)

// EventHandler delivers dispatch events to user callbacks, isolated from
// the network actor. Callbacks run serially, one event at a time, which
// guarantees the embedder the ordering contract in spec.md §4.3 and
// verified by P7: two events observed by GatewayHandler in order A then
// B are delivered to the callback in that order.
//
// Grounded on spec.md §4.3; the dedicated single-consumer worker mirrors
// _examples/marouanesouiri-dwaz/dispatcher.go's serial dispatch loop
// (deleted from this tree — see DESIGN.md — but this is its structural
// descendant).
type EventHandler struct {
	ctx    *Context
	logger Logger

	onReady         OnReadyFunc
	onMessageCreate OnMessageCreateFunc
	onError         OnErrorFunc
}

func newEventHandler(ctx *Context, onReady OnReadyFunc, onMessageCreate OnMessageCreateFunc, onError OnErrorFunc, logger Logger) *EventHandler {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &EventHandler{
		ctx:             ctx,
		logger:          logger,
		onReady:         onReady,
		onMessageCreate: onMessageCreate,
		onError:         onError,
	}
}

// run blocks on events until it is closed or ctx is cancelled,
// dispatching each DispatchEvent to the matching typed callback.
func (h *EventHandler) run(ctx context.Context, events <-chan DispatchEvent) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case de, ok := <-events:
			if !ok {
				return nil
			}
			h.dispatch(de)
		}
	}
}

func (h *EventHandler) dispatch(de DispatchEvent) {
	var err error
	switch de.Kind {
	case DispatchReady:
		if h.onReady != nil {
			err = h.onReady(h.ctx, *de.Ready)
		}
	case DispatchMessageCreate:
		if h.onMessageCreate != nil {
			err = h.onMessageCreate(h.ctx, *de.MessageCreate)
		}
	case DispatchUnknown:
		h.logger.WithField("type", de.UnknownType).Debug("ignoring unknown dispatch event")
		return
	}

	if err != nil {
		if h.onError != nil {
			h.onError(err)
		} else {
			h.logger.WithField("error", err).Debug("callback error with no error sink registered")
		}
	}
}
