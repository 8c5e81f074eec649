/************************************************************************************
 *
 * ember, a Go client library for a Discord-shaped chat-service gateway + REST API
 *
 * SPDX-License-Identifier: BSD-3-Clause
 *
 ************************************************************************************/

package ember

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger is the logging surface used throughout ember. It mirrors the
// field-then-message idiom (WithField/WithFields then a level call) so the
// gateway, requester, and dispatcher read the same way regardless of the
// concrete logging backend an embedder wires in.
type Logger interface {
	WithField(key string, value any) Logger
	WithFields(fields map[string]any) Logger
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
}

// zeroLogger adapts zerolog.Logger to the Logger interface.
type zeroLogger struct {
	l zerolog.Logger
}

// NewLogger builds a default Logger writing human-readable output to w at
// the given level. Pass nil for w to use os.Stderr.
func NewLogger(w io.Writer, level zerolog.Level) Logger {
	if w == nil {
		w = os.Stderr
	}
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	return &zeroLogger{l: zerolog.New(cw).Level(level).With().Timestamp().Logger()}
}

// NewNopLogger returns a Logger that discards everything.
func NewNopLogger() Logger {
	return &zeroLogger{l: zerolog.Nop()}
}

func (z *zeroLogger) WithField(key string, value any) Logger {
	return &zeroLogger{l: z.l.With().Interface(key, value).Logger()}
}

func (z *zeroLogger) WithFields(fields map[string]any) Logger {
	ctx := z.l.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	return &zeroLogger{l: ctx.Logger()}
}

func (z *zeroLogger) Debug(msg string) { z.l.Debug().Msg(msg) }
func (z *zeroLogger) Info(msg string)  { z.l.Info().Msg(msg) }
func (z *zeroLogger) Warn(msg string)  { z.l.Warn().Msg(msg) }
func (z *zeroLogger) Error(msg string) { z.l.Error().Msg(msg) }
