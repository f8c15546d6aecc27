package event

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// emitTimeout is the max time allowed for a single async emit. Used by EmitAsync and by ShutdownDrainDuration.
const emitTimeout = 5 * time.Second

// ShutdownDrainDuration is how long to wait after the HTTP server stops before
// closing the emitter, so in-flight async emits have time to complete.
const ShutdownDrainDuration = emitTimeout

// EmitAsync runs Emit in a goroutine with a short timeout so the caller is not blocked.
// Use from request handlers for fire-and-forget, best-effort events; errors are logged.
//
// emitter and e may be nil; EmitAsync returns immediately without starting a goroutine.
// The goroutine uses context.Background() with emitTimeout so request cancellation does
// not abort an in-flight emit; the request's logger is carried over for error reporting.
func EmitAsync(emitter Emitter, ctx context.Context, e *Event) {
	if emitter == nil || e == nil {
		return
	}
	logger := zerolog.Ctx(ctx)
	go func() {
		emitCtx, cancel := context.WithTimeout(context.Background(), emitTimeout)
		defer cancel()
		if err := emitter.Emit(emitCtx, e); err != nil {
			logger.Warn().Err(err).Str("type", e.Type).Msg("event: async emit failed")
		}
	}()
}
