package middleware

import (
	"bytes"
	"net/http"

	"github.com/cassiomorais/recurly-gateway/internal/infrastructure/observability"
	redisinfra "github.com/cassiomorais/recurly-gateway/internal/infrastructure/redis"
	"github.com/rs/zerolog"
)

const idempotencyHeader = "Idempotency-Key"

// Idempotency replays stored responses for repeated write requests carrying
// the same Idempotency-Key. Requests without the header pass through.
func Idempotency(store *redisinfra.IdempotencyStore, metrics *observability.Metrics, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(idempotencyHeader)
			if key == "" || r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			entry, err := store.Get(r.Context(), key)
			if err != nil {
				logger.Warn().Err(err).Msg("idempotency lookup failed, proceeding without replay")
			} else if entry != nil {
				metrics.IdempotencyReplays.Inc()
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Idempotency-Replayed", "true")
				w.WriteHeader(entry.ResponseStatus)
				w.Write([]byte(entry.ResponseBody))
				return
			}

			rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rec, r)

			// Only successful outcomes are replayable; transient failures
			// must stay retryable under the same key.
			if rec.statusCode < 500 {
				saveErr := store.Set(r.Context(), key, &redisinfra.IdempotencyEntry{
					ResponseStatus: rec.statusCode,
					ResponseBody:   rec.body.String(),
				})
				if saveErr != nil {
					logger.Warn().Err(saveErr).Msg("failed to store idempotency entry")
				}
			}
		})
	}
}

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (r *responseRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}
