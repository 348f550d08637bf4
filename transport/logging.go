package transport

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Logging emits one debug line per completed request with method, path,
// status, and duration. Failures log at warn with the transport error.
func Logging(logger zerolog.Logger) Stage {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.RoundTrip(req)
			elapsed := time.Since(start)

			if err != nil {
				logger.Warn().
					Str("method", req.Method).
					Str("path", req.URL.Path).
					Dur("elapsed", elapsed).
					Err(err).
					Msg("request failed")
				return nil, err
			}

			logger.Debug().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", resp.StatusCode).
				Dur("elapsed", elapsed).
				Msg("request completed")
			return resp, nil
		})
	}
}
