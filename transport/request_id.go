package transport

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader is the header carrying the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// RequestID assigns a fresh UUID to every outgoing request that does not
// already carry one, so client and backend logs can be lined up.
func RequestID() Stage {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if req.Header.Get(RequestIDHeader) == "" {
				req = req.Clone(req.Context())
				req.Header.Set(RequestIDHeader, uuid.New().String())
			}
			return next.RoundTrip(req)
		})
	}
}
