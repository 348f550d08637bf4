package transport

import (
	"context"
	"net/http"

	"github.com/hostelhub/go-booking-client/credentials"
)

type retriedKey struct{}

// MarkRetried flags a request as already having been through expiry handling
// once. A caller that re-issues a logical request after a 401 marks the
// second attempt so a second 401 cannot trigger the clear-and-redirect again.
func MarkRetried(req *http.Request) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), retriedKey{}, true))
}

// Retried reports whether the request carries the retried mark.
func Retried(req *http.Request) bool {
	retried, _ := req.Context().Value(retriedKey{}).(bool)
	return retried
}

// Unauthorized handles authorization failures uniformly. On a 401 to an
// unmarked request with a refresh token on file, the stored credentials are
// cleared and onExpired runs: the backend offers no refresh grant to spend
// the token on, so an expired session is unrecoverable and the user goes
// back to login. A 401 without a refresh token, or to a marked request,
// passes through untouched for the caller to surface.
//
// Transport errors and every non-401 status pass through verbatim: no
// retries, no added timeouts.
func Unauthorized(store credentials.Store, onExpired func()) Stage {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			resp, err := next.RoundTrip(req)
			if err != nil {
				return nil, err
			}
			if resp.StatusCode != http.StatusUnauthorized || Retried(req) {
				return resp, nil
			}

			creds, loadErr := store.Load()
			if loadErr != nil || creds == nil || creds.RefreshToken == "" {
				return resp, nil
			}

			// Best effort: a failing clear must not mask the 401 the caller
			// is about to see.
			_ = store.Clear()
			if onExpired != nil {
				onExpired()
			}
			return resp, nil
		})
	}
}
