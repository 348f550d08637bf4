package transport

import (
	"net/http"
	"strings"

	"github.com/hostelhub/go-booking-client/credentials"
)

// bootstrapFragments are the path fragments of endpoints that must be
// reachable without a session. Requests to them never carry a token, even
// when one is stored: a stale credential must not be able to fail a login
// or registration.
var bootstrapFragments = []string{
	"/register/student/",
	"/register/provider/",
	"/login/",
}

// IsBootstrapPath reports whether the path belongs to a bootstrap endpoint.
func IsBootstrapPath(path string) bool {
	for _, fragment := range bootstrapFragments {
		if strings.Contains(path, fragment) {
			return true
		}
	}
	return false
}

// Bearer attaches "Authorization: Bearer <token>" to every non-bootstrap
// request when the store holds an access token. The store is consulted per
// request so a login or logout between two calls is always reflected.
func Bearer(store credentials.Store) Stage {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if IsBootstrapPath(req.URL.Path) {
				return next.RoundTrip(req)
			}

			creds, err := store.Load()
			if err != nil || creds == nil || creds.AccessToken == "" {
				// No usable token; the request goes out unauthenticated and
				// the backend decides whether that is acceptable.
				return next.RoundTrip(req)
			}

			// RoundTrippers must not mutate the caller's request.
			req = req.Clone(req.Context())
			req.Header.Set("Authorization", "Bearer "+creds.AccessToken)
			return next.RoundTrip(req)
		})
	}
}
