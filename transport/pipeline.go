// Package transport provides the outgoing request pipeline: an ordered chain
// of composable stages wrapped around an http.RoundTripper. Every backend
// call goes through the same chain so no call site repeats the bearer or
// session-expiry handling.
package transport

import (
	"net/http"
)

// Stage wraps a RoundTripper with one request/response transformation.
type Stage func(next http.RoundTripper) http.RoundTripper

// RoundTripperFunc adapts a function to http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// Chain applies stages around base in reverse order, so the first listed
// stage sees the request first and the response last.
func Chain(base http.RoundTripper, stages ...Stage) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	chained := base
	for i := len(stages) - 1; i >= 0; i-- {
		chained = stages[i](chained)
	}
	return chained
}

// NewClient returns an http.Client whose transport is the staged chain.
// No client-level timeout is set; a caller that wants one supplies a request
// context deadline.
func NewClient(base http.RoundTripper, stages ...Stage) *http.Client {
	return &http.Client{Transport: Chain(base, stages...)}
}
