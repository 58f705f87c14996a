package taskapi

import (
	"net/http"

	"github.com/google/uuid"
)

// RoundTripperFunc adapts a function to http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// CSRFTransport adds the page's CSRF token to every non-GET request. An empty
// token leaves requests untouched.
func CSRFTransport(next http.RoundTripper, header, token string) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	if token == "" || header == "" {
		return next
	}
	return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if req.Method == http.MethodGet || req.Method == "" {
			return next.RoundTrip(req)
		}
		req = req.Clone(req.Context())
		req.Header.Set(header, token)
		return next.RoundTrip(req)
	})
}

const RequestIDHeader = "X-Request-ID"

// RequestIDTransport stamps each request with a fresh id unless the caller
// already set one.
func RequestIDTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if req.Header.Get(RequestIDHeader) != "" {
			return next.RoundTrip(req)
		}
		req = req.Clone(req.Context())
		req.Header.Set(RequestIDHeader, uuid.New().String())
		return next.RoundTrip(req)
	})
}
