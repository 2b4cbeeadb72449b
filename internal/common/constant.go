// Package common contains shared constants used across client components.
package common

const (
	// AuthorizationHeaderName carries the bearer token on outbound requests.
	AuthorizationHeaderName = "Authorization"

	// RequestIDHeaderName carries a per-request correlation id.
	RequestIDHeaderName = "X-Request-ID"
)
