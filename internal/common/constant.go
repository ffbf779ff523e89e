// Package common contains constants shared by the broker client, its
// transport and the CLI.
package common

// UserAgent identifies this client to the broker.
const UserAgent = "vingd-api-go/1.7"

// RequestIDHeaderName carries a per-call identifier so a request can be
// matched with broker-side logs.
const RequestIDHeaderName = "X-Request-Id"

const (
	DefaultConnectTimeoutSeconds = 5
	DefaultMaxRedirects          = 5
)
