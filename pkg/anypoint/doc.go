// Package anypoint defines the public interfaces, types, and errors for the
// Anypoint Platform administration client.
//
// The package contains no network code of its own: the concrete client lives
// in internal/client and is constructed through
// github.com/anypoint-ops/anypoint-client/pkg/apclient.
package anypoint
