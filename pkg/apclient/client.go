// Package apclient provides the main entry point for creating platform clients.
package apclient

import (
	"fmt"
	"strings"

	"github.com/anypoint-ops/anypoint-client/internal/client"
	"github.com/anypoint-ops/anypoint-client/pkg/anypoint"
)

// New creates a new platform client from config.
func New(config *anypoint.Config) (anypoint.Client, error) {
	if config == nil {
		return nil, anypoint.ErrConfigRequired
	}

	// Normalize the endpoint
	endpoint := config.Endpoint
	if endpoint == "" {
		endpoint = anypoint.DefaultEndpoint
	}

	endpoint = strings.TrimSuffix(endpoint, "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	config.Endpoint = endpoint

	platformClient, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return platformClient, nil
}

// NewWithToken creates a new client from an endpoint and a pre-issued
// access token.
func NewWithToken(endpoint, token string) (anypoint.Client, error) {
	return New(&anypoint.Config{
		Endpoint:    endpoint,
		AccessToken: token,
	})
}

// NewWithCredentials creates a new client that logs in with username and
// password on first use.
func NewWithCredentials(endpoint, username, password string) (anypoint.Client, error) {
	return New(&anypoint.Config{
		Endpoint: endpoint,
		Username: username,
		Password: password,
	})
}
