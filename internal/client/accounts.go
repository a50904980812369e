package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anypoint-ops/anypoint-client/internal/http"
	"github.com/anypoint-ops/anypoint-client/pkg/anypoint"
)

// AccountsClient implements anypoint.AccountsClient.
type AccountsClient struct {
	httpClient *http.Client
}

// NewAccountsClient creates a new accounts client.
func NewAccountsClient(httpClient *http.Client) *AccountsClient {
	return &AccountsClient{httpClient: httpClient}
}

// GetProfile fetches the authenticated user's account record.
func (c *AccountsClient) GetProfile(ctx context.Context) (*anypoint.Profile, error) {
	resp, err := c.httpClient.Get(ctx, "/accounts/api/me", nil)
	if err != nil {
		return nil, fmt.Errorf("fetching profile: %w", err)
	}

	var profile anypoint.Profile

	err = json.Unmarshal(resp.Body, &profile)
	if err != nil {
		return nil, fmt.Errorf("parsing profile: %w", err)
	}

	return &profile, nil
}

// OrganizationID returns the organization id of the authenticated user.
// Every organization-scoped accessor calls this per request; the profile is
// deliberately not cached so a token swap mid-process is always honored.
func (c *AccountsClient) OrganizationID(ctx context.Context) (string, error) {
	profile, err := c.GetProfile(ctx)
	if err != nil {
		return "", err
	}

	if profile.User.OrganizationID == "" {
		return "", anypoint.ErrOrganizationNotFound
	}

	return profile.User.OrganizationID, nil
}
