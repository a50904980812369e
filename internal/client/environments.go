package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anypoint-ops/anypoint-client/internal/http"
	"github.com/anypoint-ops/anypoint-client/pkg/anypoint"
)

// EnvironmentsClient implements anypoint.EnvironmentsClient.
type EnvironmentsClient struct {
	httpClient *http.Client
	accounts   *AccountsClient
}

// NewEnvironmentsClient creates a new environments client.
func NewEnvironmentsClient(httpClient *http.Client, accounts *AccountsClient) *EnvironmentsClient {
	return &EnvironmentsClient{httpClient: httpClient, accounts: accounts}
}

// List returns all environments of the caller's organization. The platform
// returns a bare array for this endpoint.
func (c *EnvironmentsClient) List(ctx context.Context) ([]anypoint.Environment, error) {
	orgID, err := c.accounts.OrganizationID(ctx)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/apiplatform/repository/v2/organizations/%s/environments", orgID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing environments: %w", err)
	}

	var environments []anypoint.Environment

	err = json.Unmarshal(resp.Body, &environments)
	if err != nil {
		return nil, fmt.Errorf("parsing environments: %w", err)
	}

	return environments, nil
}

// GetDefault returns the organization's default environment.
func (c *EnvironmentsClient) GetDefault(ctx context.Context) (*anypoint.Environment, error) {
	orgID, err := c.accounts.OrganizationID(ctx)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/apiplatform/repository/v2/organizations/%s/environments/default", orgID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching default environment: %w", err)
	}

	var environment anypoint.Environment

	err = json.Unmarshal(resp.Body, &environment)
	if err != nil {
		return nil, fmt.Errorf("parsing default environment: %w", err)
	}

	return &environment, nil
}
