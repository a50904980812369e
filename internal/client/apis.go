package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anypoint-ops/anypoint-client/internal/http"
	"github.com/anypoint-ops/anypoint-client/pkg/anypoint"
)

// APIsClient implements anypoint.APIsClient.
type APIsClient struct {
	httpClient *http.Client
	accounts   *AccountsClient
}

// NewAPIsClient creates a new APIs client.
func NewAPIsClient(httpClient *http.Client, accounts *AccountsClient) *APIsClient {
	return &APIsClient{httpClient: httpClient, accounts: accounts}
}

// List returns the organization repository's API assets, each with its
// version list.
func (c *APIsClient) List(ctx context.Context) (*anypoint.APIList, error) {
	orgID, err := c.accounts.OrganizationID(ctx)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/apiplatform/repository/v2/organizations/%s/apis", orgID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing APIs: %w", err)
	}

	var list anypoint.APIList

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing APIs: %w", err)
	}

	return &list, nil
}

// Get fetches a single API asset by id.
func (c *APIsClient) Get(ctx context.Context, apiID string) (*anypoint.API, error) {
	orgID, err := c.accounts.OrganizationID(ctx)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/apiplatform/repository/v2/organizations/%s/apis/%s", orgID, apiID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching API %s: %w", apiID, err)
	}

	var api anypoint.API

	err = json.Unmarshal(resp.Body, &api)
	if err != nil {
		return nil, fmt.Errorf("parsing API: %w", err)
	}

	return &api, nil
}

// ListInEnvironment returns the API Manager listing for one environment.
func (c *APIsClient) ListInEnvironment(ctx context.Context, envID string) (*anypoint.EnvironmentAPIList, error) {
	orgID, err := c.accounts.OrganizationID(ctx)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/apimanager/api/v1/organizations/%s/environments/%s/apis", orgID, envID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing environment APIs: %w", err)
	}

	var list anypoint.EnvironmentAPIList

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing environment APIs: %w", err)
	}

	return &list, nil
}
