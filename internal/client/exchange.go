package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anypoint-ops/anypoint-client/internal/http"
	"github.com/anypoint-ops/anypoint-client/pkg/anypoint"
)

// ExchangeClient implements anypoint.ExchangeClient.
type ExchangeClient struct {
	httpClient *http.Client
	accounts   *AccountsClient
}

// NewExchangeClient creates a new Exchange client.
func NewExchangeClient(httpClient *http.Client, accounts *AccountsClient) *ExchangeClient {
	return &ExchangeClient{httpClient: httpClient, accounts: accounts}
}

// ListAssets returns the Exchange assets visible to the caller.
func (c *ExchangeClient) ListAssets(ctx context.Context) ([]anypoint.ExchangeAsset, error) {
	resp, err := c.httpClient.Get(ctx, "/exchange/api/v1/assets", nil)
	if err != nil {
		return nil, fmt.Errorf("listing exchange assets: %w", err)
	}

	var assets []anypoint.ExchangeAsset

	err = json.Unmarshal(resp.Body, &assets)
	if err != nil {
		return nil, fmt.Errorf("parsing exchange assets: %w", err)
	}

	return assets, nil
}

// GetAsset fetches one Exchange asset by group and asset id.
func (c *ExchangeClient) GetAsset(ctx context.Context, groupID, assetID string) (*anypoint.ExchangeAsset, error) {
	if groupID == "" {
		return nil, anypoint.ErrGroupIDRequired
	}

	if assetID == "" {
		return nil, anypoint.ErrAssetIDRequired
	}

	path := fmt.Sprintf("/exchange/api/v1/assets/%s/%s", groupID, assetID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching exchange asset %s/%s: %w", groupID, assetID, err)
	}

	var asset anypoint.ExchangeAsset

	err = json.Unmarshal(resp.Body, &asset)
	if err != nil {
		return nil, fmt.Errorf("parsing exchange asset: %w", err)
	}

	return &asset, nil
}

// ListGroups returns the business groups visible to the caller.
func (c *ExchangeClient) ListGroups(ctx context.Context) ([]anypoint.ExchangeGroup, error) {
	orgID, err := c.accounts.OrganizationID(ctx)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/exchange/api/v1/organizations/%s/groups", orgID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing exchange groups: %w", err)
	}

	var groups []anypoint.ExchangeGroup

	err = json.Unmarshal(resp.Body, &groups)
	if err != nil {
		return nil, fmt.Errorf("parsing exchange groups: %w", err)
	}

	return groups, nil
}
