package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anypoint-ops/anypoint-client/internal/http"
	"github.com/anypoint-ops/anypoint-client/pkg/anypoint"
)

// APIManagerClient implements anypoint.APIManagerClient.
type APIManagerClient struct {
	httpClient *http.Client
	accounts   *AccountsClient
}

// NewAPIManagerClient creates a new API Manager client.
func NewAPIManagerClient(httpClient *http.Client, accounts *AccountsClient) *APIManagerClient {
	return &APIManagerClient{httpClient: httpClient, accounts: accounts}
}

// CreateInstance registers a fresh API instance in the environment.
func (c *APIManagerClient) CreateInstance(ctx context.Context, envID string, request *anypoint.InstanceCreateRequest) (*anypoint.Instance, error) {
	return c.postInstance(ctx, envID, request, "creating")
}

// PromoteInstance copies an existing instance into the environment. The
// platform uses the same collection endpoint as creation; the body shape
// selects the operation.
func (c *APIManagerClient) PromoteInstance(ctx context.Context, envID string, request *anypoint.InstancePromoteRequest) (*anypoint.Instance, error) {
	return c.postInstance(ctx, envID, request, "promoting")
}

func (c *APIManagerClient) postInstance(ctx context.Context, envID string, body interface{}, verb string) (*anypoint.Instance, error) {
	orgID, err := c.accounts.OrganizationID(ctx)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/apimanager/api/v1/organizations/%s/environments/%s/apis", orgID, envID)

	resp, err := c.httpClient.Post(ctx, path, body)
	if err != nil {
		return nil, fmt.Errorf("%s API instance: %w", verb, err)
	}

	var instance anypoint.Instance

	err = json.Unmarshal(resp.Body, &instance)
	if err != nil {
		return nil, fmt.Errorf("parsing API instance: %w", err)
	}

	return &instance, nil
}
