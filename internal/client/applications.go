package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anypoint-ops/anypoint-client/internal/http"
	"github.com/anypoint-ops/anypoint-client/pkg/anypoint"
)

// ApplicationsClient implements anypoint.ApplicationsClient.
type ApplicationsClient struct {
	httpClient *http.Client
	accounts   *AccountsClient
}

// NewApplicationsClient creates a new applications client.
func NewApplicationsClient(httpClient *http.Client, accounts *AccountsClient) *ApplicationsClient {
	return &ApplicationsClient{httpClient: httpClient, accounts: accounts}
}

// List returns all client applications of the caller's organization.
func (c *ApplicationsClient) List(ctx context.Context) (*anypoint.ApplicationList, error) {
	orgID, err := c.accounts.OrganizationID(ctx)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/apiplatform/repository/v2/organizations/%s/applications", orgID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing applications: %w", err)
	}

	var list anypoint.ApplicationList

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing applications: %w", err)
	}

	return &list, nil
}

// Create registers a client application with the standard CI/CD body built
// from the name. The platform generates credentials on its side; they are
// only released through a contract.
func (c *ApplicationsClient) Create(ctx context.Context, name string) (*anypoint.Application, error) {
	if name == "" {
		return nil, anypoint.ErrApplicationNameRequired
	}

	orgID, err := c.accounts.OrganizationID(ctx)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/apiplatform/repository/v2/organizations/%s/applications", orgID)

	resp, err := c.httpClient.Post(ctx, path, anypoint.NewApplicationTemplate(name))
	if err != nil {
		return nil, fmt.Errorf("creating application %q: %w", name, err)
	}

	var app anypoint.Application

	err = json.Unmarshal(resp.Body, &app)
	if err != nil {
		return nil, fmt.Errorf("parsing application: %w", err)
	}

	return &app, nil
}

// Delete removes a client application by id.
func (c *ApplicationsClient) Delete(ctx context.Context, appID string) error {
	orgID, err := c.accounts.OrganizationID(ctx)
	if err != nil {
		return err
	}

	path := fmt.Sprintf("/apiplatform/repository/v2/organizations/%s/applications/%s", orgID, appID)

	_, err = c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting application %s: %w", appID, err)
	}

	return nil
}

// CreateContract requests a contract between the application and an API
// version, returning the credentials minted for the application.
func (c *ApplicationsClient) CreateContract(ctx context.Context, appID string, request *anypoint.ContractRequest) (*anypoint.Contract, error) {
	orgID, err := c.accounts.OrganizationID(ctx)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/apiplatform/repository/v2/organizations/%s/applications/%s/contracts", orgID, appID)

	resp, err := c.httpClient.Post(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("creating contract for application %s: %w", appID, err)
	}

	var contract anypoint.Contract

	err = json.Unmarshal(resp.Body, &contract)
	if err != nil {
		return nil, fmt.Errorf("parsing contract: %w", err)
	}

	return &contract, nil
}
