// Package client implements the concrete platform client: resource
// accessors, name resolvers, and the provisioning pipeline.
package client

import (
	"context"
	"fmt"
	nethttp "net/http"
	"net/url"

	"github.com/anypoint-ops/anypoint-client/internal/auth"
	"github.com/anypoint-ops/anypoint-client/internal/constants"
	"github.com/anypoint-ops/anypoint-client/internal/http"
	"github.com/anypoint-ops/anypoint-client/pkg/anypoint"
)

const loginPath = "/accounts/login"

// Client implements the anypoint.Client interface.
type Client struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
	baseURL      string
	logger       anypoint.Logger

	accounts     *AccountsClient
	environments *EnvironmentsClient
	applications *ApplicationsClient
	apis         *APIsClient
	exchange     *ExchangeClient
	apiManager   *APIManagerClient
	resolver     *NameResolver
	provisioner  *PipelineProvisioner
}

// New creates a platform client from config. The endpoint must already be
// normalized (see pkg/apclient).
func New(config *anypoint.Config) (*Client, error) {
	if config.Endpoint == "" {
		return nil, anypoint.ErrEndpointRequired
	}

	proxyURL, err := parseProxy(config.Proxy)
	if err != nil {
		return nil, err
	}

	tokenManager := createTokenManager(config, proxyURL)
	httpOpts := createHTTPClientOptions(config, proxyURL)
	httpClient := http.NewClient(config.Endpoint, tokenManager, httpOpts...)

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      config.Endpoint,
		logger:       config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// NewWithTokenManager creates a client with a custom token manager.
func NewWithTokenManager(config *anypoint.Config, tokenManager auth.TokenManager) (*Client, error) {
	if config.Endpoint == "" {
		return nil, anypoint.ErrEndpointRequired
	}

	proxyURL, err := parseProxy(config.Proxy)
	if err != nil {
		return nil, err
	}

	httpOpts := createHTTPClientOptions(config, proxyURL)
	httpClient := http.NewClient(config.Endpoint, tokenManager, httpOpts...)

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      config.Endpoint,
		logger:       config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// createTokenManager selects a token manager from the configured
// credentials. A static token wins over a username/password pair; with
// neither, requests go out unauthenticated and the server rejects them.
func createTokenManager(config *anypoint.Config, proxyURL *url.URL) auth.TokenManager {
	if config.AccessToken != "" {
		return auth.NewStaticTokenManager(config.AccessToken)
	}

	if config.Username != "" && config.Password != "" {
		return auth.NewLoginTokenManager(&auth.LoginConfig{
			LoginURL:   config.Endpoint + loginPath,
			Username:   config.Username,
			Password:   config.Password,
			HTTPClient: loginHTTPClient(config, proxyURL),
		})
	}

	return nil
}

// loginHTTPClient builds the client used for the login call, honoring the
// same proxy and timeout settings as every other request.
func loginHTTPClient(config *anypoint.Config, proxyURL *url.URL) *nethttp.Client {
	timeout := config.HTTPTimeout
	if timeout == 0 {
		timeout = constants.DefaultHTTPTimeout
	}

	httpClient := &nethttp.Client{Timeout: timeout}

	if proxyURL != nil {
		httpClient.Transport = &nethttp.Transport{Proxy: nethttp.ProxyURL(proxyURL)}
	}

	return httpClient
}

// createHTTPClientOptions builds transport options from config.
func createHTTPClientOptions(config *anypoint.Config, proxyURL *url.URL) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithHTTPTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	if proxyURL != nil {
		httpOpts = append(httpOpts, http.WithProxy(proxyURL))
	}

	return httpOpts
}

func parseProxy(proxy string) (*url.URL, error) {
	if proxy == "" {
		return nil, nil
	}

	proxyURL, err := url.Parse(proxy)
	if err != nil || proxyURL.Scheme == "" || proxyURL.Host == "" {
		return nil, fmt.Errorf("%w: %q", anypoint.ErrInvalidProxyURL, proxy)
	}

	return proxyURL, nil
}

// initializeResourceClients wires all resource-specific clients. The
// dependency chain mirrors the platform's own: everything below accounts
// needs the caller's organization id, resolvers need listings, and the
// pipeline needs both.
func (c *Client) initializeResourceClients() {
	c.accounts = NewAccountsClient(c.httpClient)
	c.environments = NewEnvironmentsClient(c.httpClient, c.accounts)
	c.applications = NewApplicationsClient(c.httpClient, c.accounts)
	c.apis = NewAPIsClient(c.httpClient, c.accounts)
	c.exchange = NewExchangeClient(c.httpClient, c.accounts)
	c.apiManager = NewAPIManagerClient(c.httpClient, c.accounts)
	c.resolver = NewNameResolver(c.environments, c.applications, c.apis)
	c.provisioner = NewPipelineProvisioner(c.applications, c.apiManager, c.resolver)
}

// Accounts implements anypoint.Client.Accounts.
func (c *Client) Accounts() anypoint.AccountsClient {
	return c.accounts
}

// Environments implements anypoint.Client.Environments.
func (c *Client) Environments() anypoint.EnvironmentsClient {
	return c.environments
}

// Applications implements anypoint.Client.Applications.
func (c *Client) Applications() anypoint.ApplicationsClient {
	return c.applications
}

// APIs implements anypoint.Client.APIs.
func (c *Client) APIs() anypoint.APIsClient {
	return c.apis
}

// Exchange implements anypoint.Client.Exchange.
func (c *Client) Exchange() anypoint.ExchangeClient {
	return c.exchange
}

// APIManager implements anypoint.Client.APIManager.
func (c *Client) APIManager() anypoint.APIManagerClient {
	return c.apiManager
}

// Resolve implements anypoint.Client.Resolve.
func (c *Client) Resolve() anypoint.Resolver {
	return c.resolver
}

// Provision implements anypoint.Client.Provision.
func (c *Client) Provision() anypoint.Provisioner {
	return c.provisioner
}

// GetToken returns the current bearer token, authenticating first if the
// session has not logged in yet.
func (c *Client) GetToken(ctx context.Context) (string, error) {
	if c.tokenManager == nil {
		return "", anypoint.ErrNotAuthenticated
	}

	token, err := c.tokenManager.GetToken(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get token: %w", err)
	}

	return token, nil
}

// loggerAdapter adapts anypoint.Logger to http.Logger.
type loggerAdapter struct {
	logger anypoint.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
