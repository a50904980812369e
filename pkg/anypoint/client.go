package anypoint

import (
	"context"
	"time"
)

// DefaultEndpoint is the public control plane of the platform.
const DefaultEndpoint = "https://anypoint.mulesoft.com"

// DefaultVersionLabel is the version label a GrantRequest falls back to
// when the caller does not pick one.
const DefaultVersionLabel = "v1"

// DefaultInstanceEndpointURI is the placeholder implementation URI used for
// fresh API Manager instances when the caller does not provide one.
const DefaultInstanceEndpointURI = "http://localhost"

// AccountsClient reads the authenticated user's account record.
type AccountsClient interface {
	GetProfile(ctx context.Context) (*Profile, error)
	OrganizationID(ctx context.Context) (string, error)
}

// EnvironmentsClient lists the organization's environments.
type EnvironmentsClient interface {
	List(ctx context.Context) ([]Environment, error)
	GetDefault(ctx context.Context) (*Environment, error)
}

// ApplicationsClient manages client applications and their contracts.
type ApplicationsClient interface {
	List(ctx context.Context) (*ApplicationList, error)
	Create(ctx context.Context, name string) (*Application, error)
	Delete(ctx context.Context, appID string) error
	CreateContract(ctx context.Context, appID string, request *ContractRequest) (*Contract, error)
}

// APIsClient reads API assets from the organization repository and from
// API Manager's per-environment listing.
type APIsClient interface {
	List(ctx context.Context) (*APIList, error)
	Get(ctx context.Context, apiID string) (*API, error)
	ListInEnvironment(ctx context.Context, envID string) (*EnvironmentAPIList, error)
}

// ExchangeClient reads assets and business groups from Exchange.
type ExchangeClient interface {
	ListAssets(ctx context.Context) ([]ExchangeAsset, error)
	GetAsset(ctx context.Context, groupID, assetID string) (*ExchangeAsset, error)
	ListGroups(ctx context.Context) ([]ExchangeGroup, error)
}

// APIManagerClient creates and promotes managed API instances.
type APIManagerClient interface {
	CreateInstance(ctx context.Context, envID string, request *InstanceCreateRequest) (*Instance, error)
	PromoteInstance(ctx context.Context, envID string, request *InstancePromoteRequest) (*Instance, error)
}

// Resolver turns human-readable resource names into platform identifiers.
//
// Every resolver fetches its listing fresh, scans it in listing order, and
// returns the identifier of the last record whose match field equals the
// target exactly; later entries shadow earlier ones. A miss yields a typed
// not-found error (ErrApplicationNotFound and friends), never an arbitrary
// identifier.
type Resolver interface {
	ApplicationIDByName(ctx context.Context, name string) (string, error)
	APIIDByName(ctx context.Context, name string) (string, error)
	VersionID(ctx context.Context, apiID, label string) (string, error)
	EnvironmentIDByName(ctx context.Context, name string) (string, error)
	ApplicationExists(ctx context.Context, name string) (bool, error)
}

// Provisioner runs the two provisioning workflows used from CI/CD
// pipelines. Each call is a linear chain of dependent lookups; the first
// failing step aborts the rest, and nothing created earlier is rolled back.
type Provisioner interface {
	// GrantAccess creates a client application named
	// req.ApplicationName (duplicates are not checked in this path; use
	// Resolver.ApplicationExists as a guard beforehand), resolves the
	// application, API, and version identifiers, and requests a contract.
	GrantAccess(ctx context.Context, req *GrantRequest) (*Credentials, error)

	// DeployInstance creates a fresh API Manager instance for an
	// Exchange asset in the named environment.
	DeployInstance(ctx context.Context, req *DeployRequest) (*Instance, error)

	// Promote copies an existing API instance, with its policies, tiers,
	// and alerts, into the named environment.
	Promote(ctx context.Context, req *PromoteRequest) (*Instance, error)
}

// Client is the aggregate interface over all platform resource clients.
type Client interface {
	Accounts() AccountsClient
	Environments() EnvironmentsClient
	Applications() ApplicationsClient
	APIs() APIsClient
	Exchange() ExchangeClient
	APIManager() APIManagerClient
	Resolve() Resolver
	Provision() Provisioner

	// GetToken returns the current bearer token, authenticating first if
	// the session has not logged in yet.
	GetToken(ctx context.Context) (string, error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a Client.
//
// Authentication precedence:
//  1. AccessToken: used directly as a static bearer token.
//  2. Username/Password: a session token is obtained once per run from the
//     platform login endpoint and reused for every subsequent call.
//  3. No credentials: requests are sent without an Authorization header.
//
// Proxy, when set, routes every request (including login) through the given
// forward proxy. It is a request-shaping concern only; the protocol is
// unchanged.
type Config struct {
	// Endpoint is the base URL of the platform. Defaults to
	// DefaultEndpoint; a missing scheme is normalized to https.
	Endpoint string

	// Username and Password authenticate against the platform login
	// endpoint.
	Username string
	Password string

	// AccessToken, when set, is used as-is and no login is performed.
	AccessToken string

	// Proxy is an optional forward-proxy URL.
	Proxy string

	// HTTPTimeout bounds each request. Contexts passed to client methods
	// still apply; the shorter of the two wins.
	HTTPTimeout time.Duration

	// RetryMax is the maximum number of retries for transient failures
	// (>=500, 429, connection errors). Zero disables retries.
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// Debug enables request/response logging when a Logger is provided.
	Debug  bool
	Logger Logger

	// UserAgent overrides the default User-Agent header.
	UserAgent string
}
