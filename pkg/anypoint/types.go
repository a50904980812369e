package anypoint

// LoginRequest is the body of the platform login call.
type LoginRequest struct {
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
}

// LoginResponse is the body returned by a successful login.
type LoginResponse struct {
	AccessToken string `json:"access_token" yaml:"access_token"`
	TokenType   string `json:"token_type,omitempty" yaml:"token_type,omitempty"`
}

// Profile is the authenticated user's account record.
type Profile struct {
	User ProfileUser `json:"user" yaml:"user"`
}

// ProfileUser carries the identity fields the client cares about.
type ProfileUser struct {
	ID             string `json:"id,omitempty"       yaml:"id,omitempty"`
	Username       string `json:"username,omitempty" yaml:"username,omitempty"`
	OrganizationID string `json:"organizationId"     yaml:"organizationId"`
}

// Environment is a named deployment target within an organization.
type Environment struct {
	ID             string `json:"id"                       yaml:"id"`
	Name           string `json:"name"                     yaml:"name"`
	OrganizationID string `json:"organizationId,omitempty" yaml:"organizationId,omitempty"`
	IsProduction   bool   `json:"isProduction,omitempty"   yaml:"isProduction,omitempty"`
}

// Application is a client application registered in the organization.
type Application struct {
	ID           string   `json:"id"                     yaml:"id"`
	Name         string   `json:"name"                   yaml:"name"`
	Description  string   `json:"description,omitempty"  yaml:"description,omitempty"`
	URL          string   `json:"url,omitempty"          yaml:"url,omitempty"`
	RedirectURI  []string `json:"redirectUri,omitempty"  yaml:"redirectUri,omitempty"`
	APIEndpoints bool     `json:"apiEndpoints,omitempty" yaml:"apiEndpoints,omitempty"`
	ClientID     string   `json:"clientId,omitempty"     yaml:"clientId,omitempty"`
	ClientSecret string   `json:"clientSecret,omitempty" yaml:"clientSecret,omitempty"`
}

// ApplicationList is the applications listing for an organization.
type ApplicationList struct {
	Total        int           `json:"total,omitempty" yaml:"total,omitempty"`
	Applications []Application `json:"applications"    yaml:"applications"`
}

// ApplicationCreateRequest is the body posted when registering a client
// application. See NewApplicationTemplate for the standard CI/CD shape.
type ApplicationCreateRequest struct {
	Name         string   `json:"name"         yaml:"name"`
	Description  string   `json:"description"  yaml:"description"`
	URL          string   `json:"url"          yaml:"url"`
	RedirectURI  []string `json:"redirectUri"  yaml:"redirectUri"`
	APIEndpoints bool     `json:"apiEndpoints" yaml:"apiEndpoints"`
}

// NewApplicationTemplate builds the fixed application-creation body used by
// provisioning runs: the application name is embedded in both the name and
// url fields.
func NewApplicationTemplate(name string) *ApplicationCreateRequest {
	return &ApplicationCreateRequest{
		Name:         name,
		Description:  "Client API Application",
		URL:          "http://localhost/api/" + name + "/v1",
		RedirectURI:  []string{"http://localhost"},
		APIEndpoints: false,
	}
}

// API is an API asset in the organization repository, including its
// version list.
type API struct {
	ID       string       `json:"id"                 yaml:"id"`
	Name     string       `json:"name,omitempty"     yaml:"name,omitempty"`
	Versions []APIVersion `json:"versions,omitempty" yaml:"versions,omitempty"`
}

// APIList is the organization repository listing of API assets.
type APIList struct {
	Total int   `json:"total,omitempty" yaml:"total,omitempty"`
	APIs  []API `json:"apis"            yaml:"apis"`
}

// APIVersion is one published version of an API asset.
type APIVersion struct {
	ID             string `json:"id"             yaml:"id"`
	Name           string `json:"name,omitempty" yaml:"name,omitempty"`
	ProductVersion string `json:"productVersion" yaml:"productVersion"`
}

// EnvironmentAPI is an API asset as listed by API Manager for one
// environment. AssetID is the human-readable name used for resolution.
type EnvironmentAPI struct {
	ID            string `json:"id"                      yaml:"id"`
	AssetID       string `json:"assetId"                 yaml:"assetId"`
	AssetVersion  string `json:"assetVersion,omitempty"  yaml:"assetVersion,omitempty"`
	InstanceLabel string `json:"instanceLabel,omitempty" yaml:"instanceLabel,omitempty"`
}

// EnvironmentAPIList is the API Manager listing for one environment.
type EnvironmentAPIList struct {
	Total  int              `json:"total,omitempty" yaml:"total,omitempty"`
	Assets []EnvironmentAPI `json:"assets"          yaml:"assets"`
}

// ContractRequest is the body posted to grant an application access to an
// API version. The zero values of the remaining fields match the platform's
// contract template: empty party, null requested tier, acceptedTerms false.
type ContractRequest struct {
	APIVersionID    string  `json:"apiVersionId"    yaml:"apiVersionId"`
	ApplicationID   string  `json:"applicationId"   yaml:"applicationId"`
	PartyID         string  `json:"partyId"         yaml:"partyId"`
	PartyName       string  `json:"partyName"       yaml:"partyName"`
	RequestedTierID *string `json:"requestedTierId" yaml:"requestedTierId"`
	AcceptedTerms   bool    `json:"acceptedTerms"   yaml:"acceptedTerms"`
}

// Contract is the record returned by a successful contract creation.
type Contract struct {
	ID          string              `json:"id,omitempty" yaml:"id,omitempty"`
	Application ContractApplication `json:"application"  yaml:"application"`
}

// ContractApplication carries the credentials minted for the application.
type ContractApplication struct {
	ID           string `json:"id,omitempty" yaml:"id,omitempty"`
	Name         string `json:"name,omitempty" yaml:"name,omitempty"`
	ClientID     string `json:"clientId"     yaml:"clientId"`
	ClientSecret string `json:"clientSecret" yaml:"clientSecret"`
}

// Credentials is the (clientId, clientSecret) pair handed back to the
// caller after provisioning. It has no further lifecycle in this client.
type Credentials struct {
	ClientID     string `json:"clientId"     yaml:"clientId"`
	ClientSecret string `json:"clientSecret" yaml:"clientSecret"`
}

// ExchangeAsset is a catalog entry on Exchange.
type ExchangeAsset struct {
	GroupID        string `json:"groupId"                  yaml:"groupId"`
	AssetID        string `json:"assetId"                  yaml:"assetId"`
	Version        string `json:"version,omitempty"        yaml:"version,omitempty"`
	Name           string `json:"name,omitempty"           yaml:"name,omitempty"`
	Type           string `json:"type,omitempty"           yaml:"type,omitempty"`
	OrganizationID string `json:"organizationId,omitempty" yaml:"organizationId,omitempty"`
}

// ExchangeGroup is a business group on Exchange.
type ExchangeGroup struct {
	GroupID string `json:"groupId"        yaml:"groupId"`
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
}

// InstanceEndpoint describes the runtime endpoint of a fresh API Manager
// instance.
type InstanceEndpoint struct {
	Type                string  `json:"type"                yaml:"type"`
	URI                 string  `json:"uri"                 yaml:"uri"`
	ProxyURI            *string `json:"proxyUri"            yaml:"proxyUri"`
	MuleVersion4OrAbove bool    `json:"muleVersion4OrAbove" yaml:"muleVersion4OrAbove"`
	IsCloudHub          bool    `json:"isCloudHub"          yaml:"isCloudHub"`
}

// InstanceSpec references the Exchange asset an instance is created from.
type InstanceSpec struct {
	AssetID string `json:"assetId" yaml:"assetId"`
	Version string `json:"version" yaml:"version"`
	GroupID string `json:"groupId" yaml:"groupId"`
}

// InstanceCreateRequest is the body posted to create a fresh API Manager
// instance in an environment.
type InstanceCreateRequest struct {
	Endpoint      InstanceEndpoint `json:"endpoint"      yaml:"endpoint"`
	InstanceLabel string           `json:"instanceLabel" yaml:"instanceLabel"`
	Spec          InstanceSpec     `json:"spec"          yaml:"spec"`
}

// AllEntities selects every policy/tier/alert during a promotion.
type AllEntities struct {
	AllEntities bool `json:"allEntities" yaml:"allEntities"`
}

// PromoteSpec references the origin instance a promotion copies from.
type PromoteSpec struct {
	OriginAPIID string      `json:"originApiId" yaml:"originApiId"`
	Policies    AllEntities `json:"policies"    yaml:"policies"`
	Tiers       AllEntities `json:"tiers"       yaml:"tiers"`
	Alerts      AllEntities `json:"alerts"      yaml:"alerts"`
}

// InstancePromoteRequest is the body posted to promote an existing API
// instance into another environment.
type InstancePromoteRequest struct {
	InstanceLabel string      `json:"instanceLabel" yaml:"instanceLabel"`
	Promote       PromoteSpec `json:"promote"       yaml:"promote"`
}

// Instance is a managed API registration within one environment.
type Instance struct {
	ID            string `json:"id"                      yaml:"id"`
	InstanceLabel string `json:"instanceLabel,omitempty" yaml:"instanceLabel,omitempty"`
}

// GrantRequest describes one access-provisioning run: create the named
// client application and grant it a contract against the named API asset.
// APIVersion defaults to DefaultVersionLabel when empty.
type GrantRequest struct {
	ApplicationName string
	APIName         string
	APIVersion      string
}

// DeployRequest describes a fresh API Manager instance to create in the
// named environment. Label defaults to AssetID and EndpointURI to
// DefaultInstanceEndpointURI when empty.
type DeployRequest struct {
	AssetID         string
	AssetVersion    string
	GroupID         string
	EnvironmentName string
	Label           string
	EndpointURI     string
}

// PromoteRequest describes a promotion of an existing instance into the
// named environment.
type PromoteRequest struct {
	EnvironmentName string
	OriginAPIID     string
	Label           string
}
