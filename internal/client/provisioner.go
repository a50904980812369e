package client

import (
	"context"
	"fmt"

	"github.com/anypoint-ops/anypoint-client/pkg/anypoint"
)

// PipelineProvisioner implements anypoint.Provisioner. Each workflow is a
// linear chain of dependent calls; the first failing step aborts the rest
// and nothing created earlier is rolled back.
type PipelineProvisioner struct {
	applications *ApplicationsClient
	apiManager   *APIManagerClient
	resolver     *NameResolver
}

// NewPipelineProvisioner creates a provisioner over the given accessors.
func NewPipelineProvisioner(applications *ApplicationsClient, apiManager *APIManagerClient, resolver *NameResolver) *PipelineProvisioner {
	return &PipelineProvisioner{
		applications: applications,
		apiManager:   apiManager,
		resolver:     resolver,
	}
}

// GrantAccess creates the named client application, resolves the
// application, API, and version identifiers by name, and requests a
// contract. The returned credentials come from the contract response.
//
// The application id is resolved from the listing rather than taken from
// the creation response, so a re-run against an organization that already
// holds the name grants against the newest record.
func (p *PipelineProvisioner) GrantAccess(ctx context.Context, req *anypoint.GrantRequest) (*anypoint.Credentials, error) {
	if req.ApplicationName == "" {
		return nil, anypoint.ErrApplicationNameRequired
	}

	if req.APIName == "" {
		return nil, anypoint.ErrAPINameRequired
	}

	versionLabel := req.APIVersion
	if versionLabel == "" {
		versionLabel = anypoint.DefaultVersionLabel
	}

	_, err := p.applications.Create(ctx, req.ApplicationName)
	if err != nil {
		return nil, err
	}

	appID, err := p.resolver.ApplicationIDByName(ctx, req.ApplicationName)
	if err != nil {
		return nil, err
	}

	apiID, err := p.resolver.APIIDByName(ctx, req.APIName)
	if err != nil {
		return nil, err
	}

	versionID, err := p.resolver.VersionID(ctx, apiID, versionLabel)
	if err != nil {
		return nil, err
	}

	contract, err := p.applications.CreateContract(ctx, appID, &anypoint.ContractRequest{
		APIVersionID:  versionID,
		ApplicationID: appID,
	})
	if err != nil {
		return nil, err
	}

	return &anypoint.Credentials{
		ClientID:     contract.Application.ClientID,
		ClientSecret: contract.Application.ClientSecret,
	}, nil
}

// DeployInstance creates a fresh API Manager instance for an Exchange asset
// in the named environment. Label defaults to the asset id and the
// implementation URI to DefaultInstanceEndpointURI.
func (p *PipelineProvisioner) DeployInstance(ctx context.Context, req *anypoint.DeployRequest) (*anypoint.Instance, error) {
	if req.AssetID == "" {
		return nil, anypoint.ErrAssetIDRequired
	}

	if req.GroupID == "" {
		return nil, anypoint.ErrGroupIDRequired
	}

	if req.EnvironmentName == "" {
		return nil, anypoint.ErrEnvironmentNameRequired
	}

	label := req.Label
	if label == "" {
		label = req.AssetID
	}

	endpointURI := req.EndpointURI
	if endpointURI == "" {
		endpointURI = anypoint.DefaultInstanceEndpointURI
	}

	envID, err := p.resolver.EnvironmentIDByName(ctx, req.EnvironmentName)
	if err != nil {
		return nil, err
	}

	instance, err := p.apiManager.CreateInstance(ctx, envID, &anypoint.InstanceCreateRequest{
		Endpoint: anypoint.InstanceEndpoint{
			Type:                "rest-api",
			URI:                 endpointURI,
			ProxyURI:            nil,
			MuleVersion4OrAbove: true,
			IsCloudHub:          false,
		},
		InstanceLabel: label,
		Spec: anypoint.InstanceSpec{
			AssetID: req.AssetID,
			Version: req.AssetVersion,
			GroupID: req.GroupID,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("deploying instance for asset %s: %w", req.AssetID, err)
	}

	return instance, nil
}

// Promote copies the origin instance, with all its policies, tiers, and
// alerts, into the named environment.
func (p *PipelineProvisioner) Promote(ctx context.Context, req *anypoint.PromoteRequest) (*anypoint.Instance, error) {
	if req.OriginAPIID == "" {
		return nil, anypoint.ErrOriginAPIIDRequired
	}

	if req.EnvironmentName == "" {
		return nil, anypoint.ErrEnvironmentNameRequired
	}

	label := req.Label
	if label == "" {
		label = "promoted-" + req.OriginAPIID
	}

	envID, err := p.resolver.EnvironmentIDByName(ctx, req.EnvironmentName)
	if err != nil {
		return nil, err
	}

	instance, err := p.apiManager.PromoteInstance(ctx, envID, &anypoint.InstancePromoteRequest{
		InstanceLabel: label,
		Promote: anypoint.PromoteSpec{
			OriginAPIID: req.OriginAPIID,
			Policies:    anypoint.AllEntities{AllEntities: true},
			Tiers:       anypoint.AllEntities{AllEntities: true},
			Alerts:      anypoint.AllEntities{AllEntities: true},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("promoting instance %s: %w", req.OriginAPIID, err)
	}

	return instance, nil
}
