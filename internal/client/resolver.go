package client

import (
	"context"
	"fmt"

	"github.com/anypoint-ops/anypoint-client/pkg/anypoint"
)

// NameResolver implements anypoint.Resolver over the listing accessors.
//
// Each lookup fetches its listing fresh and scans it front to back, keeping
// the identifier of every exact match it passes. When names collide the
// last record in listing order wins.
type NameResolver struct {
	environments *EnvironmentsClient
	applications *ApplicationsClient
	apis         *APIsClient
}

// NewNameResolver creates a resolver over the given accessors.
func NewNameResolver(environments *EnvironmentsClient, applications *ApplicationsClient, apis *APIsClient) *NameResolver {
	return &NameResolver{
		environments: environments,
		applications: applications,
		apis:         apis,
	}
}

// lastMatch scans items in order and returns the id of the last one the
// match predicate accepts. found is false when nothing matched.
func lastMatch[T any](items []T, match func(T) bool, id func(T) string) (string, bool) {
	var (
		result string
		found  bool
	)

	for _, item := range items {
		if match(item) {
			result = id(item)
			found = true
		}
	}

	return result, found
}

// ApplicationIDByName resolves a client application name to its id.
func (r *NameResolver) ApplicationIDByName(ctx context.Context, name string) (string, error) {
	list, err := r.applications.List(ctx)
	if err != nil {
		return "", err
	}

	id, found := lastMatch(list.Applications,
		func(app anypoint.Application) bool { return app.Name == name },
		func(app anypoint.Application) string { return app.ID })
	if !found {
		return "", fmt.Errorf("application %q: %w", name, anypoint.ErrApplicationNotFound)
	}

	return id, nil
}

// ApplicationExists reports whether any client application has the name.
func (r *NameResolver) ApplicationExists(ctx context.Context, name string) (bool, error) {
	list, err := r.applications.List(ctx)
	if err != nil {
		return false, err
	}

	_, found := lastMatch(list.Applications,
		func(app anypoint.Application) bool { return app.Name == name },
		func(app anypoint.Application) string { return app.ID })

	return found, nil
}

// APIIDByName resolves an API asset name to its id. The platform scopes
// API listings to an environment, so the default environment is resolved
// first and its API Manager listing scanned on the asset id.
func (r *NameResolver) APIIDByName(ctx context.Context, name string) (string, error) {
	env, err := r.environments.GetDefault(ctx)
	if err != nil {
		return "", err
	}

	list, err := r.apis.ListInEnvironment(ctx, env.ID)
	if err != nil {
		return "", err
	}

	id, found := lastMatch(list.Assets,
		func(api anypoint.EnvironmentAPI) bool { return api.AssetID == name },
		func(api anypoint.EnvironmentAPI) string { return api.ID })
	if !found {
		return "", fmt.Errorf("API %q: %w", name, anypoint.ErrAPINotFound)
	}

	return id, nil
}

// VersionID resolves a product-version label within an API to the version
// id. The label comparison is exact; there is no semver interpretation.
func (r *NameResolver) VersionID(ctx context.Context, apiID, label string) (string, error) {
	api, err := r.apis.Get(ctx, apiID)
	if err != nil {
		return "", err
	}

	id, found := lastMatch(api.Versions,
		func(v anypoint.APIVersion) bool { return v.ProductVersion == label },
		func(v anypoint.APIVersion) string { return v.ID })
	if !found {
		return "", fmt.Errorf("version %q of API %s: %w", label, apiID, anypoint.ErrVersionNotFound)
	}

	return id, nil
}

// EnvironmentIDByName resolves an environment name to its id.
func (r *NameResolver) EnvironmentIDByName(ctx context.Context, name string) (string, error) {
	environments, err := r.environments.List(ctx)
	if err != nil {
		return "", err
	}

	id, found := lastMatch(environments,
		func(env anypoint.Environment) bool { return env.Name == name },
		func(env anypoint.Environment) string { return env.ID })
	if !found {
		return "", fmt.Errorf("environment %q: %w", name, anypoint.ErrEnvironmentNotFound)
	}

	return id, nil
}
