package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anypoint-ops/anypoint-client/pkg/anypoint"
)

func TestAPIsClient_List(t *testing.T) {
	t.Parallel()

	stub := newPlatformStub("org-123")
	defer stub.Close()

	stub.handleJSON("/apiplatform/repository/v2/organizations/org-123/apis", anypoint.APIList{
		Total: 1,
		APIs: []anypoint.API{
			{ID: "api-1", Name: "orders-api"},
		},
	})

	list, err := stub.Client().APIs().List(context.Background())
	require.NoError(t, err)
	require.Len(t, list.APIs, 1)
	assert.Equal(t, "orders-api", list.APIs[0].Name)
}

func TestAPIsClient_Get(t *testing.T) {
	t.Parallel()

	stub := newPlatformStub("org-123")
	defer stub.Close()

	stub.handleJSON("/apiplatform/repository/v2/organizations/org-123/apis/api-1", anypoint.API{
		ID:   "api-1",
		Name: "orders-api",
		Versions: []anypoint.APIVersion{
			{ID: "v1-id", ProductVersion: "v1"},
			{ID: "v2-id", ProductVersion: "v2"},
		},
	})

	api, err := stub.Client().APIs().Get(context.Background(), "api-1")
	require.NoError(t, err)
	require.Len(t, api.Versions, 2)
	assert.Equal(t, "v2", api.Versions[1].ProductVersion)
}

func TestAPIsClient_ListInEnvironment(t *testing.T) {
	t.Parallel()

	stub := newPlatformStub("org-123")
	defer stub.Close()

	stub.handleJSON("/apimanager/api/v1/organizations/org-123/environments/env-1/apis", anypoint.EnvironmentAPIList{
		Total: 1,
		Assets: []anypoint.EnvironmentAPI{
			{ID: "16", AssetID: "orders-api", AssetVersion: "1.0.0"},
		},
	})

	list, err := stub.Client().APIs().ListInEnvironment(context.Background(), "env-1")
	require.NoError(t, err)
	require.Len(t, list.Assets, 1)
	assert.Equal(t, "orders-api", list.Assets[0].AssetID)
}
