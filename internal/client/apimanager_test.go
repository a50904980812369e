package client

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anypoint-ops/anypoint-client/pkg/anypoint"
)

func TestAPIManagerClient_CreateInstance(t *testing.T) {
	t.Parallel()

	stub := newPlatformStub("org-123")
	defer stub.Close()

	stub.handleFunc("/apimanager/api/v1/organizations/org-123/environments/env-1/apis", func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "POST", request.Method)

		var body anypoint.InstanceCreateRequest

		err := json.NewDecoder(request.Body).Decode(&body)
		require.NoError(t, err)

		assert.Equal(t, "orders-api", body.Spec.AssetID)
		assert.Equal(t, "rest-api", body.Endpoint.Type)

		writer.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(writer).Encode(anypoint.Instance{ID: "16", InstanceLabel: body.InstanceLabel})
	})

	instance, err := stub.Client().APIManager().CreateInstance(context.Background(), "env-1", &anypoint.InstanceCreateRequest{
		Endpoint: anypoint.InstanceEndpoint{
			Type:                "rest-api",
			URI:                 "http://localhost",
			MuleVersion4OrAbove: true,
		},
		InstanceLabel: "orders-api",
		Spec: anypoint.InstanceSpec{
			AssetID: "orders-api",
			Version: "1.0.0",
			GroupID: "org-123",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "16", instance.ID)
}

func TestAPIManagerClient_PromoteInstance(t *testing.T) {
	t.Parallel()

	stub := newPlatformStub("org-123")
	defer stub.Close()

	stub.handleFunc("/apimanager/api/v1/organizations/org-123/environments/env-2/apis", func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "POST", request.Method)

		var body anypoint.InstancePromoteRequest

		err := json.NewDecoder(request.Body).Decode(&body)
		require.NoError(t, err)

		assert.Equal(t, "16", body.Promote.OriginAPIID)
		assert.True(t, body.Promote.Policies.AllEntities)
		assert.True(t, body.Promote.Tiers.AllEntities)
		assert.True(t, body.Promote.Alerts.AllEntities)

		writer.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(writer).Encode(anypoint.Instance{ID: "17", InstanceLabel: body.InstanceLabel})
	})

	instance, err := stub.Client().APIManager().PromoteInstance(context.Background(), "env-2", &anypoint.InstancePromoteRequest{
		InstanceLabel: "orders-api",
		Promote: anypoint.PromoteSpec{
			OriginAPIID: "16",
			Policies:    anypoint.AllEntities{AllEntities: true},
			Tiers:       anypoint.AllEntities{AllEntities: true},
			Alerts:      anypoint.AllEntities{AllEntities: true},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "17", instance.ID)
}
