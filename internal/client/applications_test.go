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

func TestApplicationsClient_List(t *testing.T) {
	t.Parallel()

	stub := newPlatformStub("org-123")
	defer stub.Close()

	stub.handleJSON("/apiplatform/repository/v2/organizations/org-123/applications", anypoint.ApplicationList{
		Total: 2,
		Applications: []anypoint.Application{
			{ID: "1", Name: "app-a"},
			{ID: "2", Name: "app-b"},
		},
	})

	list, err := stub.Client().Applications().List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
	require.Len(t, list.Applications, 2)
	assert.Equal(t, "app-a", list.Applications[0].Name)
}

func TestApplicationsClient_Create(t *testing.T) {
	t.Parallel()

	stub := newPlatformStub("org-123")
	defer stub.Close()

	stub.handleFunc("/apiplatform/repository/v2/organizations/org-123/applications", func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "POST", request.Method)

		var body anypoint.ApplicationCreateRequest

		err := json.NewDecoder(request.Body).Decode(&body)
		require.NoError(t, err)

		assert.Equal(t, "ci-app", body.Name)
		assert.Equal(t, "Client API Application", body.Description)
		assert.Equal(t, "http://localhost/api/ci-app/v1", body.URL)
		assert.Equal(t, []string{"http://localhost"}, body.RedirectURI)
		assert.False(t, body.APIEndpoints)

		writer.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(writer).Encode(anypoint.Application{ID: "42", Name: body.Name})
	})

	app, err := stub.Client().Applications().Create(context.Background(), "ci-app")
	require.NoError(t, err)
	assert.Equal(t, "42", app.ID)
	assert.Equal(t, "ci-app", app.Name)
}

func TestApplicationsClient_CreateEmptyName(t *testing.T) {
	t.Parallel()

	stub := newPlatformStub("org-123")
	defer stub.Close()

	_, err := stub.Client().Applications().Create(context.Background(), "")
	require.ErrorIs(t, err, anypoint.ErrApplicationNameRequired)
	assert.Empty(t, stub.RequestsTo("/apiplatform/repository/v2/organizations/org-123/applications"))
}

func TestApplicationsClient_Delete(t *testing.T) {
	t.Parallel()

	stub := newPlatformStub("org-123")
	defer stub.Close()

	stub.handleFunc("/apiplatform/repository/v2/organizations/org-123/applications/42", func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "DELETE", request.Method)
		writer.WriteHeader(http.StatusNoContent)
	})

	err := stub.Client().Applications().Delete(context.Background(), "42")
	require.NoError(t, err)
}

func TestApplicationsClient_CreateContract(t *testing.T) {
	t.Parallel()

	stub := newPlatformStub("org-123")
	defer stub.Close()

	stub.handleFunc("/apiplatform/repository/v2/organizations/org-123/applications/42/contracts", func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "POST", request.Method)

		var body map[string]interface{}

		err := json.NewDecoder(request.Body).Decode(&body)
		require.NoError(t, err)

		assert.Equal(t, "v1-id", body["apiVersionId"])
		assert.Equal(t, "42", body["applicationId"])
		assert.Nil(t, body["requestedTierId"])
		assert.Equal(t, false, body["acceptedTerms"])

		writer.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(writer).Encode(anypoint.Contract{
			ID: "contract-1",
			Application: anypoint.ContractApplication{
				ID:           "42",
				ClientID:     "abc-123",
				ClientSecret: "open-sesame",
			},
		})
	})

	contract, err := stub.Client().Applications().CreateContract(context.Background(), "42", &anypoint.ContractRequest{
		APIVersionID:  "v1-id",
		ApplicationID: "42",
	})
	require.NoError(t, err)
	assert.Equal(t, "abc-123", contract.Application.ClientID)
	assert.Equal(t, "open-sesame", contract.Application.ClientSecret)
}

func TestApplicationsClient_CreateServerError(t *testing.T) {
	t.Parallel()

	stub := newPlatformStub("org-123")
	defer stub.Close()

	stub.handleFunc("/apiplatform/repository/v2/organizations/org-123/applications", func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusBadRequest)
		_, _ = writer.Write([]byte(`{"message":"name already taken"}`))
	})

	_, err := stub.Client().Applications().Create(context.Background(), "ci-app")
	require.Error(t, err)

	apiErr := &anypoint.APIError{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Contains(t, err.Error(), "name already taken")
}
