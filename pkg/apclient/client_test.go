package apclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anypoint-ops/anypoint-client/pkg/anypoint"
)

func TestNew_NilConfig(t *testing.T) {
	t.Parallel()

	_, err := New(nil)
	require.ErrorIs(t, err, anypoint.ErrConfigRequired)
}

func TestNew_DefaultEndpoint(t *testing.T) {
	t.Parallel()

	config := &anypoint.Config{}

	_, err := New(config)
	require.NoError(t, err)
	assert.Equal(t, anypoint.DefaultEndpoint, config.Endpoint)
}

func TestNew_NormalizesEndpoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		endpoint string
		expected string
	}{
		{"trailing slash", "https://eu1.anypoint.mulesoft.com/", "https://eu1.anypoint.mulesoft.com"},
		{"missing scheme", "eu1.anypoint.mulesoft.com", "https://eu1.anypoint.mulesoft.com"},
		{"http preserved", "http://localhost:8080", "http://localhost:8080"},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			config := &anypoint.Config{Endpoint: testCase.endpoint}

			_, err := New(config)
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, config.Endpoint)
		})
	}
}

func TestNew_InvalidProxy(t *testing.T) {
	t.Parallel()

	_, err := New(&anypoint.Config{Proxy: "::not-a-url"})
	require.ErrorIs(t, err, anypoint.ErrInvalidProxyURL)
}

func TestNewWithToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "Bearer pre-issued", request.Header.Get("Authorization"))

		_ = json.NewEncoder(writer).Encode(anypoint.Profile{
			User: anypoint.ProfileUser{OrganizationID: "org-123"},
		})
	}))
	defer server.Close()

	platformClient, err := NewWithToken(server.URL, "pre-issued")
	require.NoError(t, err)

	orgID, err := platformClient.Accounts().OrganizationID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "org-123", orgID)

	token, err := platformClient.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pre-issued", token)
}

func TestNewWithCredentials(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/accounts/login":
			_ = json.NewEncoder(writer).Encode(anypoint.LoginResponse{AccessToken: "session-token"})
		case "/accounts/api/me":
			assert.Equal(t, "Bearer session-token", request.Header.Get("Authorization"))
			_ = json.NewEncoder(writer).Encode(anypoint.Profile{
				User: anypoint.ProfileUser{OrganizationID: "org-123"},
			})
		default:
			writer.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	platformClient, err := NewWithCredentials(server.URL, "deployer", "s3cret")
	require.NoError(t, err)

	orgID, err := platformClient.Accounts().OrganizationID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "org-123", orgID)
}

func TestNew_NoCredentials(t *testing.T) {
	t.Parallel()

	platformClient, err := New(&anypoint.Config{Endpoint: "https://anypoint.example.com"})
	require.NoError(t, err)

	_, err = platformClient.GetToken(context.Background())
	require.ErrorIs(t, err, anypoint.ErrNotAuthenticated)
}
