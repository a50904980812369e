package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anypoint-ops/anypoint-client/pkg/anypoint"
)

func TestStaticTokenManager(t *testing.T) {
	t.Parallel()

	manager := NewStaticTokenManager("fixed-token")

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fixed-token", token)

	err = manager.RefreshToken(context.Background())
	require.ErrorIs(t, err, ErrStaticTokenCannotRefresh)

	manager.SetToken("replaced", time.Time{})

	token, err = manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "replaced", token)
}

func loginServer(t *testing.T, logins *atomic.Int32) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		logins.Add(1)

		assert.Equal(t, "POST", request.Method)
		assert.Equal(t, "/accounts/login", request.URL.Path)

		var body anypoint.LoginRequest

		err := json.NewDecoder(request.Body).Decode(&body)
		require.NoError(t, err)
		assert.Equal(t, "deployer", body.Username)
		assert.Equal(t, "s3cret", body.Password)

		_ = json.NewEncoder(writer).Encode(anypoint.LoginResponse{
			AccessToken: "session-token",
			TokenType:   "bearer",
		})
	}))
}

func TestLoginTokenManager_GetToken(t *testing.T) {
	t.Parallel()

	var logins atomic.Int32

	server := loginServer(t, &logins)
	defer server.Close()

	manager := NewLoginTokenManager(&LoginConfig{
		LoginURL: server.URL + "/accounts/login",
		Username: "deployer",
		Password: "s3cret",
	})

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "session-token", token)

	// The session token is cached; further calls do not log in again.
	token, err = manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "session-token", token)
	assert.Equal(t, int32(1), logins.Load())
}

func TestLoginTokenManager_RefreshToken(t *testing.T) {
	t.Parallel()

	var logins atomic.Int32

	server := loginServer(t, &logins)
	defer server.Close()

	manager := NewLoginTokenManager(&LoginConfig{
		LoginURL: server.URL + "/accounts/login",
		Username: "deployer",
		Password: "s3cret",
	})

	_, err := manager.GetToken(context.Background())
	require.NoError(t, err)

	err = manager.RefreshToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), logins.Load())
}

func TestLoginTokenManager_BadCredentials(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusUnauthorized)
		_, _ = writer.Write([]byte(`{"message":"Unauthorized"}`))
	}))
	defer server.Close()

	manager := NewLoginTokenManager(&LoginConfig{
		LoginURL: server.URL + "/accounts/login",
		Username: "deployer",
		Password: "wrong",
	})

	_, err := manager.GetToken(context.Background())
	require.Error(t, err)

	apiErr := &anypoint.APIError{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestLoginTokenManager_EmptyToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_ = json.NewEncoder(writer).Encode(anypoint.LoginResponse{})
	}))
	defer server.Close()

	manager := NewLoginTokenManager(&LoginConfig{
		LoginURL: server.URL + "/accounts/login",
		Username: "deployer",
		Password: "s3cret",
	})

	_, err := manager.GetToken(context.Background())
	require.ErrorIs(t, err, anypoint.ErrNoAccessToken)
}

func TestLoginTokenManager_MissingCredentials(t *testing.T) {
	t.Parallel()

	manager := NewLoginTokenManager(&LoginConfig{LoginURL: "http://localhost/accounts/login"})

	_, err := manager.GetToken(context.Background())
	require.ErrorIs(t, err, ErrCredentialsRequired)
}

func TestLoginTokenManager_SeededToken(t *testing.T) {
	t.Parallel()

	var logins atomic.Int32

	server := loginServer(t, &logins)
	defer server.Close()

	manager := NewLoginTokenManager(&LoginConfig{
		LoginURL: server.URL + "/accounts/login",
		Username: "deployer",
		Password: "s3cret",
	})

	manager.SetToken("persisted-token", time.Time{})

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "persisted-token", token)
	assert.Equal(t, int32(0), logins.Load())
}
