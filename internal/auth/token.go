// Package auth provides the token managers used to authenticate platform
// calls: a login manager that trades credentials for a session token once
// per run, and a static manager for tokens injected by the environment.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/anypoint-ops/anypoint-client/pkg/anypoint"
)

// Static errors for err113 compliance.
var (
	ErrStaticTokenCannotRefresh = errors.New("static token cannot be refreshed")
	ErrCredentialsRequired      = errors.New("username and password are required")
)

// TokenManager manages bearer tokens for platform requests.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) error
	SetToken(token string, expiresAt time.Time)
}

// StaticTokenManager provides a fixed token.
type StaticTokenManager struct {
	mu    sync.RWMutex
	token string
}

// NewStaticTokenManager creates a manager around an externally issued token.
func NewStaticTokenManager(token string) *StaticTokenManager {
	return &StaticTokenManager{token: token}
}

// GetToken returns the configured token.
func (m *StaticTokenManager) GetToken(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.token, nil
}

// RefreshToken always fails: a static token has nothing to refresh with.
func (m *StaticTokenManager) RefreshToken(ctx context.Context) error {
	return ErrStaticTokenCannotRefresh
}

// SetToken replaces the token.
func (m *StaticTokenManager) SetToken(token string, expiresAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = token
}

// LoginConfig configures a LoginTokenManager.
type LoginConfig struct {
	// LoginURL is the full URL of the platform login endpoint.
	LoginURL string
	Username string
	Password string

	// HTTPClient lets the caller supply a client with proxy and timeout
	// settings; a default client is used when nil.
	HTTPClient *http.Client
}

// LoginTokenManager obtains a session token from the platform login
// endpoint on first use and reuses it for every subsequent call. The token
// is never refreshed implicitly; RefreshToken performs a fresh login.
type LoginTokenManager struct {
	config     *LoginConfig
	httpClient *http.Client

	mu    sync.Mutex
	token string
}

// NewLoginTokenManager creates a login-backed token manager.
func NewLoginTokenManager(config *LoginConfig) *LoginTokenManager {
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &LoginTokenManager{
		config:     config,
		httpClient: httpClient,
	}
}

// GetToken returns the cached session token, logging in first if needed.
func (m *LoginTokenManager) GetToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token != "" {
		return m.token, nil
	}

	token, err := m.login(ctx)
	if err != nil {
		return "", err
	}

	m.token = token

	return m.token, nil
}

// RefreshToken discards the cached token and logs in again.
func (m *LoginTokenManager) RefreshToken(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	token, err := m.login(ctx)
	if err != nil {
		return err
	}

	m.token = token

	return nil
}

// SetToken seeds the cached token, e.g. from a persisted session.
func (m *LoginTokenManager) SetToken(token string, expiresAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = token
}

func (m *LoginTokenManager) login(ctx context.Context) (string, error) {
	if m.config.Username == "" || m.config.Password == "" {
		return "", ErrCredentialsRequired
	}

	body, err := json.Marshal(anypoint.LoginRequest{
		Username: m.config.Username,
		Password: m.config.Password,
	})
	if err != nil {
		return "", fmt.Errorf("encoding login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.config.LoginURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating login request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing login request: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading login response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("logging in: %w", anypoint.NewAPIError(resp.StatusCode, respBody))
	}

	var loginResp anypoint.LoginResponse

	err = json.Unmarshal(respBody, &loginResp)
	if err != nil {
		return "", fmt.Errorf("parsing login response: %w", err)
	}

	if loginResp.AccessToken == "" {
		return "", anypoint.ErrNoAccessToken
	}

	return loginResp.AccessToken, nil
}
