package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anypoint-ops/anypoint-client/pkg/anypoint"
)

type staticToken string

func (s staticToken) GetToken(ctx context.Context) (string, error) {
	return string(s), nil
}

type recordingLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *recordingLogger) log(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, msg)
}

func (l *recordingLogger) Messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]string, len(l.messages))
	copy(out, l.messages)

	return out
}

func (l *recordingLogger) Debug(msg string, fields map[string]interface{}) { l.log(msg) }
func (l *recordingLogger) Info(msg string, fields map[string]interface{})  { l.log(msg) }
func (l *recordingLogger) Warn(msg string, fields map[string]interface{})  { l.log(msg) }
func (l *recordingLogger) Error(msg string, fields map[string]interface{}) { l.log(msg) }

func TestClient_Do(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/accounts/api/me", request.URL.Path)
		assert.Equal(t, "Bearer test-token", request.Header.Get("Authorization"))
		assert.Equal(t, "application/json", request.Header.Get("Accept"))

		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, staticToken("test-token"))

	resp, err := client.Get(context.Background(), "/accounts/api/me", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"ok":true}`, string(resp.Body))
}

func TestClient_DoWithQueryAndBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "POST", request.Method)
		assert.Equal(t, "org-123", request.URL.Query().Get("organizationId"))
		assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

		var body map[string]string

		err := json.NewDecoder(request.Body).Decode(&body)
		assert.NoError(t, err)
		assert.Equal(t, "ci-app", body["name"])

		writer.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)

	query := url.Values{}
	query.Set("organizationId", "org-123")

	resp, err := client.Do(context.Background(), &Request{
		Method: http.MethodPost,
		Path:   "/test",
		Query:  query,
		Body:   map[string]string{"name": "ci-app"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestClient_Methods(t *testing.T) {
	t.Parallel()

	tests := []struct {
		method string
		call   func(client *Client) (*Response, error)
	}{
		{http.MethodGet, func(c *Client) (*Response, error) { return c.Get(context.Background(), "/x", nil) }},
		{http.MethodPost, func(c *Client) (*Response, error) { return c.Post(context.Background(), "/x", nil) }},
		{http.MethodPut, func(c *Client) (*Response, error) { return c.Put(context.Background(), "/x", nil) }},
		{http.MethodPatch, func(c *Client) (*Response, error) { return c.Patch(context.Background(), "/x", nil) }},
		{http.MethodDelete, func(c *Client) (*Response, error) { return c.Delete(context.Background(), "/x") }},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.method, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.method, request.Method)
			}))
			defer server.Close()

			_, err := testCase.call(NewClient(server.URL, nil))
			require.NoError(t, err)
		})
	}
}

func TestClient_ErrorResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
		_, _ = writer.Write([]byte(`{"message":"no such thing"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)

	resp, err := client.Get(context.Background(), "/missing", nil)
	require.Error(t, err)

	// The response is still returned alongside the error.
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	apiErr := &anypoint.APIError{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "no such thing", apiErr.Message)
}

func TestClient_RetriesServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if calls.Add(1) < 3 {
			writer.WriteHeader(http.StatusBadGateway)

			return
		}

		_, _ = writer.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil,
		WithRetryConfig(3, time.Millisecond, 5*time.Millisecond))

	resp, err := client.Get(context.Background(), "/flaky", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		calls.Add(1)
		writer.WriteHeader(http.StatusBadRequest)
		_, _ = writer.Write([]byte(`{"message":"bad input"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil,
		WithRetryConfig(3, time.Millisecond, 5*time.Millisecond))

	_, err := client.Get(context.Background(), "/bad", nil)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_DebugLogging(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte(`{}`))
	}))
	defer server.Close()

	logger := &recordingLogger{}
	client := NewClient(server.URL, nil, WithLogger(logger), WithDebug(true))

	_, err := client.Get(context.Background(), "/logged", nil)
	require.NoError(t, err)

	messages := logger.Messages()
	assert.Contains(t, messages, "HTTP Request")
	assert.Contains(t, messages, "HTTP Response")
}

func TestClient_NoDebugLoggingByDefault(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte(`{}`))
	}))
	defer server.Close()

	logger := &recordingLogger{}
	client := NewClient(server.URL, nil, WithLogger(logger))

	_, err := client.Get(context.Background(), "/quiet", nil)
	require.NoError(t, err)
	assert.Empty(t, logger.Messages())
}

func TestClient_UserAgent(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "pipeline-bot/2.0", request.Header.Get("User-Agent"))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, WithUserAgent("pipeline-bot/2.0"))

	_, err := client.Get(context.Background(), "/ua", nil)
	require.NoError(t, err)
}

func TestClient_Proxy(t *testing.T) {
	t.Parallel()

	var proxied atomic.Int32

	// A forward proxy sees the absolute URI of the origin in the request.
	proxy := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		proxied.Add(1)
		assert.Equal(t, "upstream.invalid", request.Host)
		_, _ = writer.Write([]byte(`{}`))
	}))
	defer proxy.Close()

	proxyURL, err := url.Parse(proxy.URL)
	require.NoError(t, err)

	client := NewClient("http://upstream.invalid", nil, WithProxy(proxyURL))

	resp, err := client.Get(context.Background(), "/via-proxy", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(1), proxied.Load())
}
