package client

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	internalhttp "github.com/anypoint-ops/anypoint-client/internal/http"
	"github.com/anypoint-ops/anypoint-client/pkg/anypoint"
)

// NewTestClient creates a client against baseURL without a token manager.
func NewTestClient(baseURL string) *Client {
	httpClient := internalhttp.NewClient(baseURL, nil)

	client := &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
	}

	client.initializeResourceClients()

	return client
}

// recordedRequest captures one request seen by the platform stub.
type recordedRequest struct {
	Method string
	Path   string
	Body   []byte
}

// platformStub is an httptest server pre-wired with the fixture routes the
// accessors hit: the profile endpoint plus whatever handlers a test
// registers. Every request is recorded in order.
type platformStub struct {
	mux    *http.ServeMux
	server *httptest.Server

	mu       sync.Mutex
	requests []recordedRequest
}

// newPlatformStub starts a stub whose profile endpoint reports orgID.
func newPlatformStub(orgID string) *platformStub {
	stub := &platformStub{mux: http.NewServeMux()}

	stub.handleJSON("/accounts/api/me", anypoint.Profile{
		User: anypoint.ProfileUser{OrganizationID: orgID},
	})

	stub.server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		body := make([]byte, 0)

		if request.Body != nil {
			data, err := io.ReadAll(request.Body)
			if err == nil {
				body = data
			}

			request.Body = io.NopCloser(bytes.NewReader(body))
		}

		stub.mu.Lock()
		stub.requests = append(stub.requests, recordedRequest{
			Method: request.Method,
			Path:   request.URL.Path,
			Body:   body,
		})
		stub.mu.Unlock()

		stub.mux.ServeHTTP(writer, request)
	}))

	return stub
}

func (s *platformStub) Close() {
	s.server.Close()
}

func (s *platformStub) URL() string {
	return s.server.URL
}

// Client returns a test client pointed at the stub.
func (s *platformStub) Client() *Client {
	return NewTestClient(s.server.URL)
}

// handleJSON registers a handler that always answers 200 with the encoded
// payload, regardless of method.
func (s *platformStub) handleJSON(path string, payload interface{}) {
	s.mux.HandleFunc(path, func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(payload)
	})
}

// handleFunc registers a raw handler.
func (s *platformStub) handleFunc(path string, handler http.HandlerFunc) {
	s.mux.HandleFunc(path, handler)
}

// Requests returns a copy of everything recorded so far.
func (s *platformStub) Requests() []recordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]recordedRequest, len(s.requests))
	copy(out, s.requests)

	return out
}

// RequestsTo returns the recorded requests whose path matches exactly.
func (s *platformStub) RequestsTo(path string) []recordedRequest {
	var out []recordedRequest

	for _, req := range s.Requests() {
		if req.Path == path {
			out = append(out, req)
		}
	}

	return out
}
