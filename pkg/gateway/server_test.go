package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toolbus/toolbus/internal/metrics"
	"github.com/toolbus/toolbus/pkg/tooldispatch"
)

type echoTool struct{}

func (echoTool) Declaration() tooldispatch.Declaration {
	return tooldispatch.Declaration{
		Name:        "echo",
		Description: "Echoes its arguments back",
		Parameters: &tooldispatch.Schema{
			Type: "object",
			Properties: map[string]*tooldispatch.Schema{
				"message": {Type: "string"},
			},
		},
	}
}

func (echoTool) Execute(_ context.Context, args map[string]interface{}) (interface{}, error) {
	return args["message"], nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	reg := tooldispatch.NewRegistry()
	require.NoError(t, reg.Register("echo", echoTool{}))

	dispatcher := tooldispatch.NewDispatcher(reg)
	srv, err := NewServer(Config{
		Host:         "127.0.0.1",
		Port:         18080,
		SharedSecret: "test-secret",
		Dispatcher:   dispatcher,
		Registry:     reg,
		Metrics:      metrics.NewMetrics(),
		Logger:       zerolog.Nop(),
	})
	require.NoError(t, err)
	return srv
}

func TestNewServer_Validation(t *testing.T) {
	reg := tooldispatch.NewRegistry()
	dispatcher := tooldispatch.NewDispatcher(reg)

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero port", Config{SharedSecret: "s", Dispatcher: dispatcher, Registry: reg}},
		{"missing secret", Config{Port: 8080, Dispatcher: dispatcher, Registry: reg}},
		{"missing dispatcher", Config{Port: 8080, SharedSecret: "s", Registry: reg}},
		{"missing registry", Config{Port: 8080, SharedSecret: "s", Dispatcher: dispatcher}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewServer(tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestServer_Invoke(t *testing.T) {
	srv := newTestServer(t)
	handler := srv.Handler()

	body, err := json.Marshal(tooldispatch.FunctionCall{
		Name: "echo",
		Args: map[string]interface{}{"message": "hello"},
		ID:   "call-1",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/invoke", bytes.NewReader(body))
	req.Header.Set("X-Toolbus-Secret", "test-secret")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope tooldispatch.FunctionResponseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.FunctionResponses, 1)
	assert.Equal(t, "call-1", envelope.FunctionResponses[0].ID)
	assert.Equal(t, "hello", envelope.FunctionResponses[0].Response.Output)
	assert.Empty(t, envelope.FunctionResponses[0].Response.Error)
}

func TestServer_Invoke_UnknownTool(t *testing.T) {
	srv := newTestServer(t)
	handler := srv.Handler()

	body := []byte(`{"name":"missing","args":{},"id":"x1"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/invoke", bytes.NewReader(body))
	req.Header.Set("X-Toolbus-Secret", "test-secret")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope tooldispatch.FunctionResponseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.FunctionResponses, 1)
	assert.Equal(t, "Unknown tool: missing", envelope.FunctionResponses[0].Response.Error)
}

func TestServer_Invoke_Unauthorized(t *testing.T) {
	srv := newTestServer(t)
	handler := srv.Handler()

	req := httptest.NewRequest(http.MethodPost, "/v1/invoke", bytes.NewReader([]byte(`{"name":"echo"}`)))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServer_Invoke_BadRequest(t *testing.T) {
	srv := newTestServer(t)
	handler := srv.Handler()

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{`},
		{"missing name", `{"args":{}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/invoke", bytes.NewReader([]byte(tt.body)))
			req.Header.Set("X-Toolbus-Secret", "test-secret")
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestServer_Declarations(t *testing.T) {
	srv := newTestServer(t)
	handler := srv.Handler()

	req := httptest.NewRequest(http.MethodGet, "/v1/declarations", nil)
	req.Header.Set("X-Toolbus-Secret", "test-secret")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Tools   []map[string]tooldispatch.Declaration `json:"tools"`
		Aliases map[string]string                     `json:"aliases"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Tools, 1)
	decl, ok := payload.Tools[0]["echo"]
	require.True(t, ok)
	assert.Equal(t, "Echoes its arguments back", decl.Description)
}

func TestServer_Healthz(t *testing.T) {
	srv := newTestServer(t)
	handler := srv.Handler()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServer_Metrics(t *testing.T) {
	srv := newTestServer(t)
	handler := srv.Handler()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthHandler_VerifySignature(t *testing.T) {
	handler := NewAuthHandler("test-secret")

	challenge, err := handler.GenerateChallenge()
	require.NoError(t, err)
	require.Len(t, challenge, 64)

	mac := hmac.New(sha256.New, []byte("test-secret"))
	mac.Write([]byte(challenge))
	signature := hex.EncodeToString(mac.Sum(nil))

	assert.True(t, handler.VerifySignature(challenge, signature))
	assert.False(t, handler.VerifySignature(challenge, "bogus"))
}

func TestAuthHandler_HandleAuthResponse(t *testing.T) {
	handler := NewAuthHandler("test-secret")
	client := &Client{ID: "c1", Challenge: "challenge-value"}

	mac := hmac.New(sha256.New, []byte("test-secret"))
	mac.Write([]byte(client.Challenge))
	signature := hex.EncodeToString(mac.Sum(nil))

	result := handler.HandleAuthResponse(client, signature)
	assert.True(t, result.Success)
	assert.True(t, client.Authenticated)
	assert.Empty(t, client.Challenge)

	failed := handler.HandleAuthResponse(&Client{ID: "c2", Challenge: "other"}, "wrong")
	assert.False(t, failed.Success)
}
