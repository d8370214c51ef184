package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hafizmfadli/go-vidly/internal/data"
	"github.com/hafizmfadli/go-vidly/internal/jsonlog"
	"github.com/stretchr/testify/require"
)

// newTestApplication returns an application wired to a fresh in-memory
// store, with logging silenced and the rate limiter disabled so tests
// can fire requests as fast as they like.
func newTestApplication(t *testing.T) *application {
	t.Helper()

	var cfg config
	cfg.env = "testing"
	cfg.storage.backend = "memory"
	cfg.limiter.enabled = false

	logger := jsonlog.NewLogger(io.Discard, jsonlog.LevelOff)

	return &application{
		config: cfg,
		logger: logger,
		models: data.NewModels(data.NewMemoryStore(logger)),
	}
}

// doRequest runs a single request through the full handler chain and
// returns the recorded response.
func doRequest(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	return w
}

// decodeBody unmarshals a recorded JSON response body.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "invalid JSON response: %s", w.Body.String())

	return body
}

// objectField returns a JSON object held in a response field, failing
// the test when the field is absent or not an object.
func objectField(t *testing.T, body map[string]interface{}, field string) map[string]interface{} {
	t.Helper()

	object, ok := body[field].(map[string]interface{})
	require.True(t, ok, "response field %q missing or not an object: %v", field, body)

	return object
}
