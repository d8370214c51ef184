package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthcheck(t *testing.T) {
	app := newTestApplication(t)

	w := doRequest(t, app.routes(), http.MethodGet, "/v1/healthcheck", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	body := decodeBody(t, w)
	assert.Equal(t, "available", body["status"])

	info := objectField(t, body, "system_info")
	assert.Equal(t, "testing", info["environment"])
	assert.Equal(t, "memory", info["storage"])
	assert.Equal(t, version, info["version"])
}

func TestUnknownRoute(t *testing.T) {
	app := newTestApplication(t)

	w := doRequest(t, app.routes(), http.MethodGet, "/v1/nope", "")

	assert.Equal(t, http.StatusNotFound, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Not Found", body["error"])
}

func TestMethodNotAllowed(t *testing.T) {
	app := newTestApplication(t)

	w := doRequest(t, app.routes(), http.MethodDelete, "/v1/healthcheck", "")

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Method Not Allowed", body["error"])
}

func TestDebugVars(t *testing.T) {
	app := newTestApplication(t)
	router := app.routes()

	// Drive one request through the chain so the counters move.
	doRequest(t, router, http.MethodGet, "/v1/healthcheck", "")

	w := doRequest(t, router, http.MethodGet, "/debug/vars", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "total_requests_received")
	assert.Contains(t, w.Body.String(), "total_responses_sent_by_status")
}
