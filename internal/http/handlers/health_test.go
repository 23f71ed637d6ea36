package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealth(t *testing.T) {
	app := newTestApp(&questionStub{}, nil)
	rr := httptest.NewRecorder()
	app.Health(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	payload := decodeBody(t, rr)
	if payload["success"] != true || payload["timestamp"] != "2024-03-09T12:00:00Z" {
		t.Fatalf("unexpected payload: %#v", payload)
	}
}

func TestNotFoundListsEndpoints(t *testing.T) {
	app := newTestApp(&questionStub{}, nil)
	rr := httptest.NewRecorder()
	app.NotFound(rr, httptest.NewRequest(http.MethodGet, "/nope?x=1", nil))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("unexpected status code: %d", rr.Code)
	}
	payload := decodeBody(t, rr)
	if payload["message"] != "Route /nope?x=1 not found" {
		t.Fatalf("unexpected message: %#v", payload["message"])
	}
	endpoints, ok := payload["availableEndpoints"].([]any)
	if !ok || len(endpoints) != 5 || endpoints[0] != "GET /" {
		t.Fatalf("unexpected endpoints: %#v", payload["availableEndpoints"])
	}
}
