package utils

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
)

func TestWriteSuccessEnvelope(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteSuccess(rec, 202, "logIn success", map[string]string{"accessToken": "abc"})

	if rec.Code != 202 {
		t.Fatalf("status code: got %d want 202", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type: got %q", ct)
	}

	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if env.Status != 202 || env.Message != "logIn success" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	data, ok := env.Data.(map[string]interface{})
	if !ok || data["accessToken"] != "abc" {
		t.Fatalf("unexpected data: %#v", env.Data)
	}
}

func TestWriteErrorEnvelope(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteError(rec, 401, "invalid token")

	if rec.Code != 401 {
		t.Fatalf("status code: got %d want 401", rec.Code)
	}

	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if env.Status != 401 || env.Message != "invalid token" || env.Data != nil {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}
