package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPProvider_ExecuteGET(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/extended/v1/address/SP123/balances" {
			t.Errorf("expected balances path, got %s", r.URL.Path)
			http.Error(w, "invalid path", http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodGet {
			t.Errorf("expected method GET, got %s", r.Method)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"stx": map[string]any{"balance": "1000"},
		})
	}))
	defer server.Close()

	p := NewHTTPProvider("hiro-mock", server.URL+"/", 5*time.Second, 0)

	result, err := p.Execute(context.Background(), Operation{Path: "/extended/v1/address/SP123/balances"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, ok := result.(map[string]any)
	if !ok {
		t.Fatalf("expected map[string]any, got %T", result)
	}
	stx, _ := data["stx"].(map[string]any)
	if stx["balance"] != "1000" {
		t.Errorf("expected balance 1000, got %v", stx["balance"])
	}
}

func TestHTTPProvider_ExecuteTypedResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		if body["principal"] != "SP123" {
			t.Errorf("expected principal SP123, got %v", body["principal"])
		}
		_, _ = w.Write([]byte(`{"ok":true,"count":3}`))
	}))
	defer server.Close()

	p := NewHTTPProvider("mock", server.URL, 5*time.Second, 100)

	var out struct {
		OK    bool `json:"ok"`
		Count int  `json:"count"`
	}
	_, err := p.Execute(context.Background(), Operation{
		Path:   "lookup",
		Method: http.MethodPost,
		Body:   map[string]any{"principal": "SP123"},
		Result: &out,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.OK || out.Count != 3 {
		t.Errorf("unexpected result: %+v", out)
	}
}

func TestHTTPProvider_ErrorStatusesRecordFailure(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Header().Set("Retry-After", "30")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	p := NewHTTPProvider("mock", server.URL, 5*time.Second, 0)

	if _, err := p.Execute(context.Background(), Operation{}); err == nil {
		t.Fatal("expected rate limit error")
	}
	if _, err := p.Execute(context.Background(), Operation{}); err == nil {
		t.Fatal("expected http 500 error")
	}

	health := p.GetHealth()
	if health.Available {
		t.Error("expected provider to be unavailable after repeated failures")
	}
	if health.ErrorRate != 1 {
		t.Errorf("expected error rate 1, got %v", health.ErrorRate)
	}
}
