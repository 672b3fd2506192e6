package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/loykin/stackctl"
)

func testServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL})
}

func TestStartDecodesResult(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/start" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(stackctl.Result{
			Outcome:  stackctl.OutcomeConfirmed,
			Endpoint: "localhost:19530",
		})
	})

	res, err := c.Start(context.Background())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if res.Outcome != stackctl.OutcomeConfirmed || res.Endpoint != "localhost:19530" {
		t.Fatalf("result = %+v", res)
	}
}

func TestStatusDecodesList(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]stackctl.ServiceStatus{
			{Name: "milvus-standalone", State: stackctl.StateRunning},
		})
	})

	list, err := c.Status(context.Background())
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if len(list) != 1 || list[0].State != stackctl.StateRunning {
		t.Fatalf("list = %+v", list)
	}
}

func TestErrorResponseSurfacesMessage(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "container engine is not reachable"})
	})

	if _, err := c.Stop(context.Background()); err == nil {
		t.Fatal("expected error")
	} else if got := err.Error(); got != "API error: container engine is not reachable" {
		t.Fatalf("error = %q", got)
	}
}

func TestIsReachable(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	if !c.IsReachable(context.Background()) {
		t.Fatal("expected reachable")
	}

	down := New(Config{BaseURL: "http://127.0.0.1:1"})
	if down.IsReachable(context.Background()) {
		t.Fatal("expected unreachable")
	}
}
