package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/quantdeck/quantdeck/internal/model"
)

func TestRequestIdentity_PreservesParamOrder(t *testing.T) {
	t.Parallel()

	req := NewRequest("/api/movers",
		Param{Key: "limit", Value: "10"},
		Param{Key: "metric", Value: "volume"},
	)
	if got, want := req.Identity(), "/api/movers?limit=10&metric=volume"; got != want {
		t.Fatalf("Identity() = %q, want %q", got, want)
	}

	// Appending a refresh nonce must change identity without touching the
	// original request.
	refreshed := req.WithRefresh(3)
	if refreshed.Identity() == req.Identity() {
		t.Fatal("WithRefresh should produce a new identity")
	}
	if got, want := req.Identity(), "/api/movers?limit=10&metric=volume"; got != want {
		t.Fatalf("original identity mutated: %q, want %q", got, want)
	}
}

func TestRequestIdentity_EscapesValues(t *testing.T) {
	t.Parallel()

	req := NewRequest("/api/markets", Param{Key: "q", Value: "rate hike?"})
	if got, want := req.Identity(), "/api/markets?q=rate+hike%3F"; got != want {
		t.Fatalf("Identity() = %q, want %q", got, want)
	}
}

func TestGetRows_DecodesArray(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/markets" {
			t.Errorf("path = %q, want /api/markets", r.URL.Path)
		}
		if r.URL.RawQuery != "limit=2" {
			t.Errorf("query = %q, want limit=2", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"ticker":"FED25","volume":1200.5},{"ticker":"CPI09"}]`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	rows, err := c.GetRows(context.Background(), NewRequest(model.EndpointMarkets, Param{Key: "limit", Value: "2"}))
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if got := rows[0].Str(model.FieldTicker); got != "FED25" {
		t.Fatalf("ticker = %q, want FED25", got)
	}
	if v, ok := rows[0].Float(model.FieldVolume); !ok || v != 1200.5 {
		t.Fatalf("volume = %v ok=%v, want 1200.5 true", v, ok)
	}
}

func TestGet_NonSuccessStatusIsTyped(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unsupported metric", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.GetRows(context.Background(), NewRequest(model.EndpointMovers))
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("err = %v, want *StatusError", err)
	}
	if statusErr.Status != http.StatusBadRequest {
		t.Fatalf("Status = %d, want 400", statusErr.Status)
	}
	if statusErr.Body == "" {
		t.Fatal("Body should carry the response text")
	}
}

func TestGet_MalformedBodyIsError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"not an array"`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.GetRows(context.Background(), NewRequest(model.EndpointMarkets)); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestGet_CancellationSurfacesContextError(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	c := New(srv.URL)
	go func() {
		_, err := c.GetRows(ctx, NewRequest(model.EndpointVolIndex))
		done <- err
	}()
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
