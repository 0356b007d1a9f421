package demoapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/quantdeck/quantdeck/internal/apiclient"
	"github.com/quantdeck/quantdeck/internal/model"
)

func newTestClient(t *testing.T) *apiclient.Client {
	t.Helper()
	srv := httptest.NewServer(NewServer("").Handler())
	t.Cleanup(srv.Close)
	return apiclient.New(srv.URL)
}

func TestMarkets_HonorsLimit(t *testing.T) {
	t.Parallel()

	c := newTestClient(t)
	rows, err := c.GetRows(context.Background(),
		apiclient.NewRequest(model.EndpointMarkets, apiclient.Param{Key: model.ParamLimit, Value: "7"}))
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 7 {
		t.Fatalf("len(rows) = %d, want 7", len(rows))
	}
	for _, row := range rows {
		if row.Str(model.FieldTicker) == "" {
			t.Fatalf("row missing ticker: %v", row)
		}
		if _, ok := row.Float(model.FieldTradability); !ok {
			t.Fatalf("row missing tradability: %v", row)
		}
	}
}

func TestMovers_RejectsUnknownMetric(t *testing.T) {
	t.Parallel()

	c := newTestClient(t)
	_, err := c.GetRows(context.Background(),
		apiclient.NewRequest(model.EndpointMovers, apiclient.Param{Key: model.ParamMetric, Value: "sentiment"}))
	statusErr, ok := err.(*apiclient.StatusError)
	if !ok {
		t.Fatalf("err = %v, want *StatusError", err)
	}
	if statusErr.Status != http.StatusBadRequest {
		t.Fatalf("Status = %d, want 400", statusErr.Status)
	}
}

func TestMovers_AppliesMinPrevValue(t *testing.T) {
	t.Parallel()

	c := newTestClient(t)
	rows, err := c.GetRows(context.Background(), apiclient.NewRequest(model.EndpointMovers,
		apiclient.Param{Key: model.ParamLimit, Value: "50"},
		apiclient.Param{Key: model.ParamMinPrevValue, Value: "50000"},
	))
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	for _, row := range rows {
		prev, ok := row.Float(model.FieldPrevValue)
		if !ok || prev < 50000 {
			t.Fatalf("prev_value = %v, want >= 50000", prev)
		}
	}
}

func TestVolIndex_NewestFirst(t *testing.T) {
	t.Parallel()

	c := newTestClient(t)
	rows, err := c.GetRows(context.Background(),
		apiclient.NewRequest(model.EndpointVolIndex, apiclient.Param{Key: model.ParamPoints, Value: "12"}))
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 12 {
		t.Fatalf("len(rows) = %d, want 12", len(rows))
	}
	for i := 1; i < len(rows); i++ {
		if !rows[i].Time(model.FieldTimestamp).Before(rows[i-1].Time(model.FieldTimestamp)) {
			t.Fatalf("rows not newest-first at %d", i)
		}
	}
}

func TestBreadth_CarriesDeltaFields(t *testing.T) {
	t.Parallel()

	c := newTestClient(t)
	rows, err := c.GetRows(context.Background(),
		apiclient.NewRequest(model.EndpointBreadth, apiclient.Param{Key: model.ParamHours, Value: "6"}))
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 6 {
		t.Fatalf("len(rows) = %d, want 6", len(rows))
	}
	for _, field := range []string{model.FieldVolumeDelta, model.FieldOIDelta, model.FieldBreadthDelta} {
		if _, ok := rows[0].Float(field); !ok {
			t.Fatalf("row missing %s: %v", field, rows[0])
		}
	}
}

func TestServer_StartStop(t *testing.T) {
	t.Parallel()

	s := NewServer("127.0.0.1:0")
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}
