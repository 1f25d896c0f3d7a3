package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"congestion-cloud/internal/toll/application"
	toll "congestion-cloud/internal/toll/domain"
)

func sec(h, m int) int { return h*3600 + m*60 }

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	raw := []struct {
		start, end, amount int
	}{
		{sec(6, 0), sec(6, 29), 8},
		{sec(6, 30), sec(6, 59), 13},
		{sec(7, 0), sec(7, 59), 18},
	}
	slabs := make([]toll.FeeSlab, 0, len(raw))
	for _, r := range raw {
		slab, err := toll.NewFeeSlab(r.start, r.end, r.amount)
		if err != nil {
			t.Fatalf("new slab: %v", err)
		}
		slabs = append(slabs, slab)
	}
	schedule, err := toll.NewFeeSchedule(slabs)
	if err != nil {
		t.Fatalf("new schedule: %v", err)
	}
	calendar, err := toll.NewTollFreeCalendar(2013, time.July, nil)
	if err != nil {
		t.Fatalf("new calendar: %v", err)
	}
	calc, err := toll.NewCalculator(schedule, calendar, toll.NewTollFreeVehicles([]string{"Motorcycles"}), 60)
	if err != nil {
		t.Fatalf("new calculator: %v", err)
	}
	service, err := application.NewTaxService(calc, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	handler, err := NewHandler(service)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	return handler
}

func TestCalculateEndpoint(t *testing.T) {
	handler := newTestHandler(t)
	body := `{"vehicle":"car","dates":["2013-02-08 06:59:00","2013-02-08 07:00:00","2013-02-08 07:59:00"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/congestions/tax", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got := strings.TrimSpace(resp.Body.String()); got != "18" {
		t.Fatalf("expected body 18, got %q", got)
	}
}

func TestCalculateEndpointEmptyDates(t *testing.T) {
	handler := newTestHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/congestions/tax", strings.NewReader(`{"vehicle":"car","dates":[]}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got := strings.TrimSpace(resp.Body.String()); got != "0" {
		t.Fatalf("expected body 0, got %q", got)
	}
}

func TestCalculateEndpointAbsentVehicleIsExempt(t *testing.T) {
	handler := newTestHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/congestions/tax", strings.NewReader(`{"dates":["2013-02-08 07:30:00"]}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got := strings.TrimSpace(resp.Body.String()); got != "0" {
		t.Fatalf("expected body 0, got %q", got)
	}
}

func TestCalculateEndpointEmptyVehicleIsCharged(t *testing.T) {
	handler := newTestHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/congestions/tax", strings.NewReader(`{"vehicle":"","dates":["2013-02-08 07:30:00"]}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got := strings.TrimSpace(resp.Body.String()); got != "18" {
		t.Fatalf("expected body 18, got %q", got)
	}
}

func TestCalculateEndpointRejectsMalformedDate(t *testing.T) {
	handler := newTestHandler(t)
	body := `{"vehicle":"car","dates":["2013-02-08 06:59:00","not-a-date"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/congestions/tax", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestCalculateEndpointRejectsBadJSON(t *testing.T) {
	handler := newTestHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/congestions/tax", strings.NewReader(`{`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestCalculateEndpointMethodNotAllowed(t *testing.T) {
	handler := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/congestions/tax", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.Code)
	}
}

func TestCalculateEndpointUnknownRoute(t *testing.T) {
	handler := newTestHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/congestions/tax/unknown", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestDetailsEndpoint(t *testing.T) {
	handler := newTestHandler(t)
	body := `{"vehicle":"car","dates":["2013-02-08 06:59:00","2013-02-07 07:00:00"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/congestions/tax/details", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var got statementResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Total != 31 {
		t.Fatalf("expected total 31, got %d", got.Total)
	}
	if len(got.Days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(got.Days))
	}
	if got.Days[0].Day != "2013-02-07" || got.Days[0].Amount != 18 {
		t.Fatalf("unexpected first day: %+v", got.Days[0])
	}
	if got.Days[1].Day != "2013-02-08" || got.Days[1].Amount != 13 {
		t.Fatalf("unexpected second day: %+v", got.Days[1])
	}
	if got.Vehicle == nil || *got.Vehicle != "car" {
		t.Fatalf("unexpected vehicle: %v", got.Vehicle)
	}
}
