package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"congestion-cloud/internal/toll/application"
)

func TestStatementEndpointPDF(t *testing.T) {
	handler := newTestHandler(t)
	body := `{"vehicle":"car","dates":["2013-02-08 06:59:00"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/congestions/tax/statement?format=pdf", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got := resp.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("expected pdf content type, got %q", got)
	}
	if !bytes.HasPrefix(resp.Body.Bytes(), []byte("%PDF")) {
		t.Fatal("expected PDF payload")
	}
}

func TestStatementEndpointXLSX(t *testing.T) {
	handler := newTestHandler(t)
	body := `{"vehicle":"car","dates":["2013-02-08 06:59:00"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/congestions/tax/statement?format=xlsx", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got := resp.Header().Get("Content-Type"); got != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Fatalf("expected xlsx content type, got %q", got)
	}
	// XLSX is a zip container.
	if !bytes.HasPrefix(resp.Body.Bytes(), []byte("PK")) {
		t.Fatal("expected XLSX payload")
	}
}

func TestStatementEndpointUnknownFormat(t *testing.T) {
	handler := newTestHandler(t)
	body := `{"vehicle":"car","dates":[]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/congestions/tax/statement?format=csv", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestBuildStatementPDFWithoutVehicle(t *testing.T) {
	statement := application.TaxStatement{
		Total:       0,
		GeneratedAt: time.Date(2013, time.February, 8, 12, 0, 0, 0, time.UTC),
	}
	payload, err := BuildStatementPDF(statement)
	if err != nil {
		t.Fatalf("build pdf: %v", err)
	}
	if len(payload) == 0 {
		t.Fatal("expected pdf bytes")
	}
}
