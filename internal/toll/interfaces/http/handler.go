package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"congestion-cloud/internal/toll/application"
)

// entryLayout is the wire format for entry timestamps.
const entryLayout = "2006-01-02 15:04:05"

// Handler provides the congestion tax HTTP endpoints.
type Handler struct {
	service *application.TaxService
}

// NewHandler constructs a handler.
func NewHandler(service *application.TaxService) (*Handler, error) {
	if service == nil {
		return nil, errors.New("tax handler: nil service")
	}
	return &Handler{service: service}, nil
}

// ServeHTTP handles /api/v1/congestions/tax and subroutes.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	switch r.URL.Path {
	case "/api/v1/congestions/tax":
		h.handleCalculate(w, r)
	case "/api/v1/congestions/tax/details":
		h.handleDetails(w, r)
	case "/api/v1/congestions/tax/statement":
		h.handleStatement(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

type taxRequestBody struct {
	Vehicle *string  `json:"vehicle"`
	Dates   []string `json:"dates"`
}

type dayStatementResponse struct {
	Day     string `json:"day"`
	Amount  int    `json:"amount"`
	Entries int    `json:"entries"`
}

type statementResponse struct {
	Vehicle     *string                `json:"vehicle"`
	Total       int                    `json:"total"`
	Days        []dayStatementResponse `json:"days"`
	GeneratedAt time.Time              `json:"generated_at"`
}

// decodeRequest parses and validates the request body. All timestamps must
// parse before any computation happens, so a bad request never produces a
// partial result.
func decodeRequest(r *http.Request) (application.TaxRequest, error) {
	var body taxRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return application.TaxRequest{}, errors.New("invalid json body")
	}
	entries := make([]time.Time, 0, len(body.Dates))
	for _, raw := range body.Dates {
		parsed, err := time.Parse(entryLayout, raw)
		if err != nil {
			return application.TaxRequest{}, fmt.Errorf("invalid date %q, expected yyyy-MM-dd HH:mm:ss", raw)
		}
		entries = append(entries, parsed)
	}
	return application.TaxRequest{Vehicle: body.Vehicle, Entries: entries}, nil
}

func (h *Handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	request, err := decodeRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	total := h.service.Calculate(r.Context(), request)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(total)
}

func (h *Handler) handleDetails(w http.ResponseWriter, r *http.Request) {
	request, err := decodeRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	statement := h.service.Statement(r.Context(), request)

	response := statementResponse{
		Vehicle:     statement.Vehicle,
		Total:       statement.Total,
		Days:        make([]dayStatementResponse, 0, len(statement.Days)),
		GeneratedAt: statement.GeneratedAt,
	}
	for _, day := range statement.Days {
		response.Days = append(response.Days, dayStatementResponse{
			Day:     day.Day,
			Amount:  day.Amount,
			Entries: day.Entries,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response)
}
