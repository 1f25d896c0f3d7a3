package application

import (
	"context"
	"errors"
	"time"

	"congestion-cloud/internal/observability/metrics"
	toll "congestion-cloud/internal/toll/domain"
)

// TaxRequest is one calculation request: an optional vehicle class and the
// raw entry timestamps in any order. A nil Vehicle means the class was absent
// from the request, which is not the same as an empty class.
type TaxRequest struct {
	Vehicle *string
	Entries []time.Time
}

// DayStatement is the charge for one calendar day of a statement.
type DayStatement struct {
	Day     string
	Amount  int
	Entries int
}

// TaxStatement is the full per-day breakdown of a calculation.
type TaxStatement struct {
	Vehicle     *string
	Total       int
	Days        []DayStatement
	GeneratedAt time.Time
}

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock uses time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// TaxService handles the tax calculation use cases. All rule state lives in
// the calculator and is read-only, so one service serves concurrent requests.
type TaxService struct {
	calc  *toll.Calculator
	clock Clock
}

// NewTaxService constructs the service.
func NewTaxService(calc *toll.Calculator, clock Clock) (*TaxService, error) {
	if calc == nil {
		return nil, errors.New("tax service: nil calculator")
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &TaxService{calc: calc, clock: clock}, nil
}

// Calculate returns the total congestion tax for the request. An empty entry
// list is a valid request and totals 0.
func (s *TaxService) Calculate(ctx context.Context, request TaxRequest) int {
	return s.Statement(ctx, request).Total
}

// Statement computes the total together with its per-day breakdown, days
// ascending.
func (s *TaxService) Statement(_ context.Context, request TaxRequest) TaxStatement {
	start := s.clock.Now()

	charges := s.calc.DayCharges(request.Vehicle, request.Entries)
	statement := TaxStatement{
		Vehicle:     request.Vehicle,
		Days:        make([]DayStatement, 0, len(charges)),
		GeneratedAt: start,
	}
	for _, charge := range charges {
		statement.Total += charge.Amount
		statement.Days = append(statement.Days, DayStatement{
			Day:     charge.Day.Date(),
			Amount:  charge.Amount,
			Entries: charge.Entries,
		})
	}

	metrics.ObserveCalculation("", len(request.Entries), s.clock.Now().Sub(start))
	return statement
}
