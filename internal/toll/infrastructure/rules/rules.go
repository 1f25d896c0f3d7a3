// Package rules loads the charging rule set from its configuration sources.
// Rules are read once at startup and turned into immutable domain values.
package rules

import (
	"fmt"
	"time"

	toll "congestion-cloud/internal/toll/domain"
)

const (
	defaultYear      = 2013
	defaultFreeMonth = int(time.July)
	defaultDailyCap  = 60

	// Holidays are configured as dd-MM-yyyy.
	holidayLayout = "02-01-2006"
)

// RuleSet is the fully built, validated rule state shared by all requests.
type RuleSet struct {
	Schedule *toll.FeeSchedule
	Calendar *toll.TollFreeCalendar
	Vehicles *toll.TollFreeVehicles
	DailyCap int
}

// Calculator builds the domain calculator for the rule set.
func (r *RuleSet) Calculator() (*toll.Calculator, error) {
	return toll.NewCalculator(r.Schedule, r.Calendar, r.Vehicles, r.DailyCap)
}

// rawRules is a loaded-but-unvalidated rule set, source independent.
type rawRules struct {
	year      int
	freeMonth int
	dailyCap  int
	slabs     []toll.FeeSlab
	holidays  []time.Time
	vehicles  []string
}

func (r rawRules) build() (*RuleSet, error) {
	schedule, err := toll.NewFeeSchedule(r.slabs)
	if err != nil {
		return nil, fmt.Errorf("toll rules: %w", err)
	}
	calendar, err := toll.NewTollFreeCalendar(r.year, time.Month(r.freeMonth), r.holidays)
	if err != nil {
		return nil, fmt.Errorf("toll rules: %w", err)
	}
	if r.dailyCap <= 0 {
		return nil, fmt.Errorf("toll rules: %w", toll.ErrInvalidDailyCap)
	}
	return &RuleSet{
		Schedule: schedule,
		Calendar: calendar,
		Vehicles: toll.NewTollFreeVehicles(r.vehicles),
		DailyCap: r.dailyCap,
	}, nil
}

func parseHoliday(value string) (time.Time, error) {
	parsed, err := time.Parse(holidayLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("toll rules: parse holiday %q: %w", value, err)
	}
	return parsed, nil
}
