package toll

import (
	"errors"
	"sort"
	"time"
)

// chargingWindow is the span within which only the highest single fee counts.
const chargingWindow = 60 * time.Minute

// DayCharge is the computed charge for one calendar day.
type DayCharge struct {
	Day     DayKey
	Amount  int
	Entries int
}

// Calculator computes congestion charges against an immutable rule set.
// It holds no per-request state and is safe for concurrent use.
type Calculator struct {
	schedule *FeeSchedule
	calendar *TollFreeCalendar
	vehicles *TollFreeVehicles
	dailyCap int
}

// NewCalculator constructs a calculator.
func NewCalculator(schedule *FeeSchedule, calendar *TollFreeCalendar, vehicles *TollFreeVehicles, dailyCap int) (*Calculator, error) {
	if schedule == nil {
		return nil, errors.New("toll calculator: nil fee schedule")
	}
	if calendar == nil {
		return nil, errors.New("toll calculator: nil calendar")
	}
	if vehicles == nil {
		return nil, errors.New("toll calculator: nil vehicle set")
	}
	if dailyCap <= 0 {
		return nil, ErrInvalidDailyCap
	}
	return &Calculator{
		schedule: schedule,
		calendar: calendar,
		vehicles: vehicles,
		dailyCap: dailyCap,
	}, nil
}

// DailyCap returns the per-day charge ceiling.
func (c *Calculator) DailyCap() int { return c.dailyCap }

// TollFee returns the charge for a single city entry.
func (c *Calculator) TollFee(t time.Time, vehicle *string) int {
	if c.calendar.IsTollFreeDate(t) || c.vehicles.IsTollFreeVehicle(vehicle) {
		return 0
	}
	return c.schedule.FeeAt(t)
}

// DayTax charges one calendar day of entries, sorted ascending. Entries are
// grouped into 60-minute windows anchored at their first entry; the window
// boundary instant itself still belongs to the window. Only the highest fee
// per window is billed, and the day total is capped.
func (c *Calculator) DayTax(vehicle *string, entries []time.Time) int {
	if len(entries) == 0 {
		return 0
	}
	windowEnd := entries[0].Add(chargingWindow + time.Nanosecond)
	windowMax := 0
	total := 0
	for i, entry := range entries {
		if i > 0 && !entry.Before(windowEnd) {
			total += windowMax
			windowMax = 0
			windowEnd = entry.Add(chargingWindow + time.Nanosecond)
		}
		if fee := c.TollFee(entry, vehicle); fee > windowMax {
			windowMax = fee
		}
	}
	total += windowMax
	if total > c.dailyCap {
		total = c.dailyCap
	}
	return total
}

// DayCharges sorts the entries, groups them by calendar day in ascending
// order, and charges each day. An empty entry list yields no charges.
func (c *Calculator) DayCharges(vehicle *string, entries []time.Time) []DayCharge {
	if len(entries) == 0 {
		return nil
	}
	sorted := make([]time.Time, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	var order []DayKey
	groups := make(map[DayKey][]time.Time, 1)
	for _, entry := range sorted {
		key := NewDayKey(entry)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], entry)
	}

	charges := make([]DayCharge, 0, len(order))
	for _, key := range order {
		day := groups[key]
		charges = append(charges, DayCharge{
			Day:     key,
			Amount:  c.DayTax(vehicle, day),
			Entries: len(day),
		})
	}
	return charges
}

// TotalTax charges the whole request: the sum of all day charges.
func (c *Calculator) TotalTax(vehicle *string, entries []time.Time) int {
	total := 0
	for _, charge := range c.DayCharges(vehicle, entries) {
		total += charge.Amount
	}
	return total
}
