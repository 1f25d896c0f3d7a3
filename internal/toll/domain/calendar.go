package toll

import "time"

// TollFreeCalendar classifies dates that are fully exempt from charging:
// weekends, the free month, configured holidays and the day before each
// holiday, and every year other than the operative one. Built once at startup
// and shared read-only across requests.
type TollFreeCalendar struct {
	year      int
	freeMonth time.Month
	days      map[DayKey]struct{}
}

// NewTollFreeCalendar derives the calendar from the raw holiday dates.
func NewTollFreeCalendar(year int, freeMonth time.Month, holidays []time.Time) (*TollFreeCalendar, error) {
	if year <= 0 {
		return nil, ErrInvalidYear
	}
	if freeMonth < time.January || freeMonth > time.December {
		return nil, ErrInvalidMonth
	}
	days := make(map[DayKey]struct{}, 2*len(holidays))
	for _, holiday := range holidays {
		if holiday.IsZero() {
			return nil, ErrZeroHoliday
		}
		days[NewDayKey(holiday)] = struct{}{}
		days[NewDayKey(holiday.AddDate(0, 0, -1))] = struct{}{}
	}
	return &TollFreeCalendar{year: year, freeMonth: freeMonth, days: days}, nil
}

// Year returns the operative year.
func (c *TollFreeCalendar) Year() int { return c.year }

// IsTollFreeDate reports whether no charge applies on the day of t.
// Years other than the operative one are always exempt; the rule set is
// defined for a single year only.
func (c *TollFreeCalendar) IsTollFreeDate(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return true
	}
	if t.Year() != c.year {
		return true
	}
	if t.Month() == c.freeMonth {
		return true
	}
	_, ok := c.days[NewDayKey(t)]
	return ok
}
