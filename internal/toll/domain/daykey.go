package toll

import "time"

// DayKey identifies the calendar day of a timestamp.
type DayKey string

// NewDayKey builds the day key for a timestamp.
func NewDayKey(t time.Time) DayKey {
	return DayKey(t.Format("20060102"))
}

// String returns the raw key.
func (k DayKey) String() string { return string(k) }

// Date renders the key as yyyy-mm-dd for presentation.
func (k DayKey) Date() string {
	t, err := time.Parse("20060102", string(k))
	if err != nil {
		return string(k)
	}
	return t.Format("2006-01-02")
}
