package toll

import "errors"

var (
	// ErrInvalidSlab signals a fee slab with out-of-range times or a negative amount.
	ErrInvalidSlab = errors.New("toll: invalid fee slab")
	// ErrEmptySchedule signals a schedule with no slabs at all.
	ErrEmptySchedule = errors.New("toll: empty fee schedule")
	// ErrInvalidYear signals a non-positive operative year.
	ErrInvalidYear = errors.New("toll: invalid operative year")
	// ErrInvalidMonth signals a free month outside January..December.
	ErrInvalidMonth = errors.New("toll: invalid free month")
	// ErrInvalidDailyCap signals a non-positive daily cap.
	ErrInvalidDailyCap = errors.New("toll: invalid daily cap")
	// ErrZeroHoliday signals a zero-value holiday date.
	ErrZeroHoliday = errors.New("toll: zero holiday date")
)
