package toll

import "time"

const secondsPerDay = 24 * 60 * 60

// FeeSlab is one time-of-day charging interval. Times are seconds of day so
// boundary comparisons stay exact integer arithmetic on every platform.
type FeeSlab struct {
	startSec int
	endSec   int
	amount   int
}

// NewFeeSlab builds a slab from start/end seconds of day and a fee amount.
func NewFeeSlab(startSec, endSec, amount int) (FeeSlab, error) {
	if startSec < 0 || endSec >= secondsPerDay || startSec > endSec {
		return FeeSlab{}, ErrInvalidSlab
	}
	if amount < 0 {
		return FeeSlab{}, ErrInvalidSlab
	}
	return FeeSlab{startSec: startSec, endSec: endSec, amount: amount}, nil
}

// Amount returns the slab fee.
func (s FeeSlab) Amount() int { return s.amount }

// contains reports whether a second of day falls in the slab. Both boundaries
// are widened by one minute and then tested with strict inequalities, so the
// configured endpoints themselves behave inclusively.
func (s FeeSlab) contains(sec int) bool {
	return sec > s.startSec-60 && sec < s.endSec+60
}

// FeeSchedule is the ordered, immutable set of fee slabs. Slabs may leave gaps
// (uncovered times cost 0) and may overlap; the first match in configured
// order wins.
type FeeSchedule struct {
	slabs []FeeSlab
}

// NewFeeSchedule builds a schedule from slabs in configured order.
func NewFeeSchedule(slabs []FeeSlab) (*FeeSchedule, error) {
	if len(slabs) == 0 {
		return nil, ErrEmptySchedule
	}
	owned := make([]FeeSlab, len(slabs))
	copy(owned, slabs)
	return &FeeSchedule{slabs: owned}, nil
}

// FeeAt returns the fee for the time of day of t, or 0 when no slab matches.
func (s *FeeSchedule) FeeAt(t time.Time) int {
	sec := secondOfDay(t)
	for _, slab := range s.slabs {
		if slab.contains(sec) {
			return slab.amount
		}
	}
	return 0
}

func secondOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}
