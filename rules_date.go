package fluentmasker

import (
	"time"
)

// DateUnit selects the precision kept by TruncateDate.
type DateUnit string

const (
	DateYear  DateUnit = "year"
	DateMonth DateUnit = "month"
	DateDay   DateUnit = "day"
	DateHour  DateUnit = "hour"
)

// dateRule applies fn to present values; nil passes through.
type dateRule struct {
	fn func(t time.Time) time.Time
}

func (r *dateRule) Apply(value *time.Time) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	out := r.fn(*value)
	return &out, nil
}

// TruncateDate drops precision below unit: TruncateDate(DateYear) maps
// 1984-07-14 to 1984-01-01. The location is preserved.
func TruncateDate(unit DateUnit) (Rule[time.Time], error) {
	var fn func(t time.Time) time.Time
	switch unit {
	case DateYear:
		fn = func(t time.Time) time.Time {
			return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
		}
	case DateMonth:
		fn = func(t time.Time) time.Time {
			return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
		}
	case DateDay:
		fn = func(t time.Time) time.Time {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		}
	case DateHour:
		fn = func(t time.Time) time.Time {
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
		}
	default:
		return nil, invalidArg("TruncateDate", "unit", "unknown unit %q", unit)
	}
	return &dateRule{fn: fn}, nil
}

// ConstantDate replaces every present value with t.
func ConstantDate(t time.Time) Rule[time.Time] {
	return constantRule[time.Time]{value: t}
}

// NullOutDate discards the value entirely.
func NullOutDate() Rule[time.Time] {
	return nullRule[time.Time]{}
}

// shiftRule moves dates by a random number of days. It is seed-aware.
type shiftRule struct {
	maxDays int
	seed    SeedProvider[time.Time]
}

// ShiftDate moves each value by a random whole number of days in
// [-maxDays, maxDays].
func ShiftDate(maxDays int) (Rule[time.Time], error) {
	if maxDays < 0 {
		return nil, invalidArg("ShiftDate", "maxDays", "must be >= 0, got %d", maxDays)
	}
	return &shiftRule{maxDays: maxDays}, nil
}

func (r *shiftRule) WithSeed(provider SeedProvider[time.Time]) Rule[time.Time] {
	return &shiftRule{maxDays: r.maxDays, seed: provider}
}

func (r *shiftRule) Apply(value *time.Time) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	if r.maxDays == 0 {
		out := *value
		return &out, nil
	}
	rng := randomFor(r.seed, *value)
	days := rng.IntN(2*r.maxDays+1) - r.maxDays
	out := value.AddDate(0, 0, days)
	return &out, nil
}
