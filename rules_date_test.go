package fluentmasker

import (
	"errors"
	"testing"
	"time"
)

func applyDate(t *testing.T, r Rule[time.Time], in time.Time) time.Time {
	t.Helper()
	out, err := r.Apply(&in)
	if err != nil {
		t.Fatalf("Apply(%v) error: %v", in, err)
	}
	if out == nil {
		t.Fatalf("Apply(%v) = nil", in)
	}
	return *out
}

func TestTruncateDate(t *testing.T) {
	cet := time.FixedZone("CET", 3600)
	in := time.Date(1984, time.July, 14, 15, 42, 7, 99, cet)

	tests := []struct {
		unit DateUnit
		want time.Time
	}{
		{DateYear, time.Date(1984, time.January, 1, 0, 0, 0, 0, cet)},
		{DateMonth, time.Date(1984, time.July, 1, 0, 0, 0, 0, cet)},
		{DateDay, time.Date(1984, time.July, 14, 0, 0, 0, 0, cet)},
		{DateHour, time.Date(1984, time.July, 14, 15, 0, 0, 0, cet)},
	}

	for _, tt := range tests {
		t.Run(string(tt.unit), func(t *testing.T) {
			got := applyDate(t, must(TruncateDate(tt.unit)), in)
			if !got.Equal(tt.want) {
				t.Errorf("Apply() = %v, want %v", got, tt.want)
			}
			if got.Location() != cet {
				t.Errorf("Location() = %v, want %v", got.Location(), cet)
			}
		})
	}

	if _, err := TruncateDate("week"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("TruncateDate(week) error = %v, want ErrInvalidArgument", err)
	}
}

func TestShiftDate(t *testing.T) {
	in := time.Date(2020, time.March, 1, 12, 0, 0, 0, time.UTC)

	r := must(ShiftDate(10))
	for i := 0; i < 100; i++ {
		got := applyDate(t, r, in)
		diff := got.Sub(in)
		if diff < -10*24*time.Hour || diff > 10*24*time.Hour {
			t.Fatalf("ShiftDate(10) moved %v by %v", in, diff)
		}
		if got.Hour() != 12 {
			t.Fatalf("ShiftDate should move whole days, got %v", got)
		}
	}

	if got := applyDate(t, must(ShiftDate(0)), in); !got.Equal(in) {
		t.Errorf("ShiftDate(0).Apply() = %v, want %v", got, in)
	}

	if _, err := ShiftDate(-1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("ShiftDate(-1) error = %v, want ErrInvalidArgument", err)
	}
}

func TestShiftDate_Seeded(t *testing.T) {
	r := must(ShiftDate(365)).(SeedAware[time.Time]).WithSeed(SeedValue[time.Time](99))
	in := time.Date(1990, time.May, 5, 0, 0, 0, 0, time.UTC)

	first := applyDate(t, r, in)
	for i := 0; i < 5; i++ {
		if got := applyDate(t, r, in); !got.Equal(first) {
			t.Fatalf("seeded ShiftDate not reproducible: %v vs %v", got, first)
		}
	}
}

func TestDateRules_Null(t *testing.T) {
	rules := []Rule[time.Time]{
		must(TruncateDate(DateDay)),
		must(ShiftDate(3)),
		ConstantDate(time.Unix(0, 0)),
		NullOutDate(),
	}
	for i, r := range rules {
		out, err := r.Apply(nil)
		if err != nil || out != nil {
			t.Errorf("rule %d: Apply(nil) = %v, %v; want nil, nil", i, out, err)
		}
	}

	in := time.Now()
	out, err := NullOutDate().Apply(&in)
	if err != nil || out != nil {
		t.Errorf("NullOutDate().Apply() = %v, %v; want nil, nil", out, err)
	}
}
