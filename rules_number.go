package fluentmasker

import (
	"math"
	"unsafe"
)

// numberRule applies fn to present values; nil passes through.
type numberRule[N Number] struct {
	fn func(n N) N
}

func (r *numberRule[N]) Apply(value *N) (*N, error) {
	if value == nil {
		return nil, nil
	}
	out := r.fn(*value)
	return &out, nil
}

// intKind describes N when it is an integer type. Integer rules work in
// int64 or uint64 and never leave N's range.
type intKind struct {
	integer bool
	signed  bool
	lo, hi  int64
	uhi     uint64
}

func intKindOf[N Number]() intKind {
	half := 0.5
	if N(half) != 0 {
		return intKind{}
	}
	var zero N
	bits := uint(unsafe.Sizeof(zero)) * 8
	if zero-1 < 0 {
		hi := int64(1)<<(bits-1) - 1
		return intKind{integer: true, signed: true, lo: -hi - 1, hi: hi}
	}
	return intKind{integer: true, uhi: ^uint64(0) >> (64 - bits)}
}

// roundSigned rounds n to the nearest multiple of step, halves away from
// zero. A multiple outside [lo, hi] gives way to the one toward zero.
func (k intKind) roundSigned(n, step int64) int64 {
	down, r := n/step*step, n%step
	switch {
	case r > 0 && r >= step-r && down <= k.hi-step:
		return down + step
	case r < 0 && -r >= step+r && down >= k.lo+step:
		return down - step
	}
	return down
}

func (k intKind) roundUnsigned(n, step uint64) uint64 {
	down, r := n/step*step, n%step
	if r >= step-r && down <= k.uhi-step {
		return down + step
	}
	return down
}

// floorSigned returns the largest multiple of step not above n, or the
// smallest representable one when that would underflow.
func (k intKind) floorSigned(n, step int64) int64 {
	down := n / step * step
	if n%step < 0 && down >= k.lo+step {
		return down - step
	}
	return down
}

// addSigned adds the rounded delta to n, saturating at N's bounds.
func (k intKind) addSigned(n int64, delta float64) int64 {
	d := math.Round(delta)
	if d >= 0 {
		room := uint64(k.hi) - uint64(n)
		if d >= float64(room) {
			return k.hi
		}
		return int64(uint64(n) + uint64(d))
	}
	room := uint64(n) - uint64(k.lo)
	if -d >= float64(room) {
		return k.lo
	}
	return int64(uint64(n) - uint64(-d))
}

func (k intKind) addUnsigned(n uint64, delta float64) uint64 {
	d := math.Round(delta)
	if d >= 0 {
		room := k.uhi - n
		if d >= float64(room) {
			return k.uhi
		}
		return n + uint64(d)
	}
	if -d >= float64(n) {
		return 0
	}
	return n - uint64(-d)
}

// Round rounds values to the nearest multiple of step.
func Round[N Number](step N) (Rule[N], error) {
	if step <= 0 {
		return nil, invalidArg("Round", "step", "must be > 0, got %v", step)
	}
	k := intKindOf[N]()
	return &numberRule[N]{fn: func(n N) N {
		switch {
		case k.signed:
			return N(k.roundSigned(int64(n), int64(step)))
		case k.integer:
			return N(k.roundUnsigned(uint64(n), uint64(step)))
		}
		return N(math.Round(float64(n)/float64(step)) * float64(step))
	}}, nil
}

// Bucket replaces values with the lower bound of their size-wide bucket:
// Bucket(10) maps 37 to 30.
func Bucket[N Number](size N) (Rule[N], error) {
	if size <= 0 {
		return nil, invalidArg("Bucket", "size", "must be > 0, got %v", size)
	}
	k := intKindOf[N]()
	return &numberRule[N]{fn: func(n N) N {
		switch {
		case k.signed:
			return N(k.floorSigned(int64(n), int64(size)))
		case k.integer:
			return n / size * size
		}
		return N(math.Floor(float64(n)/float64(size)) * float64(size))
	}}, nil
}

// Clamp limits values to [lo, hi].
func Clamp[N Number](lo, hi N) (Rule[N], error) {
	if lo > hi {
		return nil, invalidArg("Clamp", "lo", "must be <= hi, got %v > %v", lo, hi)
	}
	return &numberRule[N]{fn: func(n N) N {
		return min(max(n, lo), hi)
	}}, nil
}

// ConstantNumber replaces every present value with v.
func ConstantNumber[N Number](v N) Rule[N] {
	return constantRule[N]{value: v}
}

// NullOutNumber discards the value entirely.
func NullOutNumber[N Number]() Rule[N] {
	return nullRule[N]{}
}

// noiseRule perturbs values by a bounded relative amount. It is seed-aware.
type noiseRule[N Number] struct {
	percentage float64
	seed       SeedProvider[N]
	kind       intKind
}

// Noise adds uniform noise of up to ±percentage of the value. percentage
// must lie in [0, 1].
func Noise[N Number](percentage float64) (Rule[N], error) {
	if math.IsNaN(percentage) || percentage < 0 || percentage > 1 {
		return nil, invalidArg("Noise", "percentage", "must be within [0, 1], got %v", percentage)
	}
	return &noiseRule[N]{percentage: percentage, kind: intKindOf[N]()}, nil
}

func (r *noiseRule[N]) WithSeed(provider SeedProvider[N]) Rule[N] {
	return &noiseRule[N]{percentage: r.percentage, seed: provider, kind: r.kind}
}

func (r *noiseRule[N]) Apply(value *N) (*N, error) {
	if value == nil {
		return nil, nil
	}
	rng := randomFor(r.seed, *value)
	f := float64(*value)
	delta := f * r.percentage * (2*rng.Float64() - 1)
	var out N
	switch {
	case r.kind.signed:
		out = N(r.kind.addSigned(int64(*value), delta))
	case r.kind.integer:
		out = N(r.kind.addUnsigned(uint64(*value), delta))
	default:
		out = N(f + delta)
	}
	return &out, nil
}
