package fluentmasker

import (
	"crypto/rand"
	"encoding/binary"
	mrand "math/rand/v2"
)

// Rule transforms exactly one value. A nil pointer represents an absent
// value; rules return nil for nil input unless they always produce a
// constant.
//
// Rules are immutable after construction and must be safe for concurrent use.
type Rule[V any] interface {
	Apply(value *V) (*V, error)
}

// RuleFunc adapts an ordinary function to the Rule interface.
type RuleFunc[V any] func(value *V) (*V, error)

// Apply calls f(value).
func (f RuleFunc[V]) Apply(value *V) (*V, error) {
	return f(value)
}

// SeedProvider derives a deterministic seed from the value being masked.
type SeedProvider[V any] func(value V) int64

// SeedValue returns a provider that always yields seed.
func SeedValue[V any](seed int64) SeedProvider[V] {
	return func(V) int64 { return seed }
}

// SeedAware is implemented by rules whose output can be made reproducible.
// WithSeed returns a copy of the rule bound to provider; the receiver is
// left untouched.
type SeedAware[V any] interface {
	Rule[V]
	WithSeed(provider SeedProvider[V]) Rule[V]
}

// Ptr returns a pointer to v. It is a convenience for calling Apply directly.
func Ptr[V any](v V) *V {
	return &v
}

// Number is the constraint for the numeric rule category.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Chain is an ordered, immutable sequence of rules applied to one property.
// A Chain is itself a Rule.
type Chain[V any] struct {
	rules []Rule[V]
}

// NewChain returns a chain applying rules in the given order.
func NewChain[V any](rules ...Rule[V]) Chain[V] {
	return Chain[V]{rules: append([]Rule[V](nil), rules...)}
}

// Len returns the number of rules in the chain.
func (c Chain[V]) Len() int {
	return len(c.rules)
}

// Rules returns a copy of the chain's rules.
func (c Chain[V]) Rules() []Rule[V] {
	return append([]Rule[V](nil), c.rules...)
}

// Apply folds value through every rule in order.
func (c Chain[V]) Apply(value *V) (*V, error) {
	out, _, err := c.apply(value)
	return out, err
}

// apply folds value through the chain and reports the failing step.
func (c Chain[V]) apply(value *V) (*V, int, error) {
	current := value
	for i, r := range c.rules {
		next, err := r.Apply(current)
		if err != nil {
			return nil, i, err
		}
		current = next
	}
	return current, -1, nil
}

// append returns a new chain with rules added after the existing ones.
func (c Chain[V]) append(rules ...Rule[V]) Chain[V] {
	out := make([]Rule[V], 0, len(c.rules)+len(rules))
	out = append(out, c.rules...)
	out = append(out, rules...)
	return Chain[V]{rules: out}
}

// cryptoSource is a math/rand/v2 source backed by crypto/rand.
type cryptoSource struct{}

func (cryptoSource) Uint64() uint64 {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return binary.LittleEndian.Uint64(b[:])
}

// randomFor returns a reproducible generator when seed is set and a
// cryptographically strong one otherwise.
func randomFor[V any](seed SeedProvider[V], value V) *mrand.Rand {
	if seed == nil {
		return mrand.New(cryptoSource{})
	}
	s := uint64(seed(value))
	return mrand.New(mrand.NewPCG(s, s^0x9e3779b97f4a7c15))
}
