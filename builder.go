package fluentmasker

import (
	"time"
)

// chainBuilder accumulates rules for one property. The first construction
// error is sticky: later steps are skipped and Build reports it.
type chainBuilder[V any] struct {
	rules   []Rule[V]
	pending SeedProvider[V]
	err     error
}

// add appends r, binding the pending seed if r is seed-aware.
func (b *chainBuilder[V]) add(r Rule[V], err error) {
	if b.err != nil {
		return
	}
	if err != nil {
		b.err = err
		return
	}
	if b.pending != nil {
		if sa, ok := r.(SeedAware[V]); ok {
			r = sa.WithSeed(b.pending)
			b.pending = nil
		}
	}
	b.rules = append(b.rules, r)
}

// seed sets the one-shot pending seed.
//
// A seed that no seed-aware rule consumes before Build is dropped without
// error. Callers relying on reproducible output should check HasPendingSeed
// before building.
func (b *chainBuilder[V]) seed(p SeedProvider[V]) {
	if b.err != nil {
		return
	}
	b.pending = p
}

func (b *chainBuilder[V]) build() (Chain[V], error) {
	if b.err != nil {
		return Chain[V]{}, b.err
	}
	return NewChain(b.rules...), nil
}

// StringBuilder declares an ordered chain of string rules fluently.
//
//	chain, err := fluentmasker.NewStringBuilder().
//	    MaskStart(2, '*').
//	    KeepLast(4, '*').
//	    Build()
type StringBuilder struct {
	b chainBuilder[string]
}

// NewStringBuilder returns an empty builder.
func NewStringBuilder() *StringBuilder {
	return &StringBuilder{}
}

// MaskStart appends a MaskStart rule.
func (s *StringBuilder) MaskStart(count int, maskChar rune) *StringBuilder {
	s.b.add(MaskStart(count, maskChar))
	return s
}

// MaskEnd appends a MaskEnd rule.
func (s *StringBuilder) MaskEnd(count int, maskChar rune) *StringBuilder {
	s.b.add(MaskEnd(count, maskChar))
	return s
}

// MaskMiddle appends a MaskMiddle rule.
func (s *StringBuilder) MaskMiddle(keepFirst, keepLast int, maskChar rune) *StringBuilder {
	s.b.add(MaskMiddle(keepFirst, keepLast, maskChar))
	return s
}

// KeepFirst appends a KeepFirst rule.
func (s *StringBuilder) KeepFirst(count int, maskChar rune) *StringBuilder {
	s.b.add(KeepFirst(count, maskChar))
	return s
}

// KeepLast appends a KeepLast rule.
func (s *StringBuilder) KeepLast(count int, maskChar rune) *StringBuilder {
	s.b.add(KeepLast(count, maskChar))
	return s
}

// MaskRange appends a MaskRange rule.
func (s *StringBuilder) MaskRange(start, length int, maskChar rune) *StringBuilder {
	s.b.add(MaskRange(start, length, maskChar))
	return s
}

// NullOut appends a rule that discards the value.
func (s *StringBuilder) NullOut() *StringBuilder {
	s.b.add(NullOut(), nil)
	return s
}

// Redact appends a rule replacing every present value with text.
func (s *StringBuilder) Redact(text string) *StringBuilder {
	s.b.add(Redact(text), nil)
	return s
}

// Truncate appends a Truncate rule.
func (s *StringBuilder) Truncate(maxLength int, suffix string) *StringBuilder {
	s.b.add(Truncate(maxLength, suffix))
	return s
}

// TemplateMask appends a TemplateMask rule.
func (s *StringBuilder) TemplateMask(template string) *StringBuilder {
	s.b.add(TemplateMask(template))
	return s
}

// RegexReplace appends a RegexReplace rule.
func (s *StringBuilder) RegexReplace(pattern, replacement string, options RegexOptions) *StringBuilder {
	s.b.add(RegexReplace(pattern, replacement, options))
	return s
}

// WhitelistChars appends a WhitelistChars rule.
func (s *StringBuilder) WhitelistChars(allowed string, replaceWith rune) *StringBuilder {
	s.b.add(WhitelistChars(allowed, replaceWith))
	return s
}

// MaskCharClass appends a MaskCharClass rule.
func (s *StringBuilder) MaskCharClass(class CharClass, maskChar rune) *StringBuilder {
	s.b.add(MaskCharClass(class, maskChar))
	return s
}

// FormatPreserving appends a FormatPreserving rule.
func (s *StringBuilder) FormatPreserving(keepLast int, maskChar rune, preserveSeparators bool) *StringBuilder {
	s.b.add(FormatPreserving(keepLast, maskChar, preserveSeparators))
	return s
}

// Phone appends the phone number mask.
func (s *StringBuilder) Phone() *StringBuilder {
	s.b.add(Phone(), nil)
	return s
}

// Card appends the payment card mask.
func (s *StringBuilder) Card() *StringBuilder {
	s.b.add(Card(), nil)
	return s
}

// IBAN appends the IBAN mask.
func (s *StringBuilder) IBAN() *StringBuilder {
	s.b.add(IBAN(), nil)
	return s
}

// SSN appends the social security number mask.
func (s *StringBuilder) SSN() *StringBuilder {
	s.b.add(SSN(), nil)
	return s
}

// Email appends the email address mask.
func (s *StringBuilder) Email() *StringBuilder {
	s.b.add(Email(), nil)
	return s
}

// IP appends the IP address mask.
func (s *StringBuilder) IP() *StringBuilder {
	s.b.add(IP(), nil)
	return s
}

// UUID appends the UUID mask.
func (s *StringBuilder) UUID() *StringBuilder {
	s.b.add(UUID(), nil)
	return s
}

// Name appends the personal name mask.
func (s *StringBuilder) Name() *StringBuilder {
	s.b.add(Name(), nil)
	return s
}

// Shuffle appends a seed-aware Shuffle rule.
func (s *StringBuilder) Shuffle() *StringBuilder {
	s.b.add(Shuffle(), nil)
	return s
}

// RandomReplace appends a seed-aware RandomReplace rule.
func (s *StringBuilder) RandomReplace(charset string) *StringBuilder {
	s.b.add(RandomReplace(charset))
	return s
}

// Hash appends a seed-aware Hash rule.
func (s *StringBuilder) Hash(algo HashAlgo) *StringBuilder {
	s.b.add(Hash(algo))
	return s
}

// Encrypt appends an Encrypt rule using enc.
func (s *StringBuilder) Encrypt(enc Encryptor) *StringBuilder {
	s.b.add(Encrypt(enc))
	return s
}

// Rule appends a caller-supplied rule.
func (s *StringBuilder) Rule(r Rule[string]) *StringBuilder {
	if r == nil {
		s.b.add(nil, invalidArg("Rule", "r", "must not be nil"))
		return s
	}
	s.b.add(r, nil)
	return s
}

// WithSeed binds provider to the next seed-aware rule appended.
func (s *StringBuilder) WithSeed(provider SeedProvider[string]) *StringBuilder {
	s.b.seed(provider)
	return s
}

// WithSeedValue binds a constant seed to the next seed-aware rule appended.
func (s *StringBuilder) WithSeedValue(seed int64) *StringBuilder {
	return s.WithSeed(SeedValue[string](seed))
}

// HasPendingSeed reports whether a seed is waiting for a seed-aware rule.
func (s *StringBuilder) HasPendingSeed() bool {
	return s.b.pending != nil
}

// Len returns the number of rules appended so far.
func (s *StringBuilder) Len() int {
	return len(s.b.rules)
}

// Build returns the accumulated chain or the first construction error.
func (s *StringBuilder) Build() (Chain[string], error) {
	return s.b.build()
}

// NumberBuilder declares an ordered chain of numeric rules fluently.
type NumberBuilder[N Number] struct {
	b chainBuilder[N]
}

// NewNumberBuilder returns an empty builder.
func NewNumberBuilder[N Number]() *NumberBuilder[N] {
	return &NumberBuilder[N]{}
}

// Round appends a Round rule.
func (n *NumberBuilder[N]) Round(step N) *NumberBuilder[N] {
	n.b.add(Round(step))
	return n
}

// Bucket appends a Bucket rule.
func (n *NumberBuilder[N]) Bucket(size N) *NumberBuilder[N] {
	n.b.add(Bucket(size))
	return n
}

// Clamp appends a Clamp rule.
func (n *NumberBuilder[N]) Clamp(lo, hi N) *NumberBuilder[N] {
	n.b.add(Clamp(lo, hi))
	return n
}

// Noise appends a seed-aware Noise rule.
func (n *NumberBuilder[N]) Noise(percentage float64) *NumberBuilder[N] {
	n.b.add(Noise[N](percentage))
	return n
}

// Constant appends a rule replacing every present value with v.
func (n *NumberBuilder[N]) Constant(v N) *NumberBuilder[N] {
	n.b.add(ConstantNumber(v), nil)
	return n
}

// NullOut appends a rule that discards the value.
func (n *NumberBuilder[N]) NullOut() *NumberBuilder[N] {
	n.b.add(NullOutNumber[N](), nil)
	return n
}

// Rule appends a caller-supplied rule.
func (n *NumberBuilder[N]) Rule(r Rule[N]) *NumberBuilder[N] {
	if r == nil {
		n.b.add(nil, invalidArg("Rule", "r", "must not be nil"))
		return n
	}
	n.b.add(r, nil)
	return n
}

// WithSeed binds provider to the next seed-aware rule appended.
func (n *NumberBuilder[N]) WithSeed(provider SeedProvider[N]) *NumberBuilder[N] {
	n.b.seed(provider)
	return n
}

// WithSeedValue binds a constant seed to the next seed-aware rule appended.
func (n *NumberBuilder[N]) WithSeedValue(seed int64) *NumberBuilder[N] {
	return n.WithSeed(SeedValue[N](seed))
}

// HasPendingSeed reports whether a seed is waiting for a seed-aware rule.
func (n *NumberBuilder[N]) HasPendingSeed() bool {
	return n.b.pending != nil
}

// Len returns the number of rules appended so far.
func (n *NumberBuilder[N]) Len() int {
	return len(n.b.rules)
}

// Build returns the accumulated chain or the first construction error.
func (n *NumberBuilder[N]) Build() (Chain[N], error) {
	return n.b.build()
}

// DateBuilder declares an ordered chain of time.Time rules fluently.
type DateBuilder struct {
	b chainBuilder[time.Time]
}

// NewDateBuilder returns an empty builder.
func NewDateBuilder() *DateBuilder {
	return &DateBuilder{}
}

// Truncate appends a TruncateDate rule.
func (d *DateBuilder) Truncate(unit DateUnit) *DateBuilder {
	d.b.add(TruncateDate(unit))
	return d
}

// Shift appends a seed-aware ShiftDate rule.
func (d *DateBuilder) Shift(maxDays int) *DateBuilder {
	d.b.add(ShiftDate(maxDays))
	return d
}

// Constant appends a rule replacing every present value with t.
func (d *DateBuilder) Constant(t time.Time) *DateBuilder {
	d.b.add(ConstantDate(t), nil)
	return d
}

// NullOut appends a rule that discards the value.
func (d *DateBuilder) NullOut() *DateBuilder {
	d.b.add(NullOutDate(), nil)
	return d
}

// Rule appends a caller-supplied rule.
func (d *DateBuilder) Rule(r Rule[time.Time]) *DateBuilder {
	if r == nil {
		d.b.add(nil, invalidArg("Rule", "r", "must not be nil"))
		return d
	}
	d.b.add(r, nil)
	return d
}

// WithSeed binds provider to the next seed-aware rule appended.
func (d *DateBuilder) WithSeed(provider SeedProvider[time.Time]) *DateBuilder {
	d.b.seed(provider)
	return d
}

// WithSeedValue binds a constant seed to the next seed-aware rule appended.
func (d *DateBuilder) WithSeedValue(seed int64) *DateBuilder {
	return d.WithSeed(SeedValue[time.Time](seed))
}

// HasPendingSeed reports whether a seed is waiting for a seed-aware rule.
func (d *DateBuilder) HasPendingSeed() bool {
	return d.b.pending != nil
}

// Len returns the number of rules appended so far.
func (d *DateBuilder) Len() int {
	return len(d.b.rules)
}

// Build returns the accumulated chain or the first construction error.
func (d *DateBuilder) Build() (Chain[time.Time], error) {
	return d.b.build()
}
