package fluentmasker

import (
	"strings"
	"unicode"
)

// DefaultMaskChar is the conventional masking character.
const DefaultMaskChar = '*'

// stringRule applies fn to non-empty values; nil and "" pass through.
type stringRule struct {
	fn func(s string) (string, error)
}

func (r *stringRule) Apply(value *string) (*string, error) {
	if value == nil || *value == "" {
		return value, nil
	}
	out, err := r.fn(*value)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// runeRule wraps a rune-slice transformation as a string rule.
func runeRule(fn func(r []rune) []rune) Rule[string] {
	return &stringRule{fn: func(s string) (string, error) {
		return string(fn([]rune(s))), nil
	}}
}

// maskSpan replaces r[from:to] with maskChar in place.
func maskSpan(r []rune, from, to int, maskChar rune) []rune {
	from = max(from, 0)
	to = min(to, len(r))
	for i := from; i < to; i++ {
		r[i] = maskChar
	}
	return r
}

// MaskStart masks the first count characters.
func MaskStart(count int, maskChar rune) (Rule[string], error) {
	if count < 0 {
		return nil, invalidArg("MaskStart", "count", "must be >= 0, got %d", count)
	}
	return runeRule(func(r []rune) []rune {
		return maskSpan(r, 0, count, maskChar)
	}), nil
}

// MaskEnd masks the last count characters.
func MaskEnd(count int, maskChar rune) (Rule[string], error) {
	if count < 0 {
		return nil, invalidArg("MaskEnd", "count", "must be >= 0, got %d", count)
	}
	return runeRule(func(r []rune) []rune {
		return maskSpan(r, len(r)-count, len(r), maskChar)
	}), nil
}

// MaskMiddle keeps the first keepFirst and last keepLast characters and masks
// everything between them. Values too short to have a middle are unchanged.
func MaskMiddle(keepFirst, keepLast int, maskChar rune) (Rule[string], error) {
	if keepFirst < 0 {
		return nil, invalidArg("MaskMiddle", "keepFirst", "must be >= 0, got %d", keepFirst)
	}
	if keepLast < 0 {
		return nil, invalidArg("MaskMiddle", "keepLast", "must be >= 0, got %d", keepLast)
	}
	return runeRule(func(r []rune) []rune {
		if keepFirst+keepLast >= len(r) {
			return r
		}
		return maskSpan(r, keepFirst, len(r)-keepLast, maskChar)
	}), nil
}

// KeepFirst keeps the first count characters and masks the rest.
// A count of zero leaves the value unchanged.
func KeepFirst(count int, maskChar rune) (Rule[string], error) {
	if count < 0 {
		return nil, invalidArg("KeepFirst", "count", "must be >= 0, got %d", count)
	}
	return runeRule(func(r []rune) []rune {
		if count == 0 {
			return r
		}
		return maskSpan(r, count, len(r), maskChar)
	}), nil
}

// KeepLast keeps the last count characters and masks the rest.
// A count of zero leaves the value unchanged.
func KeepLast(count int, maskChar rune) (Rule[string], error) {
	if count < 0 {
		return nil, invalidArg("KeepLast", "count", "must be >= 0, got %d", count)
	}
	return runeRule(func(r []rune) []rune {
		if count == 0 {
			return r
		}
		return maskSpan(r, 0, len(r)-count, maskChar)
	}), nil
}

// MaskRange masks length characters starting at start. The range is clamped
// to the value.
func MaskRange(start, length int, maskChar rune) (Rule[string], error) {
	if start < 0 {
		return nil, invalidArg("MaskRange", "start", "must be >= 0, got %d", start)
	}
	if length < 0 {
		return nil, invalidArg("MaskRange", "length", "must be >= 0, got %d", length)
	}
	return runeRule(func(r []rune) []rune {
		if start >= len(r) {
			return r
		}
		return maskSpan(r, start, start+length, maskChar)
	}), nil
}

// nullRule discards any value.
type nullRule[V any] struct{}

func (nullRule[V]) Apply(*V) (*V, error) {
	return nil, nil
}

// NullOut discards the value entirely.
func NullOut() Rule[string] {
	return nullRule[string]{}
}

// constantRule replaces every present value with a constant.
type constantRule[V any] struct {
	value V
}

func (r constantRule[V]) Apply(value *V) (*V, error) {
	if value == nil {
		return nil, nil
	}
	out := r.value
	return &out, nil
}

// Redact replaces every present value, including "", with text.
func Redact(text string) Rule[string] {
	return constantRule[string]{value: text}
}

// Truncate shortens values longer than maxLength characters and appends
// suffix to values that were cut.
func Truncate(maxLength int, suffix string) (Rule[string], error) {
	if maxLength < 0 {
		return nil, invalidArg("Truncate", "maxLength", "must be >= 0, got %d", maxLength)
	}
	return &stringRule{fn: func(s string) (string, error) {
		r := []rune(s)
		if len(r) <= maxLength {
			return s, nil
		}
		return string(r[:maxLength]) + suffix, nil
	}}, nil
}

// WhitelistChars replaces every character not in allowed with replaceWith.
func WhitelistChars(allowed string, replaceWith rune) (Rule[string], error) {
	if allowed == "" {
		return nil, invalidArg("WhitelistChars", "allowed", "must not be empty")
	}
	set := make(map[rune]struct{}, len(allowed))
	for _, c := range allowed {
		set[c] = struct{}{}
	}
	return runeRule(func(r []rune) []rune {
		for i, c := range r {
			if _, ok := set[c]; !ok {
				r[i] = replaceWith
			}
		}
		return r
	}), nil
}

// CharClass selects characters for MaskCharClass.
type CharClass string

const (
	CharDigits       CharClass = "digits"
	CharLetters      CharClass = "letters"
	CharUpper        CharClass = "upper"
	CharLower        CharClass = "lower"
	CharWhitespace   CharClass = "whitespace"
	CharPunctuation  CharClass = "punctuation"
	CharAlphanumeric CharClass = "alphanumeric"
)

var charClasses = map[CharClass]func(rune) bool{
	CharDigits:       unicode.IsDigit,
	CharLetters:      unicode.IsLetter,
	CharUpper:        unicode.IsUpper,
	CharLower:        unicode.IsLower,
	CharWhitespace:   unicode.IsSpace,
	CharPunctuation:  unicode.IsPunct,
	CharAlphanumeric: isContent,
}

// IsValidCharClass reports whether class is a known character class.
func IsValidCharClass(class CharClass) bool {
	_, ok := charClasses[class]
	return ok
}

// MaskCharClass masks every character belonging to class.
func MaskCharClass(class CharClass, maskChar rune) (Rule[string], error) {
	match, ok := charClasses[class]
	if !ok {
		return nil, invalidArg("MaskCharClass", "class", "unknown character class %q", class)
	}
	return runeRule(func(r []rune) []rune {
		for i, c := range r {
			if match(c) {
				r[i] = maskChar
			}
		}
		return r
	}), nil
}

// shuffleRule permutes characters. It is seed-aware.
type shuffleRule struct {
	seed SeedProvider[string]
}

// Shuffle randomly permutes the characters of the value. Without a seed the
// permutation differs on every call.
func Shuffle() Rule[string] {
	return &shuffleRule{}
}

func (r *shuffleRule) WithSeed(provider SeedProvider[string]) Rule[string] {
	return &shuffleRule{seed: provider}
}

func (r *shuffleRule) Apply(value *string) (*string, error) {
	if value == nil || *value == "" {
		return value, nil
	}
	runes := []rune(*value)
	rng := randomFor(r.seed, *value)
	rng.Shuffle(len(runes), func(i, j int) {
		runes[i], runes[j] = runes[j], runes[i]
	})
	out := string(runes)
	return &out, nil
}

// randomReplaceRule substitutes content characters. It is seed-aware.
type randomReplaceRule struct {
	charset []rune
	seed    SeedProvider[string]
}

// RandomReplace replaces every letter and digit with a random character from
// charset, leaving separators in place.
func RandomReplace(charset string) (Rule[string], error) {
	if charset == "" {
		return nil, invalidArg("RandomReplace", "charset", "must not be empty")
	}
	return &randomReplaceRule{charset: []rune(charset)}, nil
}

func (r *randomReplaceRule) WithSeed(provider SeedProvider[string]) Rule[string] {
	return &randomReplaceRule{charset: r.charset, seed: provider}
}

func (r *randomReplaceRule) Apply(value *string) (*string, error) {
	if value == nil || *value == "" {
		return value, nil
	}
	rng := randomFor(r.seed, *value)
	var b strings.Builder
	b.Grow(len(*value))
	for _, c := range *value {
		if isContent(c) {
			c = r.charset[rng.IntN(len(r.charset))]
		}
		b.WriteRune(c)
	}
	out := b.String()
	return &out, nil
}

func isContent(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
