package fluentmasker

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
)

// RegexTimeout bounds every match performed by RegexReplace rules.
const RegexTimeout = 250 * time.Millisecond

// RegexOptions modifies pattern matching for RegexReplace.
type RegexOptions int

const (
	RegexNone             RegexOptions = RegexOptions(regexp2.None)
	RegexIgnoreCase       RegexOptions = RegexOptions(regexp2.IgnoreCase)
	RegexMultiline        RegexOptions = RegexOptions(regexp2.Multiline)
	RegexSingleline       RegexOptions = RegexOptions(regexp2.Singleline)
	RegexExplicitCapture  RegexOptions = RegexOptions(regexp2.ExplicitCapture)
	RegexIgnoreWhitespace RegexOptions = RegexOptions(regexp2.IgnorePatternWhitespace)
)

// regexRule replaces pattern matches within a value.
type regexRule struct {
	re          *regexp2.Regexp
	replacement string
}

// RegexReplace replaces every match of pattern with replacement. The
// replacement may reference groups as $1 or ${name}. Patterns are compiled at
// construction; a match exceeding RegexTimeout fails the rule with
// ErrPatternTimeout.
func RegexReplace(pattern, replacement string, options RegexOptions) (Rule[string], error) {
	if pattern == "" {
		return nil, invalidArg("RegexReplace", "pattern", "must not be empty")
	}
	re, err := regexp2.Compile(pattern, regexp2.RegexOptions(options))
	if err != nil {
		return nil, invalidArg("RegexReplace", "pattern", "%v", err)
	}
	re.MatchTimeout = RegexTimeout

	// Replacement patterns are parsed lazily by regexp2; surface errors now.
	if _, err := re.Replace("", replacement, -1, -1); err != nil {
		return nil, invalidArg("RegexReplace", "replacement", "%v", err)
	}

	return &regexRule{re: re, replacement: replacement}, nil
}

func (r *regexRule) Apply(value *string) (*string, error) {
	if value == nil || *value == "" {
		return value, nil
	}
	out, err := r.re.Replace(*value, r.replacement, -1, -1)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPatternTimeout, err)
	}
	return &out, nil
}
