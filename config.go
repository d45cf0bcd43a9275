package fluentmasker

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Config declares string rule chains in YAML:
//
//	behavior: include
//	properties:
//	  Email:
//	    - rule: email
//	  SSN:
//	    - rule: ssn
//	  Phone:
//	    - rule: formatPreserving
//	      keepLast: 2
//	      preserve: true
//	  Name:
//	    - rule: maskStart
//	      count: 2
//	      char: "#"
type Config struct {
	Behavior   string                `yaml:"behavior"`
	Properties map[string][]RuleSpec `yaml:"properties"`
}

// RuleSpec is one builder step. Only the fields relevant to Rule are read.
type RuleSpec struct {
	Rule        string `yaml:"rule"`
	Count       int    `yaml:"count"`
	KeepFirst   int    `yaml:"keepFirst"`
	KeepLast    int    `yaml:"keepLast"`
	Start       int    `yaml:"start"`
	Length      int    `yaml:"length"`
	MaxLength   int    `yaml:"maxLength"`
	Char        string `yaml:"char"`
	Text        string `yaml:"text"`
	Suffix      string `yaml:"suffix"`
	Template    string `yaml:"template"`
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement"`
	IgnoreCase  bool   `yaml:"ignoreCase"`
	Allowed     string `yaml:"allowed"`
	Class       string `yaml:"class"`
	Preserve    bool   `yaml:"preserve"`
	Algo        string `yaml:"algo"`
	Charset     string `yaml:"charset"`
	Seed        *int64 `yaml:"seed"`
}

// ParseConfig decodes a YAML configuration.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &ConfigError{Err: ErrInvalidConfig, Rule: "yaml", Cause: err}
	}
	return &cfg, nil
}

// Configure applies cfg to m. Properties are processed in name order and the
// first failure stops processing; chains registered before it remain.
func Configure[T any](m *Masker[T], cfg *Config) error {
	if cfg == nil {
		return &ConfigError{Err: ErrInvalidConfig, Rule: "config", Cause: fmt.Errorf("nil config")}
	}

	if cfg.Behavior != "" {
		b, err := ParseBehavior(cfg.Behavior)
		if err != nil {
			return &ConfigError{Err: ErrInvalidConfig, Param: "behavior", Cause: err}
		}
		m.SetBehavior(b)
	}

	names := make([]string, 0, len(cfg.Properties))
	for name := range cfg.Properties {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		specs := cfg.Properties[name]
		var stepErr error
		err := MaskStringName(m, name, func(b *StringBuilder) *StringBuilder {
			for i, spec := range specs {
				if err := applySpec(b, spec); err != nil {
					stepErr = fmt.Errorf("step %d: %w", i, err)
					return nil
				}
			}
			return b
		})
		if stepErr != nil {
			err = stepErr
		}
		if err != nil {
			return &ConfigError{Err: ErrInvalidConfig, Rule: name, Cause: err}
		}
	}
	return nil
}

// applySpec appends the rule described by spec to b.
func applySpec(b *StringBuilder, spec RuleSpec) error {
	maskChar, err := specChar(spec.Char)
	if err != nil {
		return err
	}
	if spec.Seed != nil {
		b.WithSeedValue(*spec.Seed)
	}

	switch spec.Rule {
	case "maskStart":
		b.MaskStart(spec.Count, maskChar)
	case "maskEnd":
		b.MaskEnd(spec.Count, maskChar)
	case "maskMiddle":
		b.MaskMiddle(spec.KeepFirst, spec.KeepLast, maskChar)
	case "keepFirst":
		b.KeepFirst(spec.Count, maskChar)
	case "keepLast":
		b.KeepLast(spec.Count, maskChar)
	case "maskRange":
		b.MaskRange(spec.Start, spec.Length, maskChar)
	case "nullOut":
		b.NullOut()
	case "redact":
		b.Redact(spec.Text)
	case "truncate":
		b.Truncate(spec.MaxLength, spec.Suffix)
	case "templateMask":
		b.TemplateMask(spec.Template)
	case "regexReplace":
		opts := RegexNone
		if spec.IgnoreCase {
			opts |= RegexIgnoreCase
		}
		b.RegexReplace(spec.Pattern, spec.Replacement, opts)
	case "whitelistChars":
		b.WhitelistChars(spec.Allowed, maskChar)
	case "maskCharClass":
		b.MaskCharClass(CharClass(spec.Class), maskChar)
	case "formatPreserving":
		b.FormatPreserving(spec.KeepLast, maskChar, spec.Preserve)
	case "shuffle":
		b.Shuffle()
	case "randomReplace":
		b.RandomReplace(spec.Charset)
	case "hash":
		b.Hash(HashAlgo(spec.Algo))
	default:
		rule, err := MaskFor(MaskType(spec.Rule))
		if err != nil {
			return fmt.Errorf("unknown rule %q", spec.Rule)
		}
		b.Rule(rule)
	}
	return nil
}

func specChar(s string) (rune, error) {
	if s == "" {
		return DefaultMaskChar, nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) {
		return 0, fmt.Errorf("char %q must be a single character", s)
	}
	return r, nil
}
