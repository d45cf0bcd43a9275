package fluentmasker

import (
	"fmt"
	"strconv"
	"strings"
)

// templateToken is one parsed piece of a mask template.
type templateToken struct {
	kind    byte // 'F', 'L', '*' or 0 for literal text
	count   int  // -1 for {{*}} (fill)
	literal string
}

// TemplateMask rebuilds the value from a template. Supported tokens:
//
//	{{F|n}}  first n characters of the value ({{F}} is {{F|1}})
//	{{L|n}}  last n characters of the value ({{L}} is {{L|1}})
//	{{*|n}}  exactly n mask characters
//	{{*}}    one mask character for every character not emitted by F or L
//
// Any other text is copied literally. Values shorter than the characters the
// template keeps are masked in full, one mask character per character.
func TemplateMask(template string) (Rule[string], error) {
	if template == "" {
		return nil, invalidArg("TemplateMask", "template", "must not be empty")
	}
	tokens, err := parseTemplate(template)
	if err != nil {
		return nil, invalidArg("TemplateMask", "template", "%v", err)
	}

	kept := 0
	for _, t := range tokens {
		if t.kind == 'F' || t.kind == 'L' {
			kept += t.count
		}
	}

	return &stringRule{fn: func(s string) (string, error) {
		runes := []rune(s)
		if kept > len(runes) {
			return strings.Repeat(string(DefaultMaskChar), len(runes)), nil
		}
		var b strings.Builder
		for _, t := range tokens {
			switch t.kind {
			case 'F':
				b.WriteString(string(runes[:t.count]))
			case 'L':
				b.WriteString(string(runes[len(runes)-t.count:]))
			case '*':
				n := t.count
				if n < 0 {
					n = len(runes) - kept
				}
				b.WriteString(strings.Repeat(string(DefaultMaskChar), n))
			default:
				b.WriteString(t.literal)
			}
		}
		return b.String(), nil
	}}, nil
}

// parseTemplate splits a template into literal and token pieces.
func parseTemplate(template string) ([]templateToken, error) {
	var tokens []templateToken
	rest := template
	for rest != "" {
		open := strings.Index(rest, "{{")
		if open < 0 {
			tokens = append(tokens, templateToken{literal: rest})
			break
		}
		if open > 0 {
			tokens = append(tokens, templateToken{literal: rest[:open]})
		}
		end := strings.Index(rest[open:], "}}")
		if end < 0 {
			return nil, fmt.Errorf("unterminated token %q", rest[open:])
		}
		tok, err := parseTemplateToken(rest[open+2 : open+end])
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		rest = rest[open+end+2:]
	}
	return tokens, nil
}

func parseTemplateToken(body string) (templateToken, error) {
	kind, arg, hasArg := strings.Cut(body, "|")
	if len(kind) != 1 || !strings.Contains("FL*", kind) {
		return templateToken{}, fmt.Errorf("unknown token %q", "{{"+body+"}}")
	}
	tok := templateToken{kind: kind[0], count: 1}
	if kind == "*" {
		tok.count = -1
	}
	if hasArg {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 {
			return templateToken{}, fmt.Errorf("unknown token %q", "{{"+body+"}}")
		}
		tok.count = n
	}
	return tok, nil
}
