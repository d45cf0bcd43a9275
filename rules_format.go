package fluentmasker

import (
	"fmt"
	"math/big"
	"net/netip"
	"strings"
	"unicode"
)

// maskContent applies format-preserving masking. Characters matching content
// form the content subsequence; everything else is structure. All content
// characters except the first keepFirst and last keepLast are masked. With
// preserve the structure stays at its original positions, otherwise only the
// content is emitted. Values with too little content are returned unchanged.
func maskContent(s string, content func(rune) bool, keepFirst, keepLast int, maskChar rune, preserve bool) string {
	runes := []rune(s)
	positions := make([]int, 0, len(runes))
	for i, r := range runes {
		if content(r) {
			positions = append(positions, i)
		}
	}
	if len(positions) == 0 || len(positions) < keepFirst+keepLast {
		return s
	}

	for n, pos := range positions {
		if n >= keepFirst && n < len(positions)-keepLast {
			runes[pos] = maskChar
		}
	}

	if preserve {
		return string(runes)
	}
	out := make([]rune, len(positions))
	for n, pos := range positions {
		out[n] = runes[pos]
	}
	return string(out)
}

// FormatPreserving masks every digit except the last keepLast. When
// preserveSeparators is true the separator layout is kept exactly; otherwise
// the output contains the digits only. Values with fewer than keepLast digits
// are returned unchanged.
func FormatPreserving(keepLast int, maskChar rune, preserveSeparators bool) (Rule[string], error) {
	if keepLast < 0 {
		return nil, invalidArg("FormatPreserving", "keepLast", "must be >= 0, got %d", keepLast)
	}
	return &stringRule{fn: func(s string) (string, error) {
		return maskContent(s, unicode.IsDigit, 0, keepLast, maskChar, preserveSeparators), nil
	}}, nil
}

// Phone masks phone numbers: (555) 123-4567 -> (***) ***-4567.
// Values with fewer than seven digits are returned unchanged.
func Phone() Rule[string] {
	return &stringRule{fn: func(s string) (string, error) {
		if countDigits(s) < 7 {
			return s, nil
		}
		return maskContent(s, unicode.IsDigit, 0, 4, DefaultMaskChar, true), nil
	}}
}

// Card masks payment card numbers: 4111 1111 1111 1111 -> **** **** **** 1111.
// Values that are not 12 to 19 digits passing the Luhn check are returned
// unchanged.
func Card() Rule[string] {
	return &stringRule{fn: func(s string) (string, error) {
		digits := extractDigits(s)
		if len(digits) < 12 || len(digits) > 19 || !luhnValid(digits) {
			return s, nil
		}
		return maskContent(s, unicode.IsDigit, 0, 4, DefaultMaskChar, true), nil
	}}
}

// IBAN masks international bank account numbers, keeping the country code,
// check digits and last four characters: GB82WEST12345698765432 ->
// GB82**************5432. Invalid IBANs are returned unchanged.
func IBAN() Rule[string] {
	return &stringRule{fn: func(s string) (string, error) {
		if !ibanValid(s) {
			return s, nil
		}
		return maskContent(s, isContent, 4, 4, DefaultMaskChar, true), nil
	}}
}

// SSN masks US social security numbers: 123-45-6789 -> ***-**-6789.
// Values without exactly nine digits are returned unchanged.
func SSN() Rule[string] {
	return &stringRule{fn: func(s string) (string, error) {
		if countDigits(s) != 9 {
			return s, nil
		}
		return maskContent(s, unicode.IsDigit, 0, 4, DefaultMaskChar, true), nil
	}}
}

// Email masks the local part of an address: alice@example.com -> a***@example.com.
// Values without a local part are returned unchanged.
func Email() Rule[string] {
	return &stringRule{fn: func(s string) (string, error) {
		atIdx := strings.LastIndex(s, "@")
		if atIdx < 1 {
			return s, nil
		}
		local := []rune(s[:atIdx])
		return string(local[0]) + "***" + s[atIdx:], nil
	}}
}

// IP masks the host portion of an address.
// IPv4: 192.168.1.100 -> 192.168.xxx.xxx
// IPv6: keeps the 64-bit network prefix and masks the interface identifier.
// Unparseable values are returned unchanged.
func IP() Rule[string] {
	return &stringRule{fn: func(s string) (string, error) {
		addr, err := netip.ParseAddr(s)
		if err != nil {
			return s, nil
		}
		if addr.Is4() {
			b := addr.As4()
			return fmt.Sprintf("%d.%d.xxx.xxx", b[0], b[1]), nil
		}
		b := addr.As16()
		return fmt.Sprintf("%02x%02x:%02x%02x:%02x%02x:%02x%02x:xxxx:xxxx:xxxx:xxxx",
			b[0], b[1], b[2], b[3], b[4], b[5], b[6], b[7]), nil
	}}
}

// UUID keeps the first group of a UUID and masks the rest:
// 550e8400-e29b-41d4-a716-446655440000 -> 550e8400-****-****-****-************.
// Values not shaped like a UUID are returned unchanged.
func UUID() Rule[string] {
	lengths := []int{8, 4, 4, 4, 12}
	return &stringRule{fn: func(s string) (string, error) {
		parts := strings.Split(s, "-")
		if len(parts) != len(lengths) {
			return s, nil
		}
		for i, p := range parts {
			if len(p) != lengths[i] || !isHex(p) {
				return s, nil
			}
		}
		masked := make([]string, len(parts))
		masked[0] = parts[0]
		for i := 1; i < len(parts); i++ {
			masked[i] = strings.Repeat("*", lengths[i])
		}
		return strings.Join(masked, "-"), nil
	}}
}

// Name keeps the first letter of each word: John Smith -> J*** S****.
func Name() Rule[string] {
	return &stringRule{fn: func(s string) (string, error) {
		words := strings.Fields(s)
		if len(words) == 0 {
			return s, nil
		}
		for i, word := range words {
			runes := []rune(word)
			words[i] = string(runes[0]) + strings.Repeat("*", len(runes)-1)
		}
		return strings.Join(words, " "), nil
	}}
}

// extractDigits returns only the digit characters from a string.
func extractDigits(s string) string {
	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	return digits.String()
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

func isHex(s string) bool {
	for _, r := range s {
		if !unicode.Is(unicode.ASCII_Hex_Digit, r) {
			return false
		}
	}
	return true
}

// luhnValid runs the mod-10 check over an all-digit string.
func luhnValid(digits string) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// ibanValid checks IBAN shape and the ISO 13616 mod-97 checksum.
func ibanValid(s string) bool {
	compact := strings.ToUpper(strings.ReplaceAll(s, " ", ""))
	if len(compact) < 15 || len(compact) > 34 {
		return false
	}
	for i, r := range compact {
		switch {
		case i < 2 && (r < 'A' || r > 'Z'):
			return false
		case i >= 2 && i < 4 && (r < '0' || r > '9'):
			return false
		case !(r >= 'A' && r <= 'Z') && !(r >= '0' && r <= '9'):
			return false
		}
	}

	rearranged := compact[4:] + compact[:4]
	var numeric strings.Builder
	for _, r := range rearranged {
		if r >= 'A' && r <= 'Z' {
			fmt.Fprintf(&numeric, "%d", r-'A'+10)
		} else {
			numeric.WriteRune(r)
		}
	}
	n, ok := new(big.Int).SetString(numeric.String(), 10)
	if !ok {
		return false
	}
	return new(big.Int).Mod(n, big.NewInt(97)).Int64() == 1
}
