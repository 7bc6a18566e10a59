package typescript

import (
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	zwnj = '\u200c'
	zwj  = '\u200d'
)

func isIdentifierStart(r rune) bool {
	return r == '$' || r == '_' || unicode.IsLetter(r) || unicode.Is(unicode.Nl, r) ||
		unicode.Is(unicode.Other_ID_Start, r)
}

func isIdentifierPart(r rune) bool {
	return isIdentifierStart(r) || r == zwnj || r == zwj ||
		unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r) ||
		unicode.Is(unicode.Pc, r) || unicode.Is(unicode.Other_ID_Continue, r)
}

// RequiresQuoting reports whether name cannot be written as a bare
// identifier property key.
func RequiresQuoting(name string) bool {
	if name == "" {
		return true
	}
	first, size := utf8.DecodeRuneInString(name)
	if !isIdentifierStart(first) {
		return true
	}
	for _, r := range name[size:] {
		if !isIdentifierPart(r) {
			return true
		}
	}
	return false
}

// numberKey renders a numeric literal key the way the runtime stringifies
// the number, e.g. 0x10 -> "16" and 1.50 -> "1.5".
func numberKey(literal string) string {
	text := strings.ReplaceAll(literal, "_", "")
	text = strings.TrimSuffix(text, "n")

	var f float64
	lower := strings.ToLower(text)
	switch {
	case strings.HasPrefix(lower, "0x"), strings.HasPrefix(lower, "0o"), strings.HasPrefix(lower, "0b"):
		n, err := strconv.ParseUint(lower[2:], map[byte]int{'x': 16, 'o': 8, 'b': 2}[lower[1]], 64)
		if err != nil {
			return literal
		}
		f = float64(n)
	case len(lower) > 1 && lower[0] == '0' && isAllDigits(lower[1:]):
		// legacy octal
		n, err := strconv.ParseUint(lower[1:], 8, 64)
		if err != nil {
			n, err = strconv.ParseUint(lower, 10, 64)
			if err != nil {
				return literal
			}
		}
		f = float64(n)
	default:
		v, err := strconv.ParseFloat(lower, 64)
		if err != nil {
			return literal
		}
		f = v
	}
	return formatNumber(f)
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func formatNumber(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsNaN(f):
		return "NaN"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		sign := exp[0]
		exp = strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + string(sign) + exp
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// unquote returns the value of a string literal node's text.
func unquote(text string) string {
	if len(text) < 2 {
		return text
	}
	body := text[1 : len(text)-1]
	if !strings.Contains(body, `\`) {
		return body
	}

	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			b.WriteByte(c)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case '\n':
			// line continuation
		case 'x':
			if i+2 < len(body) {
				if n, err := strconv.ParseUint(body[i+1:i+3], 16, 8); err == nil {
					b.WriteRune(rune(n))
					i += 2
					continue
				}
			}
			b.WriteByte('x')
		case 'u':
			r, consumed := parseUnicodeEscape(body[i+1:])
			if consumed == 0 {
				b.WriteByte('u')
				continue
			}
			b.WriteRune(r)
			i += consumed
		default:
			b.WriteByte(body[i])
		}
	}
	return b.String()
}

func parseUnicodeEscape(s string) (rune, int) {
	if strings.HasPrefix(s, "{") {
		end := strings.IndexByte(s, '}')
		if end < 0 {
			return 0, 0
		}
		n, err := strconv.ParseUint(s[1:end], 16, 32)
		if err != nil {
			return 0, 0
		}
		return rune(n), end + 1
	}
	if len(s) < 4 {
		return 0, 0
	}
	n, err := strconv.ParseUint(s[:4], 16, 16)
	if err != nil {
		return 0, 0
	}
	return rune(n), 4
}
