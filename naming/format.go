package naming

import (
	"strings"
	"unicode"
)

// FormatChecker reports whether a name conforms to a case style.
// Every checker accepts the empty string.
type FormatChecker func(name string) bool

// FormatCheckers maps each predefined format to its checker.
var FormatCheckers = map[PredefinedFormat]FormatChecker{
	FormatCamelCase:        IsCamelCase,
	FormatStrictCamelCase:  IsStrictCamelCase,
	FormatPascalCase:       IsPascalCase,
	FormatStrictPascalCase: IsStrictPascalCase,
	FormatSnakeCase:        IsSnakeCase,
	FormatUpperCase:        IsUpperCase,
}

// The checkers work on runes instead of regular expressions so that
// non-latin identifiers get the same treatment as ASCII ones.

func firstRune(name string) rune {
	for _, r := range name {
		return r
	}
	return 0
}

// IsCamelCase: first character is not uppercase and there is no underscore.
func IsCamelCase(name string) bool {
	if name == "" {
		return true
	}
	first := firstRune(name)
	return first == unicode.ToLower(first) && !strings.Contains(name, "_")
}

// IsPascalCase: first character is not lowercase and there is no underscore.
func IsPascalCase(name string) bool {
	if name == "" {
		return true
	}
	first := firstRune(name)
	return first == unicode.ToUpper(first) && !strings.Contains(name, "_")
}

// IsStrictCamelCase is IsCamelCase without consecutive uppercase letters.
func IsStrictCamelCase(name string) bool {
	if name == "" {
		return true
	}
	first := firstRune(name)
	return first == unicode.ToLower(first) && hasStrictCamelHumps(name, false)
}

// IsStrictPascalCase is IsPascalCase without consecutive uppercase letters.
func IsStrictPascalCase(name string) bool {
	if name == "" {
		return true
	}
	first := firstRune(name)
	return first == unicode.ToUpper(first) && hasStrictCamelHumps(name, true)
}

// IsSnakeCase: all lowercase with well placed underscores.
func IsSnakeCase(name string) bool {
	return name == "" || (name == strings.ToLower(name) && validateUnderscores(name))
}

// IsUpperCase: all uppercase with well placed underscores.
func IsUpperCase(name string) bool {
	return name == "" || (name == strings.ToUpper(name) && validateUnderscores(name))
}

func isUppercaseRune(r rune) bool {
	return r == unicode.ToUpper(r) && r != unicode.ToLower(r)
}

func hasStrictCamelHumps(name string, isUpper bool) bool {
	if strings.HasPrefix(name, "_") {
		return false
	}
	runes := []rune(name)
	for _, r := range runes[1:] {
		if r == '_' {
			return false
		}
		if isUpper == isUppercaseRune(r) {
			if isUpper {
				return false
			}
		} else {
			isUpper = !isUpper
		}
	}
	return true
}

// validateUnderscores rejects a leading underscore and adjacent underscores.
// A single trailing underscore passes: the outer underscore stages own the
// ends of the name, this only polices internal placement.
func validateUnderscores(name string) bool {
	if strings.HasPrefix(name, "_") {
		return false
	}
	return !strings.Contains(name, "__")
}
