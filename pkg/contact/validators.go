package contact

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Validator checks a single field value.
type Validator interface {
	// Validate returns nil if the value is acceptable, or an error
	// carrying the message to show next to the field.
	Validate(value string) error
}

// ValidatorFunc is a function that implements Validator.
type ValidatorFunc func(value string) error

func (f ValidatorFunc) Validate(value string) error {
	return f(value)
}

// ValidationError is the only failure kind the form knows about: a field
// whose value did not pass its rule, and the message to display.
type ValidationError struct {
	Field   FieldID
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return string(e.Field) + ": " + e.Message
}

// ----------------------------------------------------------------------------
// Presence
// ----------------------------------------------------------------------------

// Required fails when the value is empty after trimming whitespace.
func Required(msg string) Validator {
	if msg == "" {
		msg = "Це поле обов'язкове"
	}
	return ValidatorFunc(func(value string) error {
		if trimSpace(value) == "" {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// Selected fails when no option was chosen. Select values are compared
// verbatim, a value of spaces counts as a choice.
func Selected(msg string) Validator {
	if msg == "" {
		msg = "Оберіть значення"
	}
	return ValidatorFunc(func(value string) error {
		if value == "" {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// ----------------------------------------------------------------------------
// Length and format
// ----------------------------------------------------------------------------

// MinLength fails when the trimmed value has fewer than n characters.
// Empty values pass; pair it with Required.
func MinLength(n int, msg string) Validator {
	if msg == "" {
		msg = fmt.Sprintf("Мінімум %d символів", n)
	}
	return ValidatorFunc(func(value string) error {
		s := trimSpace(value)
		if s == "" {
			return nil
		}
		if utf8.RuneCountInString(s) < n {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// Pattern fails when the trimmed value does not match the expression.
// Empty values pass.
func Pattern(pattern string, msg string) Validator {
	re := regexp.MustCompile(pattern)
	if msg == "" {
		msg = "Невірний формат"
	}
	return ValidatorFunc(func(value string) error {
		s := trimSpace(value)
		if s == "" {
			return nil
		}
		if !re.MatchString(s) {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// spaceClass is the browser's notion of whitespace: ASCII space and
// controls, every Zs separator, line and paragraph separators and the BOM.
const spaceClass = `\t\n\v\f\r\p{Zs}\x{2028}\x{2029}\x{FEFF}`

// emailPattern accepts anything shaped like local@domain.tld.
var emailPattern = regexp.MustCompile(`^[^` + spaceClass + `@]+@[^` + spaceClass + `@]+\.[^` + spaceClass + `@]+$`)

// Email validates the trimmed value as local@domain.tld. Empty values pass.
func Email(msg string) Validator {
	if msg == "" {
		msg = "Невірна email адреса"
	}
	return ValidatorFunc(func(value string) error {
		s := trimSpace(value)
		if s == "" {
			return nil
		}
		if !emailPattern.MatchString(s) {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// phonePattern matches international numbers such as +380501234567,
// (044)123-45-67 or 050.123.4567 once whitespace has been removed.
var phonePattern = regexp.MustCompile(`^[+]?[(]?[0-9]{1,4}[)]?[-\s.]?[(]?[0-9]{1,4}[)]?[-\s.]?[0-9]{1,5}[-\s.]?[0-9]{1,6}$`)

// Phone validates a loose international phone number. All whitespace is
// stripped before matching. Empty values pass.
func Phone(msg string) Validator {
	if msg == "" {
		msg = "Невірний номер телефону"
	}
	return ValidatorFunc(func(value string) error {
		s := trimSpace(value)
		if s == "" {
			return nil
		}
		if !phonePattern.MatchString(stripSpace(s)) {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// isSpace matches the same runes as spaceClass.
func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\u2028', '\u2029', '\uFEFF':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

// trimSpace trims leading and trailing isSpace runes.
func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if isSpace(r) {
			return -1
		}
		return r
	}, s)
}
