// Package validation implements the field and form rules applied to login,
// registration and password-reset input. Everything here is pure: no I/O and
// no shared state outside FormState values owned by the caller.
package validation

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/heva-credit/heva/internal/common"
)

// Field names understood by ValidateField.
const (
	FieldName            = "name"
	FieldFirstName       = "firstName"
	FieldLastName        = "lastName"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
)

// DefaultMinStrength is the strength score a password needs when strength
// checking is enabled.
const DefaultMinStrength = 3

const minPasswordLen = 6

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	lowerPattern = regexp.MustCompile(`[a-z]`)
	upperPattern = regexp.MustCompile(`[A-Z]`)
	digitPattern = regexp.MustCompile(`[0-9]`)
	otherPattern = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// FieldContext carries the cross-field and asynchronous inputs some rules
// depend on.
type FieldContext struct {
	// Password is the current value of the password field, compared against
	// confirmPassword.
	Password string
	// EmailAvailable is the last availability result for the email field.
	// Nil means unknown and never produces an error.
	EmailAvailable *bool
	// CheckStrength enables the password strength rule.
	CheckStrength bool
	// MinStrength overrides DefaultMinStrength when positive.
	MinStrength int
}

func (fc FieldContext) minStrength() int {
	if fc.MinStrength > 0 {
		return fc.MinStrength
	}
	return DefaultMinStrength
}

// IsEmail reports whether s has the local@domain.tld shape.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// NormalizeEmail trims s and lower-cases it.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// PasswordStrength counts how many of these hold: length of at least 8,
// a lowercase letter, an uppercase letter, a digit, a symbol.
func PasswordStrength(p string) int {
	score := 0
	if len(p) >= 8 {
		score++
	}
	for _, re := range []*regexp.Regexp{lowerPattern, upperPattern, digitPattern, otherPattern} {
		if re.MatchString(p) {
			score++
		}
	}
	return score
}

// ValidateField applies the rule for name to value. It returns nil when the
// value is acceptable or the field has no rule.
func ValidateField(name, value string, fc FieldContext) *common.FormError {
	switch name {
	case FieldName:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return common.NewFieldError(name, "Full name is required")
		}
		if utf8.RuneCountInString(trimmed) < 2 {
			return common.NewFieldError(name, "Name must be at least 2 characters")
		}

	case FieldFirstName:
		if strings.TrimSpace(value) == "" {
			return common.NewFieldError(name, "First name is required")
		}

	case FieldLastName:
		if strings.TrimSpace(value) == "" {
			return common.NewFieldError(name, "Last name is required")
		}

	case FieldEmail:
		if strings.TrimSpace(value) == "" {
			return common.NewFieldError(name, "Email is required")
		}
		if !IsEmail(value) {
			return common.NewFieldError(name, "Please enter a valid email address")
		}
		if fc.EmailAvailable != nil && !*fc.EmailAvailable {
			return common.NewFieldError(name, "This email is already registered")
		}

	case FieldPassword:
		if value == "" {
			return common.NewFieldError(name, "Password is required")
		}
		if len(value) < minPasswordLen {
			return common.NewFieldError(name, "Password must be at least 6 characters")
		}
		if fc.CheckStrength && PasswordStrength(value) < fc.minStrength() {
			return common.NewFieldError(name, "Password is too weak")
		}

	case FieldConfirmPassword:
		if value == "" {
			return common.NewFieldError(name, "Please confirm your password")
		}
		if value != fc.Password {
			return common.NewFieldError(name, "Passwords do not match")
		}
	}
	return nil
}

// ValidateForm runs ValidateField over every entry of fields. The password
// entry, when present, is used for the confirmPassword comparison. Errors
// follow the form's visual order (name, first/last name, email, password,
// confirmation); other fields come after, sorted by name.
func ValidateForm(fields map[string]string, fc FieldContext) []common.FormError {
	if p, ok := fields[FieldPassword]; ok {
		fc.Password = p
	}

	var errs []common.FormError
	for _, name := range fieldOrder(fields) {
		if fe := ValidateField(name, fields[name], fc); fe != nil {
			errs = append(errs, *fe)
		}
	}
	return errs
}

// FormValid reports whether fields pass validation and every required field
// is non-empty. The two checks are independent.
func FormValid(fields map[string]string, required []string, fc FieldContext) bool {
	if len(ValidateForm(fields, fc)) > 0 {
		return false
	}
	for _, name := range required {
		if fields[name] == "" {
			return false
		}
	}
	return true
}

// SplitName splits a full name into first and last parts. The last part
// defaults to "User" when the name has a single word.
func SplitName(full string) (first, last string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", "User"
	}
	if len(parts) == 1 {
		return parts[0], "User"
	}
	return parts[0], strings.Join(parts[1:], " ")
}

var canonicalOrder = []string{
	FieldName, FieldFirstName, FieldLastName, FieldEmail, FieldPassword, FieldConfirmPassword,
}

func fieldOrder(fields map[string]string) []string {
	order := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(canonicalOrder))
	for _, name := range canonicalOrder {
		seen[name] = struct{}{}
		if _, ok := fields[name]; ok {
			order = append(order, name)
		}
	}
	var rest []string
	for name := range fields {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}
