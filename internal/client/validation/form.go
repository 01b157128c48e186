package validation

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/heva-credit/heva/internal/common"
)

// FormState tracks one active form: raw values, the current error per field,
// and which fields the user has interacted with. Validation runs on every
// relevant change; touched only controls when an error may be shown.
//
// A FormState is owned by a single view and is not safe for concurrent use.
type FormState struct {
	fields   []string
	required []string
	values   map[string]string
	errors   map[string]string
	touched  mapset.Set[string]

	// Context is consulted on every validation. Its Password field is kept
	// in sync with the password value automatically.
	Context FieldContext
}

// NewFormState creates a form with the given fields; required lists the
// fields that must be non-empty for Submit to succeed.
func NewFormState(fields, required []string, fc FieldContext) *FormState {
	f := &FormState{
		fields:   append([]string(nil), fields...),
		required: append([]string(nil), required...),
		Context:  fc,
	}
	f.Reset()
	return f
}

// NewRegistrationForm returns the form used by the registration screen.
func NewRegistrationForm(fc FieldContext) *FormState {
	fields := []string{FieldName, FieldEmail, FieldPassword, FieldConfirmPassword}
	return NewFormState(fields, fields, fc)
}

// Reset clears values, errors and touched fields.
func (f *FormState) Reset() {
	f.values = make(map[string]string, len(f.fields))
	f.errors = make(map[string]string)
	f.touched = mapset.NewThreadUnsafeSet[string]()
	for _, name := range f.fields {
		f.values[name] = ""
	}
}

// Value returns the raw value of name.
func (f *FormState) Value(name string) string {
	return f.values[name]
}

// Values returns a copy of all raw values.
func (f *FormState) Values() map[string]string {
	out := make(map[string]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// Change stores value for name. If the field already has an error it is
// re-validated immediately so the message clears as soon as the input is
// fixed.
func (f *FormState) Change(name, value string) {
	f.values[name] = value
	if _, hasErr := f.errors[name]; hasErr {
		f.validate(name)
	}
}

// Blur marks name as touched and validates it.
func (f *FormState) Blur(name string) {
	f.touched.Add(name)
	f.validate(name)
}

// Touched reports whether the user has left name at least once, or the form
// has been submitted.
func (f *FormState) Touched(name string) bool {
	return f.touched.Contains(name)
}

// Error returns the recorded error for name, regardless of touched state.
func (f *FormState) Error(name string) string {
	return f.errors[name]
}

// VisibleError returns the error the view may display for name.
func (f *FormState) VisibleError(name string) string {
	if !f.touched.Contains(name) {
		return ""
	}
	return f.errors[name]
}

// Errors returns the current error set in field order.
func (f *FormState) Errors() []common.FormError {
	var out []common.FormError
	for _, name := range f.fields {
		if msg, ok := f.errors[name]; ok {
			out = append(out, *common.NewFieldError(name, msg))
		}
	}
	return out
}

// Submit touches every field, validates the whole form and reports whether
// it may be sent.
func (f *FormState) Submit() bool {
	for _, name := range f.fields {
		f.touched.Add(name)
		f.validate(name)
	}
	return FormValid(f.values, f.required, f.context())
}

func (f *FormState) context() FieldContext {
	fc := f.Context
	fc.Password = f.values[FieldPassword]
	return fc
}

func (f *FormState) validate(name string) {
	if fe := ValidateField(name, f.values[name], f.context()); fe != nil {
		f.errors[name] = fe.Message
		return
	}
	delete(f.errors, name)
}
