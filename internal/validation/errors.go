// Package validation checks user input against the business rules and
// collects message keys instead of failing on the first problem.
package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Message keys shared by several validators.
const (
	ErrorMandatory     = "error.entry.mandatory"
	ErrorInvalid       = "error.entry.invalid"
	ErrorTooManyChars  = "error.entry.tooManyChars"
	ErrorInvalidPeriod = "error.entry.invalidPeriod"
	ErrorMail          = "error.entry.mail"
	ErrorNumber        = "error.entry.number"
)

const (
	maxChars     = 200
	maxNameChars = 50
)

var validate = validator.New()

// FieldError is a problem with a single input field.
type FieldError struct {
	Field string `json:"field"`
	Code  string `json:"code"`
	Args  []any  `json:"args,omitempty"`
}

// GlobalError is a problem with the input as a whole.
type GlobalError struct {
	Code string `json:"code"`
	Args []any  `json:"args,omitempty"`
}

// Errors collects validation problems. The zero value is ready to use.
type Errors struct {
	Global []GlobalError `json:"global,omitempty"`
	Fields []FieldError  `json:"fields,omitempty"`
}

// Reject records a global error.
func (e *Errors) Reject(code string, args ...any) {
	e.Global = append(e.Global, GlobalError{Code: code, Args: args})
}

// RejectValue records an error for field.
func (e *Errors) RejectValue(field, code string, args ...any) {
	e.Fields = append(e.Fields, FieldError{Field: field, Code: code, Args: args})
}

func (e *Errors) HasErrors() bool {
	return len(e.Global) > 0 || len(e.Fields) > 0
}

func (e *Errors) HasGlobalErrors() bool {
	return len(e.Global) > 0
}

// HasFieldError reports whether field has an error with code; an empty code matches any.
func (e *Errors) HasFieldError(field, code string) bool {
	for _, f := range e.Fields {
		if f.Field == field && (code == "" || f.Code == code) {
			return true
		}
	}
	return false
}

// HasGlobalError reports whether a global error with code was recorded.
func (e *Errors) HasGlobalError(code string) bool {
	for _, g := range e.Global {
		if g.Code == code {
			return true
		}
	}
	return false
}

// Merge appends all problems of other, prefixing its field names.
func (e *Errors) Merge(prefix string, other *Errors) {
	if other == nil {
		return
	}
	e.Global = append(e.Global, other.Global...)
	for _, f := range other.Fields {
		if prefix != "" {
			f.Field = prefix + "." + f.Field
		}
		e.Fields = append(e.Fields, f)
	}
}

func (e *Errors) Error() string {
	parts := make([]string, 0, len(e.Global)+len(e.Fields))
	for _, g := range e.Global {
		parts = append(parts, g.Code)
	}
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Code))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Err returns e as an error, or nil when nothing was recorded.
func (e *Errors) Err() error {
	if e == nil || !e.HasErrors() {
		return nil
	}
	return e
}

// IsValidEmail reports whether s is a syntactically valid email address.
func IsValidEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

func tooLong(s string, n int) bool {
	return len([]rune(s)) > n
}
