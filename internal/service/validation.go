package service

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	tj "travel_journal"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a form field (its JSON name) to the message shown under it.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+f[k])
	}
	return strings.Join(parts, "; ")
}

// asError wraps non-empty field errors as an ErrValidation.
func (f FieldErrors) asError(op string) error {
	if len(f) == 0 {
		return nil
	}
	return &tj.Error{Kind: tj.ErrValidation, Op: op, Message: f.Error(), Cause: f}
}

// Validator checks form input before anything is sent to the backend.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Use JSON tag names so errors line up with the form fields.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Struct validates s and returns per-field messages, nil when valid.
func (v *Validator) Struct(s any) FieldErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"_": err.Error()}
	}
	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; !seen {
			out[fe.Field()] = message(fe.Field(), fe.Tag(), fe.Param())
		}
	}
	return out
}

// Var validates a single value against tag; the message is keyed by field.
func (v *Validator) Var(field string, value any, tag string) FieldErrors {
	err := v.validate.Var(value, tag)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return FieldErrors{field: message(field, verrs[0].Tag(), verrs[0].Param())}
	}
	return FieldErrors{field: err.Error()}
}

func message(field, tag, param string) string {
	label := fieldLabel(field)
	switch tag {
	case "email":
		return "Invalid email address"
	case "url":
		return "Invalid URL"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, param)
	case "required", "gt":
		return label + " is required"
	default:
		return label + " is invalid"
	}
}

func fieldLabel(field string) string {
	switch field {
	case "identifier":
		return "Email"
	case "cover_image_url":
		return "Cover image"
	}
	if field == "" {
		return "Value"
	}
	return strings.ToUpper(field[:1]) + field[1:]
}

// merge adds entries of other that f does not have yet.
func (f FieldErrors) merge(other FieldErrors) FieldErrors {
	if len(other) == 0 {
		return f
	}
	if f == nil {
		f = make(FieldErrors, len(other))
	}
	for k, v := range other {
		if _, ok := f[k]; !ok {
			f[k] = v
		}
	}
	return f
}
