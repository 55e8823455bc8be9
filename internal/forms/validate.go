// Package forms validates and submits the create/edit forms of the console.
// Validation runs locally and a form that fails it never reaches the network.
package forms

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrSubmitting is returned when a submit is attempted while another one on
// the same form is still in flight.
var ErrSubmitting = errors.New("form is already being submitted")

// FieldErrors maps a field's wire name to the message shown next to it.
type FieldErrors map[string]string

// ValidationError is a local validation failure.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Refresher is the parent list view notified after a successful submit.
type Refresher interface {
	Refresh(ctx context.Context)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return strings.ToLower(f.Name)
		}
		return name
	})
	// decistep: the float has at most one decimal place.
	_ = v.RegisterValidation("decistep", func(fl validator.FieldLevel) bool {
		x := fl.Field().Float() * 10
		return math.Abs(x-math.Round(x)) < 1e-9
	})
	return v
}

// validateStruct runs the struct tags of dst and converts failures into
// FieldErrors keyed by json name.
func validateStruct(dst any) FieldErrors {
	out := FieldErrors{}
	err := validate.Struct(dst)
	if err == nil {
		return out
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		out["_"] = "The form data is invalid."
		return out
	}
	for _, fe := range ve {
		out[fe.Field()] = messageForTag(fe.Tag(), fe.Param(), fe.Kind())
	}
	return out
}

func messageForTag(tag, param string, kind reflect.Kind) string {
	isString := kind == reflect.String
	switch tag {
	case "required":
		return "This field is required."
	case "min":
		if isString {
			return fmt.Sprintf("Must be at least %s characters.", param)
		}
		return fmt.Sprintf("Must be at least %s.", param)
	case "max":
		if isString {
			return fmt.Sprintf("Must be at most %s characters.", param)
		}
		return fmt.Sprintf("Must be at most %s.", param)
	case "gte":
		return fmt.Sprintf("Must be %s or more.", param)
	case "lte":
		return fmt.Sprintf("Must be %s or less.", param)
	case "decistep":
		return "Must have at most one decimal place."
	case "oneof":
		return fmt.Sprintf("Must be one of: %s.", param)
	default:
		return "Invalid value."
	}
}
