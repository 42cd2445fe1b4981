// Package validation turns validator errors into per-field form messages.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type FieldErrors map[string]string

// FromBindError maps each failing field to its form input name. dst is the
// bound struct pointer, used to read the form tags.
func FromBindError(err error, dst any) FieldErrors {
	out := FieldErrors{}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			out[fieldKey(dst, fe.StructField())] = messageForTag(fe.Tag(), fe.Param())
		}
		return out
	}

	out["_"] = "The submitted form is invalid."
	return out
}

func (f FieldErrors) Get(key string) string { return f[key] }

// First returns one message for flash notices; "_" wins.
func (f FieldErrors) First() string {
	if m, ok := f["_"]; ok {
		return m
	}
	best := ""
	for k := range f {
		if best == "" || k < best {
			best = k
		}
	}
	return f[best]
}

func fieldKey(dst any, structField string) string {
	t := reflect.TypeOf(dst)
	if t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return strings.ToLower(structField)
	}

	f, ok := t.FieldByName(structField)
	if !ok {
		return strings.ToLower(structField)
	}
	tag, _, _ := strings.Cut(f.Tag.Get("form"), ",")
	if tag == "" || tag == "-" {
		return strings.ToLower(structField)
	}
	return tag
}

func messageForTag(tag, param string) string {
	switch tag {
	case "required", "required_unless", "required_if":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return "Must be at least " + param + " characters."
	case "max":
		return "Must be at most " + param + " characters."
	case "len":
		return "Must be exactly " + param + " characters."
	case "gte":
		return "Must be at least " + param + "."
	case "lte":
		return "Must be at most " + param + "."
	default:
		return "Invalid value."
	}
}
