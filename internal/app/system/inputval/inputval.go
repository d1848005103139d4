// Package inputval validates client-supplied records before they are stored.
package inputval

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/dalemusser/tutorhub/internal/domain/models"
	"github.com/go-playground/validator/v10"
)

// Bounds on the free-form part of a Profile.
const (
	MaxExtraKeys      = 32
	MaxExtraKeyLen    = 64
	MaxExtraStringLen = 4096
)

var validate = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}()

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Problem string `json:"problem"`
}

// Error collects every problem found in a record.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Problem)
	}
	return "invalid record: " + strings.Join(parts, "; ")
}

func (e *Error) add(field, problem string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Problem: problem})
}

// ValidateProfile checks the named fields against their struct tags and
// the extension map against the Max* bounds. It returns *Error or nil.
func ValidateProfile(p models.Profile) error {
	verr := &Error{}

	if err := validate.Struct(p); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrs {
				verr.add(fe.Field(), describe(fe))
			}
		} else {
			return err
		}
	}

	if len(p.Extra) > MaxExtraKeys {
		verr.add("extra", fmt.Sprintf("at most %d additional fields are allowed, got %d", MaxExtraKeys, len(p.Extra)))
	}

	keys := make([]string, 0, len(p.Extra))
	for k := range p.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if problem := checkExtraKey(k); problem != "" {
			verr.add(k, problem)
			continue
		}
		if problem := checkExtraValue(p.Extra[k]); problem != "" {
			verr.add(k, problem)
		}
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

func checkExtraKey(k string) string {
	switch {
	case k == "" || len(k) > MaxExtraKeyLen:
		return fmt.Sprintf("field names must be 1-%d characters", MaxExtraKeyLen)
	case strings.HasPrefix(k, "$"):
		return "field names must not start with '$'"
	case strings.Contains(k, "."):
		return "field names must not contain '.'"
	case k == "_id":
		return "_id is assigned by the server"
	}
	return ""
}

func checkExtraValue(v any) string {
	switch val := v.(type) {
	case nil, bool, float64, int, int32, int64:
		return ""
	case string:
		if len(val) > MaxExtraStringLen {
			return fmt.Sprintf("text must be at most %d bytes", MaxExtraStringLen)
		}
		return ""
	default:
		return "only text, number, boolean or null values are allowed"
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "email":
		return "must be a valid email address"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "failed " + fe.Tag()
	}
}
