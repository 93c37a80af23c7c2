// Package dto defines the request and response schemas for the API.
//
// WHY A SEPARATE SCHEMA LAYER?
// The model package describes what we STORE; this package describes what we
// ACCEPT and RETURN over HTTP. Keeping them apart means a client can never
// smuggle a server-controlled field (id, timestamps, password hash) into a
// create request, and response shapes can evolve without touching the
// database schema.
//
// VALIDATION WITH go-playground/validator:
// Each request struct carries `validate:"..."` tags describing its rules
// (required, email, numeric ranges). Validate() runs them and converts the
// first failure into an apperror.ValidationFailed, which the handler layer
// maps to 400. This is declarative validation — the rules live next to the
// fields they constrain instead of being scattered through handler code.
package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sakif/course-api/internal/apperror"
)

// validate is the shared validator instance. The library caches struct
// metadata internally, so a single instance is both safe for concurrent use
// and faster than creating one per request.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report field names from the json tag, not the Go field name.
	// Clients see {"field":"email"} rather than {"field":"Email"}.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return v
}

// Validate checks a request struct against its validate tags.
// Returns an apperror.ValidationFailed for the first failing field so the
// handler can answer 400 with a field-specific message.
func Validate(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		// Not a field-level failure (e.g. a nil pointer passed in) —
		// treat it as a malformed request rather than a server error.
		return apperror.ValidationFailed("", "invalid request body")
	}

	fe := fieldErrs[0]
	return apperror.ValidationFailed(fe.Field(),
		fmt.Sprintf("%s %s", fe.Field(), friendlyMessage(fe)))
}

// friendlyMessage renders a validation tag as a human-readable phrase.
func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", e.Param())
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	default:
		return "is invalid"
	}
}
