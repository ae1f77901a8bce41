// Package validation wires request-body rules into gin's binding validator and
// turns binding failures into field-level details.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"medicloud-backend/internal/apperror"
	"medicloud-backend/pkg/utils"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

var (
	registerOnce sync.Once
	registerErr  error
)

// Register installs the "slug" and "date" rules and makes validator report
// JSON field names. Safe to call more than once.
func Register() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("validation: gin binding engine is not go-playground/validator")
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
		if err := v.RegisterValidation("slug", isSlug); err != nil {
			registerErr = err
			return
		}
		registerErr = v.RegisterValidation("date", isDate)
	})
	return registerErr
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

func isSlug(fl validator.FieldLevel) bool {
	return slugPattern.MatchString(fl.Field().String())
}

func isDate(fl validator.FieldLevel) bool {
	_, err := utils.ParseDate(fl.Field().String())
	return err == nil
}

// Error converts a ShouldBindJSON/ShouldBindQuery failure into a validation error.
func Error(err error) *apperror.Error {
	return apperror.Validation(Details(err))
}

// Details lists every violated rule. Decoding failures produce a single entry.
func Details(err error) []apperror.FieldError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]apperror.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, apperror.FieldError{
				Field:   fieldPath(fe),
				Message: message(fe),
			})
		}
		return details
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return []apperror.FieldError{{
			Field:   field,
			Message: fmt.Sprintf("Expected %s, received %s", typeName(typeErr.Type), typeErr.Value),
		}}
	}

	if errors.Is(err, io.EOF) {
		return []apperror.FieldError{{Field: "body", Message: "Request body is required"}}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return []apperror.FieldError{{Field: "body", Message: "Request body must be valid JSON"}}
	}

	return []apperror.FieldError{{Field: "body", Message: err.Error()}}
}

// fieldPath drops the top-level struct name: "CreatePrescriptionInput.items[0].drugName" -> "items[0].drugName".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Required"
	case "email":
		return "Invalid email format"
	case "date":
		return "Invalid date format"
	case "slug":
		return "Slug must only contain lowercase letters, numbers, and hyphens"
	case "oneof":
		return "Must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("Must be at least %s characters", fe.Param())
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf("Must contain at least %s item(s)", fe.Param())
		default:
			return fmt.Sprintf("Must be greater than or equal to %s", fe.Param())
		}
	case "max":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("Must be at most %s characters", fe.Param())
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf("Must contain at most %s item(s)", fe.Param())
		default:
			return fmt.Sprintf("Must be less than or equal to %s", fe.Param())
		}
	}
	return fmt.Sprintf("Failed on the '%s' rule", fe.Tag())
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Struct, reflect.Map:
		return "object"
	}
	return t.String()
}
