package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Kind classifies an error for the HTTP layer.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindConflict
	KindForeignKey
	KindDatabase
)

var statusByKind = map[Kind]int{
	KindInternal:     http.StatusInternalServerError,
	KindValidation:   http.StatusBadRequest,
	KindNotFound:     http.StatusNotFound,
	KindBadRequest:   http.StatusBadRequest,
	KindUnauthorized: http.StatusUnauthorized,
	KindForbidden:    http.StatusForbidden,
	KindConflict:     http.StatusConflict,
	KindForeignKey:   http.StatusBadRequest,
	KindDatabase:     http.StatusBadRequest,
}

var kindNames = map[Kind]string{
	KindInternal:     "internal",
	KindValidation:   "validation",
	KindNotFound:     "not_found",
	KindBadRequest:   "bad_request",
	KindUnauthorized: "unauthorized",
	KindForbidden:    "forbidden",
	KindConflict:     "conflict",
	KindForeignKey:   "foreign_key",
	KindDatabase:     "database",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Status is the HTTP status code rendered for the kind.
func (k Kind) Status() int {
	if code, ok := statusByKind[k]; ok {
		return code
	}
	return http.StatusInternalServerError
}

// FieldError is one violated rule of a request body.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Error struct {
	Kind    Kind
	Message string
	Details []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Status() int { return e.Kind.Status() }

// NotFound names the missing resource, e.g. NotFound("Patient") renders "Patient not found.".
func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " not found."}
}

func BadRequest(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func Validation(details []FieldError) *Error {
	return &Error{Kind: KindValidation, Message: "Validation failed.", Details: details}
}

// Internal wraps an unexpected error. The message is only shown to clients in development.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: err.Error(), Err: err}
}

// Classify maps any error returned by a handler or service onto the taxonomy.
// Persistence errors are recognised from gorm's translated sentinels first and
// then from the raw postgres and mysql driver errors.
func Classify(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &Error{Kind: KindConflict, Message: "A record with this value already exists.", Err: err}
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &Error{Kind: KindNotFound, Message: "Record not found.", Err: err}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return foreignKey(err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return &Error{Kind: KindConflict, Message: "A record with this value already exists.", Err: err}
		case "23503":
			return foreignKey(err)
		}
		return database(err)
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1062:
			return &Error{Kind: KindConflict, Message: "A record with this value already exists.", Err: err}
		case 1451, 1452:
			return foreignKey(err)
		}
		return database(err)
	}

	if isGormError(err) {
		return database(err)
	}

	return Internal(err)
}

func foreignKey(err error) *Error {
	return &Error{Kind: KindForeignKey, Message: "Related record not found.", Err: err}
}

func database(err error) *Error {
	return &Error{Kind: KindDatabase, Message: "Database operation failed.", Err: err}
}

var gormErrors = []error{
	gorm.ErrInvalidTransaction,
	gorm.ErrMissingWhereClause,
	gorm.ErrPrimaryKeyRequired,
	gorm.ErrModelValueRequired,
	gorm.ErrInvalidData,
	gorm.ErrInvalidField,
	gorm.ErrInvalidValue,
	gorm.ErrInvalidValueOfLength,
	gorm.ErrCheckConstraintViolated,
}

func isGormError(err error) bool {
	for _, target := range gormErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
