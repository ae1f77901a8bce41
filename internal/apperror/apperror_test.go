package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		kind    Kind
		status  int
		message string
	}{
		{"not found passthrough", NotFound("Patient"), KindNotFound, http.StatusNotFound, "Patient not found."},
		{"wrapped app error", fmt.Errorf("lookup: %w", Forbidden("nope")), KindForbidden, http.StatusForbidden, "nope"},
		{"duplicate key", fmt.Errorf("create: %w", gorm.ErrDuplicatedKey), KindConflict, http.StatusConflict, "A record with this value already exists."},
		{"record not found", gorm.ErrRecordNotFound, KindNotFound, http.StatusNotFound, "Record not found."},
		{"foreign key", gorm.ErrForeignKeyViolated, KindForeignKey, http.StatusBadRequest, "Related record not found."},
		{"postgres unique", &pgconn.PgError{Code: "23505"}, KindConflict, http.StatusConflict, "A record with this value already exists."},
		{"postgres fk", &pgconn.PgError{Code: "23503"}, KindForeignKey, http.StatusBadRequest, "Related record not found."},
		{"postgres other", &pgconn.PgError{Code: "22P02"}, KindDatabase, http.StatusBadRequest, "Database operation failed."},
		{"mysql unique", &mysql.MySQLError{Number: 1062}, KindConflict, http.StatusConflict, "A record with this value already exists."},
		{"mysql fk", &mysql.MySQLError{Number: 1452}, KindForeignKey, http.StatusBadRequest, "Related record not found."},
		{"gorm invalid data", gorm.ErrInvalidData, KindDatabase, http.StatusBadRequest, "Database operation failed."},
		{"unknown", errors.New("boom"), KindInternal, http.StatusInternalServerError, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, tt.status, got.Status())
			assert.Equal(t, tt.message, got.Message)
		})
	}
}

func TestValidationCarriesDetails(t *testing.T) {
	err := Validation([]FieldError{{Field: "stock", Message: "Must be greater than or equal to 0"}})

	assert.Equal(t, http.StatusBadRequest, err.Status())
	assert.Equal(t, "Validation failed.", err.Message)
	assert.Len(t, err.Details, 1)
}

func TestInternalUnwraps(t *testing.T) {
	cause := errors.New("disk on fire")
	err := Internal(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "internal", err.Kind.String())
}
