package errs

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestNewDatabaseError_Classification(t *testing.T) {
	tests := []struct {
		name       string
		cause      error
		wantStatus int
	}{
		{"record not found", gorm.ErrRecordNotFound, http.StatusNotFound},
		{"gorm duplicate key", gorm.ErrDuplicatedKey, http.StatusConflict},
		{"pg duplicate key text", errors.New(`duplicate key value violates unique constraint "users_email_key"`), http.StatusConflict},
		{"gorm foreign key", gorm.ErrForeignKeyViolated, http.StatusBadRequest},
		{"pg foreign key text", errors.New(`insert or update on table "tickets" violates foreign key constraint`), http.StatusBadRequest},
		{"connection refused", errors.New("dial tcp: connection refused"), http.StatusServiceUnavailable},
		{"anything else", errors.New("syntax error at or near"), http.StatusInternalServerError},
		{"nil cause", nil, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := NewDatabaseError("find", "user", tt.cause)
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
			assert.Equal(t, tt.cause, apiErr.Cause)
		})
	}
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusOf(NewNotFound("ticket")))
	assert.Equal(t, http.StatusConflict, StatusOf(NewAlreadyExists("user")))

	// plain errors default to 500
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("boom")))
}
