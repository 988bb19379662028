package errors

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapConflict_KeepsReason(t *testing.T) {
	err := WrapConflict(ErrClassroomBusy)

	assert.True(t, errors.Is(err, ErrClassroomBusy))
	assert.True(t, errors.Is(err, ErrConflict))
	assert.False(t, errors.Is(err, ErrTeacherBusy))
	assert.Equal(t, "classroom busy: conflict", Message(err))
}

func TestFromStore(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
		is       error
	}{
		{
			name:     "business error passes through",
			err:      WrapNotFound("invoice", "42"),
			wantCode: ErrCodeNotFound,
			is:       ErrNotFound,
		},
		{
			name:     "driver error is wrapped",
			err:      sql.ErrConnDone,
			wantCode: ErrCodeDatabaseError,
			is:       sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromStore(tt.err)

			var be *BusinessError
			assert.True(t, errors.As(got, &be))
			assert.Equal(t, tt.wantCode, be.Code)
			assert.True(t, errors.Is(got, tt.is))
		})
	}

	assert.NoError(t, FromStore(nil))
}

func TestWrapValidation_Message(t *testing.T) {
	err := WrapValidation("discount %s exceeds amount %s", "10", "5")

	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "discount 10 exceeds amount 5", Message(err))
	assert.Equal(t, "VALIDATION_ERROR: discount 10 exceeds amount 5 (validation failed)", err.Error())
}
