package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	err := NewParsingError("bad cell", stderrors.New("not a number"))
	assert.Equal(t, "[PARSING] bad cell: not a number", err.Error())

	plain := NewNoDataError("peak year")
	assert.Equal(t, "[NO_DATA] no data for peak year", plain.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	cause := stderrors.New("root cause")
	err := NewStorageError("write failed", cause)

	assert.True(t, stderrors.Is(err, cause))

	wrapped := fmt.Errorf("stage: %w", err)
	var appErr *AppError
	require.True(t, stderrors.As(wrapped, &appErr))
	assert.Equal(t, ErrTypeStorage, appErr.Type)
}

func TestAppError_WithContext(t *testing.T) {
	err := NewDivisionByZeroError("decline_pct").
		WithContext("from_year", 1990).
		WithContext("to_year", 2005)

	assert.Equal(t, 1990, err.Context["from_year"])
	assert.Equal(t, 2005, err.Context["to_year"])
}

func TestTypePredicates(t *testing.T) {
	assert.True(t, IsNoData(NewNoDataError("x")))
	assert.False(t, IsNoData(NewDivisionByZeroError("x")))
	assert.True(t, IsDivisionByZero(fmt.Errorf("wrap: %w", NewDivisionByZeroError("x"))))
	assert.False(t, IsDivisionByZero(stderrors.New("plain")))
}

func TestErrorHandler_MapsAppErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"no data", NewNoDataError("global max"), http.StatusNotFound},
		{"division by zero", NewDivisionByZeroError("decline_pct"), http.StatusUnprocessableEntity},
		{"validation", NewValidationError("n must be positive"), http.StatusBadRequest},
		{"api error passthrough", ErrInvalidParameter, http.StatusBadRequest},
		{"unknown", stderrors.New("boom"), http.StatusInternalServerError},
	}

	h := NewErrorHandler(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
			h.HandleError(rec, req, tt.err)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
