package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "rtwgate/pkg/domain-errors"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code dErrors.Code
		want int
	}{
		{dErrors.CodeBadRequest, http.StatusBadRequest},
		{dErrors.CodeInvalidInput, http.StatusBadRequest},
		{dErrors.CodeValidation, http.StatusUnprocessableEntity},
		{dErrors.CodeInvariantViolation, http.StatusUnprocessableEntity},
		{dErrors.CodeUnauthorized, http.StatusUnauthorized},
		{dErrors.CodeForbidden, http.StatusForbidden},
		{dErrors.CodeNotFound, http.StatusNotFound},
		{dErrors.CodeConflict, http.StatusConflict},
		{dErrors.CodeTimeout, http.StatusGatewayTimeout},
		{dErrors.CodeUnavailable, http.StatusServiceUnavailable},
		{dErrors.CodeInternal, http.StatusInternalServerError},
		{dErrors.Code("unmapped"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.code))
		})
	}
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		status      int
		code        string
		description string
	}{
		{
			name:   "failed check insert hides its cause",
			err:    dErrors.Wrap(errors.New("pq: connection refused"), dErrors.CodeInternal, "failed to record right-to-work check"),
			status: http.StatusInternalServerError,
			code:   "internal_error",
		},
		{
			name:   "untyped error is internal",
			err:    fmt.Errorf("evidence upload: %w", errors.New("s3: access denied")),
			status: http.StatusInternalServerError,
			code:   "internal_error",
		},
		{
			name:        "unknown document type keeps its message",
			err:         dErrors.New(dErrors.CodeValidation, "Document type is not recognised"),
			status:      http.StatusUnprocessableEntity,
			code:        "validation_error",
			description: "Document type is not recognised",
		},
		{
			name:        "missing check is not found",
			err:         dErrors.New(dErrors.CodeNotFound, "right-to-work check not found"),
			status:      http.StatusNotFound,
			code:        "not_found",
			description: "right-to-work check not found",
		},
		{
			name:        "missing tenant is unauthorized",
			err:         dErrors.New(dErrors.CodeUnauthorized, "tenant context is required"),
			status:      http.StatusUnauthorized,
			code:        "unauthorized",
			description: "tenant context is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WriteError(rr, tt.err)

			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			var body errorResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			assert.Equal(t, tt.code, body.Error)
			assert.Equal(t, tt.description, body.ErrorDescription)
		})
	}
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSON(rr, http.StatusCreated, map[string]string{"status": "verified"})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"status":"verified"}`, rr.Body.String())
}
