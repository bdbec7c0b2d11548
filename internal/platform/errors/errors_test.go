package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err    *Error
		status int
	}{
		{ValidationError("bad input"), http.StatusBadRequest},
		{UnauthorizedError("who are you"), http.StatusUnauthorized},
		{ForbiddenError("admins only"), http.StatusForbidden},
		{NotFoundError("nope"), http.StatusNotFound},
		{ConflictError("already there"), http.StatusConflict},
		{InternalError("boom", nil), http.StatusInternalServerError},
		{StoreTimeoutError("slow store", nil), http.StatusGatewayTimeout},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, tt.err.HTTPStatus(), "type %s", tt.err.Type)
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := InternalError("wrapper", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "root cause")
}

func TestWithField(t *testing.T) {
	err := NotFoundError("missing").WithField("user_id", "abc")

	assert.Equal(t, "abc", err.Context["user_id"])
	assert.Equal(t, "abc", err.ToResponse().Context["user_id"])
}

func TestAsStructuredError_PassThrough(t *testing.T) {
	orig := ValidationError("keep me")
	got := AsStructuredError(orig)
	assert.Same(t, orig, got)
}

func TestAsStructuredError_WrapsPlainError(t *testing.T) {
	got := AsStructuredError(errors.New("plain"))
	require.NotNil(t, got)
	assert.Equal(t, TypeInternal, got.Type)
	assert.ErrorContains(t, got.Cause, "plain")
}

func TestAsStructuredError_Nil(t *testing.T) {
	assert.Nil(t, AsStructuredError(nil))
}
