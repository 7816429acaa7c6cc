package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Constructors(t *testing.T) {
	err := NewAppError(http.StatusBadRequest, CodeBadRequest, "bad", ErrBadRequest)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, CodeBadRequest, err.Code)
	assert.Equal(t, "bad", err.Message)
	assert.Equal(t, ErrBadRequest.Error(), err.Error())

	notFound := NotFound("missing")
	assert.Equal(t, http.StatusNotFound, notFound.Status)
	assert.Equal(t, CodeNotFound, notFound.Code)

	conflict := Conflict("exists")
	assert.Equal(t, http.StatusConflict, conflict.Status)
	assert.Equal(t, CodeConflict, conflict.Code)

	transition := InvalidTransition("flag already closed")
	assert.Equal(t, http.StatusConflict, transition.Status)
	assert.True(t, stderrors.Is(transition, ErrInvalidTransition))

	internal := InternalError(stderrors.New("db down"))
	assert.Equal(t, http.StatusInternalServerError, internal.Status)
	assert.Equal(t, CodeInternalError, internal.Code)

	custom := NewError("custom", ErrForbidden)
	assert.Equal(t, ErrForbidden.Error(), custom.Error())

	badReq := BadRequest("bad request")
	assert.Equal(t, http.StatusBadRequest, badReq.Status)
	assert.Equal(t, CodeInvalidInput, badReq.Code)

	unauth := Unauthorized("unauthorized")
	assert.Equal(t, http.StatusUnauthorized, unauth.Status)
	assert.Equal(t, CodeUnauthorized, unauth.Code)

	forbidden := Forbidden("forbidden")
	assert.Equal(t, http.StatusForbidden, forbidden.Status)
	assert.Equal(t, CodeForbidden, forbidden.Code)

	internalMsg := InternalServerError("boom")
	assert.Equal(t, http.StatusInternalServerError, internalMsg.Status)
	assert.Equal(t, "boom", internalMsg.Message)
	assert.Equal(t, "boom", internalMsg.Error())
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", fmt.Errorf("merchant: %w", ErrNotFound), http.StatusNotFound, CodeNotFound},
		{"already exists", ErrAlreadyExists, http.StatusConflict, CodeConflict},
		{"transition", fmt.Errorf("resolve: %w", ErrInvalidTransition), http.StatusConflict, CodeInvalidTransition},
		{"invalid input", ErrInvalidInput, http.StatusBadRequest, CodeInvalidInput},
		{"credentials", ErrInvalidCredentials, http.StatusUnauthorized, CodeInvalidCredentials},
		{"unauthorized", ErrTokenExpired, http.StatusUnauthorized, CodeUnauthorized},
		{"forbidden", ErrForbidden, http.StatusForbidden, CodeForbidden},
		{"unknown", stderrors.New("boom"), http.StatusInternalServerError, CodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromError(tt.err)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.code, got.Code)
		})
	}

	assert.Nil(t, FromError(nil))

	app := BadRequest("x")
	assert.Same(t, app, FromError(fmt.Errorf("wrapped: %w", app)))
}
