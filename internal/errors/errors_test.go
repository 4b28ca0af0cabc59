package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPError_Is(t *testing.T) {
	testCases := []struct {
		status int
		target error
		want   bool
	}{
		{status: http.StatusUnauthorized, target: ErrAuth, want: true},
		{status: http.StatusForbidden, target: ErrPermission, want: true},
		{status: http.StatusNotFound, target: ErrNotFound, want: true},
		{status: http.StatusInternalServerError, target: ErrAuth, want: false},
		{status: http.StatusUnauthorized, target: ErrPermission, want: false},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%d is %v", tc.status, tc.target), func(t *testing.T) {
			err := fmt.Errorf("wrapped: %w", &HTTPError{Op: "op", Status: tc.status})

			assert.Equal(t, tc.want, errors.Is(err, tc.target))
		})
	}
}

func TestHTTPError_Message(t *testing.T) {
	assert.Equal(t, "login: HTTP error! status: 500", (&HTTPError{Op: "login", Status: 500}).Error())
	assert.Equal(t, "login: HTTP error! status: 401: bad password", (&HTTPError{Op: "login", Status: 401, Detail: "bad password"}).Error())
}

func TestIsUpstream(t *testing.T) {
	assert.True(t, IsUpstream(&HTTPError{Status: 502}))
	assert.True(t, IsUpstream(fmt.Errorf("list: %w", &NetworkError{Op: "list", Err: errors.New("refused")})))
	assert.True(t, IsUpstream(fmt.Errorf("%w: missing id", ErrMalformedResponse)))
	assert.False(t, IsUpstream(ErrValidation))
	assert.False(t, IsUpstream(&StreamError{Err: errors.New("reset")}))
}

func TestStreamError(t *testing.T) {
	cause := errors.New("connection reset")
	err := &StreamError{Partial: "Hello", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "5 chars")
	assert.Equal(t, "stream error: connection reset", (&StreamError{Err: cause}).Error())
}
