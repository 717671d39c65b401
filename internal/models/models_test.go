package models

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSentinel(t *testing.T) {
	assert.True(t, IsSentinel("无"))
	assert.True(t, IsSentinel("无 "))
	assert.False(t, IsSentinel("宋体"))
	assert.False(t, IsSentinel(""))
	assert.False(t, IsSentinel(" 无"))
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("底层原因")
	appErr := NewInternalError("操作失败", cause)
	assert.ErrorIs(t, appErr, cause)
	assert.Contains(t, appErr.Error(), "底层原因")
}

func TestHTTPCodeOf(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPCodeOf(fmt.Errorf("%w: .exe", ErrUnsupportedFormat)))
	assert.Equal(t, http.StatusBadRequest, HTTPCodeOf(fmt.Errorf("%w: x", ErrMalformedPayload)))
	assert.Equal(t, http.StatusInternalServerError, HTTPCodeOf(fmt.Errorf("%w: x", ErrIOFailure)))
	assert.Equal(t, http.StatusInternalServerError, HTTPCodeOf(errors.New("其他")))
}
