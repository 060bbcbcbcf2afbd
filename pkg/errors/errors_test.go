package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	cause := stderrors.New("boom")

	err := Wrap(cause, ErrorTypeQuery, "query failed")
	require.NotNil(t, err)
	assert.Equal(t, "query: query failed: boom", err.Error())
	assert.True(t, stderrors.Is(err, cause))
	assert.NotEmpty(t, err.Stack)

	assert.Nil(t, Wrap(nil, ErrorTypeQuery, "nothing"))
}

func TestWrapPreservesStack(t *testing.T) {
	inner := New(ErrorTypeFile, "read failed")
	outer := Wrap(inner, ErrorTypeAuthentication, "construction failed")

	assert.Equal(t, inner.Stack, outer.Stack)
	assert.Equal(t, ErrorTypeAuthentication, TypeOf(outer))
	assert.True(t, IsType(outer, ErrorTypeAuthentication))
	assert.False(t, IsType(outer, ErrorTypeFile))
}

func TestDetails(t *testing.T) {
	err := Newf(ErrorTypeResolution, "failed to resolve %s", "connection.role").
		WithDetail("field", "connection.role")

	v, ok := err.Detail("field")
	require.True(t, ok)
	assert.Equal(t, "connection.role", v)

	_, ok = err.Detail("missing")
	assert.False(t, ok)
}

func TestTypeOfPlainError(t *testing.T) {
	assert.Equal(t, ErrorType(""), TypeOf(stderrors.New("plain")))
	assert.False(t, IsType(stderrors.New("plain"), ErrorTypeQuery))
}
