package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const errTest = Error("test error")

func TestError_Is_Success(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{
			name:   "same sentinel",
			err:    errTest,
			target: errTest,
		},
		{
			name:   "wrapped matches sentinel",
			err:    errTest.Wrap(New("cause")),
			target: errTest,
		},
		{
			name:   "wrapf matches sentinel",
			err:    errTest.Wrapf("cause %d", 1),
			target: errTest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.target)
		})
	}
}

func TestError_Is_NoMatch(t *testing.T) {
	other := Error("other error")

	assert.NotErrorIs(t, errTest, other)
	assert.NotErrorIs(t, errTest.Wrap(New("cause")), other)
}

func TestError_Wrap_Unwrap(t *testing.T) {
	cause := New("underlying cause")
	err := errTest.Wrap(cause)

	require.EqualError(t, err, "test error -- underlying cause")
	require.ErrorIs(t, err, cause)
}

func TestError_Wrap_NilCause(t *testing.T) {
	err := errTest.Wrap(nil)
	assert.EqualError(t, err, "test error")
}
