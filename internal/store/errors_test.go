package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "generic error", err: errors.New("some error"), expected: false},
		{name: "ErrNotFound", err: ErrNotFound, expected: true},
		{name: "ErrDeckNotFound", err: ErrDeckNotFound, expected: true},
		{
			name:     "wrapped ErrDeckNotFound",
			err:      NewStoreError("deck", "load", "no snapshot", ErrDeckNotFound),
			expected: true,
		},
		{name: "ErrInvalidEntity", err: fmt.Errorf("load: %w", ErrInvalidEntity), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk full")
	err := NewStoreError("deck", "save", "failed to write snapshot", cause)
	assert.Equal(t, "save operation on deck failed: failed to write snapshot: disk full", err.Error())
	assert.ErrorIs(t, err, cause)

	var storeErr *StoreError
	assert.True(t, errors.As(fmt.Errorf("outer: %w", err), &storeErr))
	assert.Equal(t, "save", storeErr.Operation)

	bare := NewStoreError("deck", "load", "corrupt snapshot", nil)
	assert.Equal(t, "load operation on deck failed: corrupt snapshot", bare.Error())
	assert.Nil(t, bare.Unwrap())
}
