package entity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPersistenceError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *PersistenceError
		expected string
	}{
		{
			name:     "without code",
			err:      &PersistenceError{Op: "Create", Err: errors.New("connection refused")},
			expected: "Create: persistence failure: connection refused",
		},
		{
			name:     "with code",
			err:      &PersistenceError{Op: "Create", Code: "23503", Err: errors.New("fk violation")},
			expected: "Create: persistence failure (code 23503): fk violation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestPersistenceError_Is(t *testing.T) {
	cause := errors.New("timeout")
	err := fmt.Errorf("create article: %w", NewPersistenceError("Create", cause))

	assert.True(t, errors.Is(err, ErrPersistence))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrNotFound))

	var pe *PersistenceError
	assert.True(t, errors.As(err, &pe))
	assert.Equal(t, "Create", pe.Op)
}

func TestNewPersistenceError_Nil(t *testing.T) {
	assert.NoError(t, NewPersistenceError("Create", nil))
}

func TestMissingRelationError(t *testing.T) {
	err := fmt.Errorf("listing: %w", &MissingRelationError{ArticleID: 1, AuthorID: 42})

	assert.True(t, errors.Is(err, ErrMissingRelation))
	assert.False(t, errors.Is(err, ErrPersistence))
	assert.Contains(t, err.Error(), "article 1 references missing author 42")
}
