package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"card", ErrCardNotFound, true},
		{"unit", ErrUnitNotFound, true},
		{"wrapped", fmt.Errorf("failed to update unit: %w", ErrUnitNotFound), true},
		{"unknown list", ErrUnknownList, false},
		{"other", errors.New("connection refused"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNotFound(tt.err))
		})
	}
}
