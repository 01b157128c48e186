package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormError_ErrorIncludesField(t *testing.T) {
	assert.Equal(t, "email: Email is required", NewFieldError("email", "Email is required").Error())
	assert.Equal(t, "boom", NewServerError("boom", nil).Error())
}

func TestFormError_UnwrapsToClassSentinel(t *testing.T) {
	assert.ErrorIs(t, NewFieldError("name", "x"), ErrValidation)
	assert.ErrorIs(t, NewServerError("x", nil), ErrServer)
	assert.ErrorIs(t, NewNetworkError("x", nil), ErrNetwork)
}

func TestFormError_UnwrapsToCause(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := NewNetworkError("Registration failed", cause)
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"field error", NewFieldError("email", "bad"), KindValidation},
		{"wrapped network", fmt.Errorf("register: %w", NewNetworkError("x", nil)), KindNetwork},
		{"bare network sentinel", fmt.Errorf("ping: %w", ErrNetwork), KindNetwork},
		{"plain error", errors.New("anything"), KindServer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestFormErrors(t *testing.T) {
	a := NewFieldError("email", "Email is required")
	b := NewFieldError("password", "Password is required")

	got := FormErrors(fmt.Errorf("register: %w", errors.Join(a, b)))
	require.Len(t, got, 2)
	assert.Same(t, a, got[0])
	assert.Same(t, b, got[1])

	assert.Empty(t, FormErrors(errors.New("plain")))
	assert.Nil(t, FormErrors(nil))
	assert.Len(t, FormErrors(NewServerError("x", errors.Join(a, b))), 1, "causes are not descended into")
}
