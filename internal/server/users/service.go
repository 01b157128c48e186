// Package users implements account registration for the dev backend.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/heva-credit/heva/internal/client/models"
	"github.com/heva-credit/heva/internal/client/validation"
	"github.com/heva-credit/heva/internal/common"
)

// ErrInvalid is matched by *ValidationError.
var ErrInvalid = errors.New("invalid registration")

// ValidationError lists the payload fields that failed validation.
type ValidationError struct {
	Fields []common.FormError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for i := range e.Fields {
		msgs = append(msgs, e.Fields[i].Error())
	}
	return fmt.Sprintf("%s: %s", ErrInvalid, strings.Join(msgs, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }

// Availability is the result of an email lookup.
type Availability struct {
	Email           string
	NormalizedEmail string
	Available       bool
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register validates data, normalizes the email and stores the user.
// Duplicate emails return ErrEmailTaken.
func (s *Service) Register(ctx context.Context, data models.RegisterData) (*User, error) {
	if errs := validation.ValidateRegistration(data); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	user := &User{
		FirstName: strings.TrimSpace(data.FirstName),
		LastName:  strings.TrimSpace(data.LastName),
		Email:     validation.NormalizeEmail(data.Email),
		Role:      data.Role,
	}

	user, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// CheckEmail reports whether email is free to register.
func (s *Service) CheckEmail(ctx context.Context, email string) (Availability, error) {
	res := Availability{Email: email, NormalizedEmail: validation.NormalizeEmail(email)}

	taken, err := s.repo.Exists(ctx, res.NormalizedEmail)
	if err != nil {
		return res, fmt.Errorf("error checking email: %w", err)
	}
	res.Available = !taken
	return res, nil
}

// RequestPasswordReset accepts a reset request. Unknown addresses are
// accepted as well; known reports whether a mail would go out.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (known bool, err error) {
	if !validation.IsEmail(strings.TrimSpace(email)) {
		return false, &ValidationError{Fields: []common.FormError{
			*common.NewFieldError(validation.FieldEmail, "Please enter a valid email address"),
		}}
	}

	_, err = s.repo.GetUserByEmail(ctx, validation.NormalizeEmail(email))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrNotFound):
		return false, nil
	}
	return false, fmt.Errorf("error looking up user: %w", err)
}

// List returns every registered user.
func (s *Service) List(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}
