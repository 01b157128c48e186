package cli

import (
	"context"
	"os"
	"time"

	"github.com/heva-credit/heva/internal/client/availability"
	"github.com/heva-credit/heva/internal/client/models"
	"github.com/heva-credit/heva/internal/client/validation"
	"github.com/heva-credit/heva/internal/common"
)

var registrationPrompts = []struct {
	field  string
	prompt string
	secret bool
}{
	{validation.FieldName, "Full name", false},
	{validation.FieldEmail, "Email", false},
	{validation.FieldPassword, "Password", true},
	{validation.FieldConfirmPassword, "Confirm password", true},
}

// Register walks through the registration form. Each field is validated
// when it is left and re-asked until it passes; the email is checked for
// availability in the background while the password is typed.
func (a *App) Register(ctx context.Context) error {
	form := validation.NewRegistrationForm(validation.FieldContext{
		CheckStrength: a.config.PasswordStrengthCheck,
		MinStrength:   a.config.MinPasswordStrength,
	})

	checker := availability.NewChecker(a.auth.CheckEmail, a.config.EmailCheckDebounce, a.log, a.metrics)
	defer checker.Close()

	settled := make(chan struct{}, 1)
	checker.OnChange(func(string, availability.Status) {
		select {
		case settled <- struct{}{}:
		default:
		}
	})

	for _, p := range registrationPrompts {
		for {
			value, err := a.readField(p.prompt, p.secret)
			if err != nil {
				return err
			}

			form.Change(p.field, value)
			if p.field == validation.FieldEmail {
				checker.Schedule(value)
			}
			form.Blur(p.field)

			msg := form.VisibleError(p.field)
			if msg == "" {
				break
			}
			printlnFn("  " + msg)
		}
	}

	role, err := a.promptRole()
	if err != nil {
		return err
	}

	email := form.Value(validation.FieldEmail)
	deadline := time.After(a.config.EmailCheckDebounce + a.config.RequestTimeout)
wait:
	for checker.Status(email) == availability.Checking {
		select {
		case <-settled:
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline:
			break wait
		}
	}
	form.Context.EmailAvailable = checker.Available()

	if !form.Submit() {
		for _, fe := range form.Errors() {
			printlnFn("  " + fe.Message)
		}
		return common.ErrValidation
	}

	first, last := validation.SplitName(form.Value(validation.FieldName))
	data := models.RegisterData{
		FirstName: first,
		LastName:  last,
		Email:     email,
		Password:  form.Value(validation.FieldPassword),
		Role:      role,
	}

	if err := a.auth.Register(ctx, data); err != nil {
		reportError(err)
		return err
	}

	printlnFn("Registration successful! Please sign in with 'login'.")
	return nil
}

func (a *App) readField(prompt string, secret bool) (string, error) {
	if !secret {
		return getSimpleText(a.reader, prompt, os.Stdout)
	}
	b, err := getPassword(prompt, os.Stdout)
	if err != nil {
		return "", err
	}
	s := string(b)
	wipe(b)
	return s, nil
}
