package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/heva-credit/heva/internal/client/models"
	"github.com/heva-credit/heva/internal/client/validation"
	"github.com/heva-credit/heva/internal/common"
)

// getSimpleText and getPassword are swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// errNotSignedIn is returned by commands that need a session.
var errNotSignedIn = errors.New("not signed in")

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// reportError prints err the way a form would: one line per field problem,
// or a single banner line.
func reportError(err error) {
	fes := common.FormErrors(err)
	if len(fes) == 0 {
		printlnFn("Error:", err.Error())
		return
	}
	for _, fe := range fes {
		if fe.Field != "" {
			printlnFn(fmt.Sprintf("  %s: %s", fe.Field, fe.Message))
		} else {
			printlnFn(fe.Message)
		}
	}
}

// promptRole asks for admin or user; an empty answer means user.
func (a *App) promptRole() (models.Role, error) {
	for {
		s, err := getSimpleText(a.reader, "Account type (user/admin) [user]", os.Stdout)
		if err != nil {
			return "", err
		}
		if s == "" {
			return models.RoleUser, nil
		}
		role, err := models.ParseRole(s)
		if err == nil {
			return role, nil
		}
		printlnFn("Please answer user or admin")
	}
}

// Login asks for email, role and password and starts a session. The email
// is normalized the same way registration stores it.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	role, err := a.promptRole()
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer wipe(password)

	u, err := a.auth.Login(ctx, validation.NormalizeEmail(email), string(password), role)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			printlnFn("Invalid email, password or account type")
		} else {
			reportError(err)
		}
		return err
	}

	printlnFn(fmt.Sprintf("Welcome, %s!", u.DisplayName()))
	return nil
}

// Logout ends the session. It cannot fail.
func (a *App) Logout(ctx context.Context) error {
	a.auth.Logout(ctx)
	printlnFn("Signed out")
	return nil
}

// Forgot requests a password reset email.
func (a *App) Forgot(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter the email you registered with", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.auth.RequestPasswordReset(ctx, email); err != nil {
		reportError(err)
		return err
	}

	printlnFn(fmt.Sprintf("If an account exists for %s, a reset link is on its way.", email))
	return nil
}

// WhoAmI prints the signed-in profile.
func (a *App) WhoAmI(ctx context.Context) error {
	u, ok := a.auth.CurrentUser()
	if !ok {
		printlnFn("Not signed in")
		return errNotSignedIn
	}

	printlnFn(renderProfile(u))
	return nil
}
