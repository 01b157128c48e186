// Package services holds the client-side application services. AuthService
// is the one authoritative session: who is signed in, which accounts were
// registered from this client, and how both survive restarts.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/heva-credit/heva/internal/client/client"
	"github.com/heva-credit/heva/internal/client/models"
	"github.com/heva-credit/heva/internal/client/repositories/metadata"
	"github.com/heva-credit/heva/internal/client/validation"
	"github.com/heva-credit/heva/internal/common"
	"github.com/heva-credit/heva/internal/logging"
	"github.com/heva-credit/heva/internal/metrics"
)

// User-facing messages for backend failures.
const (
	MsgEmailRegistered = "This email address is already registered. Please use a different email or try logging in."
	MsgRegisterNetwork = "Registration failed. Please check your connection and try again."
	MsgRegisterServer  = "Registration failed. Please try again later or contact support."
	MsgResetNetwork    = "Could not reach the server. Please check your connection and try again."
	MsgResetServer     = "Password reset failed. Please try again later."
	MsgResetTooMany    = "Too many reset requests. Please wait a minute and try again."
)

// loggedOutRecord replaces the saved session when it cannot be deleted.
var loggedOutRecord = []byte(`{}`)

// DefaultResetsPerMinute bounds RequestPasswordReset when no limit is given.
const DefaultResetsPerMinute = 3

// AuthService manages the client session.
//
// Lifecycle: construct, Initialize once, use, Close. Login and Logout move
// between the anonymous and authenticated states; Register never changes
// the state and never signs the user in.
type AuthService interface {
	// Initialize restores the session from storage. Missing or unreadable
	// records are treated as empty; it never fails.
	Initialize(ctx context.Context)
	Login(ctx context.Context, email, password string, role models.Role) (models.User, error)
	Register(ctx context.Context, data models.RegisterData) error
	UpdateUser(ctx context.Context, patch models.UserPatch) (models.User, error)
	// Logout always succeeds; storage failures are only logged. When the
	// saved session cannot be deleted it is overwritten with an empty
	// record, so a restart stays signed out.
	Logout(ctx context.Context)

	CurrentUser() (models.User, bool)
	IsAuthenticated() bool
	IsAdmin() bool
	KnownUsers() []models.User

	CheckEmail(ctx context.Context, email string) (bool, error)
	RequestPasswordReset(ctx context.Context, email string) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client  client.Client
	repo    metadata.Repository
	log     logging.Logger
	metrics *metrics.Auth
	resets  *rate.Limiter

	// mu serializes state changes and their persistence. Network calls run
	// outside of it.
	mu         sync.RWMutex
	current    *models.User
	registered []models.User
}

// NewAuthService constructs an AuthService. m may be nil. resetsPerMinute
// bounds RequestPasswordReset; non-positive values use DefaultResetsPerMinute.
func NewAuthService(c client.Client, repo metadata.Repository, log logging.Logger, m *metrics.Auth, resetsPerMinute int) AuthService {
	if resetsPerMinute <= 0 {
		resetsPerMinute = DefaultResetsPerMinute
	}
	return &authService{
		client:  c,
		repo:    repo,
		log:     log,
		metrics: m,
		resets:  rate.NewLimiter(rate.Every(time.Minute/time.Duration(resetsPerMinute)), resetsPerMinute),
	}
}

func (a *authService) Initialize(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.current = nil
	a.registered = nil

	if raw, err := a.repo.Get(ctx, common.CurrentUserKey); err != nil {
		a.log.Warn(ctx, "failed to read saved session", logging.Err(err))
	} else if raw != nil {
		u, err := models.UnmarshalUser(raw)
		if err != nil {
			a.log.Warn(ctx, "ignoring malformed saved session", logging.Err(err))
		} else {
			a.current = &u
		}
	}

	if raw, err := a.repo.Get(ctx, common.RegisteredUsersKey); err != nil {
		a.log.Warn(ctx, "failed to read registered users", logging.Err(err))
	} else if raw != nil {
		users, err := models.UnmarshalRoster(raw)
		if err != nil {
			a.log.Warn(ctx, "ignoring malformed registered users", logging.Err(err))
		} else {
			a.registered = users
		}
	}

	a.log.Debug(ctx, "session restored", "authenticated", a.current != nil, "registered", len(a.registered))
}

// Login signs in the first account whose email and role match exactly,
// searching the built-in roster before registered accounts. The password
// is not checked.
//
// TODO: verify password once the backend exposes a login endpoint.
func (a *authService) Login(ctx context.Context, email, password string, role models.Role) (models.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	u, ok := models.FindUser(email, role, models.BuiltinUsers(), a.registered)
	if !ok {
		a.metrics.ObserveLogin(metrics.ResultInvalid)
		a.log.Info(ctx, "login rejected", "role", string(role))
		return models.User{}, common.ErrInvalidCredentials
	}

	raw, err := models.MarshalUser(u)
	if err != nil {
		a.metrics.ObserveLogin(metrics.ResultError)
		return models.User{}, fmt.Errorf("encode session: %w", err)
	}
	if err := a.repo.Set(ctx, common.CurrentUserKey, raw); err != nil {
		a.metrics.ObserveLogin(metrics.ResultError)
		return models.User{}, fmt.Errorf("persist session: %w", err)
	}

	a.current = &u
	a.metrics.ObserveLogin(metrics.ResultOK)
	a.log.Info(ctx, "login succeeded", "user_id", u.ID, "role", string(u.Role))
	return u, nil
}

// Register sends data to the backend with the email trimmed and
// lower-cased, the form in which the account will later be matched.
func (a *authService) Register(ctx context.Context, data models.RegisterData) error {
	data.Email = validation.NormalizeEmail(data.Email)
	if errs := validation.ValidateRegistration(data); len(errs) > 0 {
		a.metrics.ObserveRegister(metrics.ResultValidation)
		joined := make([]error, len(errs))
		for i := range errs {
			joined[i] = &errs[i]
		}
		return errors.Join(joined...)
	}

	body, err := a.client.Register(ctx, data)
	if err != nil {
		a.log.Warn(ctx, "registration failed", "email", data.Email, logging.Err(err))
		switch {
		case errors.Is(err, client.ErrUnavailable):
			a.metrics.ObserveRegister(metrics.ResultNetwork)
			return common.NewNetworkError(MsgRegisterNetwork, err)
		case errors.Is(err, client.ErrConflict):
			a.metrics.ObserveRegister(metrics.ResultServer)
			return common.NewServerError(MsgEmailRegistered, err)
		default:
			a.metrics.ObserveRegister(metrics.ResultServer)
			return common.NewServerError(MsgRegisterServer, err)
		}
	}

	a.metrics.ObserveRegister(metrics.ResultOK)
	a.log.Info(ctx, "registration accepted", "email", data.Email)

	u, err := models.UnmarshalUser(body)
	if err != nil {
		a.log.Debug(ctx, "registration response carries no user record", logging.Err(err))
		return nil
	}
	a.remember(ctx, u)
	return nil
}

// remember adds or replaces u in the registered roster so the account can
// sign in on this client. Failures are logged: the backend already accepted
// the registration.
func (a *authService) remember(ctx context.Context, u models.User) {
	a.mu.Lock()
	defer a.mu.Unlock()

	roster := append([]models.User(nil), a.registered...)
	if i := models.IndexByID(roster, u.ID); i >= 0 {
		roster[i] = u
	} else {
		roster = append(roster, u)
	}

	raw, err := models.MarshalRoster(roster)
	if err == nil {
		err = a.repo.Set(ctx, common.RegisteredUsersKey, raw)
	}
	if err != nil {
		a.log.Warn(ctx, "failed to save registered user", "user_id", u.ID, logging.Err(err))
		return
	}
	a.registered = roster
}

func (a *authService) UpdateUser(ctx context.Context, patch models.UserPatch) (models.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.current == nil {
		return models.User{}, common.ErrNotAuthenticated
	}
	if patch.IsEmpty() {
		return *a.current, nil
	}

	updated := patch.Apply(*a.current)
	raw, err := models.MarshalUser(updated)
	if err != nil {
		return models.User{}, fmt.Errorf("encode user: %w", err)
	}
	batch := map[string][]byte{common.CurrentUserKey: raw}

	var roster []models.User
	if i := models.IndexByID(a.registered, updated.ID); i >= 0 {
		roster = append([]models.User(nil), a.registered...)
		roster[i] = updated
		rawRoster, err := models.MarshalRoster(roster)
		if err != nil {
			return models.User{}, fmt.Errorf("encode registered users: %w", err)
		}
		batch[common.RegisteredUsersKey] = rawRoster
	}

	if err := a.repo.SetMany(ctx, batch); err != nil {
		return models.User{}, fmt.Errorf("persist user: %w", err)
	}

	a.current = &updated
	if roster != nil {
		a.registered = roster
	}
	a.log.Info(ctx, "profile updated", "user_id", updated.ID)
	return updated, nil
}

func (a *authService) Logout(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.current = nil
	if err := a.repo.Delete(ctx, common.CurrentUserKey); err != nil {
		a.log.Error(ctx, "failed to clear saved session", logging.Err(err))
		// A record without an id is ignored by Initialize.
		if err := a.repo.Set(ctx, common.CurrentUserKey, loggedOutRecord); err != nil {
			a.log.Error(ctx, "failed to overwrite saved session", logging.Err(err))
			return
		}
	}
	a.log.Info(ctx, "logged out")
}

func (a *authService) CurrentUser() (models.User, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.current == nil {
		return models.User{}, false
	}
	return *a.current, true
}

func (a *authService) IsAuthenticated() bool {
	_, ok := a.CurrentUser()
	return ok
}

func (a *authService) IsAdmin() bool {
	u, ok := a.CurrentUser()
	return ok && u.Role == models.RoleAdmin
}

// KnownUsers returns the built-in roster followed by registered accounts.
func (a *authService) KnownUsers() []models.User {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return append(models.BuiltinUsers(), a.registered...)
}

func (a *authService) CheckEmail(ctx context.Context, email string) (bool, error) {
	return a.client.CheckEmail(ctx, email)
}

func (a *authService) RequestPasswordReset(ctx context.Context, email string) error {
	if fe := validation.ValidateField(validation.FieldEmail, email, validation.FieldContext{}); fe != nil {
		a.metrics.ObservePasswordReset(metrics.ResultValidation)
		return fe
	}

	if !a.resets.Allow() {
		a.metrics.ObservePasswordReset(metrics.ResultLimited)
		return common.NewServerError(MsgResetTooMany, client.ErrTooManyRequests)
	}

	if err := a.client.RequestPasswordReset(ctx, email); err != nil {
		a.log.Warn(ctx, "password reset request failed", logging.Err(err))
		if errors.Is(err, client.ErrUnavailable) {
			a.metrics.ObservePasswordReset(metrics.ResultNetwork)
			return common.NewNetworkError(MsgResetNetwork, err)
		}
		a.metrics.ObservePasswordReset(metrics.ResultServer)
		if errors.Is(err, client.ErrTooManyRequests) {
			return common.NewServerError(MsgResetTooMany, err)
		}
		return common.NewServerError(MsgResetServer, err)
	}

	a.metrics.ObservePasswordReset(metrics.ResultOK)
	return nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
