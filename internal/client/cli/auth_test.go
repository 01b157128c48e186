package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heva-credit/heva/internal/client/config"
	"github.com/heva-credit/heva/internal/client/models"
	"github.com/heva-credit/heva/internal/client/services"
	"github.com/heva-credit/heva/internal/common"
	"github.com/heva-credit/heva/internal/logging"
)

// ---- fake AuthService ----

type fakeAuth struct {
	mu sync.Mutex

	current *models.User
	known   []models.User

	loginEmail, loginPassword string
	loginRole                 models.Role
	loginErr                  error

	registered  []models.RegisterData
	registerErr error

	patches   []models.UserPatch
	updateErr error

	resetEmails []string
	resetErr    error

	emailFree  bool
	emailCalls int

	pingErr      error
	logoutCalled bool
}

var _ services.AuthService = (*fakeAuth)(nil)

func (f *fakeAuth) Initialize(context.Context) {}

func (f *fakeAuth) Login(_ context.Context, email, password string, role models.Role) (models.User, error) {
	f.loginEmail, f.loginPassword, f.loginRole = email, password, role
	if f.loginErr != nil {
		return models.User{}, f.loginErr
	}
	u := models.User{ID: "u-1", Name: "Emma Rodriguez", Email: email, Role: role}
	f.current = &u
	return u, nil
}

func (f *fakeAuth) Register(_ context.Context, data models.RegisterData) error {
	f.registered = append(f.registered, data)
	return f.registerErr
}

func (f *fakeAuth) UpdateUser(_ context.Context, p models.UserPatch) (models.User, error) {
	f.patches = append(f.patches, p)
	if f.updateErr != nil {
		return models.User{}, f.updateErr
	}
	u := p.Apply(*f.current)
	f.current = &u
	return u, nil
}

func (f *fakeAuth) Logout(context.Context) {
	f.logoutCalled = true
	f.current = nil
}

func (f *fakeAuth) CurrentUser() (models.User, bool) {
	if f.current == nil {
		return models.User{}, false
	}
	return *f.current, true
}

func (f *fakeAuth) IsAuthenticated() bool { return f.current != nil }
func (f *fakeAuth) IsAdmin() bool         { return f.current != nil && f.current.Role == models.RoleAdmin }
func (f *fakeAuth) KnownUsers() []models.User {
	return f.known
}

func (f *fakeAuth) CheckEmail(context.Context, string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.emailCalls++
	return f.emailFree, nil
}

func (f *fakeAuth) RequestPasswordReset(_ context.Context, email string) error {
	f.resetEmails = append(f.resetEmails, email)
	return f.resetErr
}

func (f *fakeAuth) Ping(context.Context) error  { return f.pingErr }
func (f *fakeAuth) Close(context.Context) error { return nil }

// ---- helpers ----

// stubInputs feeds scripted answers to getSimpleText and getPassword.
func stubInputs(t *testing.T, texts, passwords []string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, prompt string, _ io.Writer) (string, error) {
		if len(texts) == 0 {
			return "", io.EOF
		}
		s := texts[0]
		texts = texts[1:]
		return s, nil
	}
	getPassword = func(string, io.Writer) ([]byte, error) {
		if len(passwords) == 0 {
			return nil, io.EOF
		}
		s := passwords[0]
		passwords = passwords[1:]
		return []byte(s), nil
	}
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.EmailCheckDebounce = time.Millisecond
	c.RequestTimeout = time.Second
	return c
}

func newTestApp(f *fakeAuth) *App {
	return &App{
		config: testConfig(),
		log:    logging.Nop(),
		auth:   f,
		reader: bufio.NewReader(strings.NewReader("")),
	}
}

// ---- login / logout ----

func TestLogin_Success(t *testing.T) {
	out := captureOutput(t)
	stubInputs(t, []string{"admin@heva.com", "admin"}, []string{"whatever"})

	f := &fakeAuth{}
	require.NoError(t, newTestApp(f).Login(context.Background()))

	assert.Equal(t, "admin@heva.com", f.loginEmail)
	assert.Equal(t, "whatever", f.loginPassword)
	assert.Equal(t, models.RoleAdmin, f.loginRole)
	assert.Contains(t, *out, "Welcome, Emma Rodriguez!")
}

func TestLogin_NormalizesTypedEmail(t *testing.T) {
	captureOutput(t)
	stubInputs(t, []string{"  Admin@HEVA.com ", "admin"}, []string{"pw"})

	f := &fakeAuth{}
	require.NoError(t, newTestApp(f).Login(context.Background()))
	assert.Equal(t, "admin@heva.com", f.loginEmail)
}

func TestLogin_DefaultRoleAndRetry(t *testing.T) {
	out := captureOutput(t)
	stubInputs(t, []string{"emma@example.com", "root", ""}, []string{"x"})

	f := &fakeAuth{}
	require.NoError(t, newTestApp(f).Login(context.Background()))
	assert.Equal(t, models.RoleUser, f.loginRole)
	assert.Contains(t, *out, "Please answer user or admin")
}

func TestLogin_InvalidCredentials(t *testing.T) {
	out := captureOutput(t)
	stubInputs(t, []string{"nobody@x.com", "user"}, []string{"pw"})

	f := &fakeAuth{loginErr: common.ErrInvalidCredentials}
	err := newTestApp(f).Login(context.Background())
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
	assert.Contains(t, *out, "Invalid email, password or account type")
}

func TestLogin_InputError(t *testing.T) {
	captureOutput(t)
	stubInputs(t, nil, nil)

	err := newTestApp(&fakeAuth{}).Login(context.Background())
	require.ErrorIs(t, err, io.EOF)
}

func TestLogout(t *testing.T) {
	captureOutput(t)
	f := &fakeAuth{current: &models.User{ID: "u-1"}}

	require.NoError(t, newTestApp(f).Logout(context.Background()))
	assert.True(t, f.logoutCalled)
	assert.False(t, f.IsAuthenticated())
}

// ---- forgot / whoami ----

func TestForgot(t *testing.T) {
	out := captureOutput(t)
	stubInputs(t, []string{"emma@example.com"}, nil)

	f := &fakeAuth{}
	require.NoError(t, newTestApp(f).Forgot(context.Background()))
	assert.Equal(t, []string{"emma@example.com"}, f.resetEmails)
	assert.Contains(t, *out, "If an account exists for emma@example.com, a reset link is on its way.")
}

func TestForgot_ReportsFormError(t *testing.T) {
	out := captureOutput(t)
	stubInputs(t, []string{"bad"}, nil)

	f := &fakeAuth{resetErr: common.NewFieldError("email", "Please enter a valid email address")}
	require.Error(t, newTestApp(f).Forgot(context.Background()))
	assert.Contains(t, *out, "  email: Please enter a valid email address")
}

func TestWhoAmI(t *testing.T) {
	out := captureOutput(t)

	a := newTestApp(&fakeAuth{})
	require.ErrorIs(t, a.WhoAmI(context.Background()), errNotSignedIn)
	assert.Contains(t, *out, "Not signed in")

	u := models.BuiltinUsers()[1]
	a = newTestApp(&fakeAuth{current: &u})
	require.NoError(t, a.WhoAmI(context.Background()))
	last := (*out)[len(*out)-1]
	assert.Contains(t, last, "Emma Rodriguez")
	assert.Contains(t, last, "Rodriguez Designs")
	assert.Contains(t, last, "742")
}

// ---- register ----

func TestRegister_FieldByField(t *testing.T) {
	out := captureOutput(t)
	stubInputs(t,
		[]string{"A", "Ann Lee", "bad", "ann@lee.io", ""},
		[]string{"abc", "Secret12", "Secret13", "Secret12"},
	)

	f := &fakeAuth{emailFree: true}
	require.NoError(t, newTestApp(f).Register(context.Background()))

	require.Len(t, f.registered, 1)
	assert.Equal(t, models.RegisterData{
		FirstName: "Ann", LastName: "Lee", Email: "ann@lee.io", Password: "Secret12", Role: models.RoleUser,
	}, f.registered[0])

	assert.Contains(t, *out, "  Name must be at least 2 characters")
	assert.Contains(t, *out, "  Please enter a valid email address")
	assert.Contains(t, *out, "  Password must be at least 6 characters")
	assert.Contains(t, *out, "  Passwords do not match")
	assert.Contains(t, *out, "Registration successful! Please sign in with 'login'.")
	assert.False(t, f.IsAuthenticated())
	assert.Equal(t, 1, f.emailCalls)
}

func TestRegister_TakenEmailBlocksSubmit(t *testing.T) {
	out := captureOutput(t)
	stubInputs(t, []string{"Ann Lee", "taken@lee.io", "admin"}, []string{"Secret12", "Secret12"})

	f := &fakeAuth{emailFree: false}
	err := newTestApp(f).Register(context.Background())
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Empty(t, f.registered)
	assert.Contains(t, *out, "  This email is already registered")
}

func TestRegister_ServerErrorReported(t *testing.T) {
	out := captureOutput(t)
	stubInputs(t, []string{"Ann Lee", "ann@lee.io", ""}, []string{"Secret12", "Secret12"})

	f := &fakeAuth{emailFree: true, registerErr: common.NewServerError(services.MsgEmailRegistered, nil)}
	require.Error(t, newTestApp(f).Register(context.Background()))
	assert.Contains(t, *out, services.MsgEmailRegistered)
}

// ---- update / users ----

func stubAssignments(t *testing.T, lines []string) {
	t.Helper()
	orig := getAssignments
	getAssignments = func(*bufio.Reader, io.Writer) ([]string, error) { return lines, nil }
	t.Cleanup(func() { getAssignments = orig })
}

func TestUpdate(t *testing.T) {
	out := captureOutput(t)
	stubAssignments(t, []string{"location = Austin, TX", "creditScore=780"})

	u := models.BuiltinUsers()[1]
	f := &fakeAuth{current: &u}
	require.NoError(t, newTestApp(f).Update(context.Background()))

	require.Len(t, f.patches, 1)
	assert.Equal(t, "Austin, TX", *f.patches[0].Location)
	assert.Equal(t, 780, *f.patches[0].CreditScore)
	assert.Contains(t, *out, "Profile updated")
}

func TestUpdate_RequiresSession(t *testing.T) {
	captureOutput(t)
	require.ErrorIs(t, newTestApp(&fakeAuth{}).Update(context.Background()), errNotSignedIn)
}

func TestUpdate_BadInputNeverReachesService(t *testing.T) {
	captureOutput(t)
	stubAssignments(t, []string{"creditScore=high"})

	u := models.BuiltinUsers()[1]
	f := &fakeAuth{current: &u}
	require.Error(t, newTestApp(f).Update(context.Background()))
	assert.Empty(t, f.patches)
}

func TestParsePatch(t *testing.T) {
	p, err := parsePatch([]string{"name=Emma R.", "yearsInBusiness=4", "applicationStatus=pending"})
	require.NoError(t, err)
	assert.Equal(t, "Emma R.", *p.Name)
	assert.Equal(t, 4, *p.YearsInBusiness)
	assert.Equal(t, "pending", *p.ApplicationStatus)

	p, err = parsePatch(nil)
	require.NoError(t, err)
	assert.True(t, p.IsEmpty())

	for _, bad := range []string{"nonsense", "id=x", "shoeSize=9", "creditScore=7.5"} {
		_, err := parsePatch([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestUsers(t *testing.T) {
	out := captureOutput(t)

	u := models.BuiltinUsers()[1]
	require.ErrorIs(t, newTestApp(&fakeAuth{current: &u}).Users(context.Background()), errAdminOnly)

	admin := models.BuiltinUsers()[0]
	f := &fakeAuth{current: &admin, known: models.BuiltinUsers()}
	require.NoError(t, newTestApp(f).Users(context.Background()))

	table := (*out)[len(*out)-1]
	lines := strings.Split(table, "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "admin@heva.com")
	assert.Contains(t, lines[2], "approved")
}

func TestReportError_PlainError(t *testing.T) {
	out := captureOutput(t)
	reportError(errors.New("disk full"))
	assert.Equal(t, []string{"Error: disk full"}, *out)
}
