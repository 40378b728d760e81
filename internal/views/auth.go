package views

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/pders01/neuronest/internal/api"
	"github.com/pders01/neuronest/internal/models"
)

const (
	// MinUsernameLength matches the server's username constraint
	MinUsernameLength = 3
	// MinPasswordLength matches the server's password constraint
	MinPasswordLength = 6
)

var (
	ErrUsernameRequired  = errors.New("username is required")
	ErrPasswordRequired  = errors.New("password is required")
	ErrUsernameTooShort  = errors.New("username must be at least 3 characters")
	ErrPasswordTooShort  = errors.New("password must be at least 6 characters")
	ErrPasswordsMismatch = errors.New("passwords do not match")
)

// form holds the submit/busy/error state shared by the auth forms
type form struct {
	mu         sync.Mutex
	submitting bool
	err        string
}

func (f *form) begin() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitting {
		return false
	}
	f.submitting = true
	f.err = ""
	return true
}

func (f *form) finish(err error, fallback string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
	if err == nil {
		f.err = ""
		return
	}
	f.err = api.Message(err)
	if f.err == "" {
		f.err = fallback
	}
}

func (f *form) fail(err error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err.Error()
	return err
}

// isSubmitting reports an outstanding submission
func (f *form) isSubmitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Err is the message shown above the form
func (f *form) Err() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// LoginForm is the login page
type LoginForm struct {
	form
	Username string
	Password string

	session Session
}

// NewLoginForm creates a login form bound to session
func NewLoginForm(session Session) *LoginForm {
	return &LoginForm{session: session}
}

// Validate checks the input before submission
func (f *LoginForm) Validate() error {
	if strings.TrimSpace(f.Username) == "" {
		return ErrUsernameRequired
	}
	if f.Password == "" {
		return ErrPasswordRequired
	}
	return nil
}

// Submit logs in
func (f *LoginForm) Submit(ctx context.Context) error {
	if err := f.Validate(); err != nil {
		return f.fail(err)
	}
	if !f.begin() {
		return ErrBusy
	}
	err := f.session.Login(ctx, models.Credentials{Username: strings.TrimSpace(f.Username), Password: f.Password})
	f.finish(err, "Login failed.")
	return err
}

// SignupForm is the account creation page
type SignupForm struct {
	form
	Username string
	Password string
	Confirm  string

	session Session
}

// NewSignupForm creates a signup form bound to session
func NewSignupForm(session Session) *SignupForm {
	return &SignupForm{session: session}
}

// Validate checks lengths and the password confirmation
func (f *SignupForm) Validate() error {
	username := strings.TrimSpace(f.Username)
	switch {
	case username == "":
		return ErrUsernameRequired
	case len(username) < MinUsernameLength:
		return ErrUsernameTooShort
	case len(f.Password) < MinPasswordLength:
		return ErrPasswordTooShort
	case f.Password != f.Confirm:
		return ErrPasswordsMismatch
	}
	return nil
}

// Submit creates the account. The user still has to log in afterwards.
func (f *SignupForm) Submit(ctx context.Context) (*models.User, error) {
	if err := f.Validate(); err != nil {
		return nil, f.fail(err)
	}
	if !f.begin() {
		return nil, ErrBusy
	}
	user, err := f.session.Signup(ctx, models.Credentials{Username: strings.TrimSpace(f.Username), Password: f.Password})
	f.finish(err, "Signup failed.")
	return user, err
}

// Account is the account page
type Account struct {
	session Session
}

// NewAccount creates the account page
func NewAccount(session Session) *Account {
	return &Account{session: session}
}

// User returns the logged in user, or nil
func (a *Account) User() *models.User {
	if !a.session.IsAuthenticated() {
		return nil
	}
	return a.session.User()
}

// Logout ends the session
func (a *Account) Logout() error {
	return a.session.Logout()
}
