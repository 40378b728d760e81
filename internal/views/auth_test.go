package views

import (
	"context"
	"errors"
	"testing"

	"github.com/pders01/neuronest/internal/api"
)

func TestLoginFormValidate(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		want     error
	}{
		{"valid", "alice", "secret", nil},
		{"missing username", "  ", "secret", ErrUsernameRequired},
		{"missing password", "alice", "", ErrPasswordRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewLoginForm(&fakeSession{})
			f.Username, f.Password = tt.username, tt.password
			if err := f.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLoginFormSubmit(t *testing.T) {
	session := &fakeSession{}
	f := NewLoginForm(session)
	f.Username, f.Password = " alice ", "secret"

	if err := f.Submit(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !session.IsAuthenticated() {
		t.Error("expected session to be authenticated")
	}
	if session.User().Username != "alice" {
		t.Errorf("expected trimmed username, got %q", session.User().Username)
	}
	if f.Err() != "" || f.isSubmitting() {
		t.Errorf("expected clean form state, got err=%q submitting=%v", f.Err(), f.isSubmitting())
	}
}

func TestLoginFormSubmitFailure(t *testing.T) {
	session := &fakeSession{loginErr: &api.ServerError{Status: 401, Detail: "Incorrect username or password"}}
	f := NewLoginForm(session)
	f.Username, f.Password = "alice", "wrong"

	if err := f.Submit(context.Background()); !api.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if f.Err() != "Incorrect username or password" {
		t.Errorf("expected server detail, got %q", f.Err())
	}
	if f.isSubmitting() {
		t.Error("expected submitting to be cleared")
	}
}

func TestLoginFormInvalidDoesNotCallSession(t *testing.T) {
	session := &fakeSession{}
	f := NewLoginForm(session)

	if err := f.Submit(context.Background()); err == nil {
		t.Fatal("expected validation error")
	}
	if session.logins != 0 {
		t.Errorf("expected no login attempt, got %d", session.logins)
	}
	if f.Err() == "" {
		t.Error("expected validation message")
	}
}

func TestSignupFormValidate(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		confirm  string
		want     error
	}{
		{"valid", "alice", "secret1", "secret1", nil},
		{"missing username", "", "secret1", "secret1", ErrUsernameRequired},
		{"short username", "al", "secret1", "secret1", ErrUsernameTooShort},
		{"short password", "alice", "abc", "abc", ErrPasswordTooShort},
		{"mismatch", "alice", "secret1", "secret2", ErrPasswordsMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewSignupForm(&fakeSession{})
			f.Username, f.Password, f.Confirm = tt.username, tt.password, tt.confirm
			if err := f.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSignupFormSubmit(t *testing.T) {
	session := &fakeSession{}
	f := NewSignupForm(session)
	f.Username, f.Password, f.Confirm = "alice", "secret1", "secret1"

	user, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("expected alice, got %q", user.Username)
	}
	if session.IsAuthenticated() {
		t.Error("expected signup not to log in")
	}
}

func TestSignupFormSubmitValidationError(t *testing.T) {
	session := &fakeSession{signupErr: &api.ValidationError{
		Status: 422,
		Fields: []api.FieldIssue{{Loc: []any{"body", "username"}, Msg: "Username already registered"}},
	}}
	f := NewSignupForm(session)
	f.Username, f.Password, f.Confirm = "alice", "secret1", "secret1"

	if _, err := f.Submit(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if f.Err() != "Username already registered" {
		t.Errorf("expected field message, got %q", f.Err())
	}
}

func TestAccount(t *testing.T) {
	session := &fakeSession{}
	a := NewAccount(session)
	if a.User() != nil {
		t.Error("expected no user when logged out")
	}

	if err := session.Login(context.Background(), credsFor("alice")); err != nil {
		t.Fatal(err)
	}
	if a.User() == nil || a.User().Username != "alice" {
		t.Errorf("expected alice, got %+v", a.User())
	}

	if err := a.Logout(); err != nil {
		t.Fatal(err)
	}
	if a.User() != nil {
		t.Error("expected no user after logout")
	}
}
