package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/pders01/neuronest/internal/api"
	"github.com/pders01/neuronest/internal/logging"
	"github.com/pders01/neuronest/internal/models"
)

var (
	// ErrNotAuthenticated is returned by commands that need a logged-in user
	ErrNotAuthenticated = errors.New("not logged in (run: neuronest login)")
	// ErrNoToken is returned when a login succeeds without a token in the response
	ErrNoToken = errors.New("server returned no access token")
	// ErrNoProfile is returned when the profile request succeeds without a user
	ErrNoProfile = errors.New("server returned no user profile")
	// ErrNotSaved wraps token storage failures during login
	ErrNotSaved = errors.New("could not save the session")
)

// State is where the session is in its lifecycle
type State int

const (
	StateUninitialized State = iota
	StateChecking
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateChecking:
		return "checking"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Authenticator is the part of the API the session needs
type Authenticator interface {
	Login(ctx context.Context, creds models.Credentials) (*models.Token, error)
	Signup(ctx context.Context, creds models.Credentials) (*models.User, error)
	CurrentUser(ctx context.Context, token string) (*models.User, error)
}

// Store holds the current user and token. It is safe for concurrent use
// and doubles as the API client's token source.
type Store struct {
	auth   Authenticator
	tokens TokenStore
	logger logging.Logger

	mu      sync.RWMutex
	state   State
	user    *models.User
	token   string
	pending int
	err     string
}

// New creates an uninitialized session
func New(auth Authenticator, tokens TokenStore, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Store{auth: auth, tokens: tokens, logger: logger}
}

// SetAuthenticator wires the API after construction, for when the API client
// itself needs the session as its token source.
func (s *Store) SetAuthenticator(auth Authenticator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth = auth
}

// Init restores a stored session. An invalid or expired stored token is
// discarded silently; only storage read failures are returned.
func (s *Store) Init(ctx context.Context) error {
	stored, err := s.tokens.Load()
	if err != nil {
		s.setState(StateAnonymous)
		return err
	}
	if stored == "" {
		s.setState(StateAnonymous)
		return nil
	}

	s.mu.Lock()
	s.state = StateChecking
	s.token = stored
	s.user = nil
	s.err = ""
	s.mu.Unlock()

	user, err := s.auth.CurrentUser(ctx, stored)
	if err == nil && user == nil {
		err = ErrNoProfile
	}
	if err != nil {
		s.logger.Debugf("stored token rejected, starting anonymous: %v", err)
		s.reset()
		if clearErr := s.tokens.Clear(); clearErr != nil {
			s.logger.Warnf("failed to clear stored token: %v", clearErr)
		}
		return nil
	}

	s.mu.Lock()
	s.user = user
	s.state = StateAuthenticated
	s.mu.Unlock()
	return nil
}

// Login exchanges credentials for a token, loads the profile and saves the
// token. The session is committed only when all three succeed; on any
// failure it is left anonymous and the error returned.
func (s *Store) Login(ctx context.Context, creds models.Credentials) error {
	s.begin()
	defer s.end()

	token, user, err := s.login(ctx, creds)
	if err == nil {
		s.mu.Lock()
		s.token = token
		s.user = user
		s.state = StateAuthenticated
		s.err = ""
		s.mu.Unlock()
		return nil
	}

	msg := api.Message(err)
	if msg == "" {
		msg = "Login failed. Please check username and password."
	}
	s.reset()
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
	if clearErr := s.tokens.Clear(); clearErr != nil {
		s.logger.Warnf("failed to clear stored token: %v", clearErr)
	}
	return err
}

func (s *Store) login(ctx context.Context, creds models.Credentials) (string, *models.User, error) {
	tok, err := s.auth.Login(ctx, creds)
	if err != nil {
		return "", nil, err
	}
	if tok == nil || tok.AccessToken == "" {
		return "", nil, ErrNoToken
	}

	user, err := s.auth.CurrentUser(ctx, tok.AccessToken)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, ErrNoProfile
	}

	if err := s.tokens.Save(tok.AccessToken); err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrNotSaved, err)
	}
	return tok.AccessToken, user, nil
}

// Signup creates an account without logging in
func (s *Store) Signup(ctx context.Context, creds models.Credentials) (*models.User, error) {
	s.begin()
	defer s.end()

	user, err := s.auth.Signup(ctx, creds)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = api.Message(err)
		if s.err == "" {
			s.err = "Signup failed. Username might already exist."
		}
		return nil, err
	}
	s.err = ""
	return user, nil
}

// Logout forgets the session locally and in storage
func (s *Store) Logout() error {
	s.reset()
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()
	return s.tokens.Clear()
}

// IsAuthenticated requires both a token and a loaded profile
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

// Token implements api.TokenSource
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the loaded profile, or nil
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// State returns the lifecycle state
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Loading reports a startup check or an outstanding login/signup
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == StateChecking || s.pending > 0
}

// Err is the last login/signup error message
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *Store) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

func (s *Store) reset() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.state = StateAnonymous
	s.mu.Unlock()
}

func (s *Store) begin() {
	s.mu.Lock()
	s.pending++
	s.err = ""
	s.mu.Unlock()
}

func (s *Store) end() {
	s.mu.Lock()
	s.pending--
	s.mu.Unlock()
}
