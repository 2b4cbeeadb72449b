// Package session owns the authenticated identity and bearer token for the
// running client. The store is created once at startup, restored from the
// local database before any command runs, and handed to whichever components
// need to read it. It caches what the backend asserted at login time; it is
// not a security boundary.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"sweetshop/internal/client/api"
	"sweetshop/internal/client/models"
	"sweetshop/internal/client/repositories/localdata"
	"sweetshop/internal/dbx"
	"sweetshop/internal/logging"
)

// Storage keys for the persisted session. Both are written and removed
// together; a half-present pair is treated as corruption.
const (
	keyIdentity    = "identity"
	keyAccessToken = "access_token"
)

// State is the session lifecycle state.
type State int

const (
	// StateUnknown means the local database has not been read yet.
	// Restore leaves this state exactly once per process lifetime.
	StateUnknown State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// AuthError wraps a failed credential exchange. The underlying api sentinel
// stays reachable through errors.Is.
type AuthError struct {
	Op  string // "login" or "register"
	Err error
}

func (e *AuthError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *AuthError) Unwrap() error { return e.Err }

// Authenticator is the credential-exchange subset of the API client.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*api.Session, error)
	Register(ctx context.Context, username, email, password string) (*api.Session, error)
}

// Store holds the session state. Identity and token are always set and
// cleared together; there is never a partial session.
type Store struct {
	mu       sync.Mutex
	state    State
	identity *models.Identity
	token    string

	auth Authenticator
	db   *sql.DB
	log  logging.Logger
}

func NewStore(auth Authenticator, db *sql.DB, log logging.Logger) *Store {
	return &Store{state: StateUnknown, auth: auth, db: db, log: log}
}

func (s *Store) storage(db dbx.DBTX) localdata.Repository {
	return localdata.NewSQLiteRepository(db)
}

// Restore reads the persisted session and resolves the store to Anonymous or
// Authenticated. A malformed or half-present record is recovered locally:
// both keys are removed and the store lands Anonymous, nothing is surfaced.
// Calling Restore again after the first resolution is a no-op.
func (s *Store) Restore(ctx context.Context) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateUnknown {
		return s.state
	}

	identity, token, ok := s.readStored(ctx)
	if !ok {
		s.clearStored(ctx)
		s.state = StateAnonymous
		return s.state
	}

	s.identity = identity
	s.token = token
	s.state = StateAuthenticated
	s.log.Debug(ctx, "session restored", "username", identity.Username)
	return s.state
}

// readStored loads and decodes both session keys. ok is false when either
// key is absent or the identity does not decode to a valid record.
func (s *Store) readStored(ctx context.Context) (*models.Identity, string, bool) {
	repo := s.storage(s.db)

	tokenBytes, err := repo.Get(ctx, keyAccessToken)
	if err != nil || len(tokenBytes) == 0 {
		return nil, "", false
	}
	identityBytes, err := repo.Get(ctx, keyIdentity)
	if err != nil || len(identityBytes) == 0 {
		return nil, "", false
	}

	var identity models.Identity
	if err := json.Unmarshal(identityBytes, &identity); err != nil {
		s.log.Warn(ctx, "stored identity is malformed, resetting session", "error", err)
		return nil, "", false
	}
	if err := identity.Validate(); err != nil {
		s.log.Warn(ctx, "stored identity is incomplete, resetting session", "error", err)
		return nil, "", false
	}

	return &identity, string(tokenBytes), true
}

// Login exchanges credentials with the backend, persists the session, and
// moves the store to Authenticated. On failure the state is untouched and
// the cause is returned wrapped in *AuthError.
func (s *Store) Login(ctx context.Context, username, password string) (*models.Identity, error) {
	sess, err := s.auth.Login(ctx, username, password)
	if err != nil {
		return nil, &AuthError{Op: "login", Err: err}
	}
	return s.commit(ctx, sess)
}

// Register creates an account and logs the new user in. Username/email
// conflicts surface through the wrapped api error.
func (s *Store) Register(ctx context.Context, username, email, password string) (*models.Identity, error) {
	sess, err := s.auth.Register(ctx, username, email, password)
	if err != nil {
		return nil, &AuthError{Op: "register", Err: err}
	}
	return s.commit(ctx, sess)
}

// commit persists token and identity in one transaction, then updates the
// in-memory pair. Nothing is written or kept on failure.
func (s *Store) commit(ctx context.Context, sess *api.Session) (*models.Identity, error) {
	identityBytes, err := json.Marshal(sess.Identity)
	if err != nil {
		return nil, fmt.Errorf("encode identity: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.storage(tx)
		if err := repo.Set(ctx, keyAccessToken, []byte(sess.AccessToken)); err != nil {
			return err
		}
		return repo.Set(ctx, keyIdentity, identityBytes)
	})
	if err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	s.mu.Lock()
	identity := sess.Identity
	s.identity = &identity
	s.token = sess.AccessToken
	s.state = StateAuthenticated
	s.mu.Unlock()

	result := identity
	return &result, nil
}

// Logout clears the persisted and in-memory session. It never fails: a
// storage error is logged and the in-memory state clears regardless, so a
// local logout always takes effect. Calling it while Anonymous is a no-op.
func (s *Store) Logout(ctx context.Context) {
	s.clearStored(ctx)

	s.mu.Lock()
	s.identity = nil
	s.token = ""
	s.state = StateAnonymous
	s.mu.Unlock()
}

func (s *Store) clearStored(ctx context.Context) {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.storage(tx)
		if err := repo.Delete(ctx, keyAccessToken); err != nil {
			return err
		}
		return repo.Delete(ctx, keyIdentity)
	})
	if err != nil {
		s.log.Warn(ctx, "failed to clear stored session", "error", err)
	}
}

// State returns the current lifecycle state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsAuthenticated reports whether both identity and token are present.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity != nil && s.token != ""
}

// IsAdmin reports whether the backend asserted the admin capability at
// login time. Route guarding on top of this is the caller's concern.
func (s *Store) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity != nil && s.identity.IsAdmin
}

// Identity returns a copy of the current identity, or nil when anonymous.
func (s *Store) Identity() *models.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return nil
	}
	identity := *s.identity
	return &identity
}

// Token returns the current bearer token, or "" when anonymous. It has the
// api.TokenSource shape and is wired into the HTTP client at startup.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}
