// Package session owns the authenticated identity and bearer token of the
// console and keeps them in durable storage.
//
// The (token, user) pair is atomic: it is written, restored and cleared as
// one unit, and readers only ever see a full pair or the logged-out zero
// value. Every change of the pair bumps a generation counter which the
// request gateway uses to tell whether a response still belongs to the
// session that issued it.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/nestify/internal/client/models"
	"github.com/dmitrijs2005/nestify/internal/client/repositories/storage"
	"github.com/dmitrijs2005/nestify/internal/logging"
)

var (
	ErrEmptyToken     = errors.New("session token is empty")
	ErrCorruptSession = errors.New("persisted session is corrupt")
)

// Keys names the storage entries holding the pair.
type Keys struct {
	Token string
	User  string
}

// DefaultKeys returns the token/user keys under prefix, e.g. "nestify_token".
func DefaultKeys(prefix string) Keys {
	return Keys{Token: prefix + "token", User: prefix + "user"}
}

type Store struct {
	storage storage.Storage
	keys    Keys
	log     logging.Logger

	// mu serialises writers with each other and with readers, so storage and
	// the in-memory pair never diverge from what a reader observes.
	mu         sync.RWMutex
	current    models.Session
	generation uint64
}

func NewStore(st storage.Storage, keys Keys, log logging.Logger) *Store {
	return &Store{storage: st, keys: keys, log: log.With("component", "session")}
}

// Init restores the persisted pair. A lone token or lone user, or a user
// record that does not decode to an identified user, is treated as corruption: both entries are
// cleared and the store starts logged out.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := s.storage.Get(ctx, s.keys.Token)
	if err != nil {
		return fmt.Errorf("read token: %w", err)
	}
	rawUser, err := s.storage.Get(ctx, s.keys.User)
	if err != nil {
		return fmt.Errorf("read user: %w", err)
	}

	if len(token) == 0 && len(rawUser) == 0 {
		s.reset()
		return nil
	}

	user, decodeErr := decodeUser(token, rawUser)
	if decodeErr != nil {
		s.log.Warn(ctx, "discarding persisted session", "reason", decodeErr.Error())
		s.reset()
		if err := s.storage.DeleteMany(ctx, s.keys.Token, s.keys.User); err != nil {
			return fmt.Errorf("clear corrupt session: %w", err)
		}
		return nil
	}

	s.current = newSession(string(token), user)
	s.generation++
	s.log.Info(ctx, "session restored", "user_id", user.ID, "role", user.Role)
	return nil
}

// Login replaces the current pair with (token, user) and persists both in
// one storage batch. On a storage error the previous pair stays in place.
func (s *Store) Login(ctx context.Context, token string, user models.User) error {
	if token == "" {
		return ErrEmptyToken
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.SetMany(ctx, map[string][]byte{
		s.keys.Token: []byte(token),
		s.keys.User:  raw,
	}); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	s.current = newSession(token, &user)
	s.generation++
	s.log.Info(ctx, "logged in", "user_id", user.ID, "role", user.Role)
	return nil
}

// Logout clears the pair and both persisted entries. It is idempotent.
// The in-memory pair is cleared even when storage fails.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clear(ctx, "logout")
}

// ExpireIfCurrent logs out only if the store is authenticated and still at
// generation. It reports whether this call performed the logout, so of many
// concurrent callers holding the same generation exactly one gets true.
func (s *Store) ExpireIfCurrent(ctx context.Context, generation uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.current.IsAuthenticated() || s.generation != generation {
		return false, nil
	}
	return true, s.clear(ctx, "authorization rejected")
}

// Snapshot returns the current pair and its generation under one lock.
func (s *Store) Snapshot() (models.Session, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyCurrent(), s.generation
}

func (s *Store) Current() models.Session {
	sess, _ := s.Snapshot()
	return sess
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.IsAuthenticated()
}

func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// clear must be called with mu held.
func (s *Store) clear(ctx context.Context, reason string) error {
	if s.current.IsAuthenticated() {
		s.generation++
		s.log.Info(ctx, "session cleared", "reason", reason, "user_id", s.current.User.ID)
	}
	s.reset()

	if err := s.storage.DeleteMany(ctx, s.keys.Token, s.keys.User); err != nil {
		return fmt.Errorf("clear persisted session: %w", err)
	}
	return nil
}

func (s *Store) reset() {
	s.current = models.Session{}
}

func (s *Store) copyCurrent() models.Session {
	out := s.current
	if out.User != nil {
		u := *out.User
		out.User = &u
	}
	return out
}

func decodeUser(token, rawUser []byte) (*models.User, error) {
	if len(token) == 0 {
		return nil, fmt.Errorf("%w: user without token", ErrCorruptSession)
	}
	if len(rawUser) == 0 {
		return nil, fmt.Errorf("%w: token without user", ErrCorruptSession)
	}
	var u models.User
	if err := json.Unmarshal(rawUser, &u); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSession, err)
	}
	if u.ID == 0 {
		return nil, fmt.Errorf("%w: token without user", ErrCorruptSession)
	}
	return &u, nil
}

func newSession(token string, user *models.User) models.Session {
	u := *user
	return models.Session{Token: token, User: &u, ExpiresAt: tokenExpiry(token)}
}

// tokenExpiry reads the exp claim without verifying the signature; the
// console cannot verify backend tokens and only displays the value.
func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
