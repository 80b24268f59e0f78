// Package session holds the one piece of application-wide mutable identity
// state: the bearer token and the authenticated profile. Everything else in
// the client gates itself on this package.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sandeepkv93/lifequest/internal/api"
	"github.com/sandeepkv93/lifequest/internal/cache"
	"github.com/sandeepkv93/lifequest/internal/model"
)

var ErrNotAuthenticated = errors.New("session: not authenticated")

type Session struct {
	mu      sync.Mutex
	storage Storage
	cache   *cache.Store
	client  *api.Client
	now     func() time.Time

	token string
	user  *model.User
}

func New(storage Storage, store *cache.Store) *Session {
	return &Session{
		storage: storage,
		cache:   store,
		now:     time.Now,
	}
}

// AttachClient wires the API client after construction; the client needs
// this session's Token as its token source, so the two are built in
// sequence.
func (s *Session) AttachClient(client *api.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.client = client
}

// Load restores a previous session from durable storage. An expired token
// is discarded instead of restored so the app starts signed out rather
// than bouncing off a 401.
func (s *Session) Load(ctx context.Context) error {
	token, err := s.storage.LoadToken(ctx)
	if errors.Is(err, ErrNoValue) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("session: load token: %w", err)
	}
	if tokenExpired(token, s.now()) {
		return s.SignOut(ctx)
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	if user, err := s.storage.LoadProfile(ctx); err == nil {
		s.mu.Lock()
		s.user = &user
		s.mu.Unlock()
	}
	return nil
}

// Token implements api.TokenSource. Empty while signed out.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// User returns the in-memory profile, which may be the durable snapshot
// from a previous run. Nil while signed out or before the first fetch.
func (s *Session) User() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// SignIn exchanges credentials for a token, persists it, then fetches and
// persists the profile. A profile fetch failure after a good login is not
// fatal; the next read retries.
func (s *Session) SignIn(ctx context.Context, req model.LoginRequest) error {
	resp, err := s.client.Login(ctx, req)
	if err != nil {
		return err
	}
	if err := s.storage.SaveToken(ctx, resp.JWTToken); err != nil {
		return fmt.Errorf("session: persist token: %w", err)
	}
	s.mu.Lock()
	s.token = resp.JWTToken
	s.user = nil
	s.mu.Unlock()

	_, _ = s.fetchUser(ctx)
	return nil
}

// Register creates the account; the caller signs in afterwards.
func (s *Session) Register(ctx context.Context, req model.UserCreateRequest) error {
	return s.client.RegisterUser(ctx, req)
}

// SignOut clears the token, the profile snapshot and every cached
// collection of this owner.
func (s *Session) SignOut(ctx context.Context) error {
	s.mu.Lock()
	owner := int64(0)
	if s.user != nil {
		owner = s.user.ID
	}
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if s.cache != nil {
		if owner != 0 {
			s.cache.InvalidateOwner(owner)
		}
		s.cache.Reset()
	}
	if err := s.storage.Clear(ctx); err != nil {
		return fmt.Errorf("session: clear storage: %w", err)
	}
	return nil
}

// CurrentUser returns the profile, fetching it lazily. A 401 tears the
// session down and reports ErrNotAuthenticated; any other fetch failure
// falls back to the last snapshot when one exists.
func (s *Session) CurrentUser(ctx context.Context) (model.User, error) {
	if !s.Authenticated() {
		return model.User{}, ErrNotAuthenticated
	}
	if u := s.User(); u != nil {
		return *u, nil
	}
	return s.fetchUser(ctx)
}

// RefreshUser invalidates the held profile and refetches it.
func (s *Session) RefreshUser(ctx context.Context) (model.User, error) {
	if !s.Authenticated() {
		return model.User{}, ErrNotAuthenticated
	}
	return s.fetchUser(ctx)
}

func (s *Session) fetchUser(ctx context.Context) (model.User, error) {
	user, err := s.client.AuthenticatedUser(ctx)
	if err != nil {
		if api.IsUnauthorized(err) {
			_ = s.SignOut(ctx)
			return model.User{}, ErrNotAuthenticated
		}
		if snapshot := s.User(); snapshot != nil {
			return *snapshot, nil
		}
		return model.User{}, err
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	_ = s.storage.SaveProfile(ctx, user)
	return user, nil
}

// tokenExpired inspects the JWT exp claim without verifying the signature;
// verification is the server's job, this only avoids restoring a token the
// server is guaranteed to reject. Tokens without a parseable exp pass
// through and fail server-side if invalid.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
