// Package session holds the signed-in user and bearer token.
// It is hydrated from a Store at start-up and cleared on logout.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"warranty/internal/domain"
)

const (
	UserKey  = "warranty_bot_user"
	TokenKey = "warranty_bot_token"
)

// Store is durable string key-value storage.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// Authenticator is the phone login call; WarrantyService implements it.
type Authenticator interface {
	TelegramAuth(ctx context.Context, rawPhone string) (domain.AuthResponse, error)
}

type Session struct {
	store Store

	mu     sync.RWMutex
	user   *domain.User
	token  string
	status domain.AuthStatus
}

func New(store Store) *Session {
	return &Session{store: store}
}

// Hydrate loads the persisted user and token. A corrupt user record is
// logged and ignored rather than failing start-up.
func (s *Session) Hydrate(ctx context.Context) error {
	raw, ok, err := s.store.Get(ctx, UserKey)
	if err != nil {
		return err
	}
	token, _, err := s.store.Get(ctx, TokenKey)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	if !ok {
		return nil
	}
	var u domain.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		slog.WarnContext(ctx, "failed to parse saved user", "err", err)
		return nil
	}
	s.user = &u
	s.status = u.Status
	return nil
}

func (s *Session) User() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

// Token implements apiclient.TokenSource.
func (s *Session) Token(context.Context) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Status() domain.AuthStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *Session) SetStatus(st domain.AuthStatus) {
	s.mu.Lock()
	s.status = st
	s.mu.Unlock()
}

// CheckAuth logs in by phone. Only a CREATED answer that carries both a user
// and a token is persisted; other statuses are just recorded.
func (s *Session) CheckAuth(ctx context.Context, auth Authenticator, rawPhone string) (domain.AuthStatus, error) {
	resp, err := auth.TelegramAuth(ctx, rawPhone)
	if err != nil {
		return "", err
	}

	if resp.Status == domain.AuthCreated {
		if err := s.Save(ctx, resp); err != nil {
			return "", err
		}
	}

	s.SetStatus(resp.Status)
	return resp.Status, nil
}

// Save persists the user and token from an auth answer. Answers missing
// either are ignored.
func (s *Session) Save(ctx context.Context, resp domain.AuthResponse) error {
	if resp.User == nil || resp.Token == "" {
		return nil
	}
	b, err := json.Marshal(resp.User)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, UserKey, string(b)); err != nil {
		return err
	}
	if err := s.store.Set(ctx, TokenKey, resp.Token); err != nil {
		return err
	}
	u := *resp.User
	s.mu.Lock()
	s.user, s.token, s.status = &u, resp.Token, resp.Status
	s.mu.Unlock()
	return nil
}

// Logout clears memory first so a failing store still ends the session locally.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.user, s.token, s.status = nil, "", ""
	s.mu.Unlock()

	if err := s.store.Delete(ctx, UserKey, TokenKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
