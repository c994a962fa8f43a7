// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package auth implements the session stub. There is no credential
// verification, only a stored profile and a minted session token; requests
// without a valid session act as the guest pseudo-user.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/curioswitch/culinaryvision/internal/culinarydb"
)

// GuestUserID scopes storage for unauthenticated requests.
const GuestUserID = "guest"

// ErrInvalidLogin is returned when sign-in does not match the stored
// profile.
var ErrInvalidLogin = errors.New("auth: no matching user")

// NewService returns a Service over users.
func NewService(users *culinarydb.UserStore) *Service {
	return &Service{users: users}
}

// Service manages the stored profile and session.
type Service struct {
	users *culinarydb.UserStore
}

// SignUp stores a new profile and mints a session token.
func (s *Service) SignUp(ctx context.Context, email string, name string) (culinarydb.User, string, error) {
	user := culinarydb.User{
		ID:        "user_" + uuid.NewString(),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now(),
	}
	if err := s.users.SaveUser(ctx, user); err != nil {
		return culinarydb.User{}, "", err
	}
	token, err := s.mintSession(ctx, user.ID)
	if err != nil {
		return culinarydb.User{}, "", err
	}
	return user, token, nil
}

// SignIn mints a new session when email matches the stored profile. Only
// the email is checked.
func (s *Service) SignIn(ctx context.Context, email string) (culinarydb.User, string, error) {
	user, err := s.users.User(ctx)
	if err != nil {
		return culinarydb.User{}, "", err
	}
	if user == nil || user.Email != strings.ToLower(strings.TrimSpace(email)) {
		return culinarydb.User{}, "", ErrInvalidLogin
	}
	token, err := s.mintSession(ctx, user.ID)
	if err != nil {
		return culinarydb.User{}, "", err
	}
	return *user, token, nil
}

// SignOut deletes the stored session. The profile is kept.
func (s *Service) SignOut(ctx context.Context) error {
	return s.users.DeleteSession(ctx)
}

// CurrentUser returns the stored profile when a session exists.
func (s *Service) CurrentUser(ctx context.Context) (*culinarydb.User, error) {
	session, err := s.users.Session(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	return s.users.User(ctx)
}

func (s *Service) mintSession(ctx context.Context, userID string) (string, error) {
	token := "session_" + uuid.NewString()
	if err := s.users.SaveSession(ctx, culinarydb.Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: time.Now(),
	}); err != nil {
		return "", err
	}
	return token, nil
}

type userIDKey struct{}

// UserIDFromContext returns the request's resolved user id.
func UserIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey{}).(string); ok && id != "" {
		return id
	}
	return GuestUserID
}

// ContextWithUserID returns a context carrying the user id, for tests and
// internal callers.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// Middleware resolves the bearer session token to a user id in the request
// context. Absent or invalid sessions resolve to the guest user.
func (s *Service) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := GuestUserID
		if token, ok := bearerToken(r); ok {
			session, err := s.users.Session(r.Context())
			if err == nil && session != nil && session.Token == token {
				userID = session.UserID
			}
		}
		next.ServeHTTP(w, r.WithContext(ContextWithUserID(r.Context(), userID)))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", false
	}
	return token, true
}
