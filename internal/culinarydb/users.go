// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package culinarydb

import "context"

const (
	scopeAuth  = "auth"
	keyUser    = "user"
	keySession = "session"
)

// NewUserStore returns a UserStore over store.
func NewUserStore(store *Store) *UserStore {
	return &UserStore{store: store}
}

// UserStore persists the stored user profile and session token.
type UserStore struct {
	store *Store
}

// User returns the stored profile, or nil if none exists.
func (s *UserStore) User(ctx context.Context) (*User, error) {
	var user User
	ok, err := s.store.get(ctx, scopeAuth, keyUser, &user)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &user, nil
}

// SaveUser replaces the stored profile.
func (s *UserStore) SaveUser(ctx context.Context, user User) error {
	return s.store.put(ctx, scopeAuth, keyUser, verUser, user)
}

// Session returns the stored session, or nil if none exists.
func (s *UserStore) Session(ctx context.Context) (*Session, error) {
	var session Session
	ok, err := s.store.get(ctx, scopeAuth, keySession, &session)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &session, nil
}

// SaveSession replaces the stored session.
func (s *UserStore) SaveSession(ctx context.Context, session Session) error {
	return s.store.put(ctx, scopeAuth, keySession, verSession, session)
}

// DeleteSession removes the stored session.
func (s *UserStore) DeleteSession(ctx context.Context) error {
	return s.store.delete(ctx, scopeAuth, keySession)
}
