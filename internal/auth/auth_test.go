// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package auth

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curioswitch/culinaryvision/internal/culinarydb"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := culinarydb.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return NewService(culinarydb.NewUserStore(culinarydb.NewStore(db)))
}

func TestSignUpNormalizesEmail(t *testing.T) {
	service := newTestService(t)

	user, token, err := service.SignUp(t.Context(), "  Chef@Example.COM ", " Jamie ")
	require.NoError(t, err)
	assert.Equal(t, "chef@example.com", user.Email)
	assert.Equal(t, "Jamie", user.Name)
	assert.NotEmpty(t, token)
}

func TestSignInMatchesStoredEmailOnly(t *testing.T) {
	service := newTestService(t)
	ctx := t.Context()

	signedUp, _, err := service.SignUp(ctx, "chef@example.com", "Jamie")
	require.NoError(t, err)

	user, token, err := service.SignIn(ctx, "CHEF@example.com")
	require.NoError(t, err)
	assert.Equal(t, signedUp.ID, user.ID)
	assert.NotEmpty(t, token)

	_, _, err = service.SignIn(ctx, "someone@else.com")
	assert.ErrorIs(t, err, ErrInvalidLogin)
}

func TestSignOutKeepsProfile(t *testing.T) {
	service := newTestService(t)
	ctx := t.Context()

	_, _, err := service.SignUp(ctx, "chef@example.com", "Jamie")
	require.NoError(t, err)
	require.NoError(t, service.SignOut(ctx))

	user, err := service.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)

	// Profile survives sign-out, so sign-in works again.
	_, _, err = service.SignIn(ctx, "chef@example.com")
	assert.NoError(t, err)
}

func TestMiddlewareResolvesSession(t *testing.T) {
	service := newTestService(t)
	ctx := t.Context()

	user, token, err := service.SignUp(ctx, "chef@example.com", "Jamie")
	require.NoError(t, err)

	var gotUserID string
	handler := service.Middleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		gotUserID = UserIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/get-feed", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, user.ID, gotUserID)

	req = httptest.NewRequest(http.MethodPost, "/api/get-feed", nil)
	req.Header.Set("Authorization", "Bearer session_bogus")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, GuestUserID, gotUserID)

	req = httptest.NewRequest(http.MethodPost, "/api/get-feed", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, GuestUserID, gotUserID)
}

func TestUserIDFromContextDefaultsToGuest(t *testing.T) {
	assert.Equal(t, GuestUserID, UserIDFromContext(t.Context()))
	assert.Equal(t, "u1", UserIDFromContext(ContextWithUserID(t.Context(), "u1")))
}
