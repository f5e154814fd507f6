package auth_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/andela-oeyiowuawi/Bucketlist/internal/auth"
	"github.com/andela-oeyiowuawi/Bucketlist/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserFinder struct {
	users map[int]*user.User
}

func (s *stubUserFinder) GetByID(ctx context.Context, id int) (*user.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, user.ErrUserNotFound
}

func TestMiddleware(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", time.Hour)
	finder := &stubUserFinder{users: map[int]*user.User{
		1: {ID: 1, Email: "active@example.com", Active: true},
		2: {ID: 2, Email: "inactive@example.com", Active: false},
	}}
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var gotUserID int
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, gotOK = auth.GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	guarded := auth.Middleware(tm, finder, logger)(next)

	serve := func(authorization string) *httptest.ResponseRecorder {
		gotUserID, gotOK = 0, false
		req := httptest.NewRequest(http.MethodGet, "/bucketlists", nil)
		if authorization != "" {
			req.Header.Set("Authorization", authorization)
		}
		w := httptest.NewRecorder()
		guarded.ServeHTTP(w, req)
		return w
	}

	t.Run("missing token", func(t *testing.T) {
		w := serve("")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Not Authenticated")
		assert.False(t, gotOK)
	})

	t.Run("malformed token", func(t *testing.T) {
		w := serve("garbage")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Not Authenticated")
	})

	t.Run("raw token resolves acting user", func(t *testing.T) {
		token, err := tm.Generate(1, "active@example.com")
		require.NoError(t, err)

		w := serve(token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, gotOK)
		assert.Equal(t, 1, gotUserID)
	})

	t.Run("bearer prefix accepted", func(t *testing.T) {
		token, err := tm.Generate(1, "active@example.com")
		require.NoError(t, err)

		w := serve("Bearer " + token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, gotUserID)
	})

	t.Run("inactive account rejected", func(t *testing.T) {
		token, err := tm.Generate(2, "inactive@example.com")
		require.NoError(t, err)

		w := serve(token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Not Authenticated")
	})

	t.Run("token for deleted account rejected", func(t *testing.T) {
		token, err := tm.Generate(99, "ghost@example.com")
		require.NoError(t, err)

		w := serve(token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		short := auth.NewTokenManager("test-secret", time.Millisecond)
		token, err := short.Generate(1, "active@example.com")
		require.NoError(t, err)
		time.Sleep(10 * time.Millisecond)

		req := httptest.NewRequest(http.MethodGet, "/bucketlists", nil)
		req.Header.Set("Authorization", token)
		w := httptest.NewRecorder()
		auth.Middleware(short, finder, logger)(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
