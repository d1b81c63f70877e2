package auth

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionStore(t *testing.T) {
	store := NewSessionStore()

	t.Run("create and look up", func(t *testing.T) {
		token, err := store.Create(7)
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, int64(7), store.UserID(token))
	})

	t.Run("unknown token yields zero", func(t *testing.T) {
		assert.Equal(t, int64(0), store.UserID("no-such-token"))
	})

	t.Run("delete ends the session", func(t *testing.T) {
		token, err := store.Create(8)
		assert.NoError(t, err)
		store.Delete(token)
		assert.Equal(t, int64(0), store.UserID(token))
	})

	t.Run("tokens are unique", func(t *testing.T) {
		a, err := store.Create(1)
		assert.NoError(t, err)
		b, err := store.Create(1)
		assert.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("concurrent access", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(n int64) {
				defer wg.Done()
				token, err := store.Create(n)
				assert.NoError(t, err)
				assert.Equal(t, n, store.UserID(token))
				store.Delete(token)
			}(int64(i + 100))
		}
		wg.Wait()
	})
}

func TestSessionCookie(t *testing.T) {
	t.Run("login cookie", func(t *testing.T) {
		c := Cookie("sometoken")
		assert.Equal(t, SessionCookieName, c.Name)
		assert.Equal(t, "sometoken", c.Value)
		assert.True(t, c.HttpOnly)
		assert.False(t, c.Expires.IsZero())
	})

	t.Run("logout cookie expires immediately", func(t *testing.T) {
		c := Cookie("")
		assert.Equal(t, -1, c.MaxAge)
	})
}

func TestTokenFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", TokenFromRequest(r))

	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "abc"})
	assert.Equal(t, "abc", TokenFromRequest(r))
}
