package auth

import (
	"testing"

	"eventhub/data/models"

	"github.com/stretchr/testify/assert"
)

func TestActivationTokens(t *testing.T) {
	ts := NewTokenSource("test-secret")
	user := models.User{ID: 42, Username: "newbie", Password: "bcrypt-hash", IsActive: false}

	t.Run("round trip", func(t *testing.T) {
		token, err := ts.Issue(user)
		assert.NoError(t, err)
		assert.True(t, ts.Validate(user, token))
	})

	t.Run("token is bound to the user it was issued for", func(t *testing.T) {
		token, err := ts.Issue(user)
		assert.NoError(t, err)

		other := models.User{ID: 43, Username: "imposter", Password: "bcrypt-hash", IsActive: false}
		assert.False(t, ts.Validate(other, token))
	})

	t.Run("activation invalidates outstanding tokens", func(t *testing.T) {
		token, err := ts.Issue(user)
		assert.NoError(t, err)

		activated := user
		activated.IsActive = true
		assert.False(t, ts.Validate(activated, token))
	})

	t.Run("password change invalidates outstanding tokens", func(t *testing.T) {
		token, err := ts.Issue(user)
		assert.NoError(t, err)

		changed := user
		changed.Password = "different-hash"
		assert.False(t, ts.Validate(changed, token))
	})

	t.Run("different server secret rejects", func(t *testing.T) {
		token, err := ts.Issue(user)
		assert.NoError(t, err)

		other := NewTokenSource("other-secret")
		assert.False(t, other.Validate(user, token))
	})

	t.Run("garbage token rejects", func(t *testing.T) {
		assert.False(t, ts.Validate(user, "not.a.token"))
		assert.False(t, ts.Validate(user, ""))
	})
}
