package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
	"strconv"
	"time"

	"eventhub/data/models"

	"github.com/golang-jwt/jwt/v5"
)

const activationTokenTTL = 72 * time.Hour

// TokenSource issues and validates account activation tokens. Tokens are
// HMAC-signed JWTs whose signing key is derived from the server secret plus
// the user's password hash and active flag, so a token stops validating the
// moment the account activates or the password changes.
type TokenSource struct {
	secret []byte
}

func NewTokenSource(secret string) *TokenSource {
	return &TokenSource{secret: []byte(secret)}
}

// signingKey binds the key to the user's current credential state.
func (ts *TokenSource) signingKey(u models.User) []byte {
	mac := hmac.New(sha256.New, ts.secret)
	mac.Write([]byte(u.Password))
	mac.Write([]byte(strconv.FormatBool(u.IsActive)))
	return mac.Sum(nil)
}

// Issue creates an activation token for the user.
func (ts *TokenSource) Issue(u models.User) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(u.ID, 10),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(activationTokenTTL)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ts.signingKey(u))
	if err != nil {
		return "", fmt.Errorf("error signing activation token: %v", err)
	}
	return signed, nil
}

// Validate reports whether the token was issued for this user in their
// current state. An already-active account invalidates all of its tokens.
func (ts *TokenSource) Validate(u models.User, tokenString string) bool {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return ts.signingKey(u), nil
		})
	if err != nil || !token.Valid {
		return false
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return false
	}
	return claims.Subject == strconv.FormatInt(u.ID, 10)
}
