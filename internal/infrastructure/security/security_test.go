package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/storerating/rating-system/internal/core/domain"
)

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("Secret!Pass1")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret!Pass1", hash)
	assert.True(t, h.Verify("Secret!Pass1", hash))
	assert.False(t, h.Verify("secret!pass1", hash))

	again, err := h.Hash("Secret!Pass1")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "hashes must be salted")
}

func TestNewBcryptHasher_ClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(99).cost)
	assert.Equal(t, 12, NewBcryptHasher(12).cost)
}

func TestJWTIssuer_RoundTrip(t *testing.T) {
	j := NewJWTIssuer("secret")

	token, err := j.Issue("user-1", domain.RoleOwner, time.Now().Add(time.Hour))
	require.NoError(t, err)

	id, err := j.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, &domain.Identity{UserID: "user-1", Role: domain.RoleOwner}, id)
}

func TestJWTIssuer_Expired(t *testing.T) {
	j := NewJWTIssuer("secret")
	token, err := j.Issue("user-1", domain.RoleUser, time.Now().Add(time.Hour))
	require.NoError(t, err)

	j.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = j.Verify(token)
	assert.ErrorIs(t, err, domain.ErrExpiredToken)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestJWTIssuer_Invalid(t *testing.T) {
	j := NewJWTIssuer("secret")
	good, err := j.Issue("user-1", domain.RoleUser, time.Now().Add(time.Hour))
	require.NoError(t, err)

	otherKey, err := NewJWTIssuer("other").Issue("user-1", domain.RoleUser, time.Now().Add(time.Hour))
	require.NoError(t, err)

	badRole, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID:           "user-1",
		Role:             "superuser",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID: "user-1",
		Role:   "user",
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims{
		UserID:           "user-1",
		Role:             "user",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := map[string]string{
		"garbage":        "not.a.token",
		"empty":          "",
		"wrong key":      otherKey,
		"tampered":       tamper(good),
		"unknown role":   badRole,
		"missing expiry": noExpiry,
		"wrong alg":      hs512,
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := j.Verify(token)
			assert.ErrorIs(t, err, domain.ErrInvalidToken)
		})
	}
}

// tamper swaps one character inside the signature.
func tamper(token string) string {
	b := []byte(token)
	i := len(b) - 10
	if b[i] == 'A' {
		b[i] = 'B'
	} else {
		b[i] = 'A'
	}
	return string(b)
}
