package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestSignAndVerify(t *testing.T) {
	userID := uuid.New()

	token, err := Sign(testSecret, userID, "member", time.Now(), time.Hour)
	require.NoError(t, err)

	identity, err := NewVerifier(testSecret).Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, identity.UserID)
	assert.Equal(t, "member", identity.Role)
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := Sign(testSecret, uuid.New(), "member", time.Now(), time.Hour)
	require.NoError(t, err)

	_, err = NewVerifier("another-secret-another-secret-ab").Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	token, err := Sign(testSecret, uuid.New(), "member", time.Now().Add(-2*time.Hour), time.Hour)
	require.NoError(t, err)

	_, err = NewVerifier(testSecret).Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_Garbage(t *testing.T) {
	_, err := NewVerifier(testSecret).Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_NilUserID(t *testing.T) {
	tokenStr, err := Sign(testSecret, uuid.Nil, "member", time.Now(), time.Hour)
	require.NoError(t, err)

	id, err := NewVerifier(testSecret).Verify(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, id.UserID)
}
