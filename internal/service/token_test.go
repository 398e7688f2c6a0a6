package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret-test-secret-test-secret", time.Hour)

	token, exp, err := m.IssueAccess(42)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, exp.After(time.Now()))

	profileID, err := m.ParseAccess(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), profileID)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-one-secret-one-secret-one", time.Hour)
	verifier := NewTokenManager("secret-two-secret-two-secret-two", time.Hour)

	token, _, err := issuer.IssueAccess(1)
	require.NoError(t, err)

	_, err = verifier.ParseAccess(token)
	assert.Error(t, err)
}

func TestTokenManager_Expired(t *testing.T) {
	m := NewTokenManager("test-secret-test-secret-test-secret", time.Minute)
	m.now = func() time.Time { return time.Now().Add(-time.Hour) }

	token, _, err := m.IssueAccess(1)
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ParseAccess(token)
	assert.Error(t, err)
}

func TestTokenManager_Garbage(t *testing.T) {
	m := NewTokenManager("test-secret-test-secret-test-secret", time.Hour)

	_, err := m.ParseAccess("not-a-token")
	assert.Error(t, err)
}
