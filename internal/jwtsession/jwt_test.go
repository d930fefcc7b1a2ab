package jwtsession

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndValidate(t *testing.T) {
	svc := NewService("test-key", "moneyguard-test", 15*time.Minute)

	token, err := svc.Issue("jane", "Jane Doe", "attempt-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "jane", claims.Username)
	assert.Equal(t, "Jane Doe", claims.FullName)
	assert.Equal(t, "attempt-1", claims.AttemptID)
	assert.Equal(t, "attempt-1", claims.ID)
	assert.Equal(t, "moneyguard-test", claims.Issuer)
}

func TestValidate_RejectsWrongKey(t *testing.T) {
	issuer := NewService("key-a", "moneyguard-test", time.Minute)
	verifier := NewService("key-b", "moneyguard-test", time.Minute)

	token, err := issuer.Issue("jane", "", "attempt-1")
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.Error(t, err)
}

func TestValidate_RejectsExpired(t *testing.T) {
	svc := NewService("test-key", "moneyguard-test", -time.Minute)

	token, err := svc.Issue("jane", "", "attempt-1")
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err)
}
