package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-that-is-long-enough"

func TestIssueAndParseStaffToken(t *testing.T) {
	token, err := IssueStaffToken("clerk-1", testSecret, "jbo", time.Hour, time.Now())
	require.NoError(t, err)

	claims, err := ParseStaffToken(token, testSecret, "jbo")
	require.NoError(t, err)
	assert.Equal(t, "clerk-1", claims.Subject)
	assert.Len(t, claims.ID, 32)

	again, err := IssueStaffToken("clerk-1", testSecret, "jbo", time.Hour, time.Now())
	require.NoError(t, err)
	assert.NotEqual(t, token, again)
}

func TestParseStaffToken_Rejects(t *testing.T) {
	valid, err := IssueStaffToken("clerk-1", testSecret, "jbo", time.Hour, time.Now())
	require.NoError(t, err)

	_, err = ParseStaffToken(valid, "another-secret", "jbo")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	_, err = ParseStaffToken(valid, testSecret, "someone-else")
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)

	expired, err := IssueStaffToken("clerk-1", testSecret, "jbo", time.Minute, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	_, err = ParseStaffToken(expired, testSecret, "jbo")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestIssueStaffToken_Validates(t *testing.T) {
	_, err := IssueStaffToken("", testSecret, "jbo", time.Hour, time.Now())
	assert.ErrorIs(t, err, ErrEmptyStaffID)

	_, err = IssueStaffToken("clerk-1", testSecret, "jbo", 0, time.Now())
	assert.Error(t, err)
}
