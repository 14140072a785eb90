package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	issued := Principal{
		UserID: "user-1",
		Name:   "Dana",
		Phone:  "+1 555 0100",
		Roles:  []string{RoleCustomer},
	}

	token, err := IssueToken(secret, issued, time.Hour)
	assert.NoError(t, err)

	parsed, err := ParseToken(secret, token)
	assert.NoError(t, err)
	assert.Equal(t, issued, parsed)
	assert.False(t, parsed.IsAdmin())
	assert.True(t, parsed.HasRole(RoleCustomer))
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := IssueToken([]byte("secret-a"), Principal{UserID: "user-1"}, time.Hour)
	assert.NoError(t, err)

	_, err = ParseToken([]byte("secret-b"), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpired(t *testing.T) {
	token, err := IssueToken([]byte("secret"), Principal{UserID: "user-1"}, -time.Minute)
	assert.NoError(t, err)

	_, err = ParseToken([]byte("secret"), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAdminRole(t *testing.T) {
	p := Principal{UserID: "staff-1", Roles: []string{RoleCustomer, RoleAdmin}}
	assert.True(t, p.IsAdmin())
}
