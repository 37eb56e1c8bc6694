package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// CredentialChecker verifies the configured upload credential pair. The
// password side is either a plaintext secret compared in constant time or a
// bcrypt hash; the hash takes precedence when both are configured.
type CredentialChecker struct {
	username     string
	password     string
	passwordHash string
}

func NewCredentialChecker(username, password, passwordHash string) *CredentialChecker {
	return &CredentialChecker{
		username:     username,
		password:     password,
		passwordHash: passwordHash,
	}
}

func (c *CredentialChecker) Check(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.username)) == 1

	if c.passwordHash != "" {
		passOK := bcrypt.CompareHashAndPassword([]byte(c.passwordHash), []byte(password)) == nil
		return userOK && passOK
	}

	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(c.password)) == 1
	return userOK && passOK
}
