package session

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/quizdesk/quizdesk/internal/apperrors"
)

// Claims the backend puts into the access token payload
type AccessClaims struct {
	jwt.RegisteredClaims
	Email       string   `json:"email"`
	Permissions []string `json:"permissions"`
}

// AccessClaims decodes the stored access token without verifying its
// signature. The client has no signing key; the decoded claims are for
// display (whoami) only, the backend stays the authority on validity.
func (m *Manager) AccessClaims() (AccessClaims, error) {
	var claims AccessClaims

	pair, err := m.store.Tokens()
	if err != nil {
		return claims, err
	}
	if pair.AccessToken == "" {
		return claims, apperrors.ErrNoAccessToken
	}

	_, _, err = jwt.NewParser().ParseUnverified(pair.AccessToken, &claims)
	if err != nil {
		return claims, fmt.Errorf("error while decoding access token. Err: %w", err)
	}

	return claims, nil
}
