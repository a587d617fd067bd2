package token

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/Guiladg/wacookieexpress/internal/models"
)

// SessionTokens is the triple returned on login and refresh. Access and
// refresh travel in HTTP-only cookies; control is script-readable and only
// signals that a session exists.
type SessionTokens struct {
	Access  string
	Refresh string
	Control string
}

// AccessClaims is the payload of the access token.
type AccessClaims struct {
	ID    uint   `json:"id"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// RefreshClaims is the payload of the refresh token. Token is the random
// identifier persisted in the refresh-token ledger.
type RefreshClaims struct {
	IDUser uint   `json:"idUser"`
	Token  string `json:"token"`
	jwt.RegisteredClaims
}

// Service issues and checks the three session tokens.
type Service interface {
	// IssueSessionTokens signs the access, refresh and control tokens for a
	// user and records the refresh identifier in the ledger. The ledger
	// write happens before the tokens are handed out; if it fails no tokens
	// are returned, otherwise the refresh token could never be invalidated.
	IssueSessionTokens(u *models.User) (*SessionTokens, error)
	VerifyAccess(tokenString string) (*AccessClaims, error)
	VerifyRefresh(tokenString string) (*RefreshClaims, error)
	VerifyControl(tokenString string) error
	// Revoke deletes the ledger record referenced by a refresh token.
	// Best-effort: bad tokens and missing records are logged and swallowed.
	Revoke(refreshToken string)
}
