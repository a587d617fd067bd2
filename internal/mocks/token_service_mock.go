package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/Guiladg/wacookieexpress/internal/models"
	"github.com/Guiladg/wacookieexpress/internal/token"
)

type TokenService struct{ mock.Mock }

func (m *TokenService) IssueSessionTokens(u *models.User) (*token.SessionTokens, error) {
	args := m.Called(u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*token.SessionTokens), args.Error(1)
}

func (m *TokenService) VerifyAccess(tokenString string) (*token.AccessClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*token.AccessClaims), args.Error(1)
}

func (m *TokenService) VerifyRefresh(tokenString string) (*token.RefreshClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*token.RefreshClaims), args.Error(1)
}

func (m *TokenService) VerifyControl(tokenString string) error {
	return m.Called(tokenString).Error(0)
}

func (m *TokenService) Revoke(refreshToken string) {
	m.Called(refreshToken)
}
