package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/Guiladg/wacookieexpress/internal/models"
)

type RefreshTokenStore struct{ mock.Mock }

func (m *RefreshTokenStore) Create(rt *models.RefreshToken) error {
	return m.Called(rt).Error(0)
}

func (m *RefreshTokenStore) FindValid(userID uint, token string, now int64) (*models.RefreshToken, error) {
	args := m.Called(userID, token, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *RefreshTokenStore) Delete(id uint) error {
	return m.Called(id).Error(0)
}

func (m *RefreshTokenStore) DeleteByUserToken(userID uint, token string) error {
	return m.Called(userID, token).Error(0)
}
