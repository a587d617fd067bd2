package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/Guiladg/wacookieexpress/internal/models"
)

type VerificationCodeStore struct{ mock.Mock }

func (m *VerificationCodeStore) Create(vc *models.VerificationCode) error {
	return m.Called(vc).Error(0)
}

func (m *VerificationCodeStore) FindValid(phone, token string, now int64) (*models.VerificationCode, error) {
	args := m.Called(phone, token, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VerificationCode), args.Error(1)
}

func (m *VerificationCodeStore) DeleteAllForPhone(phone string) error {
	return m.Called(phone).Error(0)
}
