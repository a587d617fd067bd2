package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type Notifier struct{ mock.Mock }

func (m *Notifier) SendVerificationCode(ctx context.Context, phone, code string) error {
	return m.Called(ctx, phone, code).Error(0)
}
