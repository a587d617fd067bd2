package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/Guiladg/wacookieexpress/internal/models"
)

type UserStore struct{ mock.Mock }

func (m *UserStore) FindByPhone(phone string) (*models.User, error) {
	args := m.Called(phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserStore) FindByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserStore) Create(u *models.User) error { return m.Called(u).Error(0) }
func (m *UserStore) Update(u *models.User) error { return m.Called(u).Error(0) }
func (m *UserStore) Delete(u *models.User) error { return m.Called(u).Error(0) }

func (m *UserStore) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *UserStore) List(offset, limit int, sort, order string) ([]models.User, error) {
	args := m.Called(offset, limit, sort, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}
