package stores

import (
	"gorm.io/gorm"

	"github.com/Guiladg/wacookieexpress/internal/models"
)

var ErrNotFound = gorm.ErrRecordNotFound

// UserStore abstracts user persistence.
type UserStore interface {
	// FindByPhone returns a user if it exists, or ErrNotFound.
	FindByPhone(phone string) (*models.User, error)
	FindByID(id uint) (*models.User, error)
	Create(u *models.User) error
	Update(u *models.User) error
	Delete(u *models.User) error
	Count() (int64, error)
	// List returns a page of users without the password column.
	List(offset, limit int, sort, order string) ([]models.User, error)
}

// GormUserStore implements UserStore using GORM.
type GormUserStore struct{ DB *gorm.DB }

func (s *GormUserStore) FindByPhone(phone string) (*models.User, error) {
	var u models.User
	if err := s.DB.Where("phone = ?", phone).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *GormUserStore) FindByID(id uint) (*models.User, error) {
	var u models.User
	if err := s.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *GormUserStore) Create(u *models.User) error {
	return s.DB.Create(u).Error
}

func (s *GormUserStore) Update(u *models.User) error {
	return s.DB.Save(u).Error
}

func (s *GormUserStore) Delete(u *models.User) error {
	return s.DB.Delete(u).Error
}

func (s *GormUserStore) Count() (int64, error) {
	var n int64
	err := s.DB.Model(&models.User{}).Count(&n).Error
	return n, err
}

var listSortColumns = map[string]bool{"id": true, "phone": true, "role": true}

func (s *GormUserStore) List(offset, limit int, sort, order string) ([]models.User, error) {
	if !listSortColumns[sort] {
		sort = "phone"
	}
	if order != "desc" {
		order = "asc"
	}
	var users []models.User
	err := s.DB.Select("id", "phone", "role").
		Order(sort + " " + order).
		Offset(offset).Limit(limit).
		Find(&users).Error
	return users, err
}
