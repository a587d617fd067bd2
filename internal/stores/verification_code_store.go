package stores

import (
	"gorm.io/gorm"

	"github.com/Guiladg/wacookieexpress/internal/models"
)

// VerificationCodeStore persists the one-time codes sent over WhatsApp.
type VerificationCodeStore interface {
	Create(vc *models.VerificationCode) error
	// FindValid returns an unexpired code record matching (phone, token),
	// or ErrNotFound.
	FindValid(phone, token string, now int64) (*models.VerificationCode, error)
	// DeleteAllForPhone purges every code issued to a phone number.
	DeleteAllForPhone(phone string) error
}

// GormVerificationCodeStore implements VerificationCodeStore using GORM.
type GormVerificationCodeStore struct{ DB *gorm.DB }

func (s *GormVerificationCodeStore) Create(vc *models.VerificationCode) error {
	return s.DB.Create(vc).Error
}

func (s *GormVerificationCodeStore) FindValid(phone, token string, now int64) (*models.VerificationCode, error) {
	var vc models.VerificationCode
	err := s.DB.
		Where("phone = ? AND token = ? AND expires_at > ?", phone, token, now).
		First(&vc).Error
	if err != nil {
		return nil, err
	}
	return &vc, nil
}

func (s *GormVerificationCodeStore) DeleteAllForPhone(phone string) error {
	return s.DB.Where("phone = ?", phone).Delete(&models.VerificationCode{}).Error
}
