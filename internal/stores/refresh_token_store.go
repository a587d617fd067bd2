package stores

import (
	"gorm.io/gorm"

	"github.com/Guiladg/wacookieexpress/internal/models"
)

// RefreshTokenStore is the ledger of live refresh-token identifiers. A row
// is written on every login and refresh, and removed when the token is
// consumed or revoked; lookups double-check expiry server-side.
type RefreshTokenStore interface {
	Create(rt *models.RefreshToken) error
	// FindValid returns the record for (userID, token) whose expiry is after
	// now (epoch seconds), or ErrNotFound.
	FindValid(userID uint, token string, now int64) (*models.RefreshToken, error)
	Delete(id uint) error
	// DeleteByUserToken removes the record for (userID, token) if present.
	DeleteByUserToken(userID uint, token string) error
}

// GormRefreshTokenStore implements RefreshTokenStore using GORM.
type GormRefreshTokenStore struct{ DB *gorm.DB }

func (s *GormRefreshTokenStore) Create(rt *models.RefreshToken) error {
	return s.DB.Create(rt).Error
}

func (s *GormRefreshTokenStore) FindValid(userID uint, token string, now int64) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	err := s.DB.
		Where("user_id = ? AND token = ? AND expires_at > ?", userID, token, now).
		First(&rt).Error
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

func (s *GormRefreshTokenStore) Delete(id uint) error {
	return s.DB.Delete(&models.RefreshToken{}, id).Error
}

func (s *GormRefreshTokenStore) DeleteByUserToken(userID uint, token string) error {
	return s.DB.
		Where("user_id = ? AND token = ?", userID, token).
		Delete(&models.RefreshToken{}).Error
}
