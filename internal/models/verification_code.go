package models

import "time"

// VerificationCode is a short-lived numeric code delivered over WhatsApp to
// authorize a phone change or password restore. Looked up by (phone, token)
// and purged in bulk per phone once consumed.
type VerificationCode struct {
	ID        uint   `gorm:"primaryKey"`
	Phone     string `gorm:"not null;index"`
	Token     string `gorm:"not null"`
	CreatedAt time.Time
	// ExpiresAt is epoch seconds, creation time plus ten minutes.
	ExpiresAt int64 `gorm:"not null"`
}
