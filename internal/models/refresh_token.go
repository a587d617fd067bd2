package models

import "time"

// RefreshToken is one live server-side session. The Token column holds the
// random identifier carried inside the refresh JWT, not the JWT itself; a
// user may hold many records at once (one per device).
type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index"`
	User      User   `gorm:"foreignKey:UserID;constraint:OnDelete:NO ACTION"`
	Token     string `gorm:"not null"`
	CreatedAt time.Time
	// ExpiresAt is epoch seconds. Expired rows are dead even before purge.
	ExpiresAt int64 `gorm:"not null"`
}
