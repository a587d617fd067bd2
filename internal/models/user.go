package models

// User roles. The table only ships with admin, but the column is an open
// string so new roles do not need a migration.
const (
	RoleAdmin = "admin"
)

// User represents the user table.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Phone        string `gorm:"unique;not null" json:"phone"`
	PasswordHash string `gorm:"column:password" json:"-"`
	Role         string `gorm:"not null" json:"role"`
}

func (User) TableName() string { return "user" }
