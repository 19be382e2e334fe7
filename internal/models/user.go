package models

// User represents an application user account.
type User struct {
	Base
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	Password  string `gorm:"not null" json:"-"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsActive  bool   `gorm:"default:true" json:"is_active"`

	// RefreshTokenHash stores the SHA-256 of the latest refresh token so a
	// stolen database dump cannot mint sessions.
	RefreshTokenHash string `json:"-"`
}
