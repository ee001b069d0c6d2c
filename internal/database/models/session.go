package models

import "time"

// Session is a persisted login, referenced by the signed session cookie
type Session struct {
	ID        string    `gorm:"primarykey;type:varchar(36)" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Remember  bool      `gorm:"not null;default:false" json:"remember"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name
func (Session) TableName() string {
	return "session"
}

// Expired reports whether the session is no longer valid at now
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
