package models

// User represents a registered account
type User struct {
	ID           uint   `gorm:"primarykey" json:"id"`
	Email        string `gorm:"type:varchar(150);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	Name         string `gorm:"type:varchar(150);not null" json:"name"`

	// Relationships
	Notes []Note `gorm:"foreignKey:UserID" json:"notes,omitempty"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "user"
}
