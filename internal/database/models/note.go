package models

// DateLayout is the display format of Note.Date (day-Month-year hour:minute).
const DateLayout = "02-January-2006 15:04"

// Note is a titled piece of text owned by one user
type Note struct {
	ID      uint   `gorm:"primarykey" json:"id"`
	Title   string `gorm:"type:varchar(1000)" json:"title"`
	Content string `gorm:"type:varchar(10000)" json:"content"`
	Date    string `gorm:"type:varchar(100)" json:"date"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`
}

// TableName overrides the table name
func (Note) TableName() string {
	return "note"
}

// OwnedBy reports whether userID owns the note
func (n *Note) OwnedBy(userID uint) bool {
	return n.UserID == userID
}
