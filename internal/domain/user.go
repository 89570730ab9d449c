package domain

// User Model
type User struct {
	Username string  `gorm:"primaryKey;size:100"` // Primary key, chosen by the user at registration
	Password string  `gorm:"size:100;not null"`   // Bcrypt hash, never serialized
	Name     string  `gorm:"size:100;not null"`   // Display name
	Token    *string `gorm:"size:100;index"`      // Current session token, nil when logged out

	// One-to-many relationship with Contact
	Contacts []Contact `gorm:"foreignKey:Username;references:Username;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
