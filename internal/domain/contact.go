package domain

// Contact Model
type Contact struct {
	ID        uint   `gorm:"primaryKey"`               // Primary key
	Username  string `gorm:"size:100;not null;index"`  // Foreign key to the owning User
	FirstName string `gorm:"size:100;not null"`        // Required
	LastName  string `gorm:"size:100"`                 // Optional
	Email     string `gorm:"size:200"`                 // Optional
	Phone     string `gorm:"size:20"`                  // Optional

	// One-to-many relationship with Address
	Addresses []Address `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
