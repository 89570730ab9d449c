package domain

// Address Model
type Address struct {
	ID         uint   `gorm:"primaryKey"`     // Primary key
	ContactID  uint   `gorm:"not null;index"` // Foreign key to the owning Contact
	Street     string `gorm:"size:255"`
	City       string `gorm:"size:100"`
	Province   string `gorm:"size:100"`
	Country    string `gorm:"size:100"`
	PostalCode string `gorm:"size:10"`
}
