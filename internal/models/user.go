package models

// User represents an authenticated customer.
type User struct {
	BaseModel
	Email        string     `gorm:"uniqueIndex" json:"email"`
	DisplayName  string     `json:"display_name"`
	PasswordHash string     `json:"-"`
	Purchases    []Purchase `json:"purchases,omitempty"`
}
