package entity

type User struct {
	ID           int    `gorm:"primaryKey"`
	FirstName    string `gorm:"not null"`
	LastName     string `gorm:"not null"`
	Email        string `gorm:"not null;uniqueIndex"`
	Username     string `gorm:"not null;uniqueIndex"`
	PasswordHash string `gorm:"not null"` // SHA-256 hex digest
	DarkMode     bool   `gorm:"not null"`
	CreatedAt    int64  `gorm:"not null"`
}

// UserSession mirrors the login table: one row per known username,
// of which at most one carries LoggedIn=true at any time.
type UserSession struct {
	ID           int    `gorm:"primaryKey"`
	Username     string `gorm:"not null;uniqueIndex"`
	PasswordHash string `gorm:"not null"`
	UserID       int    `gorm:"not null"` // References: users(id)
	LoggedIn     bool   `gorm:"not null"`

	// Relations
	User User `gorm:"foreignKey:UserID;references:ID"`
}
