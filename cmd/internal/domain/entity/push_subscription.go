package entity

// PushSubscription is one browser/device push endpoint registered by a user.
type PushSubscription struct {
	ID        int    `gorm:"primaryKey"`
	UserID    int    `gorm:"not null;index"` // References: users(id)
	Endpoint  string `gorm:"not null"`
	Auth      string `gorm:"not null"`
	P256dh    string `gorm:"not null"`
	CreatedAt int64  `gorm:"not null"`

	// Relations
	Owner User `gorm:"foreignKey:UserID;references:ID"`
}
