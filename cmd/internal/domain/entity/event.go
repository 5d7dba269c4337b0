package entity

type Event struct {
	ID        int    `gorm:"primaryKey"`
	UserID    int    `gorm:"not null;index"` // References: users(id)
	Name      string `gorm:"not null"`
	Date      string `gorm:"not null"` // YYYY-MM-DD
	Time      string `gorm:"not null"` // HH:MM
	Location  string
	Notified  bool  `gorm:"not null"` // one-way: false -> true, set by the notifier
	CreatedAt int64 `gorm:"not null"`

	// Relations
	Owner User `gorm:"foreignKey:UserID;references:ID"`
}
