package entity

type Note struct {
	ID        int    `gorm:"primaryKey"`
	EventID   int    `gorm:"not null;index"` // References: events(id)
	Content   string `gorm:"not null"`
	CreatedAt int64  `gorm:"not null"`

	// Relations
	Event Event `gorm:"foreignKey:EventID;references:ID"`
}
