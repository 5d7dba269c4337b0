package repository

import (
	"calpal/cmd/internal/domain/entity"
	"errors"

	"gorm.io/gorm"
)

type DefaultEventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *DefaultEventRepository {
	return &DefaultEventRepository{db: db}
}

func (e *DefaultEventRepository) FindByID(id int) (*entity.Event, error) {
	var event entity.Event
	err := e.db.First(&event, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &event, err
}

func (e *DefaultEventRepository) FindByUserAndDate(userId int, date string) ([]*entity.Event, error) {
	var events []*entity.Event
	err := e.db.
		Where("user_id = ?", userId).
		Where("date = ?", date).
		Order("time asc").
		Find(&events).Error
	return events, err
}

// FindNextByUserFromDateTime returns the chronologically nearest event at or
// after the (date, time) reference point. Ties at the same instant resolve to
// the lowest id.
func (e *DefaultEventRepository) FindNextByUserFromDateTime(userId int, date, tm string) (*entity.Event, error) {
	var event entity.Event
	err := e.db.
		Where("user_id = ?", userId).
		Where("date > ? OR (date = ? AND time >= ?)", date, date, tm).
		Order("date asc, time asc, id asc").
		First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &event, err
}

func (e *DefaultEventRepository) FindAllByUser(userId int) ([]*entity.Event, error) {
	var events []*entity.Event
	err := e.db.
		Where("user_id = ?", userId).
		Order("date asc, time asc, id asc").
		Find(&events).Error
	return events, err
}

func (e *DefaultEventRepository) ExistsByUserDateTime(userId int, date, tm string) (bool, error) {
	var count int64
	err := e.db.Model(&entity.Event{}).
		Where("user_id = ?", userId).
		Where("date = ?", date).
		Where("time = ?", tm).
		Count(&count).Error
	return count > 0, err
}

func (e *DefaultEventRepository) Save(event *entity.Event) error {
	return e.db.Save(event).Error
}

// Delete removes an event and the notes it owns in one transaction.
func (e *DefaultEventRepository) Delete(event *entity.Event) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", event.ID).Delete(&entity.Note{}).Error; err != nil {
			return err
		}
		return tx.Delete(event).Error
	})
}

// MarkNotified flips the one-way notified flag. A missing row (deleted while
// a notifier pass was running) makes this a no-op, not an error.
func (e *DefaultEventRepository) MarkNotified(id int) error {
	return e.db.Model(&entity.Event{}).
		Where("id = ?", id).
		Update("notified", true).Error
}
