package repository

import (
	"calpal/cmd/internal/domain/entity"
	"errors"

	"gorm.io/gorm"
)

type DefaultNoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *DefaultNoteRepository {
	return &DefaultNoteRepository{db: db}
}

func (n *DefaultNoteRepository) FindByID(id int) (*entity.Note, error) {
	var note entity.Note
	err := n.db.First(&note, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &note, err
}

func (n *DefaultNoteRepository) FindByEvent(eventId int) ([]*entity.Note, error) {
	var notes []*entity.Note
	err := n.db.
		Where("event_id = ?", eventId).
		Order("created_at desc").
		Find(&notes).Error
	return notes, err
}

func (n *DefaultNoteRepository) FindByUser(userId int) ([]*entity.Note, error) {
	var notes []*entity.Note
	err := n.db.
		Where("event_id IN (?)", n.db.Model(&entity.Event{}).Select("id").Where("user_id = ?", userId)).
		Order("created_at desc").
		Find(&notes).Error
	return notes, err
}

func (n *DefaultNoteRepository) Save(note *entity.Note) error {
	return n.db.Save(note).Error
}

func (n *DefaultNoteRepository) Delete(note *entity.Note) error {
	return n.db.Delete(note).Error
}
