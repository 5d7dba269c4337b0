package repository

import (
	"calpal/cmd/internal/domain/entity"
	"errors"

	"gorm.io/gorm"
)

type DefaultSessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *DefaultSessionRepository {
	return &DefaultSessionRepository{db: db}
}

func (s *DefaultSessionRepository) FindByUsername(username string) (*entity.UserSession, error) {
	var session entity.UserSession
	err := s.db.Where("username = ?", username).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

// FindLoggedIn returns the single active session, or nil when nobody is
// logged in.
func (s *DefaultSessionRepository) FindLoggedIn() (*entity.UserSession, error) {
	var session entity.UserSession
	err := s.db.Where("logged_in = ?", true).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

// ClearAll resets the logged-in flag on every session row.
func (s *DefaultSessionRepository) ClearAll() error {
	return s.db.Model(&entity.UserSession{}).
		Where("logged_in = ?", true).
		Update("logged_in", false).Error
}

func (s *DefaultSessionRepository) Save(session *entity.UserSession) error {
	return s.db.Save(session).Error
}

func (s *DefaultSessionRepository) Delete(session *entity.UserSession) error {
	return s.db.Delete(session).Error
}
