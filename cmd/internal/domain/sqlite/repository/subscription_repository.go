package repository

import (
	"calpal/cmd/internal/domain/entity"
	"errors"

	"gorm.io/gorm"
)

type DefaultSubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *DefaultSubscriptionRepository {
	return &DefaultSubscriptionRepository{db: db}
}

func (s *DefaultSubscriptionRepository) FindByID(id int) (*entity.PushSubscription, error) {
	var sub entity.PushSubscription
	err := s.db.First(&sub, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sub, err
}

func (s *DefaultSubscriptionRepository) FindByUser(userId int) ([]*entity.PushSubscription, error) {
	var subs []*entity.PushSubscription
	err := s.db.Where("user_id = ?", userId).Find(&subs).Error
	return subs, err
}

func (s *DefaultSubscriptionRepository) Save(sub *entity.PushSubscription) error {
	return s.db.Save(sub).Error
}

func (s *DefaultSubscriptionRepository) Delete(sub *entity.PushSubscription) error {
	return s.db.Delete(sub).Error
}

// DeleteByEndpoint prunes a subscription the push service reported gone.
func (s *DefaultSubscriptionRepository) DeleteByEndpoint(endpoint string) error {
	return s.db.Where("endpoint = ?", endpoint).Delete(&entity.PushSubscription{}).Error
}
