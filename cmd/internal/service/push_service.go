package service

import (
	"calpal/cmd/internal/domain/entity"
	"calpal/cmd/internal/utils"
	"calpal/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type PushSubscriptionRepository interface {
	FindByID(id int) (*entity.PushSubscription, error)
	FindByUser(userId int) ([]*entity.PushSubscription, error)
	Save(sub *entity.PushSubscription) error
	Delete(sub *entity.PushSubscription) error
}

type SubscribeRequest struct {
	Endpoint string `json:"endpoint" validate:"required,url"`
	Auth     string `json:"auth" validate:"required"`
	P256dh   string `json:"p256dh" validate:"required"`
}

type SubscriptionResponse struct {
	ID        int    `json:"id"`
	Endpoint  string `json:"endpoint"`
	CreatedAt string `json:"created_at"`
}

type DefaultPushService struct {
	SubRepo  PushSubscriptionRepository
	Validate *validator.Validate
}

func NewPushService(subRepo PushSubscriptionRepository, validate *validator.Validate) *DefaultPushService {
	return &DefaultPushService{SubRepo: subRepo, Validate: validate}
}

func (p *DefaultPushService) Subscribe(req *SubscribeRequest, userId int) (*SubscriptionResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := p.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	sub := &entity.PushSubscription{
		UserID:    userId,
		Endpoint:  req.Endpoint,
		Auth:      req.Auth,
		P256dh:    req.P256dh,
		CreatedAt: utils.NowUTC(),
	}

	if err := p.SubRepo.Save(sub); err != nil {
		log.Errorf("failed to save push subscription for user %d: %v", userId, err)
		return nil, apierror.InternalServerError
	}
	return toSubscriptionResponse(sub), nil
}

func (p *DefaultPushService) Unsubscribe(id, userId int) apierror.ErrorResponse {
	sub, err := p.SubRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch push subscription %d: %v", id, err)
		return apierror.InternalServerError
	}

	if sub == nil || sub.UserID != userId {
		return apierror.NotFoundError
	}

	if err := p.SubRepo.Delete(sub); err != nil {
		log.Errorf("failed to delete push subscription %d: %v", id, err)
		return apierror.InternalServerError
	}
	return nil
}

func toSubscriptionResponse(sub *entity.PushSubscription) *SubscriptionResponse {
	return &SubscriptionResponse{
		ID:        sub.ID,
		Endpoint:  sub.Endpoint,
		CreatedAt: utils.FormatEpoch(sub.CreatedAt),
	}
}
