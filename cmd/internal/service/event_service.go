package service

import (
	"calpal/cmd/internal/domain/entity"
	"calpal/cmd/internal/timeutil"
	"calpal/cmd/internal/utils"
	"calpal/cmd/internal/utils/apierror"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type EventRepository interface {
	FindByID(id int) (*entity.Event, error)
	FindByUserAndDate(userId int, date string) ([]*entity.Event, error)
	FindNextByUserFromDateTime(userId int, date, tm string) (*entity.Event, error)
	FindAllByUser(userId int) ([]*entity.Event, error)
	ExistsByUserDateTime(userId int, date, tm string) (bool, error)
	Save(event *entity.Event) error
	Delete(event *entity.Event) error
	MarkNotified(id int) error
}

type EventRequest struct {
	Name     string `json:"name" validate:"required,max=128"`
	Date     string `json:"date" validate:"required,dateformat"`
	Time     string `json:"time" validate:"required,timeformat"`
	Location string `json:"location" validate:"max=128"`
}

type EventResponse struct {
	ID        int    `json:"id"`
	UserID    int    `json:"user_id"`
	Name      string `json:"name"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Location  string `json:"location"`
	Notified  bool   `json:"notified"`
	CreatedAt string `json:"created_at"`
}

type DefaultEventService struct {
	EventRepo EventRepository
	Validate  *validator.Validate
	Now       func() time.Time
}

func NewEventService(eventRepo EventRepository, validate *validator.Validate) *DefaultEventService {
	return &DefaultEventService{EventRepo: eventRepo, Validate: validate, Now: time.Now}
}

func (e *DefaultEventService) GetEvents(userId int) ([]*EventResponse, apierror.ErrorResponse) {
	events, err := e.EventRepo.FindAllByUser(userId)
	if err != nil {
		log.Errorf("failed to find events for user %d: %v", userId, err)
		return nil, apierror.InternalServerError
	}

	response := make([]*EventResponse, len(events))
	for i, event := range events {
		response[i] = toEventResponse(event)
	}
	return response, nil
}

func (e *DefaultEventService) GetEventsForDate(userId int, date string) ([]*EventResponse, apierror.ErrorResponse) {
	events, err := e.EventRepo.FindByUserAndDate(userId, timeutil.NormalizeDate(date))
	if err != nil {
		log.Errorf("failed to find events for user %d on %s: %v", userId, date, err)
		return nil, apierror.InternalServerError
	}

	response := make([]*EventResponse, len(events))
	for i, event := range events {
		response[i] = toEventResponse(event)
	}
	return response, nil
}

// GetNextEvent resolves the chronologically nearest event at or after the
// caller's current date and time.
func (e *DefaultEventService) GetNextEvent(userId int) (*EventResponse, apierror.ErrorResponse) {
	refDate, refTime := timeutil.Today(e.Now())

	event, err := e.EventRepo.FindNextByUserFromDateTime(userId, refDate, refTime)
	if err != nil {
		log.Errorf("failed to resolve next event for user %d: %v", userId, err)
		return nil, apierror.InternalServerError
	}

	if event == nil {
		return nil, apierror.NotFoundError
	}
	return toEventResponse(event), nil
}

func (e *DefaultEventService) CreateEvent(req *EventRequest, userId int) (*EventResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := e.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	// Uniqueness of (user, date, time) is an application convention, checked
	// best-effort here rather than by a database constraint.
	taken, err := e.EventRepo.ExistsByUserDateTime(userId, req.Date, req.Time)
	if err != nil {
		log.Errorf("failed to check event slot for user %d: %v", userId, err)
		return nil, apierror.InternalServerError
	}
	if taken {
		return nil, apierror.EventConflictError
	}

	event := &entity.Event{
		UserID:    userId,
		Name:      req.Name,
		Date:      req.Date,
		Time:      req.Time,
		Location:  req.Location,
		Notified:  false,
		CreatedAt: utils.NowUTC(),
	}

	if err := e.EventRepo.Save(event); err != nil {
		log.Errorf("failed to save event: %v", err)
		return nil, apierror.InternalServerError
	}
	return toEventResponse(event), nil
}

func (e *DefaultEventService) UpdateEvent(id int, req *EventRequest, userId int) (*EventResponse, apierror.ErrorResponse) {
	event, err := e.EventRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch event by id %d: %v", id, err)
		return nil, apierror.InternalServerError
	}

	if event == nil || event.UserID != userId {
		return nil, apierror.NotFoundError
	}

	utils.Sanitize(req)
	if valerr := e.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	// Notified is one-way and owned by the notifier; edits never reset it.
	event.Name = req.Name
	event.Date = req.Date
	event.Time = req.Time
	event.Location = req.Location

	if err := e.EventRepo.Save(event); err != nil {
		log.Errorf("failed to update event %d: %v", id, err)
		return nil, apierror.InternalServerError
	}
	return toEventResponse(event), nil
}

func (e *DefaultEventService) DeleteEvent(id, userId int) apierror.ErrorResponse {
	event, err := e.EventRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch event by id %d: %v", id, err)
		return apierror.InternalServerError
	}

	if event == nil || event.UserID != userId {
		return apierror.NotFoundError
	}

	if err := e.EventRepo.Delete(event); err != nil {
		log.Errorf("failed to delete event %d: %v", id, err)
		return apierror.InternalServerError
	}
	return nil
}

func toEventResponse(event *entity.Event) *EventResponse {
	return &EventResponse{
		ID:     event.ID,
		UserID: event.UserID,
		Name:   event.Name,
		// Normalize defensively on read so legacy rows that predate strict
		// input validation still serialize in the canonical form.
		Date:      timeutil.NormalizeDate(event.Date),
		Time:      timeutil.NormalizeTime(event.Time),
		Location:  event.Location,
		Notified:  event.Notified,
		CreatedAt: utils.FormatEpoch(event.CreatedAt),
	}
}
