package service

import (
	"calpal/cmd/internal/domain/entity"
	"calpal/cmd/internal/utils"
	"calpal/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type NoteRepository interface {
	FindByID(id int) (*entity.Note, error)
	FindByEvent(eventId int) ([]*entity.Note, error)
	FindByUser(userId int) ([]*entity.Note, error)
	Save(note *entity.Note) error
	Delete(note *entity.Note) error
}

type NoteRequest struct {
	Content string `json:"content" validate:"required,max=2048"`
}

type NoteResponse struct {
	ID        int    `json:"id"`
	EventID   int    `json:"event_id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

type DefaultNoteService struct {
	NoteRepo  NoteRepository
	EventRepo EventRepository
	Validate  *validator.Validate
}

func NewNoteService(noteRepo NoteRepository, eventRepo EventRepository, validate *validator.Validate) *DefaultNoteService {
	return &DefaultNoteService{NoteRepo: noteRepo, EventRepo: eventRepo, Validate: validate}
}

func (n *DefaultNoteService) GetNotesForEvent(eventId, userId int) ([]*NoteResponse, apierror.ErrorResponse) {
	if apierr := n.requireOwnedEvent(eventId, userId); apierr != nil {
		return nil, apierr
	}

	notes, err := n.NoteRepo.FindByEvent(eventId)
	if err != nil {
		log.Errorf("failed to find notes for event %d: %v", eventId, err)
		return nil, apierror.InternalServerError
	}

	response := make([]*NoteResponse, len(notes))
	for i, note := range notes {
		response[i] = toNoteResponse(note)
	}
	return response, nil
}

func (n *DefaultNoteService) GetNotes(userId int) ([]*NoteResponse, apierror.ErrorResponse) {
	notes, err := n.NoteRepo.FindByUser(userId)
	if err != nil {
		log.Errorf("failed to find notes for user %d: %v", userId, err)
		return nil, apierror.InternalServerError
	}

	response := make([]*NoteResponse, len(notes))
	for i, note := range notes {
		response[i] = toNoteResponse(note)
	}
	return response, nil
}

func (n *DefaultNoteService) CreateNote(eventId int, req *NoteRequest, userId int) (*NoteResponse, apierror.ErrorResponse) {
	if apierr := n.requireOwnedEvent(eventId, userId); apierr != nil {
		return nil, apierr
	}

	utils.Sanitize(req)
	if valerr := n.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	note := &entity.Note{
		EventID:   eventId,
		Content:   req.Content,
		CreatedAt: utils.NowUTC(),
	}

	if err := n.NoteRepo.Save(note); err != nil {
		log.Errorf("failed to save note for event %d: %v", eventId, err)
		return nil, apierror.InternalServerError
	}
	return toNoteResponse(note), nil
}

func (n *DefaultNoteService) UpdateNote(id int, req *NoteRequest, userId int) (*NoteResponse, apierror.ErrorResponse) {
	note, apierr := n.fetchOwnedNote(id, userId)
	if apierr != nil {
		return nil, apierr
	}

	utils.Sanitize(req)
	if valerr := n.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	note.Content = req.Content
	if err := n.NoteRepo.Save(note); err != nil {
		log.Errorf("failed to update note %d: %v", id, err)
		return nil, apierror.InternalServerError
	}
	return toNoteResponse(note), nil
}

func (n *DefaultNoteService) DeleteNote(id, userId int) apierror.ErrorResponse {
	note, apierr := n.fetchOwnedNote(id, userId)
	if apierr != nil {
		return apierr
	}

	if err := n.NoteRepo.Delete(note); err != nil {
		log.Errorf("failed to delete note %d: %v", id, err)
		return apierror.InternalServerError
	}
	return nil
}

func (n *DefaultNoteService) requireOwnedEvent(eventId, userId int) apierror.ErrorResponse {
	event, err := n.EventRepo.FindByID(eventId)
	if err != nil {
		log.Errorf("failed to fetch event by id %d: %v", eventId, err)
		return apierror.InternalServerError
	}

	if event == nil || event.UserID != userId {
		return apierror.NotFoundError
	}
	return nil
}

func (n *DefaultNoteService) fetchOwnedNote(id, userId int) (*entity.Note, apierror.ErrorResponse) {
	note, err := n.NoteRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch note by id %d: %v", id, err)
		return nil, apierror.InternalServerError
	}

	if note == nil {
		return nil, apierror.NotFoundError
	}

	if apierr := n.requireOwnedEvent(note.EventID, userId); apierr != nil {
		return nil, apierr
	}
	return note, nil
}

func toNoteResponse(note *entity.Note) *NoteResponse {
	return &NoteResponse{
		ID:        note.ID,
		EventID:   note.EventID,
		Content:   note.Content,
		CreatedAt: utils.FormatEpoch(note.CreatedAt),
	}
}
