package routes

import (
	"calpal/cmd/internal/service"
	"calpal/cmd/internal/utils"
	"calpal/cmd/internal/utils/apierror"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type NoteService interface {
	GetNotesForEvent(eventId, userId int) ([]*service.NoteResponse, apierror.ErrorResponse)
	GetNotes(userId int) ([]*service.NoteResponse, apierror.ErrorResponse)
	CreateNote(eventId int, req *service.NoteRequest, userId int) (*service.NoteResponse, apierror.ErrorResponse)
	UpdateNote(id int, req *service.NoteRequest, userId int) (*service.NoteResponse, apierror.ErrorResponse)
	DeleteNote(id, userId int) apierror.ErrorResponse
}

type DefaultNoteRoute struct {
	NoteService NoteService
	Tokens      *utils.Tokens
}

func NewNoteDefault(noteService NoteService, tokens *utils.Tokens) *DefaultNoteRoute {
	return &DefaultNoteRoute{NoteService: noteService, Tokens: tokens}
}

func (n *DefaultNoteRoute) GetNotes(c echo.Context) error {
	data, err := n.Tokens.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	notes, apierr := n.NoteService.GetNotes(data.UserID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"notes": notes}
	return c.JSON(http.StatusOK, &resp)
}

func (n *DefaultNoteRoute) GetNotesForEvent(c echo.Context) error {
	eventId, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errResp := apierror.NewSimple(400, "ID is not a number")
		return c.JSON(errResp.Code(), errResp)
	}

	data, err := n.Tokens.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	notes, apierr := n.NoteService.GetNotesForEvent(eventId, data.UserID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"notes": notes}
	return c.JSON(http.StatusOK, &resp)
}

func (n *DefaultNoteRoute) CreateNote(c echo.Context) error {
	eventId, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errResp := apierror.NewSimple(400, "ID is not a number")
		return c.JSON(errResp.Code(), errResp)
	}

	var req service.NoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, apierror.MalformedBodyError)
	}

	data, err := n.Tokens.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	note, apierr := n.NoteService.CreateNote(eventId, &req, data.UserID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, note)
}

func (n *DefaultNoteRoute) UpdateNote(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errResp := apierror.NewSimple(400, "ID is not a number")
		return c.JSON(errResp.Code(), errResp)
	}

	var req service.NoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, apierror.MalformedBodyError)
	}

	data, err := n.Tokens.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	note, apierr := n.NoteService.UpdateNote(id, &req, data.UserID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, note)
}

func (n *DefaultNoteRoute) DeleteNote(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errResp := apierror.NewSimple(400, "ID is not a number")
		return c.JSON(errResp.Code(), errResp)
	}

	data, err := n.Tokens.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	if apierr := n.NoteService.DeleteNote(id, data.UserID); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusOK)
}
