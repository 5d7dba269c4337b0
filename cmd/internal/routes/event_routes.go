package routes

import (
	"calpal/cmd/internal/service"
	"calpal/cmd/internal/utils"
	"calpal/cmd/internal/utils/apierror"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type EventService interface {
	GetEvents(userId int) ([]*service.EventResponse, apierror.ErrorResponse)
	GetEventsForDate(userId int, date string) ([]*service.EventResponse, apierror.ErrorResponse)
	GetNextEvent(userId int) (*service.EventResponse, apierror.ErrorResponse)
	CreateEvent(req *service.EventRequest, userId int) (*service.EventResponse, apierror.ErrorResponse)
	UpdateEvent(id int, req *service.EventRequest, userId int) (*service.EventResponse, apierror.ErrorResponse)
	DeleteEvent(id, userId int) apierror.ErrorResponse
}

type DefaultEventRoute struct {
	EventService EventService
	Tokens       *utils.Tokens
}

func NewEventDefault(eventService EventService, tokens *utils.Tokens) *DefaultEventRoute {
	return &DefaultEventRoute{EventService: eventService, Tokens: tokens}
}

func (e *DefaultEventRoute) GetEvents(c echo.Context) error {
	data, err := e.Tokens.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	var events []*service.EventResponse
	var apierr apierror.ErrorResponse

	if date := c.QueryParam("date"); date != "" {
		events, apierr = e.EventService.GetEventsForDate(data.UserID, date)
	} else {
		events, apierr = e.EventService.GetEvents(data.UserID)
	}

	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"events": events}
	return c.JSON(http.StatusOK, &resp)
}

func (e *DefaultEventRoute) GetNextEvent(c echo.Context) error {
	data, err := e.Tokens.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	event, apierr := e.EventService.GetNextEvent(data.UserID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, event)
}

func (e *DefaultEventRoute) CreateEvent(c echo.Context) error {
	var req service.EventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, apierror.MalformedBodyError)
	}

	data, err := e.Tokens.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	event, apierr := e.EventService.CreateEvent(&req, data.UserID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, event)
}

func (e *DefaultEventRoute) UpdateEvent(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errResp := apierror.NewSimple(400, "ID is not a number")
		return c.JSON(errResp.Code(), errResp)
	}

	var req service.EventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, apierror.MalformedBodyError)
	}

	data, err := e.Tokens.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	event, apierr := e.EventService.UpdateEvent(id, &req, data.UserID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, event)
}

func (e *DefaultEventRoute) DeleteEvent(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errResp := apierror.NewSimple(400, "ID is not a number")
		return c.JSON(errResp.Code(), errResp)
	}

	data, err := e.Tokens.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	if apierr := e.EventService.DeleteEvent(id, data.UserID); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusOK)
}
