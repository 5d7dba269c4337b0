package routes

import (
	"calpal/cmd/internal/service"
	"calpal/cmd/internal/utils"
	"calpal/cmd/internal/utils/apierror"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type PushService interface {
	Subscribe(req *service.SubscribeRequest, userId int) (*service.SubscriptionResponse, apierror.ErrorResponse)
	Unsubscribe(id, userId int) apierror.ErrorResponse
}

type DefaultPushRoute struct {
	PushService PushService
	Tokens      *utils.Tokens
}

func NewPushDefault(pushService PushService, tokens *utils.Tokens) *DefaultPushRoute {
	return &DefaultPushRoute{PushService: pushService, Tokens: tokens}
}

func (p *DefaultPushRoute) Subscribe(c echo.Context) error {
	var req service.SubscribeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, apierror.MalformedBodyError)
	}

	data, err := p.Tokens.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	sub, apierr := p.PushService.Subscribe(&req, data.UserID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, sub)
}

func (p *DefaultPushRoute) Unsubscribe(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errResp := apierror.NewSimple(400, "ID is not a number")
		return c.JSON(errResp.Code(), errResp)
	}

	data, err := p.Tokens.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	if apierr := p.PushService.Unsubscribe(id, data.UserID); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusOK)
}
