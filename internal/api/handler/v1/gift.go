package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/babyduj/shower-api/internal/api/handler/v1/request"
	"github.com/babyduj/shower-api/internal/api/handler/v1/response"
	"github.com/babyduj/shower-api/internal/domain"
	"github.com/babyduj/shower-api/internal/service"
)

type GiftService interface {
	ListGifts(ctx context.Context) (domain.GiftList, error)
	CreateGift(ctx context.Context, actor domain.User, gift domain.Gift) (domain.Gift, error)
	ReserveGift(ctx context.Context, actor domain.User, id uint) (domain.Gift, error)
	UnreserveGift(ctx context.Context, actor domain.User, id uint) (domain.Gift, error)
	DeleteGift(ctx context.Context, actor domain.User, id uint) error
}

type GiftHandler struct {
	svc  GiftService
	uSvc UserService
}

func NewGiftHandler(svc GiftService, uSvc UserService) *GiftHandler {
	return &GiftHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleListGifts godoc
// @Summary      List the gift registry
// @Description  Newest first, with reserver names and totals.
// @Tags         gifts
// @Produce      json
// @Success      200  {object}  domain.GiftList
// @Failure      500  {object}  response.Err
// @Router       /gifts [get]
func (h *GiftHandler) HandleListGifts(ctx *gin.Context) {
	list, err := h.svc.ListGifts(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListGifts -> h.svc.ListGifts -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, list)
}

// HandleCreateGift godoc
// @Summary      Add a gift to the registry
// @Tags         gifts
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateGiftRequest  true  "request body"
// @Success      201      {object}  domain.Gift
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /gifts [post]
// @Security     BearerAuth
func (h *GiftHandler) HandleCreateGift(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateGiftRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	gift, err := h.svc.CreateGift(ctx.Request.Context(), actor, req.ToDomain())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrInvalidGift):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleCreateGift -> h.svc.CreateGift -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, gift)
}

// HandleReserveGift godoc
// @Summary      Reserve a gift
// @Description  Fails with 409 when someone else already holds it. Reserving your own gift again is a no-op.
// @Tags         gifts
// @Produce      json
// @Param        giftID  path      int  true  "Gift ID"
// @Success      200     {object}  domain.Gift
// @Failure      400     {object}  response.Err
// @Failure      401     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      409     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /gifts/{giftID}/reservation [post]
// @Security     BearerAuth
func (h *GiftHandler) HandleReserveGift(ctx *gin.Context) {
	actor, giftID, respErr := h.actorAndGift(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	gift, err := h.svc.ReserveGift(ctx.Request.Context(), actor, giftID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGiftNotFound):
			response.RenderErr(ctx, response.ErrNotFound("gift", "ID", giftID))
		case errors.Is(err, service.ErrGiftAlreadyReserved):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleReserveGift -> h.svc.ReserveGift -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, gift)
}

// HandleUnreserveGift godoc
// @Summary      Release my reservation
// @Tags         gifts
// @Produce      json
// @Param        giftID  path      int  true  "Gift ID"
// @Success      200     {object}  domain.Gift
// @Failure      400     {object}  response.Err
// @Failure      401     {object}  response.Err
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /gifts/{giftID}/reservation [delete]
// @Security     BearerAuth
func (h *GiftHandler) HandleUnreserveGift(ctx *gin.Context) {
	actor, giftID, respErr := h.actorAndGift(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	gift, err := h.svc.UnreserveGift(ctx.Request.Context(), actor, giftID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGiftNotFound):
			response.RenderErr(ctx, response.ErrNotFound("gift", "ID", giftID))
		case errors.Is(err, service.ErrNotReserver):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleUnreserveGift -> h.svc.UnreserveGift -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, gift)
}

// HandleDeleteGift godoc
// @Summary      Remove a gift from the registry
// @Tags         gifts
// @Param        giftID  path  int  true  "Gift ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /gifts/{giftID} [delete]
// @Security     BearerAuth
func (h *GiftHandler) HandleDeleteGift(ctx *gin.Context) {
	actor, giftID, respErr := h.actorAndGift(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.DeleteGift(ctx.Request.Context(), actor, giftID); err != nil {
		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrGiftNotFound):
			response.RenderErr(ctx, response.ErrNotFound("gift", "ID", giftID))
		default:
			err = fmt.Errorf("v1.HandleDeleteGift -> h.svc.DeleteGift -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *GiftHandler) actorAndGift(ctx *gin.Context) (domain.User, uint, *response.Err) {
	actor, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		return domain.User{}, 0, respErr
	}

	giftID, respErr := parseID(ctx, "giftID")
	if respErr != nil {
		return domain.User{}, 0, respErr
	}

	return actor, giftID, nil
}
