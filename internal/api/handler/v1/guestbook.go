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

type GuestBookService interface {
	List(ctx context.Context, viewer domain.User) ([]domain.GuestBookEntry, error)
	Get(ctx context.Context, viewer domain.User, id uint) (domain.GuestBookEntry, error)
	Sign(ctx context.Context, author domain.User, message string, private bool) (domain.GuestBookEntry, error)
	Edit(ctx context.Context, actor domain.User, id uint, message string, private *bool) (domain.GuestBookEntry, error)
	Delete(ctx context.Context, actor domain.User, id uint) error
}

type GuestBookHandler struct {
	svc  GuestBookService
	uSvc UserService
}

func NewGuestBookHandler(svc GuestBookService, uSvc UserService) *GuestBookHandler {
	return &GuestBookHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleListEntries godoc
// @Summary      List guest book entries
// @Description  Private entries are only listed for their author and for admins.
// @Tags         guestbook
// @Produce      json
// @Success      200  {array}   domain.GuestBookEntry
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /guestbook [get]
func (h *GuestBookHandler) HandleListEntries(ctx *gin.Context) {
	viewer, respErr := viewerFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	entries, err := h.svc.List(ctx.Request.Context(), viewer)
	if err != nil {
		err = fmt.Errorf("v1.HandleListEntries -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, entries)
}

// HandleGetEntry godoc
// @Summary      Get a guest book entry
// @Tags         guestbook
// @Produce      json
// @Param        entryID  path      int  true  "Entry ID"
// @Success      200      {object}  domain.GuestBookEntry
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /guestbook/{entryID} [get]
func (h *GuestBookHandler) HandleGetEntry(ctx *gin.Context) {
	viewer, respErr := viewerFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	entryID, respErr := parseID(ctx, "entryID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	entry, err := h.svc.Get(ctx.Request.Context(), viewer, entryID)
	if err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("guest book entry", "ID", entryID))
			return
		}

		err = fmt.Errorf("v1.HandleGetEntry -> h.svc.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, entry)
}

// HandleSign godoc
// @Summary      Sign the guest book
// @Description  Each identity has one entry; signing again replaces it.
// @Tags         guestbook
// @Accept       json
// @Produce      json
// @Param        request  body      request.GuestBookRequest  true  "request body"
// @Success      200      {object}  domain.GuestBookEntry
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /guestbook/me [put]
// @Security     BearerAuth
func (h *GuestBookHandler) HandleSign(ctx *gin.Context) {
	author, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.GuestBookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	entry, err := h.svc.Sign(ctx.Request.Context(), author, req.Message, req.IsPrivate)
	if err != nil {
		if errors.Is(err, service.ErrInvalidMessage) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleSign -> h.svc.Sign -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, entry)
}

// HandleEditEntry godoc
// @Summary      Edit my guest book entry
// @Tags         guestbook
// @Accept       json
// @Produce      json
// @Param        entryID  path      int                           true  "Entry ID"
// @Param        request  body      request.EditGuestBookRequest  true  "request body"
// @Success      200      {object}  domain.GuestBookEntry
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /guestbook/{entryID} [patch]
// @Security     BearerAuth
func (h *GuestBookHandler) HandleEditEntry(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	entryID, respErr := parseID(ctx, "entryID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.EditGuestBookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	entry, err := h.svc.Edit(ctx.Request.Context(), actor, entryID, req.Message, req.IsPrivate)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEntryNotFound):
			response.RenderErr(ctx, response.ErrNotFound("guest book entry", "ID", entryID))
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrInvalidMessage):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleEditEntry -> h.svc.Edit -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, entry)
}

// HandleDeleteEntry godoc
// @Summary      Delete a guest book entry
// @Description  Authors can delete their own entry, admins any entry.
// @Tags         guestbook
// @Param        entryID  path  int  true  "Entry ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /guestbook/{entryID} [delete]
// @Security     BearerAuth
func (h *GuestBookHandler) HandleDeleteEntry(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	entryID, respErr := parseID(ctx, "entryID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), actor, entryID); err != nil {
		switch {
		case errors.Is(err, service.ErrEntryNotFound):
			response.RenderErr(ctx, response.ErrNotFound("guest book entry", "ID", entryID))
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleDeleteEntry -> h.svc.Delete -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}
