package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/babyduj/shower-api/internal/api/handler/v1/request"
	"github.com/babyduj/shower-api/internal/api/handler/v1/response"
	"github.com/babyduj/shower-api/internal/api/middleware"
	"github.com/babyduj/shower-api/internal/domain"
	"github.com/babyduj/shower-api/internal/service"
)

var errNotSignedIn = errors.New("sign in first")

type UserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
	SetAdmin(ctx context.Context, actor domain.User, id uint, admin bool) (domain.User, error)
}

type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

// HandleGetMe godoc
// @Summary      Get the signed-in identity
// @Tags         users
// @Produce      json
// @Success      200  {object}  domain.User
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /users/me [get]
// @Security     BearerAuth
func (h *UserHandler) HandleGetMe(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.svc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleSetAdmin godoc
// @Summary      Grant or revoke admin rights
// @Description  Only admins can change the admin flag of an identity.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        userID   path      int                      true  "User ID"
// @Param        request  body      request.SetAdminRequest  true  "request body"
// @Success      200      {object}  domain.User
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /users/{userID}/admin [patch]
// @Security     BearerAuth
func (h *UserHandler) HandleSetAdmin(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.svc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	userID, respErr := parseID(ctx, "userID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.SetAdminRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, err := h.svc.SetAdmin(ctx.Request.Context(), actor, userID, *req.Admin)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", userID))
		default:
			err = fmt.Errorf("v1.HandleSetAdmin -> h.svc.SetAdmin -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// getUserFromContext loads the identity the bearer token points at. The row is
// re-read on every request so admin changes apply immediately.
func getUserFromContext(ctx *gin.Context, svc UserService) (domain.User, *response.Err) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return domain.User{}, response.ErrUnauthorized(errNotSignedIn)
	}

	user, err := svc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return domain.User{}, response.ErrUnauthorized(fmt.Errorf("user %d no longer exists", userID))
		}

		err = fmt.Errorf("getUserFromContext -> svc.GetUser -> %w", err)
		return domain.User{}, response.ErrInternalServerError(err)
	}

	return user, nil
}

// viewerFromContext is getUserFromContext for routes that signed-out readers
// may also use; they get the zero identity.
func viewerFromContext(ctx *gin.Context, svc UserService) (domain.User, *response.Err) {
	if _, ok := middleware.UserIDFromContext(ctx); !ok {
		return domain.User{}, nil
	}

	return getUserFromContext(ctx, svc)
}

func parseID(ctx *gin.Context, param string) (uint, *response.Err) {
	id, err := strconv.ParseUint(ctx.Param(param), 10, 64)
	if err != nil || id == 0 {
		return 0, response.ErrBadRequest(fmt.Errorf("invalid %s: %q", param, ctx.Param(param)))
	}

	return uint(id), nil
}

func parseReveal(ctx *gin.Context) (bool, *response.Err) {
	raw := ctx.Query("reveal")
	if raw == "" {
		return false, nil
	}

	reveal, err := strconv.ParseBool(raw)
	if err != nil {
		return false, response.ErrBadRequest(fmt.Errorf("invalid reveal: %q", raw))
	}

	return reveal, nil
}
