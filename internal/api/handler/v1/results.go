package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/babyduj/shower-api/internal/api/handler/v1/request"
	"github.com/babyduj/shower-api/internal/api/handler/v1/response"
	"github.com/babyduj/shower-api/internal/domain"
	"github.com/babyduj/shower-api/internal/service"
)

type ResultsService interface {
	SetReveal(ctx context.Context, actor domain.User, gender domain.Gender, at time.Time) (domain.Reveal, error)
	Results(ctx context.Context) (domain.Results, error)
}

type ResultsHandler struct {
	svc  ResultsService
	uSvc UserService
}

func NewResultsHandler(svc ResultsService, uSvc UserService) *ResultsHandler {
	return &ResultsHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleGetResults godoc
// @Summary      Get the announcement
// @Description  The actual gender and the winners are only included once the reveal time has passed.
// @Tags         results
// @Produce      json
// @Success      200  {object}  response.ResultsResponse
// @Failure      500  {object}  response.Err
// @Router       /results [get]
func (h *ResultsHandler) HandleGetResults(ctx *gin.Context) {
	results, err := h.svc.Results(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetResults -> h.svc.Results -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewResultsResponse(results))
}

// HandleSetReveal godoc
// @Summary      Record the actual gender
// @Description  Admin only. revealed_at defaults to now.
// @Tags         results
// @Accept       json
// @Produce      json
// @Param        request  body      request.RevealRequest  true  "request body"
// @Success      200      {object}  domain.Reveal
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /results/reveal [put]
// @Security     BearerAuth
func (h *ResultsHandler) HandleSetReveal(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.RevealRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var at time.Time
	if req.RevealedAt != nil {
		at = *req.RevealedAt
	}

	reveal, err := h.svc.SetReveal(ctx.Request.Context(), actor, domain.Gender(req.Gender), at)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrInvalidGender):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleSetReveal -> h.svc.SetReveal -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, reveal)
}
