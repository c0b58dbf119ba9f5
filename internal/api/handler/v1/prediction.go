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

type PredictionService interface {
	PutPrediction(ctx context.Context, user domain.User, p domain.Prediction) (domain.Prediction, error)
	Board(ctx context.Context, viewer domain.User, reveal bool) (domain.PredictionBoard, error)
}

type PredictionHandler struct {
	svc  PredictionService
	uSvc UserService
}

func NewPredictionHandler(svc PredictionService, uSvc UserService) *PredictionHandler {
	return &PredictionHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleGetPredictions godoc
// @Summary      Get the prediction board
// @Tags         predictions
// @Produce      json
// @Param        reveal  query     bool  false  "show predictions without predicting"
// @Success      200     {object}  response.PredictionBoardResponse
// @Failure      400     {object}  response.Err
// @Failure      401     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /predictions [get]
func (h *PredictionHandler) HandleGetPredictions(ctx *gin.Context) {
	viewer, respErr := viewerFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	reveal, respErr := parseReveal(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	board, err := h.svc.Board(ctx.Request.Context(), viewer, reveal)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetPredictions -> h.svc.Board -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewPredictionBoardResponse(board))
}

// HandlePutPrediction godoc
// @Summary      Create or replace my prediction
// @Tags         predictions
// @Accept       json
// @Produce      json
// @Param        request  body      request.PutPredictionRequest  true  "request body"
// @Success      200      {object}  domain.Prediction
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /predictions/me [put]
// @Security     BearerAuth
func (h *PredictionHandler) HandlePutPrediction(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.PutPredictionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	prediction, err := h.svc.PutPrediction(ctx.Request.Context(), user, req.ToDomain())
	if err != nil {
		if errors.Is(err, service.ErrInvalidPrediction) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandlePutPrediction -> h.svc.PutPrediction -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, prediction)
}
