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

type VoteService interface {
	CastVote(ctx context.Context, voter domain.User, gender domain.Gender) (domain.Vote, error)
	Board(ctx context.Context, viewer domain.User, reveal bool) (domain.VoteBoard, error)
}

type VoteHandler struct {
	svc  VoteService
	uSvc UserService
}

func NewVoteHandler(svc VoteService, uSvc UserService) *VoteHandler {
	return &VoteHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleGetVotes godoc
// @Summary      Get the vote board
// @Description  Stats and the vote lists are only included once the viewer has voted, or when reveal=true.
// @Tags         votes
// @Produce      json
// @Param        reveal  query     bool  false  "show results without voting"
// @Success      200     {object}  response.VoteBoardResponse
// @Failure      400     {object}  response.Err
// @Failure      401     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /votes [get]
func (h *VoteHandler) HandleGetVotes(ctx *gin.Context) {
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
		err = fmt.Errorf("v1.HandleGetVotes -> h.svc.Board -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewVoteBoardResponse(board))
}

// HandleCastVote godoc
// @Summary      Cast or change my vote
// @Tags         votes
// @Accept       json
// @Produce      json
// @Param        request  body      request.CastVoteRequest  true  "request body"
// @Success      200      {object}  domain.Vote
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /votes/me [put]
// @Security     BearerAuth
func (h *VoteHandler) HandleCastVote(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CastVoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	vote, err := h.svc.CastVote(ctx.Request.Context(), user, domain.Gender(req.Gender))
	if err != nil {
		if errors.Is(err, service.ErrInvalidGender) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleCastVote -> h.svc.CastVote -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, vote)
}
