package response

import (
	"github.com/babyduj/shower-api/internal/domain"
)

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type VoteBoardResponse struct {
	HasVoted bool              `json:"has_voted"`
	Hidden   bool              `json:"hidden"`
	MyVote   *domain.Vote      `json:"my_vote,omitempty"`
	Stats    *domain.VoteStats `json:"stats,omitempty"`
	Girls    []domain.Vote     `json:"girls,omitempty"`
	Boys     []domain.Vote     `json:"boys,omitempty"`
}

func NewVoteBoardResponse(b domain.VoteBoard) VoteBoardResponse {
	return VoteBoardResponse{
		HasVoted: b.HasVoted,
		Hidden:   b.Hidden,
		MyVote:   b.MyVote,
		Stats:    b.Stats,
		Girls:    b.Girls,
		Boys:     b.Boys,
	}
}

type PredictionBoardResponse struct {
	HasPredicted bool                    `json:"has_predicted"`
	Hidden       bool                    `json:"hidden"`
	Mine         *domain.Prediction      `json:"mine,omitempty"`
	Stats        *domain.PredictionStats `json:"stats,omitempty"`
	Predictions  []domain.Prediction     `json:"predictions,omitempty"`
}

func NewPredictionBoardResponse(b domain.PredictionBoard) PredictionBoardResponse {
	return PredictionBoardResponse{
		HasPredicted: b.HasPredicted,
		Hidden:       b.Hidden,
		Mine:         b.Mine,
		Stats:        b.Stats,
		Predictions:  b.Predictions,
	}
}

type ResultsResponse struct {
	Revealed bool             `json:"revealed"`
	Reveal   *domain.Reveal   `json:"reveal,omitempty"`
	Stats    domain.VoteStats `json:"stats"`
	Winners  []domain.User    `json:"winners,omitempty"`
}

func NewResultsResponse(r domain.Results) ResultsResponse {
	return ResultsResponse{
		Revealed: r.Revealed,
		Reveal:   r.Reveal,
		Stats:    r.Stats,
		Winners:  r.Winners,
	}
}

type HealthResponse struct {
	Status string `json:"status"`
}
