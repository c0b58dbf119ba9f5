package v1

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/babyduj/shower-api/internal/api/handler/v1/response"
	"github.com/babyduj/shower-api/internal/domain"
)

func newVoteRouter(userID uint, svc VoteService, results ResultsService) *gin.Engine {
	users := knownUsers()
	votes := NewVoteHandler(svc, users)
	res := NewResultsHandler(results, users)

	r := gin.New()
	r.Use(signedIn(userID))
	r.GET("/votes", votes.HandleGetVotes)
	r.PUT("/votes/me", votes.HandleCastVote)
	r.GET("/results", res.HandleGetResults)
	r.PUT("/results/reveal", res.HandleSetReveal)
	return r
}

func TestHandleGetVotes_Anonymous(t *testing.T) {
	svc := &mockVoteService{}
	svc.On("Board", mock.Anything, domain.User{}, false).Return(domain.VoteBoard{Hidden: true}, nil)

	rec := doJSON(t, newVoteRouter(0, svc, &mockResultsService{}), http.MethodGet, "/votes", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got response.VoteBoardResponse
	decode(t, rec, &got)
	assert.True(t, got.Hidden)
	assert.Nil(t, got.Stats)
	assert.Empty(t, got.Girls)
	svc.AssertExpectations(t)
}

func TestHandleGetVotes_Reveal(t *testing.T) {
	stats := domain.ComputeVoteStats([]domain.Vote{
		{Gender: domain.GenderGirl}, {Gender: domain.GenderGirl}, {Gender: domain.GenderBoy},
	})
	svc := &mockVoteService{}
	svc.On("Board", mock.Anything, guest, true).Return(domain.VoteBoard{Stats: &stats}, nil)

	rec := doJSON(t, newVoteRouter(guest.ID, svc, &mockResultsService{}), http.MethodGet, "/votes?reveal=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got response.VoteBoardResponse
	decode(t, rec, &got)
	require.NotNil(t, got.Stats)
	assert.Equal(t, 3, got.Stats.Total)
}

func TestHandleGetVotes_BadReveal(t *testing.T) {
	rec := doJSON(t, newVoteRouter(0, &mockVoteService{}, &mockResultsService{}), http.MethodGet, "/votes?reveal=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCastVote(t *testing.T) {
	tests := []struct {
		name       string
		userID     uint
		body       map[string]string
		wantStatus int
	}{
		{name: "signed out", userID: 0, body: map[string]string{"gender": "girl"}, wantStatus: http.StatusUnauthorized},
		{name: "unknown gender", userID: guest.ID, body: map[string]string{"gender": "dragon"}, wantStatus: http.StatusBadRequest},
		{name: "ok", userID: guest.ID, body: map[string]string{"gender": "boy"}, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockVoteService{}
			svc.On("CastVote", mock.Anything, guest, domain.GenderBoy).
				Return(domain.Vote{ID: 3, Voter: guest, Gender: domain.GenderBoy}, nil).Maybe()

			rec := doJSON(t, newVoteRouter(tt.userID, svc, &mockResultsService{}), http.MethodPut, "/votes/me", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandleSetReveal(t *testing.T) {
	at := time.Date(2025, 8, 15, 18, 0, 0, 0, time.UTC)

	svc := &mockResultsService{}
	svc.On("SetReveal", mock.Anything, admin, domain.GenderGirl, mock.MatchedBy(at.Equal)).
		Return(domain.Reveal{Gender: domain.GenderGirl, RevealedAt: at}, nil)

	rec := doJSON(t, newVoteRouter(admin.ID, &mockVoteService{}, svc), http.MethodPut, "/results/reveal",
		map[string]interface{}{"gender": "girl", "revealed_at": at})
	require.Equal(t, http.StatusOK, rec.Code)

	var got domain.Reveal
	decode(t, rec, &got)
	assert.Equal(t, domain.GenderGirl, got.Gender)
	svc.AssertExpectations(t)
}

func TestHandleSetReveal_DefaultsToNow(t *testing.T) {
	svc := &mockResultsService{}
	svc.On("SetReveal", mock.Anything, admin, domain.GenderBoy, time.Time{}).
		Return(domain.Reveal{Gender: domain.GenderBoy}, nil)

	rec := doJSON(t, newVoteRouter(admin.ID, &mockVoteService{}, svc), http.MethodPut, "/results/reveal",
		map[string]string{"gender": "boy"})
	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandleGetResults_BeforeReveal(t *testing.T) {
	svc := &mockResultsService{}
	svc.On("Results", mock.Anything).Return(domain.Results{Stats: domain.VoteStats{Total: 2, Girl: 1, Boy: 1}}, nil)

	rec := doJSON(t, newVoteRouter(0, &mockVoteService{}, svc), http.MethodGet, "/results", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got response.ResultsResponse
	decode(t, rec, &got)
	assert.False(t, got.Revealed)
	assert.Nil(t, got.Reveal)
	assert.Empty(t, got.Winners)
}
