package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/babyduj/shower-api/internal/domain"
	"github.com/babyduj/shower-api/internal/repository"
)

var revealTime = time.Date(2025, 8, 15, 18, 0, 0, 0, time.UTC)

func newTestResultsService(reveals *mockRevealRepo, votes *mockVoteRepo, now time.Time) *ResultsService {
	s := NewResultsService(reveals, votes, nil)
	s.now = func() time.Time { return now }
	return s
}

func TestResultsService_Results(t *testing.T) {
	ctx := context.Background()

	t.Run("no reveal yet", func(t *testing.T) {
		reveals, votes := new(mockRevealRepo), new(mockVoteRepo)
		votes.On("FindAll", ctx).Return(sampleVotes(), nil)
		reveals.On("Find", ctx).Return(domain.Reveal{}, repository.ErrRevealNotFound)

		results, err := newTestResultsService(reveals, votes, revealTime).Results(ctx)
		require.NoError(t, err)
		assert.False(t, results.Revealed)
		assert.Equal(t, 3, results.Stats.Total)
	})

	t.Run("scheduled in the future", func(t *testing.T) {
		reveals, votes := new(mockRevealRepo), new(mockVoteRepo)
		votes.On("FindAll", ctx).Return(sampleVotes(), nil)
		reveals.On("Find", ctx).Return(domain.Reveal{Gender: domain.GenderBoy, RevealedAt: revealTime}, nil)

		results, err := newTestResultsService(reveals, votes, revealTime.Add(-time.Minute)).Results(ctx)
		require.NoError(t, err)
		assert.False(t, results.Revealed)
		assert.Nil(t, results.Reveal)
		assert.Empty(t, results.Winners)
	})

	t.Run("revealed", func(t *testing.T) {
		reveals, votes := new(mockRevealRepo), new(mockVoteRepo)
		votes.On("FindAll", ctx).Return(sampleVotes(), nil)
		reveals.On("Find", ctx).Return(domain.Reveal{Gender: domain.GenderBoy, RevealedAt: revealTime}, nil)

		results, err := newTestResultsService(reveals, votes, revealTime).Results(ctx)
		require.NoError(t, err)
		assert.True(t, results.Revealed)
		require.Len(t, results.Winners, 1)
		assert.Equal(t, guest.ID, results.Winners[0].ID)
	})
}

func TestResultsService_SetReveal(t *testing.T) {
	ctx := context.Background()

	t.Run("non-admin", func(t *testing.T) {
		reveals := new(mockRevealRepo)
		_, err := newTestResultsService(reveals, new(mockVoteRepo), revealTime).SetReveal(ctx, guest, domain.GenderGirl, time.Time{})
		assert.ErrorIs(t, err, ErrPermissionDenied)
		reveals.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("invalid gender", func(t *testing.T) {
		_, err := newTestResultsService(new(mockRevealRepo), new(mockVoteRepo), revealTime).SetReveal(ctx, admin, "twins", time.Time{})
		assert.ErrorIs(t, err, ErrInvalidGender)
	})

	t.Run("defaults to now", func(t *testing.T) {
		reveals := new(mockRevealRepo)
		want := domain.Reveal{Gender: domain.GenderGirl, RevealedAt: revealTime}
		reveals.On("Save", ctx, want).Return(want, nil)

		got, err := newTestResultsService(reveals, new(mockVoteRepo), revealTime).SetReveal(ctx, admin, domain.GenderGirl, time.Time{})
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}
