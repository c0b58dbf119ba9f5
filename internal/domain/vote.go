package domain

import (
	"math"
	"time"
)

type Gender string

const (
	GenderGirl Gender = "girl"
	GenderBoy  Gender = "boy"
)

func (g Gender) Valid() bool {
	return g == GenderGirl || g == GenderBoy
}

type Vote struct {
	ID        uint      `json:"id"`
	Voter     User      `json:"voter"`
	Gender    Gender    `json:"gender"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type VoteStats struct {
	Total       int `json:"total"`
	Girl        int `json:"girl"`
	Boy         int `json:"boy"`
	GirlPercent int `json:"girl_percent"`
	BoyPercent  int `json:"boy_percent"`
	// Leader is empty while the counts are tied.
	Leader Gender `json:"leader,omitempty"`
}

func ComputeVoteStats(votes []Vote) VoteStats {
	var stats VoteStats
	for _, v := range votes {
		switch v.Gender {
		case GenderGirl:
			stats.Girl++
		case GenderBoy:
			stats.Boy++
		}
	}

	stats.Total = stats.Girl + stats.Boy
	if stats.Total > 0 {
		stats.GirlPercent = int(math.Round(float64(stats.Girl) / float64(stats.Total) * 100))
		stats.BoyPercent = int(math.Round(float64(stats.Boy) / float64(stats.Total) * 100))
	}

	switch {
	case stats.Girl > stats.Boy:
		stats.Leader = GenderGirl
	case stats.Boy > stats.Girl:
		stats.Leader = GenderBoy
	}

	return stats
}

// VoteBoard is what the votes page shows to one viewer. Stats and the vote
// lists are only filled once the viewer has voted or asked for the reveal.
type VoteBoard struct {
	MyVote   *Vote
	HasVoted bool
	Hidden   bool
	Stats    *VoteStats
	Girls    []Vote
	Boys     []Vote
}
