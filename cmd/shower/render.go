package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/babyduj/shower-api/internal/client"
	"github.com/babyduj/shower-api/internal/domain"
)

func renderVoteBoard(w io.Writer, board client.VoteBoard) {
	if board.MyVote != nil {
		fmt.Fprintf(w, "Your vote: %s\n", board.MyVote.Gender)
	}

	if board.Hidden || board.Stats == nil {
		fmt.Fprintln(w, "Vote to see the results (or use -reveal).")
		return
	}

	s := board.Stats
	fmt.Fprintf(w, "Girl %3d%%  %s (%d)\n", s.GirlPercent, bar(s.GirlPercent), s.Girl)
	fmt.Fprintf(w, "Boy  %3d%%  %s (%d)\n", s.BoyPercent, bar(s.BoyPercent), s.Boy)

	switch {
	case s.Total == 0:
		fmt.Fprintln(w, "No votes yet.")
	case s.Leader == domain.GenderGirl:
		fmt.Fprintf(w, "Girl leads after %d votes.\n", s.Total)
	case s.Leader == domain.GenderBoy:
		fmt.Fprintf(w, "Boy leads after %d votes.\n", s.Total)
	default:
		fmt.Fprintf(w, "Tied after %d votes.\n", s.Total)
	}

	renderVoters(w, "Team girl", board.Girls)
	renderVoters(w, "Team boy", board.Boys)
}

func renderVoters(w io.Writer, title string, votes []domain.Vote) {
	if len(votes) == 0 {
		return
	}

	names := make([]string, 0, len(votes))
	for _, v := range votes {
		names = append(names, v.Voter.FullName())
	}
	fmt.Fprintf(w, "%s: %s\n", title, strings.Join(names, ", "))
}

func renderGifts(w io.Writer, list domain.GiftList, me uint) {
	fmt.Fprintf(w, "%d gifts, %d reserved, %d available\n", list.Stats.Total, list.Stats.Reserved, list.Stats.Available)

	for _, g := range list.Gifts {
		status := "available"
		switch {
		case g.IsReservedBy(me) && me != 0:
			status = "reserved by you"
		case g.IsReserved():
			status = "reserved by " + g.ReservedBy.FullName()
		}

		price := ""
		if g.Price != nil {
			price = fmt.Sprintf(" %.2f", *g.Price)
		}
		fmt.Fprintf(w, "#%-4d %s%s [%s]\n", g.ID, g.Title, price, status)
	}
}

func renderGuestBook(w io.Writer, entries []domain.GuestBookEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "The guest book is empty.")
		return
	}

	for _, e := range entries {
		lock := ""
		if e.IsPrivate {
			lock = " (private)"
		}
		fmt.Fprintf(w, "%s, %s%s\n  %s\n", e.Author.FullName(), e.CreatedAt.Format("2 Jan 2006"), lock, e.Message)
	}
}

func bar(percent int) string {
	n := percent / 5
	return strings.Repeat("#", n) + strings.Repeat(".", 20-n)
}
