package tgbot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goserg/teammaker/internal/balance"
	"github.com/goserg/teammaker/internal/cache/mem"
	"github.com/goserg/teammaker/internal/domain"
	"github.com/goserg/teammaker/internal/rank"
	"github.com/goserg/teammaker/internal/ranklookup"
	"github.com/goserg/teammaker/internal/service"
)

func formatRoster(r domain.Roster) string {
	if r.Empty() {
		return "The list is empty. Add summoners with /add"
	}
	var b strings.Builder
	b.WriteString("List of Summoners\n")
	for i, p := range r.Members {
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". [")
		b.WriteString(rank.Short(p))
		b.WriteString("] ")
		b.WriteString(p.SummonerName)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Total Number of Summoners: %d/%d", r.Len(), domain.MaxPlayers)
	return b.String()
}

func formatTeams(t balance.Teams) string {
	var b strings.Builder
	writeTeam(&b, "TEAM BLUE", t.Blue, t.BlueScore)
	b.WriteString("\n")
	writeTeam(&b, "TEAM RED", t.Red, t.RedScore)
	return b.String()
}

func writeTeam(b *strings.Builder, title string, players []domain.Player, score int) {
	b.WriteString(title)
	b.WriteString("\n")
	for _, p := range players {
		b.WriteString("[")
		b.WriteString(rank.Short(p))
		b.WriteString("] ")
		b.WriteString(p.SummonerName)
		b.WriteString("\n")
	}
	fmt.Fprintf(b, "Score: %d\n", score)
}

func formatRank(p domain.Player) string {
	var b strings.Builder
	b.WriteString(p.SummonerName)
	b.WriteString("\n")
	b.WriteString(rank.Long(p))
	if games := p.GamesPlayed(); games > 0 {
		fmt.Fprintf(&b, "\n%dW %dL (%d%%)", p.Wins, p.Losses, p.WinRate())
	}
	return b.String()
}

// errorText turns a command failure into the reply shown in chat.
func errorText(err error) string {
	var (
		capacity *mem.CapacityExceededError
		notFound *ranklookup.NotFoundError
		size     *balance.InvalidRosterSizeError
	)
	switch {
	case errors.Is(err, ErrBadRequest):
		return "Unknown command. Send /help for the list of commands."
	case errors.Is(err, ErrForbidden):
		return "Only chat administrators can do that."
	case errors.Is(err, service.ErrNoNames), errors.Is(err, mem.ErrEmptyName):
		return "Give me at least one summoner name, e.g. /add Faker, Caps"
	case errors.Is(err, service.ErrTooManyNames):
		return fmt.Sprintf("At most %d summoners at once.", domain.MaxPlayers)
	case errors.As(err, &capacity):
		return fmt.Sprintf("Cannot add %d summoner(s), only %d slot(s) left.", capacity.Requested, capacity.Available)
	case errors.As(err, &notFound):
		return fmt.Sprintf("Summoner %s was not found.", notFound.Name)
	case errors.Is(err, ranklookup.ErrSummonerNotFound):
		return "Summoner was not found."
	case errors.As(err, &size):
		return fmt.Sprintf("Need exactly %d summoners to make teams, the list has %d.", domain.MaxPlayers, size.Actual)
	case errors.Is(err, ranklookup.ErrService):
		return "Rank service is unavailable, try again later."
	case errors.Is(err, context.DeadlineExceeded):
		return "That took too long, try again."
	default:
		return "Something went wrong, try again later."
	}
}
