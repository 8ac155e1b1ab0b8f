// Package balance splits a full roster into two teams.
//
// The split is a snake draft over rank score. It is deterministic: the same
// players in the same insertion order always produce the same teams. It is
// a heuristic and does not search for the minimum score difference.
package balance

import (
	"errors"
	"fmt"
	"slices"

	"github.com/goserg/teammaker/internal/domain"
	"github.com/goserg/teammaker/internal/rank"
)

// TeamSize is the number of players per team.
const TeamSize = domain.MaxPlayers / 2

var ErrInvalidRosterSize = errors.New("roster must have exactly 10 players")

// InvalidRosterSizeError is returned when the input is not a full roster.
type InvalidRosterSizeError struct {
	Actual int
}

func (e *InvalidRosterSizeError) Error() string {
	return fmt.Sprintf("roster must have exactly %d players, got %d", domain.MaxPlayers, e.Actual)
}

func (e *InvalidRosterSizeError) Is(target error) bool {
	return target == ErrInvalidRosterSize
}

type side int

const (
	blue side = iota
	red
)

// draftOrder assigns sorted positions to teams. Rounds alternate which
// team picks first: A B | B A | A B | B A | A B.
var draftOrder = [domain.MaxPlayers]side{blue, red, red, blue, blue, red, red, blue, blue, red}

// Teams is the result of a draft. Blue picks first.
type Teams struct {
	Blue      []domain.Player
	Red       []domain.Player
	BlueScore int
	RedScore  int
}

// Diff returns the absolute score gap between the teams.
func (t Teams) Diff() int {
	if t.BlueScore > t.RedScore {
		return t.BlueScore - t.RedScore
	}
	return t.RedScore - t.BlueScore
}

// Balance drafts exactly ten players into two teams of five.
// Within a team players keep their draft order, strongest first.
func Balance(players []domain.Player) (Teams, error) {
	if len(players) != domain.MaxPlayers {
		return Teams{}, &InvalidRosterSizeError{Actual: len(players)}
	}

	sorted := slices.Clone(players)
	// Stable: equal scores keep roster insertion order.
	slices.SortStableFunc(sorted, func(a, b domain.Player) int {
		return rank.Score(b) - rank.Score(a)
	})

	teams := Teams{
		Blue: make([]domain.Player, 0, TeamSize),
		Red:  make([]domain.Player, 0, TeamSize),
	}
	for i, p := range sorted {
		score := rank.Score(p)
		switch draftOrder[i] {
		case blue:
			teams.Blue = append(teams.Blue, p)
			teams.BlueScore += score
		case red:
			teams.Red = append(teams.Red, p)
			teams.RedScore += score
		}
	}
	return teams, nil
}
