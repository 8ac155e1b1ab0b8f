// Package rank orders and scores solo queue ranks.
package rank

import (
	"cmp"

	"github.com/goserg/teammaker/internal/domain"
)

const (
	// DivisionSpan is the score distance between two adjacent divisions.
	// League points are clamped below it so that a division is never
	// outweighed by points.
	DivisionSpan = 10000
	// TierSpan is the score distance between two adjacent tiers.
	TierSpan = 4 * DivisionSpan
)

// Compare orders a and b by tier, then division, then league points.
// It returns -1 when a is weaker than b, 1 when stronger and 0 when equal.
func Compare(a, b domain.Player) int {
	if c := cmp.Compare(a.Tier, b.Tier); c != 0 {
		return c
	}
	if c := cmp.Compare(band(a), band(b)); c != 0 {
		return c
	}
	return cmp.Compare(points(a), points(b))
}

// Score maps a rank onto a single number consistent with Compare:
// Compare(a, b) < 0 implies Score(a) < Score(b).
func Score(p domain.Player) int {
	return int(p.Tier)*TierSpan + band(p)*DivisionSpan + points(p)
}

// band turns a division into an ascending 0..3 index, IV being 0.
func band(p domain.Player) int {
	if !p.Tier.HasDivisions() {
		return 0
	}
	switch p.Division {
	case domain.DivisionI, domain.DivisionII, domain.DivisionIII, domain.DivisionIV:
		return int(domain.DivisionIV - p.Division)
	}
	return 0
}

func points(p domain.Player) int {
	return min(max(p.LeaguePoints, 0), DivisionSpan-1)
}
