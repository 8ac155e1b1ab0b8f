package rank

import (
	"errors"
	"strconv"
	"strings"

	"github.com/goserg/teammaker/internal/domain"
)

var (
	ErrUnknownTier     = errors.New("unknown tier")
	ErrUnknownDivision = errors.New("unknown division")
)

// ParseTier accepts a tier name in any case, e.g. "Gold" or "GRANDMASTER".
// An empty string means unranked.
func ParseTier(s string) (domain.Tier, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return domain.TierUnranked, nil
	}
	for t := domain.TierUnranked; t <= domain.TierChallenger; t++ {
		if t.String() == s {
			return t, nil
		}
	}
	return domain.TierUnranked, ErrUnknownTier
}

// ParseDivision accepts roman ("II") or arabic ("2") division notation.
// An empty string means no division.
func ParseDivision(s string) (domain.Division, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return domain.DivisionNone, nil
	}
	for d := domain.DivisionI; d <= domain.DivisionIV; d++ {
		if d.String() == s {
			return d, nil
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < int(domain.DivisionI) || n > int(domain.DivisionIV) {
		return domain.DivisionNone, ErrUnknownDivision
	}
	return domain.Division(n), nil
}

var apexShort = map[domain.Tier]string{
	domain.TierUnranked:    "UR",
	domain.TierMaster:      "M",
	domain.TierGrandmaster: "GM",
	domain.TierChallenger:  "C",
}

// Short renders a compact rank badge: "G2", "D4", "GM", "UR".
func Short(p domain.Player) string {
	if s, ok := apexShort[p.Tier]; ok {
		return s
	}
	name := p.Tier.String()
	if p.Division == domain.DivisionNone {
		return name[:1]
	}
	return name[:1] + strconv.Itoa(int(p.Division))
}

// Long renders the full rank, e.g. "GOLD II 45LP".
func Long(p domain.Player) string {
	var b strings.Builder
	b.WriteString(p.Tier.String())
	if p.Tier.HasDivisions() && p.Division != domain.DivisionNone {
		b.WriteString(" ")
		b.WriteString(p.Division.String())
	}
	if p.Tier != domain.TierUnranked {
		b.WriteString(" ")
		b.WriteString(strconv.Itoa(p.LeaguePoints))
		b.WriteString("LP")
	}
	return b.String()
}
