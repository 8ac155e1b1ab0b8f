package rank

import (
	"testing"

	"github.com/goserg/teammaker/internal/domain"
)

func player(t domain.Tier, d domain.Division, lp int) domain.Player {
	return domain.Player{Tier: t, Division: d, LeaguePoints: lp}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a    domain.Player
		b    domain.Player
		want int
	}{
		{
			name: "higher tier wins",
			a:    player(domain.TierPlatinum, domain.DivisionIV, 0),
			b:    player(domain.TierGold, domain.DivisionI, 99),
			want: 1,
		},
		{
			name: "lower division ordinal wins",
			a:    player(domain.TierGold, domain.DivisionIII, 10),
			b:    player(domain.TierGold, domain.DivisionII, 0),
			want: -1,
		},
		{
			name: "points break ties",
			a:    player(domain.TierSilver, domain.DivisionI, 50),
			b:    player(domain.TierSilver, domain.DivisionI, 49),
			want: 1,
		},
		{
			name: "equal",
			a:    player(domain.TierDiamond, domain.DivisionIV, 12),
			b:    player(domain.TierDiamond, domain.DivisionIV, 12),
			want: 0,
		},
		{
			name: "apex tiers ignore division",
			a:    player(domain.TierMaster, domain.DivisionIV, 300),
			b:    player(domain.TierMaster, domain.DivisionI, 200),
			want: 1,
		},
		{
			name: "unranked below iron",
			a:    player(domain.TierUnranked, domain.DivisionNone, 0),
			b:    player(domain.TierIron, domain.DivisionIV, 0),
			want: -1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare() = %v, want %v", got, tt.want)
			}
			if got := Compare(tt.b, tt.a); got != -tt.want {
				t.Errorf("Compare() reversed = %v, want %v", got, -tt.want)
			}
		})
	}
}

func TestScoreConsistentWithCompare(t *testing.T) {
	var ladder []domain.Player
	for tier := domain.TierUnranked; tier <= domain.TierChallenger; tier++ {
		divisions := []domain.Division{domain.DivisionNone}
		if tier.HasDivisions() {
			divisions = []domain.Division{domain.DivisionIV, domain.DivisionIII, domain.DivisionII, domain.DivisionI}
		}
		for _, d := range divisions {
			for _, lp := range []int{0, 1, 75, 100} {
				ladder = append(ladder, player(tier, d, lp))
			}
		}
	}
	ladder = append(ladder, player(domain.TierChallenger, domain.DivisionNone, 1500))
	for i := range ladder {
		for j := range ladder {
			c := Compare(ladder[i], ladder[j])
			si, sj := Score(ladder[i]), Score(ladder[j])
			switch {
			case c < 0 && si >= sj, c > 0 && si <= sj, c == 0 && si != sj:
				t.Fatalf("Score inconsistent for %+v / %+v: compare %d, scores %d %d", ladder[i], ladder[j], c, si, sj)
			}
		}
	}
}

func TestScoreClampsPoints(t *testing.T) {
	if got := Score(player(domain.TierGold, domain.DivisionIV, -20)); got != Score(player(domain.TierGold, domain.DivisionIV, 0)) {
		t.Errorf("negative points not clamped: %d", got)
	}
	high := Score(player(domain.TierGold, domain.DivisionIV, 1_000_000))
	if next := Score(player(domain.TierGold, domain.DivisionIII, 0)); high >= next {
		t.Errorf("points outweigh division: %d >= %d", high, next)
	}
}
