package storage

import (
	"encoding/json"
	"fmt"

	"github.com/goserg/teammaker/internal/domain"
	"github.com/goserg/teammaker/internal/rank"
)

// member is the persisted shape of a roster member inside the members
// JSON column.
type member struct {
	SummonerName string `json:"summoner_name"`
	Tier         string `json:"tier"`
	Division     string `json:"division,omitempty"`
	LeaguePoints int    `json:"league_points"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
}

// EncodeMembers renders players as the members JSON column.
func EncodeMembers(players []domain.Player) (string, error) {
	members := make([]member, 0, len(players))
	for _, p := range players {
		members = append(members, member{
			SummonerName: p.SummonerName,
			Tier:         p.Tier.String(),
			Division:     p.Division.String(),
			LeaguePoints: p.LeaguePoints,
			Wins:         p.Wins,
			Losses:       p.Losses,
		})
	}
	data, err := json.Marshal(members)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeMembers parses the members JSON column.
func DecodeMembers(data string) ([]domain.Player, error) {
	var members []member
	if err := json.Unmarshal([]byte(data), &members); err != nil {
		return nil, fmt.Errorf("decode members: %w", err)
	}
	players := make([]domain.Player, 0, len(members))
	for _, m := range members {
		tier, err := rank.ParseTier(m.Tier)
		if err != nil {
			return nil, fmt.Errorf("member %q: %w", m.SummonerName, err)
		}
		division, err := rank.ParseDivision(m.Division)
		if err != nil {
			return nil, fmt.Errorf("member %q: %w", m.SummonerName, err)
		}
		players = append(players, domain.Player{
			SummonerName: m.SummonerName,
			Tier:         tier,
			Division:     division,
			LeaguePoints: m.LeaguePoints,
			Wins:         m.Wins,
			Losses:       m.Losses,
		})
	}
	return players, nil
}
