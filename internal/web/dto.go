package web

import (
	"github.com/goserg/teammaker/internal/balance"
	"github.com/goserg/teammaker/internal/domain"
	"github.com/goserg/teammaker/internal/rank"
)

type playerResponse struct {
	SummonerName string `json:"summonerName"`
	Tier         string `json:"tier"`
	Division     string `json:"division,omitempty"`
	LeaguePoints int    `json:"leaguePoints"`
	Rank         string `json:"rank"`
	Score        int    `json:"score"`
}

type rosterResponse struct {
	ChannelID string           `json:"channelId"`
	Size      int              `json:"size"`
	Capacity  int              `json:"capacity"`
	Members   []playerResponse `json:"members"`
}

type teamsResponse struct {
	Blue      []playerResponse `json:"blue"`
	Red       []playerResponse `json:"red"`
	BlueScore int              `json:"blueScore"`
	RedScore  int              `json:"redScore"`
	Diff      int              `json:"diff"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func newPlayerResponse(p domain.Player) playerResponse {
	resp := playerResponse{
		SummonerName: p.SummonerName,
		Tier:         p.Tier.String(),
		LeaguePoints: p.LeaguePoints,
		Rank:         rank.Short(p),
		Score:        rank.Score(p),
	}
	if p.Tier.HasDivisions() {
		resp.Division = p.Division.String()
	}
	return resp
}

func newPlayersResponse(players []domain.Player) []playerResponse {
	out := make([]playerResponse, 0, len(players))
	for _, p := range players {
		out = append(out, newPlayerResponse(p))
	}
	return out
}

func newRosterResponse(r domain.Roster) rosterResponse {
	return rosterResponse{
		ChannelID: r.ChannelID,
		Size:      r.Len(),
		Capacity:  domain.MaxPlayers,
		Members:   newPlayersResponse(r.Members),
	}
}

func newTeamsResponse(t balance.Teams) teamsResponse {
	return teamsResponse{
		Blue:      newPlayersResponse(t.Blue),
		Red:       newPlayersResponse(t.Red),
		BlueScore: t.BlueScore,
		RedScore:  t.RedScore,
		Diff:      t.Diff(),
	}
}
