package domain

// MaxPlayers is the size of a full roster: two teams of five.
const MaxPlayers = 10

// Player is a summoner with an already resolved solo queue rank.
type Player struct {
	SummonerName string
	Tier         Tier
	Division     Division
	LeaguePoints int
	Wins         int
	Losses       int
}

// GamesPlayed returns the number of ranked games behind the current rank.
func (p Player) GamesPlayed() int {
	return p.Wins + p.Losses
}

// WinRate returns the solo queue win percentage rounded down.
func (p Player) WinRate() int {
	games := p.GamesPlayed()
	if games == 0 {
		return 0
	}
	return p.Wins * 100 / games
}

// Roster is the ordered list of players waiting for a game in one channel.
// Insertion order is significant.
type Roster struct {
	ChannelID string
	Members   []Player
}

func (r Roster) Len() int {
	return len(r.Members)
}

func (r Roster) Empty() bool {
	return len(r.Members) == 0
}

// Full reports whether the roster can be split into teams.
func (r Roster) Full() bool {
	return len(r.Members) == MaxPlayers
}

// Clone returns a copy that shares no memory with r.
func (r Roster) Clone() Roster {
	c := Roster{ChannelID: r.ChannelID}
	if r.Members != nil {
		c.Members = make([]Player, len(r.Members))
		copy(c.Members, r.Members)
	}
	return c
}
