package ranklookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/goserg/teammaker/internal/domain"
	"github.com/goserg/teammaker/internal/rank"
)

const (
	DefaultHost = "https://na1.api.riotgames.com"
	soloQueue   = "RANKED_SOLO_5x5"
)

// Riot resolves ranks through the Riot Games summoner-v4 and league-v4 APIs.
type Riot struct {
	host    string
	apiKey  string
	client  *http.Client
	limiter *rate.Limiter
	log     *logrus.Entry
}

var _ Lookup = (*Riot)(nil)

// NewRiot builds a client that sends at most requestsPerSecond requests,
// shared by all lookups. Zero or less disables the limit.
func NewRiot(host, apiKey string, timeout time.Duration, requestsPerSecond float64, l *logrus.Logger) *Riot {
	if host == "" {
		host = DefaultHost
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if requestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), max(1, int(requestsPerSecond)))
	}
	return &Riot{
		host:    strings.TrimRight(host, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		limiter: limiter,
		log:     l.WithField("from", "riot-lookup"),
	}
}

type summonerDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type leagueEntryDTO struct {
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
}

func (r *Riot) Lookup(ctx context.Context, name string) (domain.Player, error) {
	var summoner summonerDTO
	err := r.get(ctx, "/lol/summoner/v4/summoners/by-name/"+url.PathEscape(strings.TrimSpace(name)), &summoner)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return domain.Player{}, &NotFoundError{Name: name}
		}
		return domain.Player{}, err
	}

	var entries []leagueEntryDTO
	err = r.get(ctx, "/lol/league/v4/entries/by-summoner/"+url.PathEscape(summoner.ID), &entries)
	if err != nil && !errors.Is(err, errNotFound) {
		return domain.Player{}, err
	}

	player := domain.Player{SummonerName: summoner.Name}
	for _, e := range entries {
		if e.QueueType != soloQueue {
			continue
		}
		if player.Tier, err = rank.ParseTier(e.Tier); err != nil {
			return domain.Player{}, fmt.Errorf("%w: %s: %v", ErrService, e.Tier, err)
		}
		if player.Tier.HasDivisions() {
			if player.Division, err = rank.ParseDivision(e.Rank); err != nil {
				return domain.Player{}, fmt.Errorf("%w: %s: %v", ErrService, e.Rank, err)
			}
		}
		player.LeaguePoints = e.LeaguePoints
		player.Wins = e.Wins
		player.Losses = e.Losses
		break
	}
	r.log.WithFields(logrus.Fields{
		"summoner": player.SummonerName,
		"rank":     rank.Long(player),
	}).Debug("rank resolved")
	return player, nil
}

type statusError int

func (e statusError) Error() string {
	return "unexpected status " + http.StatusText(int(e))
}

const errNotFound = statusError(http.StatusNotFound)

func (r *Riot) get(ctx context.Context, path string, dest any) error {
	if err := r.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limit: %w", ErrService, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.host+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-Riot-Token", r.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrService, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: %s: %w", ErrService, path, statusError(resp.StatusCode))
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrService, path, err)
	}
	return nil
}
