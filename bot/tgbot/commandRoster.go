package tgbot

import (
	"context"
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/goserg/teammaker/bot/model"
	"github.com/goserg/teammaker/internal/normalize"
	"github.com/goserg/teammaker/internal/service"
)

type AddCommand struct {
	rosterService *service.RosterService
}

func (c *AddCommand) Run(ctx context.Context, req Request) (string, error) {
	res, err := c.rosterService.Add(ctx, req.ChannelID, normalize.Split(req.Args))
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if res.Added == 0 {
		b.WriteString("Everyone is already on the list.\n\n")
	} else {
		fmt.Fprintf(&b, "Added %d summoner(s).\n\n", res.Added)
	}
	b.WriteString(formatRoster(res.Roster))
	return b.String(), nil
}

func (c *AddCommand) Help() string {
	return `Adds summoners to the list of this chat.
/add Faker, Caps, Chovy`
}

func (c *AddCommand) Permission() mapset.Set[model.UserRole] {
	return everyone()
}

func (c *AddCommand) Visibility() mapset.Set[model.UserRole] {
	return everyone()
}

type RemoveCommand struct {
	rosterService *service.RosterService
}

func (c *RemoveCommand) Run(ctx context.Context, req Request) (string, error) {
	res, err := c.rosterService.Remove(ctx, req.ChannelID, normalize.Split(req.Args))
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if len(res.Unmatched) > 0 {
		b.WriteString("Not on the list: ")
		b.WriteString(strings.Join(res.Unmatched, ", "))
		b.WriteString("\n\n")
	}
	b.WriteString(formatRoster(res.Roster))
	return b.String(), nil
}

func (c *RemoveCommand) Help() string {
	return `Removes summoners from the list of this chat.
/remove Faker, Caps`
}

func (c *RemoveCommand) Permission() mapset.Set[model.UserRole] {
	return everyone()
}

func (c *RemoveCommand) Visibility() mapset.Set[model.UserRole] {
	return everyone()
}

type ListCommand struct {
	rosterService *service.RosterService
}

func (c *ListCommand) Run(ctx context.Context, req Request) (string, error) {
	roster, err := c.rosterService.List(ctx, req.ChannelID)
	if err != nil {
		return "", err
	}
	return formatRoster(roster), nil
}

func (c *ListCommand) Help() string {
	return "Shows the summoners of this chat"
}

func (c *ListCommand) Permission() mapset.Set[model.UserRole] {
	return everyone()
}

func (c *ListCommand) Visibility() mapset.Set[model.UserRole] {
	return everyone()
}

type ClearCommand struct {
	rosterService *service.RosterService
}

func (c *ClearCommand) Run(ctx context.Context, req Request) (string, error) {
	if err := c.rosterService.Clear(ctx, req.ChannelID); err != nil {
		return "", err
	}
	return "The list is empty now.", nil
}

func (c *ClearCommand) Help() string {
	return "Removes every summoner from the list of this chat. Chat administrators only."
}

func (c *ClearCommand) Permission() mapset.Set[model.UserRole] {
	return adminsOnly()
}

func (c *ClearCommand) Visibility() mapset.Set[model.UserRole] {
	return everyone()
}

type TeamsCommand struct {
	rosterService *service.RosterService
}

func (c *TeamsCommand) Run(ctx context.Context, req Request) (string, error) {
	teams, err := c.rosterService.MakeTeams(ctx, req.ChannelID)
	if err != nil {
		return "", err
	}
	return formatTeams(teams), nil
}

func (c *TeamsCommand) Help() string {
	return "Splits a full list of 10 summoners into TEAM BLUE and TEAM RED"
}

func (c *TeamsCommand) Permission() mapset.Set[model.UserRole] {
	return everyone()
}

func (c *TeamsCommand) Visibility() mapset.Set[model.UserRole] {
	return everyone()
}

type RankCommand struct {
	rosterService *service.RosterService
}

func (c *RankCommand) Run(ctx context.Context, req Request) (string, error) {
	p, err := c.rosterService.Rank(ctx, req.Args)
	if err != nil {
		return "", err
	}
	return formatRank(p), nil
}

func (c *RankCommand) Help() string {
	return `Shows the solo queue rank of a summoner.
/rank Faker`
}

func (c *RankCommand) Permission() mapset.Set[model.UserRole] {
	return everyone()
}

func (c *RankCommand) Visibility() mapset.Set[model.UserRole] {
	return everyone()
}
