package tgbot

import (
	"context"
	"errors"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/goserg/teammaker/bot/model"
	"github.com/goserg/teammaker/internal/service"
)

var (
	ErrBadRequest = errors.New("unknown command")
	ErrForbidden  = errors.New("command not permitted")
)

// Request is one parsed chat command.
type Request struct {
	ChannelID string
	User      model.User
	Args      string
}

type Command interface {
	Run(ctx context.Context, req Request) (string, error)
	Help() string
	Permission() mapset.Set[model.UserRole]
	Visibility() mapset.Set[model.UserRole]
}

type Commands struct {
	list map[string]Command
}

func NewCommands(rs *service.RosterService) *Commands {
	hc := &HelpCommand{}
	uc := Commands{
		list: map[string]Command{
			"help":   hc,
			"start":  hc,
			"rank":   &RankCommand{rosterService: rs},
			"add":    &AddCommand{rosterService: rs},
			"remove": &RemoveCommand{rosterService: rs},
			"list":   &ListCommand{rosterService: rs},
			"teams":  &TeamsCommand{rosterService: rs},
			"clear":  &ClearCommand{rosterService: rs},
		},
	}
	hc.commands = uc.list
	return &uc
}

// Get returns the command registered under name.
func (uc *Commands) Get(name string) (Command, bool) {
	c, ok := uc.list[name]
	return c, ok
}

func (uc *Commands) RunCommand(ctx context.Context, cmd string, req Request) (string, error) {
	command, ok := uc.list[cmd]
	if !ok {
		return "", ErrBadRequest
	}
	if !command.Permission().Contains(req.User.Role) {
		return "", ErrForbidden
	}
	return command.Run(ctx, req)
}

func everyone() mapset.Set[model.UserRole] {
	return mapset.NewSet[model.UserRole](model.RoleAdmin, model.RoleMember)
}

func adminsOnly() mapset.Set[model.UserRole] {
	return mapset.NewSet[model.UserRole](model.RoleAdmin)
}
