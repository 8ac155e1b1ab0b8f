package tgbot

import (
	"context"
	"slices"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/goserg/teammaker/bot/model"
)

type HelpCommand struct {
	commands map[string]Command
}

func (c *HelpCommand) Run(_ context.Context, req Request) (string, error) {
	args := strings.TrimPrefix(strings.TrimSpace(req.Args), "/")
	if command, ok := c.commands[args]; ok && command.Visibility().Contains(req.User.Role) {
		return command.Help(), nil
	}

	names := make([]string, 0, len(c.commands))
	for name, command := range c.commands {
		if name == "start" || !command.Visibility().Contains(req.User.Role) {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)

	var b strings.Builder
	b.WriteString("Available commands:\n")
	for _, name := range names {
		b.WriteString("/")
		b.WriteString(name)
		b.WriteString("\n")
	}
	b.WriteString("Send /help and a command name for details")
	return b.String(), nil
}

func (c *HelpCommand) Help() string {
	return "Lists available commands"
}

func (c *HelpCommand) Permission() mapset.Set[model.UserRole] {
	return everyone()
}

func (c *HelpCommand) Visibility() mapset.Set[model.UserRole] {
	return everyone()
}
