package web

import (
	"errors"
	"regexp"

	"github.com/gofiber/fiber/v2"
)

var channelRegexp = regexp.MustCompile(`^[\w-]{1,64}$`)

var ErrBadChannel = errors.New("channel id must be 1 to 64 letters, digits, '_' or '-'")

func parseChannel(ctx *fiber.Ctx) (string, error) {
	channel := ctx.Params("channel")
	if !channelRegexp.MatchString(channel) {
		return "", ErrBadChannel
	}
	return channel, nil
}
