package botstorage

import (
	"context"

	"github.com/goserg/teammaker/bot/model"
)

type BotStorage interface {
	Log(ctx context.Context, entry model.LogEntry) error
}
