package sqlite

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/goserg/teammaker/bot/botstorage"
	"github.com/goserg/teammaker/bot/model"
	dbmodel "github.com/goserg/teammaker/gen/model"
	"github.com/goserg/teammaker/gen/sqlite/table"
)

// Storage writes the command log into the sqlite database shared with the
// roster storage.
type Storage struct {
	db  *sql.DB
	log *logrus.Entry
}

var _ botstorage.BotStorage = (*Storage)(nil)

func New(l *logrus.Logger, db *sql.DB) *Storage {
	log := l.WithFields(map[string]interface{}{
		"from": "bot-storage",
	})
	log.Info("bot storage connected")
	return &Storage{
		db:  db,
		log: log,
	}
}

func (s *Storage) Log(ctx context.Context, entry model.LogEntry) error {
	row := dbmodel.CommandLog{
		ID:        uuid.NewString(),
		ChannelID: entry.ChannelID,
		UserID:    entry.User.ID,
		Username:  entry.User.Username,
		Command:   entry.Command,
		Args:      entry.Args,
		Failed:    entry.Failed,
		CreatedAt: entry.CreatedAt.UTC(),
	}
	_, err := table.CommandLog.
		INSERT(table.CommandLog.AllColumns).
		MODEL(row).
		ExecContext(ctx, s.db)
	if err != nil {
		return err
	}
	return nil
}
