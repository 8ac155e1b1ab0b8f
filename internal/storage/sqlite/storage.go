package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
	"github.com/sirupsen/logrus"

	"github.com/goserg/teammaker/gen/model"
	"github.com/goserg/teammaker/gen/sqlite/table"
	"github.com/goserg/teammaker/internal/domain"
	"github.com/goserg/teammaker/internal/migrate"
	"github.com/goserg/teammaker/internal/storage"
)

type Storage struct {
	db  *sql.DB
	log *logrus.Entry
}

var _ storage.RosterStore = (*Storage)(nil)

// Open connects to the sqlite file and brings its schema up to date.
func Open(ctx context.Context, fileName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", buildSource(fileName))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}
	err = migrate.UpSqlite(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func buildSource(fileName string) string {
	return "file:" + fileName + "?cache=shared&_busy_timeout=5000"
}

func New(l *logrus.Logger, db *sql.DB) *Storage {
	log := l.WithField("from", "sqlite-roster-storage")
	log.Info("roster storage connected")
	return &Storage{
		db:  db,
		log: log,
	}
}

func (s *Storage) Get(ctx context.Context, channelID string) (domain.Roster, error) {
	var dest model.TeamMembers
	err := table.TeamMembers.
		SELECT(table.TeamMembers.AllColumns).
		WHERE(table.TeamMembers.ChannelID.EQ(sqlite.String(channelID))).
		QueryContext(ctx, s.db, &dest)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return domain.Roster{}, storage.ErrNotFound
		}
		return domain.Roster{}, err
	}
	members, err := storage.DecodeMembers(dest.Members)
	if err != nil {
		return domain.Roster{}, err
	}
	return domain.Roster{
		ChannelID: dest.ChannelID,
		Members:   members,
	}, nil
}

// Save upserts the roster in a single statement.
func (s *Storage) Save(ctx context.Context, roster domain.Roster) error {
	members, err := storage.EncodeMembers(roster.Members)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	row := model.TeamMembers{
		ChannelID: roster.ChannelID,
		Members:   members,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err = table.TeamMembers.
		INSERT(table.TeamMembers.AllColumns).
		MODEL(row).
		ON_CONFLICT(table.TeamMembers.ChannelID).
		DO_UPDATE(sqlite.SET(
			table.TeamMembers.Members.SET(table.TeamMembers.EXCLUDED.Members),
			table.TeamMembers.UpdatedAt.SET(table.TeamMembers.EXCLUDED.UpdatedAt),
		)).
		ExecContext(ctx, s.db)
	if err != nil {
		return err
	}
	return nil
}

func (s *Storage) Delete(ctx context.Context, channelID string) error {
	_, err := table.TeamMembers.
		DELETE().
		WHERE(table.TeamMembers.ChannelID.EQ(sqlite.String(channelID))).
		ExecContext(ctx, s.db)
	if err != nil {
		return err
	}
	return nil
}
