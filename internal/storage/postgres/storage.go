package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
	_ "github.com/jackc/pgx/v5/stdlib" // postgresql driver
	"github.com/sirupsen/logrus"

	"github.com/goserg/teammaker/gen/model"
	"github.com/goserg/teammaker/gen/postgres/table"
	"github.com/goserg/teammaker/internal/domain"
	"github.com/goserg/teammaker/internal/migrate"
	"github.com/goserg/teammaker/internal/storage"
)

type Storage struct {
	db  *sql.DB
	log *logrus.Entry
}

var _ storage.RosterStore = (*Storage)(nil)

// New connects to postgres using dsn and applies migrations.
func New(ctx context.Context, l *logrus.Logger, dsn string) (*Storage, error) {
	log := l.WithField("from", "postgres-roster-storage")
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if err := migrate.UpPostgres(db); err != nil {
		db.Close()
		return nil, err
	}
	log.Info("roster storage connected")
	return &Storage{
		db:  db,
		log: log,
	}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) Get(ctx context.Context, channelID string) (domain.Roster, error) {
	var dest model.TeamMembers
	err := table.TeamMembers.
		SELECT(table.TeamMembers.AllColumns).
		WHERE(table.TeamMembers.ChannelID.EQ(postgres.String(channelID))).
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

func (s *Storage) Save(ctx context.Context, roster domain.Roster) error {
	members, err := storage.EncodeMembers(roster.Members)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	_, err = table.TeamMembers.
		INSERT(table.TeamMembers.AllColumns).
		MODEL(model.TeamMembers{
			ChannelID: roster.ChannelID,
			Members:   members,
			CreatedAt: now,
			UpdatedAt: now,
		}).
		ON_CONFLICT(table.TeamMembers.ChannelID).
		DO_UPDATE(postgres.SET(
			table.TeamMembers.Members.SET(table.TeamMembers.EXCLUDED.Members),
			table.TeamMembers.UpdatedAt.SET(table.TeamMembers.EXCLUDED.UpdatedAt),
		)).
		ExecContext(ctx, s.db)
	return err
}

func (s *Storage) Delete(ctx context.Context, channelID string) error {
	_, err := table.TeamMembers.
		DELETE().
		WHERE(table.TeamMembers.ChannelID.EQ(postgres.String(channelID))).
		ExecContext(ctx, s.db)
	return err
}
