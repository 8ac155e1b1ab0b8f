package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/goserg/teammaker/bot/botstorage/sqlite"
	"github.com/goserg/teammaker/bot/tgbot"
	"github.com/goserg/teammaker/internal/cache/mem"
	"github.com/goserg/teammaker/internal/config"
	"github.com/goserg/teammaker/internal/domain"
	"github.com/goserg/teammaker/internal/logger"
	"github.com/goserg/teammaker/internal/rank"
	"github.com/goserg/teammaker/internal/ranklookup"
	"github.com/goserg/teammaker/internal/service"
	"github.com/goserg/teammaker/internal/storage"
	"github.com/goserg/teammaker/internal/storage/memory"
	"github.com/goserg/teammaker/internal/storage/postgres"
	rostersqlite "github.com/goserg/teammaker/internal/storage/sqlite"
	"github.com/goserg/teammaker/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	serverConfigPath := flag.String("server-config", "configs/server.toml", "path to the server config")
	botConfigPath := flag.String("bot-config", "configs/bot.toml", "path to the bot config")
	flag.Parse()

	cfg, err := config.New(*serverConfigPath, *botConfigPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log := logger.New(cfg.Server.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg.Server.Storage, log)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	defer closeStore.Close()

	lookup, err := newLookup(cfg.Bot.Riot, log)
	if err != nil {
		return fmt.Errorf("rank lookup: %w", err)
	}
	rosterService := service.New(mem.New(store, log), lookup, log)

	var wg sync.WaitGroup
	errs := make(chan error, 2)

	if cfg.Server.TgBotEnabled {
		botDB, err := rostersqlite.Open(ctx, cfg.Bot.TgBot.SqliteFile)
		if err != nil {
			return fmt.Errorf("bot storage: %w", err)
		}
		defer botDB.Close()

		bot, err := tgbot.New(rosterService, sqlite.New(log, botDB), cfg, log)
		if err != nil {
			return fmt.Errorf("bot: %w", err)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			bot.Run(ctx)
		}()
	}

	if cfg.Server.WebEnabled {
		server, err := web.New(rosterService, cfg.Server, log)
		if err != nil {
			return fmt.Errorf("web: %w", err)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := server.Serve(); err != nil {
				errs <- fmt.Errorf("web: %w", err)
			}
		}()
		go func() {
			<-ctx.Done()
			if err := server.Shutdown(); err != nil {
				log.WithError(err).Error("web shutdown")
			}
		}()
	}

	log.Info("teammaker started")
	select {
	case <-ctx.Done():
		err = nil
	case err = <-errs:
		stop()
	}
	wg.Wait()
	log.Info("teammaker stopped")
	return err
}

func openStore(ctx context.Context, cfg config.Storage, log *logrus.Logger) (storage.RosterStore, io.Closer, error) {
	switch cfg.Driver {
	case config.DriverSqlite:
		db, err := rostersqlite.Open(ctx, cfg.SqliteFile)
		if err != nil {
			return nil, nil, err
		}
		return rostersqlite.New(log, db), db, nil
	case config.DriverPostgres:
		s, err := postgres.New(ctx, log, cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case config.DriverMemory:
		return memory.New(), closerFunc(func() error { return nil }), nil
	}
	return nil, nil, config.ErrUnknownDriver
}

func newLookup(cfg config.Riot, log *logrus.Logger) (ranklookup.Lookup, error) {
	if !cfg.Offline {
		if cfg.ApiKey == "" {
			return nil, errors.New("env RIOT_API_KEY is not set")
		}
		return ranklookup.NewRiot(cfg.Host, cfg.ApiKey, cfg.Timeout, cfg.RequestsPerSecond, log), nil
	}
	static := ranklookup.NewStatic()
	for _, sp := range cfg.Players {
		tier, err := rank.ParseTier(sp.Tier)
		if err != nil {
			return nil, fmt.Errorf("player %q: %w", sp.Name, err)
		}
		division, err := rank.ParseDivision(sp.Division)
		if err != nil {
			return nil, fmt.Errorf("player %q: %w", sp.Name, err)
		}
		static.Set(domain.Player{
			SummonerName: sp.Name,
			Tier:         tier,
			Division:     division,
			LeaguePoints: sp.LeaguePoints,
		})
	}
	log.WithField("players", len(cfg.Players)).Warn("rank lookup is offline")
	return static, nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
