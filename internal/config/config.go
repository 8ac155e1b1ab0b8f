package config

import (
	"errors"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	DriverSqlite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type TgBot struct {
	TelegramApiToken string `toml:"telegram_apitoken"`
	// Workers bounds how many commands are handled at the same time.
	Workers int `toml:"workers"`
	// SqliteFile holds the command log.
	SqliteFile string `toml:"sqlite_file"`
}

type Riot struct {
	ApiKey  string        `toml:"api_key"`
	Host    string        `toml:"host"`
	Timeout time.Duration `toml:"timeout"`
	// RequestsPerSecond is shared by all lookups, zero disables the limit.
	RequestsPerSecond float64 `toml:"requests_per_second"`
	// Offline serves ranks from the Players list instead of the Riot API.
	Offline bool           `toml:"offline"`
	Players []StaticPlayer `toml:"players"`
}

type StaticPlayer struct {
	Name         string `toml:"name"`
	Tier         string `toml:"tier"`
	Division     string `toml:"division"`
	LeaguePoints int    `toml:"league_points"`
}

type Storage struct {
	Driver     string `toml:"driver"`
	SqliteFile string `toml:"sqlite_file"`
	DSN        string `toml:"dsn"`
}

type Server struct {
	TgBotEnabled bool    `toml:"tg_bot_enabled"`
	WebEnabled   bool    `toml:"web_enabled"`
	Debug        bool    `toml:"debug_mode"`
	LogLevel     string  `toml:"log_level"`
	Host         string  `toml:"host"`
	Port         int     `toml:"port"`
	Storage      Storage `toml:"storage"`
}

type Bot struct {
	TgBot TgBot `toml:"telegram"`
	Riot  Riot  `toml:"riot"`
}

type Config struct {
	Bot    Bot
	Server Server
}

var (
	ErrUnknownDriver = errors.New("unknown storage driver")
	ErrNoToken       = errors.New("telegram api token is not set")
)

func defaults() Config {
	return Config{
		Bot: Bot{
			TgBot: TgBot{Workers: 16, SqliteFile: "bot.sqlite"},
			Riot:  Riot{Timeout: 10 * time.Second, RequestsPerSecond: 20},
		},
		Server: Server{
			WebEnabled: true,
			LogLevel:   "info",
			Host:       "",
			Port:       3000,
			Storage: Storage{
				Driver:     DriverSqlite,
				SqliteFile: "teammaker.sqlite",
			},
		},
	}
}

// New reads both config files. Secrets may be given by environment
// variables instead: TELEGRAM_APITOKEN, RIOT_API_KEY, TEAMMAKER_DB_DSN.
func New(serverConfigPath, botConfigPath string) (Config, error) {
	cfg := defaults()
	_, err := toml.DecodeFile(serverConfigPath, &cfg.Server)
	if err != nil {
		return Config{}, err
	}
	_, err = toml.DecodeFile(botConfigPath, &cfg.Bot)
	if err != nil {
		return Config{}, err
	}

	if token := os.Getenv("TELEGRAM_APITOKEN"); token != "" {
		cfg.Bot.TgBot.TelegramApiToken = token
	}
	if key := os.Getenv("RIOT_API_KEY"); key != "" {
		cfg.Bot.Riot.ApiKey = key
	}
	if dsn := os.Getenv("TEAMMAKER_DB_DSN"); dsn != "" {
		cfg.Server.Storage.DSN = dsn
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Server.Storage.Driver {
	case DriverSqlite, DriverPostgres, DriverMemory:
	default:
		return ErrUnknownDriver
	}
	if c.Server.TgBotEnabled && c.Bot.TgBot.TelegramApiToken == "" {
		return ErrNoToken
	}
	return nil
}
