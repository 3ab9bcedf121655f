package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel    string      `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort    string      `yaml:"http-port" env:"HTTP_PORT" env-default:"3000"`
	Redis       Redis       `yaml:"redis"`
	Postgres    Postgres    `yaml:"postgres"`
	Game        Game        `yaml:"game"`
	Persistence Persistence `yaml:"persistence"`
}

type Redis struct {
	Host     string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	CacheTTL time.Duration `yaml:"cache-ttl" env:"REDIS_CACHE_TTL" env-default:"30s"`
}

type Postgres struct {
	Host     string `yaml:"host" env:"POSTGRES_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"POSTGRES_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"POSTGRES_PASSWORD" env-default:"postgres"`
	Name     string `yaml:"name" env:"POSTGRES_DB" env-default:"fourinarow"`
	SSLMode  string `yaml:"sslmode" env:"POSTGRES_SSLMODE" env-default:"disable"`
}

// Game - timings and limits of the matchmaking and turn flow.
type Game struct {
	MatchmakingTimeout time.Duration `yaml:"matchmaking-timeout" env:"MATCHMAKING_TIMEOUT" env-default:"10s"`
	ReconnectTimeout   time.Duration `yaml:"reconnect-timeout" env:"RECONNECT_TIMEOUT" env-default:"30s"`
	GameEndDelay       time.Duration `yaml:"game-end-delay" env:"GAME_END_DELAY" env-default:"500ms"`
	BotMoveDelay       time.Duration `yaml:"bot-move-delay" env:"BOT_MOVE_DELAY" env-default:"500ms"`
	EndedGameTTL       time.Duration `yaml:"ended-game-ttl" env:"ENDED_GAME_TTL" env-default:"5m"`
	MaxGameAge         time.Duration `yaml:"max-game-age" env:"MAX_GAME_AGE" env-default:"24h"`
	SweepInterval      time.Duration `yaml:"sweep-interval" env:"SWEEP_INTERVAL" env-default:"1m"`
	LeaderboardSize    int           `yaml:"leaderboard-size" env:"LEADERBOARD_SIZE" env-default:"10"`
}

type Persistence struct {
	QueueSize   int           `yaml:"queue-size" env:"PERSISTENCE_QUEUE_SIZE" env-default:"256"`
	SaveTimeout time.Duration `yaml:"save-timeout" env:"PERSISTENCE_SAVE_TIMEOUT" env-default:"5s"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

// GetDSN - lib/pq connection string.
func (that *Postgres) GetDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		that.Host, that.Port, that.User, that.Password, that.Name, that.SSLMode)
}
