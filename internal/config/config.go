package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
)

const (
	DriverFile   = "file"
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
)

type Config struct {
	LogLevel string  `yaml:"log-level" env:"TICTACTOE_LOG_LEVEL" env-default:"info"`
	LogFile  string  `yaml:"log-file" env:"TICTACTOE_LOG_FILE" env-default:"tictactoe.log"`
	HTTPPort string  `yaml:"http-port" env:"TICTACTOE_HTTP_PORT" env-default:""`
	Storage  Storage `yaml:"storage"`
	Redis    Redis   `yaml:"redis"`
	AI       AI      `yaml:"ai"`
}

type Storage struct {
	Driver     string `yaml:"driver" env:"TICTACTOE_STORAGE_DRIVER" env-default:"file"`
	FilePath   string `yaml:"file-path" env:"TICTACTOE_STORAGE_FILE_PATH" env-default:"leaderboard.csv"`
	SQLitePath string `yaml:"sqlite-path" env:"TICTACTOE_STORAGE_SQLITE_PATH" env-default:"leaderboard.db"`
}

type Redis struct {
	Host string `yaml:"host" env:"TICTACTOE_REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"TICTACTOE_REDIS_PORT" env-default:"6379"`
	Key  string `yaml:"key" env:"TICTACTOE_REDIS_KEY" env-default:"leaderboard"`
}

type AI struct {
	Name              string  `yaml:"name" env:"TICTACTOE_AI_NAME" env-default:"Computer"`
	Seed              uint64  `yaml:"seed" env:"TICTACTOE_AI_SEED" env-default:"0"`
	EasyRandomRate    float64 `yaml:"easy-random-rate" env:"TICTACTOE_AI_EASY_RANDOM_RATE" env-default:"0.7"`
	DefaultDifficulty string  `yaml:"default-difficulty" env:"TICTACTOE_AI_DEFAULT_DIFFICULTY" env-default:"medium"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load reads path, applies environment overrides and validates the result.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func (that *Config) Validate() error {
	switch that.Storage.Driver {
	case DriverFile, DriverRedis, DriverSQLite:
	default:
		return fmt.Errorf("unknown storage driver %q", that.Storage.Driver)
	}

	if that.AI.EasyRandomRate < 0 || that.AI.EasyRandomRate > 1 {
		return fmt.Errorf("ai easy-random-rate must be within [0, 1], got %v", that.AI.EasyRandomRate)
	}

	if err := entity.ValidatePlayerName(that.AI.Name); err != nil {
		return fmt.Errorf("ai name: %w", err)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
