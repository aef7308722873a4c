package config

import (
	"os"
	"pokerv2-server/internal/util"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config provides configuration for the poker server
type Config struct {
	loaded         bool
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	// Store is either postgres or memory
	Store            string `yaml:"store" envconfig:"store"`
	DefaultBlind     int    `yaml:"defaultBlind" envconfig:"default_blind"`
	MaxBlind         int    `yaml:"maxBlind" envconfig:"max_blind"`
	MinBuyInBB       int    `yaml:"minBuyInBB" envconfig:"min_buy_in_bb"`
	MaxBuyInBB       int    `yaml:"maxBuyInBB" envconfig:"max_buy_in_bb"`
	ShortBlindPolicy string `yaml:"shortBlindPolicy" envconfig:"short_blind_policy"`
	// HandRanker is either analyzer or eval7
	HandRanker    string        `yaml:"handRanker" envconfig:"hand_ranker"`
	NextHandDelay time.Duration `yaml:"nextHandDelay" envconfig:"next_hand_delay"`
	Log           struct {
		Level             string `yaml:"level" envconfig:"level"`
		Format            string `yaml:"format" envconfig:"format"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
	CORS struct {
		AllowedOrigins []string `yaml:"allowedOrigins" envconfig:"allowed_origins"`
	} `yaml:"cors"`
}

var config Config

// DefaultConfig returns the configuration used when nothing overrides it
func DefaultConfig() Config {
	cfg := Config{
		PGDSN:            "postgres://postgres@localhost:5432/poker?sslmode=disable",
		MigrationsPath:   "file://sql",
		Store:            "postgres",
		DefaultBlind:     1000,
		MaxBlind:         1000000,
		MinBuyInBB:       40,
		MaxBuyInBB:       200,
		ShortBlindPolicy: "all-in",
		HandRanker:       "analyzer",
		NextHandDelay:    5 * time.Second,
	}

	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.CORS.AllowedOrigins = []string{"http://localhost:3000"}
	return cfg
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// A missing config file is not an error, the defaults and the environment are used instead.
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("POKER_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	switch {
	case err == nil:
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	case !os.IsNotExist(err):
		return err
	}

	if err := envconfig.Process("poker", &cfg); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}
