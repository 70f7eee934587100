/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mikeb26/boylstonchessclub-swiss/standings"
	"github.com/mikeb26/boylstonchessclub-swiss/swiss"
)

type PairingConfig struct {
	TotalRounds         int  `yaml:"total_rounds"`
	DisableAcceleration bool `yaml:"disable_acceleration"`
	AllowRematches      bool `yaml:"allow_rematches"`
	AvoidSameClub       bool `yaml:"avoid_same_club"`
	AvoidSameCountry    bool `yaml:"avoid_same_country"`
}

type HistoryConfig struct {
	Bucket string `yaml:"bucket"`
	Gzip   bool   `yaml:"gzip"`
}

type WebCacheConfig struct {
	Bucket string `yaml:"bucket"`
}

// DiscordConfig is populated from the environment only.
type DiscordConfig struct {
	PublicKey string `yaml:"-"`
	BotToken  string `yaml:"-"`
	AppID     string `yaml:"-"`
}

type Config struct {
	DB        string         `yaml:"db"`
	Tiebreaks []string       `yaml:"tiebreaks"`
	Pairing   PairingConfig  `yaml:"pairing"`
	History   HistoryConfig  `yaml:"history"`
	WebCache  WebCacheConfig `yaml:"webcache"`
	Discord   DiscordConfig  `yaml:"-"`
}

func DefaultConfig() *Config {
	return &Config{
		DB: DefaultDBPath,
		Pairing: PairingConfig{
			AvoidSameClub: true,
		},
		WebCache: WebCacheConfig{
			Bucket: WebCacheBucket,
		},
	}
}

// LoadConfig builds a Config from defaults, an optional .env file, the YAML
// file at path and finally the environment. An empty path tries
// DefaultConfigPath and tolerates its absence.
func LoadConfig(path string) (*Config, error) {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to load .env: %w", err)
	}

	cfg := DefaultConfig()
	optional := path == ""
	if optional {
		path = DefaultConfigPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: failed to parse %v: %w", path, err)
		}
	case optional && errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("config: failed to read %v: %w", path, err)
	}

	cfg.applyEnv()
	if _, err := cfg.TiebreakOrder(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

func (cfg *Config) applyEnv() {
	if v := os.Getenv("SWISSTD_DB"); v != "" {
		cfg.DB = v
	}
	if v := os.Getenv("SWISSTD_HISTORY_BUCKET"); v != "" {
		cfg.History.Bucket = v
	}
	if v := os.Getenv("SWISSTD_WEBCACHE_BUCKET"); v != "" {
		cfg.WebCache.Bucket = v
	}
	if v := os.Getenv("SWISSTD_TIEBREAKS"); v != "" {
		cfg.Tiebreaks = strings.Split(v, ",")
	}
	cfg.Discord.PublicKey = os.Getenv("DISCORD_PUBLIC_KEY")
	cfg.Discord.BotToken = os.Getenv("DISCORD_BOT_TOKEN")
	cfg.Discord.AppID = os.Getenv("DISCORD_APP_ID")
}

func (cfg *Config) TiebreakOrder() ([]standings.TiebreakType, error) {
	return standings.ParseTiebreakOrder(cfg.Tiebreaks)
}

func (pc PairingConfig) Options() swiss.Options {
	return swiss.Options{
		TotalRounds:         pc.TotalRounds,
		DisableAcceleration: pc.DisableAcceleration,
		AllowRematches:      pc.AllowRematches,
		IgnoreClubs:         !pc.AvoidSameClub,
		AvoidSameCountry:    pc.AvoidSameCountry,
	}
}
