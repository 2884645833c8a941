package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Feed configuration
	FeedFile string `long:"feed-file" env:"FEED_FILE" default:"./data/events.xml" description:"Path to the events XML feed file"`

	// Application configuration
	Port      string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	RedisAddr string `long:"redis-addr" env:"REDIS_ADDR" description:"Redis address for response caching (empty disables caching)"`
	CacheTTL  int    `long:"cache-ttl" env:"CACHE_TTL" default:"3600" description:"Cache entry lifetime in seconds"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/Sao_Paulo)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		FeedFile:  raw.FeedFile,
		Port:      raw.Port,
		RedisAddr: raw.RedisAddr,
		CacheTTL:  raw.CacheTTL,
		Timezone:  raw.Timezone,
		Debug:     raw.Debug,
		Version:   GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
