package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/booktracker/internal/flagx"
)

// DatabaseFile is the name of the local sqlite file inside DataDir.
const DatabaseFile = "booktracker.db"

// Config holds runtime settings for the BookTracker CLI.
//
// Fields:
//   - ServerURL: base URL of the REST API.
//   - DataDir: directory of the local database, relative to the working
//     directory unless absolute.
//   - RequestTimeout: per-request HTTP timeout.
type Config struct {
	ServerURL      string
	DataDir        string
	RequestTimeout time.Duration
}

func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:5000"
	c.DataDir = "data"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig applies defaults, then JSON (if -c is given), then flags.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	args := os.Args[1:]
	if err := parseJson(cfg, flagx.ConfigPath(args)); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
