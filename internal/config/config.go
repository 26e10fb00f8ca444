// Package config loads server and client settings from flags with
// environment fallbacks.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
)

// ErrInvalidConfig indicates an unusable configuration value.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all program configuration.
type Config struct {
	Addr           string   // listen address
	AllowOrigins   []string // CORS and WebSocket origins
	DBPath         string   // SQLite snapshot store; empty disables persistence
	StrictCastling bool     // refuse castling out of, through or into check
	LogPath        string   // log file; empty logs to stderr
}

// Load parses args (without the program name) into a Config. Flags win over
// environment variables, which win over defaults.
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	addr := fs.String("addr", getenv("CHESS_ADDR", ":3000"), "listen address")
	origins := fs.String("origins", getenv("CHESS_ORIGINS", "http://localhost:5173"), "comma-separated allowed origins")
	dbPath := fs.String("db", getenv("CHESS_DB", ""), "SQLite database for game snapshots (empty disables persistence)")
	strict := fs.Bool("strict-castling", getenb("CHESS_STRICT_CASTLING", false), "forbid castling out of, through or into an attacked square")
	logPath := fs.String("log", getenv("CHESS_LOG", ""), "log file path (default stderr)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := &Config{
		Addr:           strings.TrimSpace(*addr),
		AllowOrigins:   splitCSV(*origins),
		DBPath:         strings.TrimSpace(*dbPath),
		StrictCastling: *strict,
		LogPath:        strings.TrimSpace(*logPath),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("empty listen address: %w", ErrInvalidConfig)
	}
	return nil
}

// OriginList joins the allowed origins the way fiber's CORS config expects.
func (c *Config) OriginList() string {
	return strings.Join(c.AllowOrigins, ", ")
}

func splitCSV(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenb(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return def
}
