// Package config loads runtime settings for the NoteEasy client.
package config

import "time"

// Config holds runtime settings for the NoteEasy client.
//
// Fields:
//   - ServerEndpointAddr: base URL of the backend REST API.
//   - SyncInterval: how often the background sync trigger fires.
//   - RequestTimeout: per-request timeout for backend calls.
//   - DatabasePath: SQLite file backing the durable key-value store.
//   - MediaDir: stable directory for relocated note attachments.
//   - LogFile: rotating log file path; empty logs to stderr only.
type Config struct {
	ServerEndpointAddr string
	SyncInterval       time.Duration
	RequestTimeout     time.Duration
	DatabasePath       string
	MediaDir           string
	LogFile            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:8080/api"
	c.SyncInterval = 30 * time.Second
	c.RequestTimeout = 10 * time.Second
	c.DatabasePath = "noteeasy.db"
	c.MediaDir = "notes_media"
	c.LogFile = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
