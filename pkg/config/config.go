// Folio: catalog adapters for manga reader applications.
// Copyright (C) 2025 Luca M. Schmidt (LuMiSxh)
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

// Package config loads Folio's settings from a YAML file with environment
// variable overrides.
//
// Config file format (folio.yaml):
//
//	languages: [en, ja]
//	data_saver: false
//	force_port_443: false
//	blocked_groups: "group-id-1, group-id-2"
//	blocked_uploaders: ""
//	cover_quality: original
//	api_url: https://api.mangadex.org
//	timeout: 30s
//	rate_limit:
//	  requests: 3
//	  period: 1s
//	listen_addr: ":8080"
//
// Configuration sources, in increasing priority order:
//  1. Built-in defaults
//  2. YAML config file (located by FindConfigFile or explicit path)
//  3. FOLIO_* environment variables
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"Folio/pkg/errors"
	"Folio/pkg/prefs"
	"Folio/pkg/util"

	"gopkg.in/yaml.v3"
)

// Default endpoints of the catalog API
const (
	DefaultAPIURL     = "https://api.mangadex.org"
	DefaultSiteURL    = "https://mangadex.org"
	DefaultUploadsURL = "https://uploads.mangadex.org"
)

// RateLimit is the process-wide request budget
type RateLimit struct {
	Requests  int    `yaml:"requests"`
	PeriodStr string `yaml:"period"`
	// Period is parsed from PeriodStr by Load
	Period time.Duration `yaml:"-"`
}

// Config holds all application configuration.
type Config struct {
	Languages        []string `yaml:"languages"`
	DataSaver        bool     `yaml:"data_saver"`
	ForcePort443     bool     `yaml:"force_port_443"`
	BlockedGroups    string   `yaml:"blocked_groups"`
	BlockedUploaders string   `yaml:"blocked_uploaders"`
	CoverQuality     string   `yaml:"cover_quality"`

	APIURL     string `yaml:"api_url"`
	SiteURL    string `yaml:"site_url"`
	UploadsURL string `yaml:"uploads_url"`
	UserAgent  string `yaml:"user_agent"`

	TimeoutStr string        `yaml:"timeout"`
	Timeout    time.Duration `yaml:"-"`

	RateLimit RateLimit `yaml:"rate_limit"`

	// ListenAddr is the TCP address for `folio serve`
	ListenAddr string `yaml:"listen_addr"`

	// LogFile overrides the default log location
	LogFile string `yaml:"log_file"`
}

// Default returns a Config populated with sensible defaults.
func Default() Config {
	return Config{
		Languages:    []string{prefs.DefaultLanguage},
		CoverQuality: string(prefs.CoverOriginal),
		APIURL:       DefaultAPIURL,
		SiteURL:      DefaultSiteURL,
		UploadsURL:   DefaultUploadsURL,
		TimeoutStr:   "30s",
		Timeout:      30 * time.Second,
		RateLimit: RateLimit{
			Requests:  3,
			PeriodStr: "1s",
			Period:    time.Second,
		},
		ListenAddr: ":8080",
	}
}

// Load reads configuration from the YAML file at path (if non-empty), then
// applies environment variable overrides on top. Returns the merged Config.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, &errors.ConfigurationError{Key: "file", Err: fmt.Errorf("read config %q: %w", path, err)}
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, &errors.ConfigurationError{Key: "file", Err: fmt.Errorf("parse config %q: %w", path, err)}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}

	if err := parseDurations(&cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("FOLIO_LANGUAGES"); v != "" {
		cfg.Languages = util.ParseLanguageList(v)
	}
	if v := os.Getenv("FOLIO_DATA_SAVER"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return &errors.ConfigurationError{Key: "FOLIO_DATA_SAVER", Err: err}
		}
		cfg.DataSaver = enabled
	}
	if v := os.Getenv("FOLIO_FORCE_PORT_443"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return &errors.ConfigurationError{Key: "FOLIO_FORCE_PORT_443", Err: err}
		}
		cfg.ForcePort443 = enabled
	}
	if v := os.Getenv("FOLIO_BLOCKED_GROUPS"); v != "" {
		cfg.BlockedGroups = v
	}
	if v := os.Getenv("FOLIO_BLOCKED_UPLOADERS"); v != "" {
		cfg.BlockedUploaders = v
	}
	if v := os.Getenv("FOLIO_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("FOLIO_RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &errors.ConfigurationError{Key: "FOLIO_RATE_LIMIT", Err: err}
		}
		cfg.RateLimit.Requests = n
	}
	if v := os.Getenv("FOLIO_RATE_PERIOD"); v != "" {
		cfg.RateLimit.PeriodStr = v
	}
	if v := os.Getenv("FOLIO_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	return nil
}

func parseDurations(cfg *Config) error {
	if cfg.TimeoutStr != "" {
		d, err := time.ParseDuration(cfg.TimeoutStr)
		if err != nil {
			return &errors.ConfigurationError{Key: "timeout", Err: err}
		}
		cfg.Timeout = d
	}
	if cfg.RateLimit.PeriodStr != "" {
		d, err := time.ParseDuration(cfg.RateLimit.PeriodStr)
		if err != nil {
			return &errors.ConfigurationError{Key: "rate_limit.period", Err: err}
		}
		cfg.RateLimit.Period = d
	}
	return nil
}

// Validate checks the settings that have no usable fallback
func (c Config) Validate() error {
	if c.RateLimit.Requests <= 0 {
		return &errors.ConfigurationError{Key: "rate_limit.requests", Err: fmt.Errorf("must be positive, got %d", c.RateLimit.Requests)}
	}
	if c.RateLimit.Period <= 0 {
		return &errors.ConfigurationError{Key: "rate_limit.period", Err: fmt.Errorf("must be positive, got %s", c.RateLimit.Period)}
	}
	if c.Timeout <= 0 {
		return &errors.ConfigurationError{Key: "timeout", Err: fmt.Errorf("must be positive, got %s", c.Timeout)}
	}
	for key, value := range map[string]string{"api_url": c.APIURL, "site_url": c.SiteURL, "uploads_url": c.UploadsURL} {
		if err := validateBaseURL(value); err != nil {
			return &errors.ConfigurationError{Key: key, Err: err}
		}
	}
	if !prefs.CoverQuality(c.CoverQuality).Valid() {
		return &errors.ConfigurationError{Key: "cover_quality", Err: fmt.Errorf("unknown quality %q", c.CoverQuality)}
	}
	return nil
}

func validateBaseURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("missing")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

// Apply seeds the preference store with the configured reader preferences
func (c Config) Apply(store *prefs.Store) error {
	if err := store.SetLanguages(c.Languages); err != nil {
		return err
	}
	if err := store.SetDataSaver(c.DataSaver); err != nil {
		return err
	}
	if err := store.SetForcePort443(c.ForcePort443); err != nil {
		return err
	}
	if err := store.SetBlockedGroups(c.BlockedGroups); err != nil {
		return err
	}
	if err := store.SetBlockedUploaders(c.BlockedUploaders); err != nil {
		return err
	}
	return store.SetCoverQuality(prefs.CoverQuality(c.CoverQuality))
}

// FindConfigFile returns the path to the first config file found in the
// standard search order, or "" if none is found.
//
// Search order:
//  1. FOLIO_CONFIG environment variable (explicit override)
//  2. ./folio.yaml (current working directory)
//  3. ~/.folio/config.yaml
func FindConfigFile() string {
	if p := os.Getenv("FOLIO_CONFIG"); p != "" {
		return p
	}

	if _, err := os.Stat("folio.yaml"); err == nil {
		return "folio.yaml"
	}

	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, ".folio", "config.yaml")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
