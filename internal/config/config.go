package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/subosito/gotenv"
)

const (
	DefaultAPIBaseURL     = "http://127.0.0.1:8001"
	DefaultProxyURL       = "http://127.0.0.1:8080"
	DefaultDatasetPath    = "analysis_results_all_soc_codes.json"
	DefaultAnalyzeTimeout = 30 * time.Second
	DefaultHandoffTTL     = 30 * time.Minute
)

// Config contains runtime settings for the server and the terminal client
type Config struct {
	LogLevel string
	Host     string // default 0.0.0.0
	Port     string // default PORT env or 8080
	Backend  struct {
		BaseURL        string
		AnalyzeTimeout time.Duration
	} // analysis service the gateway talks to
	Results struct {
		DatasetPath string
		ProxyURL    string
	}
	Handoff struct {
		RedisAddr     string // empty keeps the handoff slot in memory
		RedisPassword string
		RedisDB       int
		TTL           time.Duration
	}
	Sheets struct {
		CredentialsPath string
	}
}

// Load populates config from an optional .env file and environment variables
func Load() (Config, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := gotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := Config{
		LogLevel: "info",
		Host:     "0.0.0.0",
		Port:     "8080",
	}
	cfg.Backend.BaseURL = DefaultAPIBaseURL
	cfg.Backend.AnalyzeTimeout = DefaultAnalyzeTimeout
	cfg.Results.DatasetPath = DefaultDatasetPath
	cfg.Results.ProxyURL = DefaultProxyURL
	cfg.Handoff.TTL = DefaultHandoffTTL

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	if v := os.Getenv("HOST"); v != "" {
		cfg.Host = v
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}

	if v := os.Getenv("API_BASE_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}

	if v := os.Getenv("SOC_RESULTS_PATH"); v != "" {
		cfg.Results.DatasetPath = v
	}

	if v := os.Getenv("RESULTS_PROXY_URL"); v != "" {
		cfg.Results.ProxyURL = v
	}

	cfg.Handoff.RedisAddr = os.Getenv("REDIS_ADDR")
	cfg.Handoff.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.Sheets.CredentialsPath = os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH")

	var problems []string

	if v := os.Getenv("ANALYZE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			problems = append(problems, "ANALYZE_TIMEOUT must be a positive duration")
		} else {
			cfg.Backend.AnalyzeTimeout = d
		}
	}

	if v := os.Getenv("HANDOFF_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			problems = append(problems, "HANDOFF_TTL must be a positive duration")
		} else {
			cfg.Handoff.TTL = d
		}
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil || db < 0 {
			problems = append(problems, "REDIS_DB must be a non-negative integer")
		} else {
			cfg.Handoff.RedisDB = db
		}
	}

	for name, raw := range map[string]string{
		"API_BASE_URL":      cfg.Backend.BaseURL,
		"RESULTS_PROXY_URL": cfg.Results.ProxyURL,
	} {
		if u, err := url.Parse(raw); err != nil || u.Scheme == "" || u.Host == "" {
			problems = append(problems, name+" must be an absolute http(s) URL")
		}
	}

	if len(problems) > 0 {
		return cfg, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}

	return cfg, nil
}
