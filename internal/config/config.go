package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the persisted settings from <dir>/config.json. Zero values
// fall back to defaults at load time; environment variables win over the
// file (INKWELL_ADDR, INKWELL_DB_PATH, INKWELL_BASE_URL).
type Config struct {
	// Addr is the listen address for `inkwell serve`.
	Addr string `json:"addr,omitempty"`

	// DBPath locates the SQLite database.
	DBPath string `json:"db_path,omitempty"`

	// BaseURL is where client commands and the TUI reach the server.
	BaseURL string `json:"base_url,omitempty"`
}

const DefaultAddr = "127.0.0.1:7891"

const dbFileName = "inkwell.db"

func Dir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.inkwell).
	if v := strings.TrimSpace(os.Getenv("INKWELL_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".inkwell"), nil
}

func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureDir creates the state directory if needed and returns it.
func EnsureDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// Load reads config.json (missing file is fine), then applies env overrides
// and defaults. A .env file in the working directory is honored best-effort.
func Load() (*Config, error) {
	_ = godotenv.Load()

	path, err := Path()
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	b, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(b, cfg); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	cfg.Addr = getEnv("INKWELL_ADDR", cfg.Addr)
	cfg.DBPath = getEnv("INKWELL_DB_PATH", cfg.DBPath)
	cfg.BaseURL = getEnv("INKWELL_BASE_URL", cfg.BaseURL)

	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.DBPath == "" {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		cfg.DBPath = filepath.Join(dir, dbFileName)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://" + cfg.Addr
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg, nil
}

func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	// Best-effort safety net: keep a copy of the previous config to make
	// recovery from accidental overwrites easier.
	if prev, err := os.ReadFile(path); err == nil && len(prev) > 0 {
		_ = atomicWriteFile(dir, "config.json.bak.*.tmp", path+".bak", prev, 0o644)
	}

	// Unique temp file name + rename so concurrent writers (CLI + TUI +
	// server) cannot corrupt the file.
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
