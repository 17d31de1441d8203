package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestRuntimeConfigDefaults(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	if cfg.DataFile != "data/tally.txt" || cfg.Backend != BackendFile {
		t.Fatalf("unexpected storage defaults: %+v", cfg)
	}
	if cfg.UI != UIConsole || cfg.LogLevel != "warn" || cfg.LogFormat != LogFormatText {
		t.Fatalf("unexpected runtime defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("TALLY_DATA_FILE", "state/tasks.txt")
	t.Setenv("TALLY_BACKEND", "SQLite")
	t.Setenv("TALLY_SQLITE_PATH", "state/tasks.db")
	t.Setenv("TALLY_UI", "tui")
	t.Setenv("TALLY_LOG_LEVEL", "DEBUG")
	t.Setenv("TALLY_LOG_FORMAT", "json")
	t.Setenv("TALLY_LOG_FILE", "tally.log")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.DataFile != "state/tasks.txt" || cfg.Backend != BackendSQLite || cfg.SQLitePath != "state/tasks.db" {
		t.Fatalf("unexpected storage overrides: %+v", cfg)
	}
	if cfg.UI != UITUI || cfg.LogLevel != "debug" || cfg.LogFormat != LogFormatJSON || cfg.LogFile != "tally.log" {
		t.Fatalf("unexpected runtime overrides: %+v", cfg)
	}
}

func TestRuntimeConfigFromEnvIgnoresBlank(t *testing.T) {
	t.Setenv("TALLY_DATA_FILE", "   ")
	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.DataFile != "data/tally.txt" {
		t.Fatalf("blank env must not override: %+v", cfg)
	}
}

func TestLoadMissingFileKeepsBase(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	base := DefaultRuntimeConfig()
	base.UI = UITUI
	cfg, err := Load("", base)
	if err != nil {
		t.Fatalf("load without file: %v", err)
	}
	if cfg != base {
		t.Fatalf("expected base config, got %+v", cfg)
	}
}

func TestLoadReadsYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := "backend: sqlite\nsqlite_path: /tmp/x.db\nlog_level: info\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path, DefaultRuntimeConfig())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != BackendSQLite || cfg.SQLitePath != "/tmp/x.db" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected file values: %+v", cfg)
	}
	if cfg.DataFile != "data/tally.txt" || cfg.UI != UIConsole {
		t.Fatalf("unset keys must keep defaults: %+v", cfg)
	}
}

func TestLoadRejectsBrokenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("backend: [unterminated\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path, DefaultRuntimeConfig()); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		mutate func(*RuntimeConfig)
		want   error
	}{
		{func(c *RuntimeConfig) { c.Backend = "postgres" }, ErrInvalidBackend},
		{func(c *RuntimeConfig) { c.UI = "gui" }, ErrInvalidUI},
		{func(c *RuntimeConfig) { c.LogFormat = "xml" }, ErrInvalidLogFormat},
		{func(c *RuntimeConfig) { c.LogLevel = "loud" }, ErrInvalidLogLevel},
	}
	for _, tc := range cases {
		cfg := DefaultRuntimeConfig()
		tc.mutate(&cfg)
		if err := cfg.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("expected %v, got %v", tc.want, err)
		}
	}

	cfg := DefaultRuntimeConfig()
	cfg.DataFile = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty data file")
	}
}

func TestMarshalYAML(t *testing.T) {
	out, err := DefaultRuntimeConfig().Marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), "data_file: data/tally.txt") {
		t.Fatalf("unexpected yaml:\n%s", out)
	}
	var back RuntimeConfig
	if err := yaml.Unmarshal(out, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != DefaultRuntimeConfig() {
		t.Fatalf("yaml did not round trip: %+v", back)
	}
}

func TestLoadNormalizesFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "upper.yaml")
	content := "backend: SQLite\nui: ' TUI '\nlog_level: WARN\nlog_format: JSON\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path, DefaultRuntimeConfig())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != BackendSQLite || cfg.UI != UITUI || cfg.LogLevel != "warn" || cfg.LogFormat != LogFormatJSON {
		t.Fatalf("file values not normalized: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("normalized config must validate: %v", err)
	}
}

func TestNormalizedLeavesPathsAlone(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	cfg.DataFile = "Data/Tasks.TXT"
	cfg.LogFile = "Logs/Tally.log"
	got := cfg.Normalized()
	if got.DataFile != "Data/Tasks.TXT" || got.LogFile != "Logs/Tally.log" {
		t.Fatalf("paths must keep their case: %+v", got)
	}
}
