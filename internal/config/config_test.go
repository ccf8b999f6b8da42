package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/vantage/internal/config"
)

const baseConfig = `
shutdown_timeout = "30s"
version = "0.1.0"

[server]
host = "0.0.0.0"
port = 8080
read_timeout = "1m"
write_timeout = "5m"

[database]
host = "localhost"
name = "vantage"
user = "vantage"
password = "vantage"
max_open_conns = 20
max_idle_conns = 4

[storage]
container_name = "vantage"
connection_string = "DefaultEndpointsProtocol=http;AccountName=devstoreaccount1;AccountKey=key;BlobEndpoint=http://127.0.0.1:10000/devstoreaccount1;"

[api]
base_path = "/api"
max_upload_size = "10MB"

[api.cors]
enabled = true
origins = ["http://localhost:5173"]

[api.pagination]
default_page_size = 25
max_page_size = 50

[logging]
level = "debug"
format = "json"

[ranking]
cross_effort_min_items = 6
recompute_schedule = "@every 1h"
`

const overlayConfig = `
[server]
port = 9090

[database]
host = "db.internal"

[ranking]
recompute_workers = 8
`

const minimalConfig = `
[database]
name = "vantage"
user = "vantage"

[storage]
connection_string = "conn"
`

func writeConfig(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", filename, err)
	}
}

func configDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.EnvVantageConfigDir, dir)
	t.Setenv(config.EnvVantageEnv, "")
	return dir
}

func TestLoad(t *testing.T) {
	dir := configDir(t)
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeoutDuration() != time.Minute {
		t.Errorf("read timeout = %v, want 1m", cfg.Server.ReadTimeoutDuration())
	}
	if cfg.Database.MaxOpenConns != 20 {
		t.Errorf("max open conns = %d, want 20", cfg.Database.MaxOpenConns)
	}
	if cfg.API.MaxUploadSizeBytes() != 10*1024*1024 {
		t.Errorf("max upload = %d, want 10MB", cfg.API.MaxUploadSizeBytes())
	}
	if !cfg.API.CORS.Enabled || len(cfg.API.CORS.Origins) != 1 {
		t.Errorf("cors = %+v, want enabled with one origin", cfg.API.CORS)
	}
	if cfg.API.Pagination.DefaultPageSize != 25 {
		t.Errorf("default page size = %d, want 25", cfg.API.Pagination.DefaultPageSize)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %+v, want debug/json", cfg.Logging)
	}

	sel := cfg.Ranking.Selector()
	if sel.CrossEffortMinItems != 6 {
		t.Errorf("cross effort min items = %d, want 6", sel.CrossEffortMinItems)
	}
	if sel.CrossEffortMaxComparisons != 5 {
		t.Errorf("cross effort max comparisons = %d, want default 5", sel.CrossEffortMaxComparisons)
	}
	if cfg.Ranking.RecomputeSchedule != "@every 1h" {
		t.Errorf("schedule = %q", cfg.Ranking.RecomputeSchedule)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := configDir(t)
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	writeConfig(t, dir, "config.staging.toml", overlayConfig)
	t.Setenv(config.EnvVantageEnv, "staging")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("server port = %d, want overlay 9090", cfg.Server.Port)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("database host = %q, want overlay db.internal", cfg.Database.Host)
	}
	if cfg.Database.Name != "vantage" {
		t.Errorf("database name = %q, want base value kept", cfg.Database.Name)
	}
	if cfg.Ranking.RecomputeWorkers != 8 {
		t.Errorf("recompute workers = %d, want 8", cfg.Ranking.RecomputeWorkers)
	}
	if cfg.Ranking.CrossEffortMinItems != 6 {
		t.Errorf("cross effort min items = %d, want base value kept", cfg.Ranking.CrossEffortMinItems)
	}
	if cfg.Env() != "staging" {
		t.Errorf("env = %q, want staging", cfg.Env())
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := configDir(t)
	writeConfig(t, dir, config.BaseConfigFile, minimalConfig)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Addr() != "0.0.0.0:8080" {
		t.Errorf("addr = %q, want 0.0.0.0:8080", cfg.Server.Addr())
	}
	if cfg.ShutdownTimeoutDuration() != 30*time.Second {
		t.Errorf("shutdown timeout = %v, want 30s", cfg.ShutdownTimeoutDuration())
	}
	if cfg.API.BasePath != "/api" {
		t.Errorf("base path = %q, want /api", cfg.API.BasePath)
	}
	if cfg.API.MaxUploadSizeBytes() != 25*1024*1024 {
		t.Errorf("max upload = %d, want 25MB", cfg.API.MaxUploadSizeBytes())
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("log level = %q, want info", cfg.Logging.Level)
	}
	if cfg.Ranking.RecomputeSchedule != "" {
		t.Errorf("schedule = %q, want disabled", cfg.Ranking.RecomputeSchedule)
	}
	if cfg.Ranking.RecomputeWorkers != 4 {
		t.Errorf("recompute workers = %d, want 4", cfg.Ranking.RecomputeWorkers)
	}
	if got := cfg.Ranking.RecomputeTimeoutDuration(); got != 10*time.Minute {
		t.Errorf("recompute timeout = %v, want 10m", got)
	}
	if cfg.Env() != "local" {
		t.Errorf("env = %q, want local", cfg.Env())
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := configDir(t)
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	t.Setenv("VANTAGE_SERVER_PORT", "7070")
	t.Setenv("VANTAGE_DB_PASSWORD", "s3cret")
	t.Setenv("VANTAGE_LOG_LEVEL", "warn")
	t.Setenv(config.EnvRankingRecomputeSchedule, "*/15 * * * *")
	t.Setenv(config.EnvRankingCrossEffortMaxComparisons, "7")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("server port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.Database.Password != "s3cret" {
		t.Errorf("database password not overridden")
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("log level = %q, want warn", cfg.Logging.Level)
	}
	if cfg.Ranking.RecomputeSchedule != "*/15 * * * *" {
		t.Errorf("schedule = %q", cfg.Ranking.RecomputeSchedule)
	}
	if cfg.Ranking.CrossEffortMaxComparisons != 7 {
		t.Errorf("cross effort max comparisons = %d, want 7", cfg.Ranking.CrossEffortMaxComparisons)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			"bad schedule",
			minimalConfig + "\n[ranking]\nrecompute_schedule = \"every tuesday\"\n",
			"recompute_schedule",
		},
		{
			"bad recompute timeout",
			minimalConfig + "\n[ranking]\nrecompute_timeout = \"soon\"\n",
			"recompute_timeout",
		},
		{
			"min items below two",
			minimalConfig + "\n[ranking]\ncross_effort_min_items = 1\n",
			"cross_effort_min_items",
		},
		{
			"bad upload size",
			minimalConfig + "\n[api]\nmax_upload_size = \"lots\"\n",
			"max_upload_size",
		},
		{
			"bad log level",
			minimalConfig + "\n[logging]\nlevel = \"loud\"\n",
			"logging",
		},
		{
			"port out of range",
			minimalConfig + "\n[server]\nport = 70000\n",
			"invalid port",
		},
		{
			"missing database name",
			"[database]\nuser = \"vantage\"\n[storage]\nconnection_string = \"conn\"\n",
			"database",
		},
		{
			"malformed toml",
			"[database\nname = 1",
			"parse config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := configDir(t)
			writeConfig(t, dir, config.BaseConfigFile, tt.content)

			_, err := config.Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestRankingFinalizeDefaults(t *testing.T) {
	var rc config.RankingConfig
	if err := rc.Finalize(); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if rc.CrossEffortMinItems != 4 || rc.CrossEffortMaxComparisons != 5 {
		t.Errorf("thresholds = %d/%d, want 4/5", rc.CrossEffortMinItems, rc.CrossEffortMaxComparisons)
	}
}
