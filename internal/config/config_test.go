package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kakasy/shareit/internal/models"
)

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
app:
  name: "shareit-test"
server:
  port: 9095
database:
  path: "test.db"
redis:
  address: "${TEST_REDIS_ADDR}"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	t.Setenv("TEST_REDIS_ADDR", "localhost:6379")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.App.Name != "shareit-test" {
		t.Errorf("expected app name shareit-test, got %s", cfg.App.Name)
	}
	if cfg.Server.Port != 9095 {
		t.Errorf("expected port 9095, got %d", cfg.Server.Port)
	}
	if cfg.Redis.Address != "localhost:6379" {
		t.Errorf("expected env-expanded redis address, got %s", cfg.Redis.Address)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid config",
			cfg: Config{
				Server:   ServerConfig{Port: 8080},
				Database: DatabaseConfig{Path: "data/shareit.db"},
			},
			wantErr: false,
		},
		{
			name: "missing database path",
			cfg: Config{
				Server: ServerConfig{Port: 8080},
			},
			wantErr: true,
		},
		{
			name: "invalid port",
			cfg: Config{
				Server:   ServerConfig{Port: 99999},
				Database: DatabaseConfig{Path: "data/shareit.db"},
			},
			wantErr: true,
		},
		{
			name: "backup enabled without storage path",
			cfg: Config{
				Server:   ServerConfig{Port: 8080},
				Database: DatabaseConfig{Path: "data/shareit.db"},
				Backup:   BackupConfig{Enabled: true},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Pagination.DefaultSize != models.DefaultPageSize {
		t.Errorf("expected default page size %d, got %d", models.DefaultPageSize, cfg.Pagination.DefaultSize)
	}
	if cfg.Server.RateLimit.RPS != models.RateLimitRPS {
		t.Errorf("expected default rps %d, got %v", models.RateLimitRPS, cfg.Server.RateLimit.RPS)
	}
	if cfg.Redis.SearchTTLSecs != models.SearchCacheTTL {
		t.Errorf("expected default search ttl %d, got %d", models.SearchCacheTTL, cfg.Redis.SearchTTLSecs)
	}
}
