package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATA_DIR", "/tmp/aniscout")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Port != "3000" {
		t.Errorf("Port = %q, want 3000", cfg.Port)
	}
	if cfg.AniListURL != "https://graphql.anilist.co" {
		t.Errorf("AniListURL = %q", cfg.AniListURL)
	}
	if cfg.CacheTTLHours != 24 {
		t.Errorf("CacheTTLHours = %d, want 24", cfg.CacheTTLHours)
	}
	if cfg.MinConfidence != 0.6 {
		t.Errorf("MinConfidence = %v, want 0.6", cfg.MinConfidence)
	}
	if !cfg.LinkEntities {
		t.Error("LinkEntities = false, want true by default")
	}
	if cfg.CacheDir != "/tmp/aniscout/entity_cache" {
		t.Errorf("CacheDir = %q", cfg.CacheDir)
	}
	if cfg.FetchDays != 7 || cfg.FetchLimit != 50 {
		t.Errorf("fetch settings = %d days, %d limit", cfg.FetchDays, cfg.FetchLimit)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v for default config", err)
	}
}

func TestLoadConfigRequiresDataDir(t *testing.T) {
	t.Setenv("DATA_DIR", "")

	if _, err := LoadConfig(); err == nil {
		t.Error("LoadConfig() error = nil without DATA_DIR")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DATA_DIR", "/tmp/aniscout")
	t.Setenv("PORT", "8080")
	t.Setenv("MIN_CONFIDENCE", "0.8")
	t.Setenv("LINK_ENTITIES", "false")
	t.Setenv("SYNC_INTERVAL", "30m")
	t.Setenv("CACHE_DIR", "/var/cache/aniscout")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.MinConfidence != 0.8 {
		t.Errorf("MinConfidence = %v", cfg.MinConfidence)
	}
	if cfg.LinkEntities {
		t.Error("LinkEntities = true, want false")
	}
	if cfg.CacheDir != "/var/cache/aniscout" {
		t.Errorf("CacheDir = %q", cfg.CacheDir)
	}

	interval, err := cfg.GetSyncInterval()
	if err != nil {
		t.Fatalf("GetSyncInterval() error = %v", err)
	}
	if interval != 30*time.Minute {
		t.Errorf("GetSyncInterval() = %v", interval)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			DataDir:       "/tmp/aniscout",
			MinConfidence: 0.6,
			CacheTTLHours: 24,
			FetchDays:     7,
			FetchLimit:    50,
			SyncInterval:  "6h",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing data dir", func(c *Config) { c.DataDir = "" }, true},
		{"confidence above one", func(c *Config) { c.MinConfidence = 1.5 }, true},
		{"zero ttl", func(c *Config) { c.CacheTTLHours = 0 }, true},
		{"bad interval", func(c *Config) { c.SyncInterval = "soonish" }, true},
		{"zero fetch window", func(c *Config) { c.FetchDays = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
