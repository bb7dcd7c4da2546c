package mongo

import (
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		URI:      "mongodb://localhost:27017",
		Database: "app",
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()

	if cfg.AppName != "rxkit" {
		t.Errorf("AppName = %q, want rxkit", cfg.AppName)
	}
	if cfg.MaxPoolSize != 100 {
		t.Errorf("MaxPoolSize = %d, want 100", cfg.MaxPoolSize)
	}
	if cfg.ConnectTimeout != 10*time.Second {
		t.Errorf("ConnectTimeout = %v, want 10s", cfg.ConnectTimeout)
	}
	if cfg.ReadPreference != "primary" {
		t.Errorf("ReadPreference = %q, want primary", cfg.ReadPreference)
	}
}

func TestConfigApplyDefaultsKeepsExplicit(t *testing.T) {
	cfg := validConfig()
	cfg.AppName = "reporting"
	cfg.MaxPoolSize = 5
	cfg.ReadPreference = "nearest"
	cfg.ApplyDefaults()

	if cfg.AppName != "reporting" || cfg.MaxPoolSize != 5 || cfg.ReadPreference != "nearest" {
		t.Errorf("defaults must not override explicit values: %+v", cfg)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"srv scheme", func(c *Config) { c.URI = "mongodb+srv://cluster0.example.net" }, false},
		{"missing uri", func(c *Config) { c.URI = "" }, true},
		{"wrong scheme", func(c *Config) { c.URI = "postgres://localhost:5432" }, true},
		{"missing database", func(c *Config) { c.Database = "" }, true},
		{"bad read preference", func(c *Config) { c.ReadPreference = "closest" }, true},
		{"good read preference", func(c *Config) { c.ReadPreference = "secondaryPreferred" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("Validate() should fail")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() failed: %v", err)
			}
		})
	}
}

func TestReadPreferenceMapping(t *testing.T) {
	for _, mode := range []string{"", "primary", "primaryPreferred", "secondary", "secondaryPreferred", "nearest"} {
		if _, err := readPreference(mode); err != nil {
			t.Errorf("readPreference(%q) failed: %v", mode, err)
		}
	}
	if _, err := readPreference("closest"); err == nil {
		t.Error("readPreference should reject unknown modes")
	}
}
