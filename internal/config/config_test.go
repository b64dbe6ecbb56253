package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LLM_TIMEOUT", "not-a-duration")
	t.Setenv("BCRYPT_COST", "abc")

	cfg := Load()

	if cfg.BaseURL != "http://localhost:9090" {
		t.Errorf("Expected derived base URL, got %s", cfg.BaseURL)
	}
	if cfg.LLMTimeout != 60*time.Second {
		t.Errorf("Expected default LLM timeout on parse failure, got %v", cfg.LLMTimeout)
	}
	if cfg.BCryptCost != 10 {
		t.Errorf("Expected default bcrypt cost, got %d", cfg.BCryptCost)
	}
	if !cfg.SeedSampleCourses {
		t.Error("Expected sample courses to be seeded by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"production default secret", func(c *Config) { c.Environment = "production" }, true},
		{"production custom secret", func(c *Config) { c.Environment = "production"; c.JWTSecret = "s3cret" }, false},
		{"no database", func(c *Config) { c.DatabaseURL = "" }, true},
		{"bcrypt too low", func(c *Config) { c.BCryptCost = 2 }, true},
		{"refresh shorter than access", func(c *Config) { c.RefreshTokenExpiry = time.Minute }, true},
		{"s3 without bucket", func(c *Config) { c.UseS3 = true; c.S3BucketName = "" }, true},
		{"no upload dir", func(c *Config) { c.LocalUploadDir = "" }, true},
		{"zero login attempts", func(c *Config) { c.LoginAttemptsMax = 0 }, true},
		{"negative chat rate", func(c *Config) { c.ChatRatePerMinute = -1 }, true},
		{"no cleanup interval", func(c *Config) { c.SessionCleanupInterval = 0 }, true},
		{"llm without model", func(c *Config) { c.LLMBaseURL = "http://llm"; c.LLMModel = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Expected error=%v, got %v", tt.wantErr, err)
			}
		})
	}
}
