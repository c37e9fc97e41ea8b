package engine

import (
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	if err := NewConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"Zero tiles per AP", func(c *Config) { c.TilesPerAP = 0 }},
		{"Zero AP per turn", func(c *Config) { c.APPerTurn = 0 }},
		{"Negative attack cost", func(c *Config) { c.AttackAPCost = -1 }},
		{"Diagonal faster", func(c *Config) { c.StepDurationDiagonal = time.Millisecond }},
		{"No spawn delay", func(c *Config) { c.SpawnDelay = 0 }},
		{"HP ratio above one", func(c *Config) { c.SpawnHPRatio = 1.5 }},
		{"Unknown fog viewer", func(c *Config) { c.FogViewer = "hostile" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestConfig_StepDuration(t *testing.T) {
	cfg := NewConfig()
	if cfg.StepDuration(true) <= cfg.StepDuration(false) {
		t.Error("diagonal step should take longer than orthogonal")
	}
}
