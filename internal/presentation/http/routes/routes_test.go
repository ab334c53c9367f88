package routes

import (
	"math"
	"testing"

	"github.com/dkimathi/invoicer-api/internal/config"
)

func TestRateLimiterConfig(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.RateLimitConfig
		wantRPS   float64
		wantBurst int
	}{
		{
			name:      "configured",
			cfg:       config.RateLimitConfig{Requests: 100, Duration: 60},
			wantRPS:   100.0 / 60.0,
			wantBurst: 100,
		},
		{
			name:      "zero duration falls back to defaults",
			cfg:       config.RateLimitConfig{Requests: 100, Duration: 0},
			wantRPS:   10,
			wantBurst: 20,
		},
		{
			name:      "zero requests falls back to defaults",
			cfg:       config.RateLimitConfig{Requests: 0, Duration: 60},
			wantRPS:   10,
			wantBurst: 20,
		},
		{
			name:      "empty config falls back to defaults",
			cfg:       config.RateLimitConfig{},
			wantRPS:   10,
			wantBurst: 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rateLimiterConfig(&tt.cfg)

			if math.IsInf(got.RequestsPerSecond, 0) || math.IsNaN(got.RequestsPerSecond) {
				t.Fatalf("rate = %v, limiter effectively disabled", got.RequestsPerSecond)
			}
			if got.RequestsPerSecond != tt.wantRPS {
				t.Errorf("rate = %v, want %v", got.RequestsPerSecond, tt.wantRPS)
			}
			if got.BurstSize != tt.wantBurst {
				t.Errorf("burst = %d, want %d", got.BurstSize, tt.wantBurst)
			}
		})
	}
}
