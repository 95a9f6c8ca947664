package outbox

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Interval is the delay between processor ticks.
	// Default: 10 seconds
	Interval time.Duration `mapstructure:"interval"`
}

func newConfig(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	if sub := v.Sub("outbox"); sub != nil {
		if err := sub.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("failed to load outbox config: %w", err)
		}
	}

	if cfg.Interval <= 0 {
		cfg.Interval = 10 * time.Second
	}

	return cfg, nil
}
