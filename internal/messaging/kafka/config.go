package kafka

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	// Brokers is the comma-separated bootstrap server list.
	Brokers string `mapstructure:"brokers"`
}

func newConfig(v *viper.Viper) (Config, error) {
	var cfg Config
	if sub := v.Sub("kafka"); sub != nil {
		if err := sub.Unmarshal(&cfg); err != nil {
			return cfg, fmt.Errorf("failed to load kafka config: %w", err)
		}
	}

	if cfg.Brokers == "" {
		return cfg, fmt.Errorf("kafka brokers are required")
	}

	return cfg, nil
}
