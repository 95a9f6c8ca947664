package metrics

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	// Port the scrape endpoint listens on.
	// Default: 9090
	Port int `mapstructure:"port"`
}

func newConfig(v *viper.Viper) (Config, error) {
	var cfg Config
	if sub := v.Sub("metrics"); sub != nil {
		if err := sub.Unmarshal(&cfg); err != nil {
			return cfg, fmt.Errorf("failed to load metrics config: %w", err)
		}
	}

	if cfg.Port == 0 {
		cfg.Port = 9090
	}

	return cfg, nil
}
