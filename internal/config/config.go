package config

import "github.com/Skotchmaster/roadmap/pkg/config"

type ServiceConfig struct {
	config.Config
}

func Load() ServiceConfig {
	cfg := config.Load()

	config.MustSet(map[string]string{"DATABASE_URL": cfg.DatabaseURL})

	return ServiceConfig{Config: cfg}
}

func (c ServiceConfig) EventsEnabled() bool { return len(c.KafkaBrokers) > 0 }
func (c ServiceConfig) SearchEnabled() bool { return c.ESURL != "" }
