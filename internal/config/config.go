package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/mtgtools/buylistdb/internal/domain"
)

// Load loads configuration from multiple sources:
// 1. Config file (config.yaml, optional)
// 2. Environment variables (BUYLISTDB_*)
func Load() (*domain.Config, error) {
	cfg := &domain.Config{
		CatalogBaseURL:    viper.GetString("catalog_base_url"),
		CacheDir:          viper.GetString("cache_dir"),
		FetchRate:         viper.GetFloat64("fetch_rate"),
		AllPrintings:      viper.GetBool("all_printings"),
		DiscordWebhookURL: viper.GetString("discord_webhook_url"),
	}

	// Cache backend (default: "sqlite")
	backendStr := viper.GetString("cache_backend")
	if backendStr == "" {
		cfg.CacheBackend = domain.CacheBackendSQLite
	} else {
		cfg.CacheBackend = domain.CacheBackend(backendStr)
		if cfg.CacheBackend != domain.CacheBackendSQLite &&
			cfg.CacheBackend != domain.CacheBackendBolt &&
			cfg.CacheBackend != domain.CacheBackendMemory {
			return nil, fmt.Errorf("invalid cache_backend: %s (must be 'sqlite', 'bolt', or 'memory')", backendStr)
		}
	}

	if cfg.CacheDir == "" {
		cfg.CacheDir = "."
	}

	// One request per second unless configured otherwise. The remote source
	// is fetched strictly sequentially; this only paces that single lane.
	if cfg.FetchRate <= 0 {
		cfg.FetchRate = 1
	}

	return cfg, nil
}
