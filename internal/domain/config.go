package domain

// CacheBackend selects the persistent store behind the daily cache.
type CacheBackend string

const (
	// CacheBackendSQLite - SQLite database file (default)
	CacheBackendSQLite CacheBackend = "sqlite"
	// CacheBackendBolt - bbolt embedded key/value store
	CacheBackendBolt CacheBackend = "bolt"
	// CacheBackendMemory - in-memory only, nothing survives the process
	CacheBackendMemory CacheBackend = "memory"
)

type Config struct {
	CatalogBaseURL    string       `toml:"catalog_base_url" mapstructure:"catalog_base_url"`
	CacheBackend      CacheBackend `toml:"cache_backend" mapstructure:"cache_backend"`
	CacheDir          string       `toml:"cache_dir" mapstructure:"cache_dir"`
	FetchRate         float64      `toml:"fetch_rate" mapstructure:"fetch_rate"`
	AllPrintings      bool         `toml:"all_printings" mapstructure:"all_printings"`
	DiscordWebhookURL string       `toml:"discord_webhook_url" mapstructure:"discord_webhook_url"`
}
