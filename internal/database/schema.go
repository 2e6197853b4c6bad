package database

const cacheSchema = `
-- Daily cache: one row per namespace, payload and cached-on date are
-- always written and cleared together.
CREATE TABLE daily_cache (
	namespace TEXT PRIMARY KEY,
	payload TEXT NOT NULL,
	cached_on TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX idx_daily_cache_cached_on ON daily_cache(cached_on);
`

// cacheMigrations contains incremental schema changes
// Each migration is applied in order based on the current user_version
// cacheMigrations[0] is empty because version 0 uses the base schema
var cacheMigrations = []string{
	"",
}
