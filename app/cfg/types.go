package cfg

// Cfg holds the resolved application configuration
type Cfg struct {
	// Feed configuration
	FeedFile string

	// Application configuration
	Port      string
	RedisAddr string
	CacheTTL  int // seconds

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
