package config

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Call    CallConfig    `yaml:"call"`
}

// ServerConfig holds HTTP host settings for serve mode.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// CallConfig holds the orchestration tunables. These are the only
// recognized options: retry ceiling, backoff base, per-attempt timeout,
// plus the optional jitter extension.
type CallConfig struct {
	MaxRetries      *int    `yaml:"max_retries"` // pointer so an explicit 0 differs from absent
	BaseDelayMillis int64   `yaml:"base_delay_millis"`
	TimeoutMillis   int64   `yaml:"timeout_millis"`
	Jitter          float64 `yaml:"jitter"`
}

// MaxRetriesOrDefault resolves the retry ceiling, defaulting to 3.
func (c CallConfig) MaxRetriesOrDefault() int {
	if c.MaxRetries == nil {
		return 3
	}
	return *c.MaxRetries
}
