package model

// ----------------------------------------------------
// ================ Config ================
// LogConfig holds logger configuration
type LogConfig struct {
	Level      string `yaml:"level" split_words:"true"`
	Format     string `yaml:"format" split_words:"true"` // json, console
	Output     string `yaml:"output" split_words:"true"` // stdout, stderr, file
	FilePath   string `yaml:"file_path" split_words:"true"`
	TimeFormat string `yaml:"time_format" split_words:"true"`
}

// StoreConfig selects and configures the persistence backend
type StoreConfig struct {
	Backend  string `yaml:"backend" split_words:"true"` // file, redis, memory
	Path     string `yaml:"path" split_words:"true"`
	Prefix   string `yaml:"prefix" split_words:"true"`
	RedisURL string `yaml:"redis_url" envconfig:"REDIS_URL"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr        string   `yaml:"addr" split_words:"true"`
	Debug       bool     `yaml:"debug" split_words:"true"`
	CORSOrigins []string `yaml:"cors_origins" envconfig:"CORS_ORIGINS"`
}
