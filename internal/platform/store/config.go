package store

import "time"

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG  PGConfig
	ES  ESConfig
	RDS RedisConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int
}

// ESConfig configures the search engine client and its bulk writer
type ESConfig struct {
	Enabled   bool
	Addresses []string
	Username  string
	Password  string

	// Bulk writer knobs; zero values fall back to client defaults
	BulkWorkers   int
	FlushBytes    int
	FlushInterval time.Duration
}

// RedisConfig configures cache connectivity
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}
