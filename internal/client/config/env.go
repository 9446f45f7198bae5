package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/diarykeeper/internal/flagx"
	"github.com/joho/godotenv"
)

// EnvPrefix namespaces the environment variables read by the CLI.
const EnvPrefix = "DIARYKEEPER_CLIENT_"

func parseEnv(cfg *Config) {
	if path := flagx.EnvFileFlag(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	}
	applyEnv(cfg, os.LookupEnv)
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvPrefix + "SERVER_ADDR"); ok {
		cfg.ServerEndpointAddr = v
	}
	if v, ok := lookup(EnvPrefix + "DB_PATH"); ok {
		cfg.DatabasePath = v
	}
	if v, ok := lookup(EnvPrefix + "ONLINE_CHECK_INTERVAL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.OnlineCheckInterval = d
	}
	if v, ok := lookup(EnvPrefix + "EXPORT_DIR"); ok {
		cfg.ExportDir = v
	}
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
}
