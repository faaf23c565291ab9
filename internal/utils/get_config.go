package utils

import (
	"Recipe-Share-Backend/internal/logging"
	"errors"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
	"io/fs"
	"os"
	"sync"
)

var defaults = map[string]string{
	"APP_PORT":       "8080",
	"DB_DRIVER":      "sqlite",
	"DB_HOST":        "localhost",
	"DB_PORT":        "5432",
	"DB_SSLMODE":     "disable",
	"SQLITE_PATH":    "recipes.db",
	"STORAGE_DRIVER": "local",
	"UPLOAD_DIR":     "static/images",
	"SMTP_PORT":      "587",
	"LOG_LEVEL":      "info",
	"LOG_FORMAT":     "json",
	"RATE_LIMIT_MAX": "0",
}

var (
	config   map[string]string
	configMu sync.RWMutex
)

// LoadConfig reads .env into the process environment and config.yaml into the
// fallback table. Missing files are ignored.
func LoadConfig() {
	LoadConfigFrom(".env", "config.yaml")
}

func LoadConfigFrom(envFile, yamlFile string) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logging.Warn().Err(err).Str("file", envFile).Msg("error reading env file")
	}

	values := map[string]string{}
	file, err := os.ReadFile(yamlFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		logging.Warn().Err(err).Str("file", yamlFile).Msg("error reading YAML file")
	default:
		if err := yaml.Unmarshal(file, &values); err != nil {
			logging.Warn().Err(err).Str("file", yamlFile).Msg("error parsing YAML file")
		}
	}

	configMu.Lock()
	config = values
	configMu.Unlock()
}

// GetConfig resolves key from the environment, then config.yaml, then the
// built-in default.
func GetConfig(key string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}

	configMu.RLock()
	v, ok := config[key]
	configMu.RUnlock()
	if ok && v != "" {
		return v
	}

	return defaults[key]
}
