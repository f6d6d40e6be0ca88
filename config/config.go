package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const keyEnv = "ENV"
const envLocal = "local"

const (
	EngineBleve         = "bleve"
	EngineElasticsearch = "elasticsearch"

	defaultPort               = "5000"
	defaultStoragePath        = "./.streetsearch"
	defaultIndexPath          = "streets.bleve"
	defaultKVDBPath           = "records.db"
	defaultElasticsearchURL   = "http://localhost:9200"
	defaultElasticsearchIndex = "streets"
	defaultSearchPageSize     = 6
)

type Config struct {
	config *viper.Viper
}

func Load(env string) (*Config, error) {

	if len(env) == 0 {
		if env = os.Getenv(keyEnv); len(env) == 0 {
			env = envLocal
		}
	}

	configPath, err := getConfigPath(env)

	viperConfig := viper.New()
	if err == nil {
		viperConfig.SetConfigFile(configPath)
		if err := viperConfig.ReadInConfig(); err != nil {
			slog.Warn(fmt.Sprintf("error reading config file, %s", err))
		}
	}
	viperConfig.AutomaticEnv()

	cfg := &Config{
		config: viperConfig,
	}

	return cfg, nil
}

func (c *Config) GetPort() string {
	return c.getString("PORT", "server.port", defaultPort)
}

func (c *Config) GetLogLevel() string {
	return c.getString("LOG_LEVEL", "log.level", "info")
}

// GetEngine returns the search backend name, either EngineBleve or EngineElasticsearch.
func (c *Config) GetEngine() string {
	return c.getString("ENGINE", "engine.backend", EngineBleve)
}

func (c *Config) GetStoragePath() string {
	return c.getString("STORAGE_PATH", "database.storage_path", defaultStoragePath)
}

func (c *Config) GetIndexPath() string {
	return c.getString("INDEX_PATH", "database.index_path", defaultIndexPath)
}

func (c *Config) GetKVDBPath() string {
	return c.getString("KVDB_PATH", "database.kvdb_path", defaultKVDBPath)
}

func (c *Config) GetElasticsearchURL() string {
	return c.getString("ELASTICSEARCH_URL", "elasticsearch.url", defaultElasticsearchURL)
}

func (c *Config) GetElasticsearchIndex() string {
	return c.getString("ELASTICSEARCH_INDEX", "elasticsearch.index", defaultElasticsearchIndex)
}

func (c *Config) GetSearchPageSize() int {
	pageSize := c.config.GetInt("SEARCH_PAGE_SIZE")
	if pageSize <= 0 {
		pageSize = c.config.GetInt("search.page_size")
	}
	if pageSize <= 0 {
		pageSize = defaultSearchPageSize
	}

	return pageSize
}

func (c *Config) getString(envKey string, fileKey string, fallback string) string {
	value := c.config.GetString(envKey)
	if len(value) == 0 {
		value = c.config.GetString(fileKey)
	}
	if len(value) == 0 {
		value = fallback
	}

	return value
}

func getProjectRoot() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}

	for {
		configDir := filepath.Join(currentDir, "config")
		if info, err := os.Stat(configDir); err == nil && info.IsDir() {
			return currentDir, nil
		}

		parent := filepath.Dir(currentDir)

		if parent == currentDir {
			break
		}

		currentDir = parent
	}

	return "", fmt.Errorf("could not find project root (directory containing 'config' folder)")
}

func getConfigPath(env string) (string, error) {
	configFile := fmt.Sprintf("config.%s.yaml", env)

	projectRoot, err := getProjectRoot()
	if err != nil {
		slog.Warn("failed to find project root with config directory, will use environment variables instead", "err", err.Error())
		return "", fmt.Errorf("failed to find project root: %w", err)
	}
	configPath := filepath.Join(projectRoot, "config", configFile)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		slog.Warn("failed to find config file within config directory, will use environment variables instead", "err", err.Error())
		return "", fmt.Errorf("config file does not exist: %s", configPath)
	}

	return configPath, nil
}
