package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadReadsEnvironmentFile(t *testing.T) {
	assert := require.New(t)

	cfg, err := Load("test")
	assert.NoError(err)
	assert.Equal("5001", cfg.GetPort())
	assert.Equal(EngineBleve, cfg.GetEngine())
	assert.Equal(6, cfg.GetSearchPageSize())
	assert.Equal("debug", cfg.GetLogLevel())
}

func TestEnvironmentOverridesFile(t *testing.T) {
	assert := require.New(t)
	t.Setenv("PORT", "8080")
	t.Setenv("ENGINE", EngineElasticsearch)
	t.Setenv("ELASTICSEARCH_URL", "http://elasticsearch:9200")
	t.Setenv("SEARCH_PAGE_SIZE", "10")

	cfg, err := Load("test")
	assert.NoError(err)
	assert.Equal("8080", cfg.GetPort())
	assert.Equal(EngineElasticsearch, cfg.GetEngine())
	assert.Equal("http://elasticsearch:9200", cfg.GetElasticsearchURL())
	assert.Equal(10, cfg.GetSearchPageSize())
}

func TestDefaultsWithoutConfigFile(t *testing.T) {
	assert := require.New(t)

	cfg, err := Load("does-not-exist")
	assert.NoError(err)
	assert.Equal("5000", cfg.GetPort())
	assert.Equal(EngineBleve, cfg.GetEngine())
	assert.Equal("streets", cfg.GetElasticsearchIndex())
	assert.Equal(6, cfg.GetSearchPageSize())
}
