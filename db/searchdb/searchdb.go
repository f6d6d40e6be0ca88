package searchdb

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/meghashyamc/streetsearch/config"
	"github.com/meghashyamc/streetsearch/db/kvdb"
	"github.com/meghashyamc/streetsearch/logger"
)

type DB interface {
	// BulkIndex writes all records in one batch and returns how many were written.
	BulkIndex(ctx context.Context, records []Record) (int, error)
	// Search returns records matching q, never including soft-deleted ones.
	Search(ctx context.Context, q Query) ([]Record, error)
	// SoftDelete sets is_deleted on the record with the given ID.
	SoftDelete(ctx context.Context, id string) error
	GetDocCount(ctx context.Context) (uint64, error)
	Close() error
}

// Open connects to the search backend selected in cfg.
func Open(ctx context.Context, logger logger.Logger, cfg *config.Config) (DB, error) {
	switch cfg.GetEngine() {
	case config.EngineBleve:
		storagePath := cfg.GetStoragePath()
		records, err := kvdb.New(logger, filepath.Join(storagePath, cfg.GetKVDBPath()))
		if err != nil {
			return nil, err
		}
		bleveDB, err := NewBleve(logger, filepath.Join(storagePath, cfg.GetIndexPath()), records)
		if err != nil {
			records.Close()
			return nil, err
		}
		return bleveDB, nil
	case config.EngineElasticsearch:
		return NewElasticsearch(ctx, logger, cfg.GetElasticsearchURL(), cfg.GetElasticsearchIndex())
	default:
		return nil, fmt.Errorf("unknown search engine %q", cfg.GetEngine())
	}
}
