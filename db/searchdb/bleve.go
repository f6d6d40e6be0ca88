package searchdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/google/uuid"
	"github.com/meghashyamc/streetsearch/db/kvdb"
	"github.com/meghashyamc/streetsearch/logger"
)

// BleveDB is an embedded search engine. The bleve index answers queries and the
// key-value store keeps the source of every record, like an engine's _source.
type BleveDB struct {
	indexPath string
	logger    logger.Logger
	index     bleve.Index
	records   kvdb.DB
}

var bleveModeQueries = map[Mode]func(text string) query.Query{
	ModeFree: func(text string) query.Query {
		matchQuery := bleve.NewMatchQuery(text)
		matchQuery.SetField(fieldMainName)
		return matchQuery
	},
	ModeAccurate: func(text string) query.Query {
		disjunctQuery := bleve.NewDisjunctionQuery()
		for _, field := range textFields {
			matchQuery := bleve.NewMatchQuery(text)
			matchQuery.SetField(field)
			disjunctQuery.AddQuery(matchQuery)
		}
		return disjunctQuery
	},
	ModePhrase: func(text string) query.Query {
		phraseQuery := bleve.NewMatchPhraseQuery(text)
		phraseQuery.SetField(fieldMainName)
		return phraseQuery
	},
}

func NewBleve(logger logger.Logger, indexPath string, records kvdb.DB) (*BleveDB, error) {
	index, err := bleve.New(indexPath, createIndexMapping())
	if err != nil {
		index, err = bleve.Open(indexPath)
		if err != nil {
			logger.Error("could not open index", "err", err.Error(), "path", indexPath)
			return nil, err
		}
	}

	stored, err := records.Count()
	if err != nil {
		logger.Error("could not count stored records", "err", err.Error())
		index.Close()
		return nil, err
	}
	logger.Info("opened search index", "path", indexPath, "records", stored)

	return &BleveDB{indexPath: indexPath, logger: logger, index: index, records: records}, nil
}

func createIndexMapping() mapping.IndexMapping {

	indexMapping := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()

	for _, field := range textFields {
		textFieldMapping := bleve.NewTextFieldMapping()
		textFieldMapping.Analyzer = standard.Name
		textFieldMapping.Store = false // the source lives in the key-value store
		docMapping.AddFieldMappingsAt(field, textFieldMapping)
	}

	isDeletedFieldMapping := bleve.NewBooleanFieldMapping()
	isDeletedFieldMapping.Store = false
	docMapping.AddFieldMappingsAt(fieldIsDeleted, isDeletedFieldMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}

func (b *BleveDB) BulkIndex(ctx context.Context, records []Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	entries := make([]kvdb.Entry, 0, len(records))
	batch := b.index.NewBatch()

	for _, record := range records {
		record.ID = uuid.NewString()

		source, err := json.Marshal(record)
		if err != nil {
			b.logger.Error("could not encode record", "err", err.Error())
			return 0, err
		}
		entries = append(entries, kvdb.Entry{Key: record.ID, Value: string(source)})

		if err := batch.Index(record.ID, record.source()); err != nil {
			b.logger.Error("could not index document", "err", err.Error())
			return 0, err
		}
	}

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if err := b.records.SetMany(entries); err != nil {
		b.logger.Error("could not store records", "err", err.Error())
		return 0, &BulkError{Failed: len(records), Total: len(records), Reason: err.Error()}
	}

	if err := b.index.Batch(batch); err != nil {
		b.logger.Error("could not index documents", "err", err.Error())
		return 0, &BulkError{Failed: len(records), Total: len(records), Reason: err.Error()}
	}

	return len(records), nil
}

func (b *BleveDB) Search(ctx context.Context, q Query) ([]Record, error) {
	searchQuery, err := b.buildSearchQuery(q)
	if err != nil {
		return nil, err
	}

	results := make([]Record, 0, q.Limit)
	for from := 0; len(results) < q.Limit; {
		searchRequest := bleve.NewSearchRequestOptions(searchQuery, q.Limit, from, false)

		searchResult, err := b.index.SearchInContext(ctx, searchRequest)
		if err != nil {
			b.logger.Error("search failed", "err", err.Error())
			return nil, fmt.Errorf("search failed: %w", err)
		}

		for _, hit := range searchResult.Hits {
			record, err := b.getRecord(hit.ID)
			if err != nil {
				return nil, fmt.Errorf("could not load record %s: %w", hit.ID, err)
			}

			// The source is authoritative if a soft delete reached it but not the index.
			// Dropped hits are made up for from the next page.
			if record.IsDeleted {
				continue
			}

			results = append(results, record)
			if len(results) == q.Limit {
				break
			}
		}

		from += len(searchResult.Hits)
		if len(searchResult.Hits) < q.Limit || uint64(from) >= searchResult.Total {
			break
		}
	}

	return results, nil
}

func (b *BleveDB) buildSearchQuery(q Query) (query.Query, error) {
	modeQuery, ok := bleveModeQueries[q.Mode]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, q.Mode)
	}

	isDeletedQuery := bleve.NewBoolFieldQuery(true)
	isDeletedQuery.SetField(fieldIsDeleted)

	booleanQuery := bleve.NewBooleanQuery()
	booleanQuery.AddMust(modeQuery(q.Text))
	booleanQuery.AddMustNot(isDeletedQuery)

	return booleanQuery, nil
}

func (b *BleveDB) SoftDelete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return &UpdateError{ID: id, Err: err}
	}

	var deleted Record
	err := b.records.Update(id, func(value string) (string, error) {
		record, err := decodeRecord(id, value)
		if err != nil {
			return "", err
		}
		record.IsDeleted = true
		deleted = record

		source, err := json.Marshal(record)
		if err != nil {
			return "", err
		}
		return string(source), nil
	})
	if err != nil {
		if errors.Is(err, kvdb.ErrNotFound) {
			b.logger.Warn("document to delete not found", "id", id)
			return &NotFoundError{ID: id}
		}
		b.logger.Error("could not mark record as deleted", "id", id, "err", err.Error())
		return &UpdateError{ID: id, Err: err}
	}

	if err := b.index.Index(id, deleted.source()); err != nil {
		b.logger.Error("could not reindex deleted document", "id", id, "err", err.Error())
		return &UpdateError{ID: id, Err: err}
	}

	return nil
}

func (b *BleveDB) GetDocCount(ctx context.Context) (uint64, error) {
	return b.index.DocCount()
}

func (b *BleveDB) Close() error {

	if b.index != nil {
		if err := b.index.Close(); err != nil {
			b.logger.Error("could not close search index", "err", err.Error())
			return err
		}
	}
	if b.records != nil {
		if err := b.records.Close(); err != nil {
			b.logger.Error("could not close record store", "err", err.Error())
			return err
		}
	}
	return nil
}

func (b *BleveDB) getRecord(id string) (Record, error) {
	value, err := b.records.Get(id)
	if err != nil {
		b.logger.Error("could not get record", "id", id, "err", err.Error())
		return Record{}, err
	}
	return decodeRecord(id, value)
}

func decodeRecord(id string, value string) (Record, error) {
	var record Record
	if err := json.Unmarshal([]byte(value), &record); err != nil {
		return Record{}, fmt.Errorf("could not decode record %s: %w", id, err)
	}
	record.ID = id
	return record, nil
}
