package searchdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/meghashyamc/streetsearch/logger"
)

// ElasticsearchDB talks to a remote Elasticsearch cluster. Document IDs are
// assigned by the cluster.
type ElasticsearchDB struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

var elasticsearchModeQueries = map[Mode]func(text string) map[string]any{
	ModeFree: func(text string) map[string]any {
		return map[string]any{
			"match": map[string]any{fieldMainName: text},
		}
	},
	ModeAccurate: func(text string) map[string]any {
		return map[string]any{
			"multi_match": map[string]any{
				"query":  text,
				"fields": textFields,
			},
		}
	},
	ModePhrase: func(text string) map[string]any {
		return map[string]any{
			"match_phrase": map[string]any{fieldMainName: text},
		}
	},
}

func NewElasticsearch(ctx context.Context, logger logger.Logger, url string, index string) (*ElasticsearchDB, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
	})
	if err != nil {
		logger.Error("could not create elasticsearch client", "err", err.Error(), "url", url)
		return nil, err
	}

	es := &ElasticsearchDB{client: client, index: index, logger: logger}
	if err := es.ensureIndex(ctx); err != nil {
		return nil, err
	}

	logger.Info("connected to elasticsearch", "url", url, "index", index)
	return es, nil
}

func (e *ElasticsearchDB) ensureIndex(ctx context.Context) error {
	res, err := e.client.Indices.Exists([]string{e.index}, e.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		e.logger.Error("elasticsearch cluster is down", "err", err.Error())
		return fmt.Errorf("could not reach elasticsearch: %w", err)
	}
	closeBody(res)

	if res.StatusCode == http.StatusOK {
		return nil
	}
	if res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("could not check index %s: %s", e.index, res.Status())
	}

	body, err := json.Marshal(createIndexMappingBody())
	if err != nil {
		return err
	}

	res, err = e.client.Indices.Create(e.index,
		e.client.Indices.Create.WithBody(bytes.NewReader(body)),
		e.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		e.logger.Error("could not create index", "index", e.index, "err", err.Error())
		return fmt.Errorf("could not create index %s: %w", e.index, err)
	}
	defer closeBody(res)

	if res.IsError() {
		e.logger.Error("could not create index", "index", e.index, "status", res.Status())
		return fmt.Errorf("could not create index %s: %s", e.index, res.Status())
	}

	e.logger.Info("created index", "index", e.index)
	return nil
}

func createIndexMappingBody() map[string]any {
	properties := make(map[string]any, len(textFields)+1)
	for _, field := range textFields {
		properties[field] = map[string]any{"type": "text"}
	}
	properties[fieldIsDeleted] = map[string]any{"type": "boolean"}

	return map[string]any{
		"mappings": map[string]any{"properties": properties},
	}
}

func buildElasticsearchQuery(q Query) (map[string]any, error) {
	modeQuery, ok := elasticsearchModeQueries[q.Mode]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, q.Mode)
	}

	return map[string]any{
		"size": q.Limit,
		"query": map[string]any{
			"bool": map[string]any{
				"must": modeQuery(q.Text),
				"must_not": map[string]any{
					"term": map[string]any{fieldIsDeleted: true},
				},
			},
		},
	}, nil
}

type elasticsearchSearchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string `json:"_id"`
			Source Record `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (e *ElasticsearchDB) Search(ctx context.Context, q Query) ([]Record, error) {
	searchQuery, err := buildElasticsearchQuery(q)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(searchQuery)
	if err != nil {
		return nil, err
	}

	res, err := e.client.Search(
		e.client.Search.WithContext(ctx),
		e.client.Search.WithIndex(e.index),
		e.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		e.logger.Error("search failed", "err", err.Error())
		return nil, fmt.Errorf("search failed: %w", err)
	}
	defer closeBody(res)

	if res.IsError() {
		e.logger.Error("search failed", "status", res.Status())
		return nil, fmt.Errorf("search failed: %s", res.Status())
	}

	var searchResponse elasticsearchSearchResponse
	if err := json.NewDecoder(res.Body).Decode(&searchResponse); err != nil {
		return nil, fmt.Errorf("could not decode search response: %w", err)
	}

	results := make([]Record, 0, len(searchResponse.Hits.Hits))
	for _, hit := range searchResponse.Hits.Hits {
		record := hit.Source
		record.ID = hit.ID
		results = append(results, record)
	}

	return results, nil
}

func (e *ElasticsearchDB) SoftDelete(ctx context.Context, id string) error {
	body, err := json.Marshal(map[string]any{
		"doc": map[string]any{fieldIsDeleted: true},
	})
	if err != nil {
		return &UpdateError{ID: id, Err: err}
	}

	res, err := e.client.Update(e.index, id, bytes.NewReader(body),
		e.client.Update.WithContext(ctx),
		e.client.Update.WithRefresh("true"),
	)
	if err != nil {
		e.logger.Error("delete failed", "id", id, "err", err.Error())
		return &UpdateError{ID: id, Err: err}
	}
	defer closeBody(res)

	if res.StatusCode == http.StatusNotFound {
		e.logger.Warn("document to delete not found", "id", id)
		return &NotFoundError{ID: id}
	}
	if res.IsError() {
		e.logger.Error("delete failed", "id", id, "status", res.Status())
		return &UpdateError{ID: id, Err: fmt.Errorf("elasticsearch returned %s", res.Status())}
	}

	return nil
}

type elasticsearchBulkResponse struct {
	Errors bool `json:"errors"`
	Items  []map[string]struct {
		ID     string `json:"_id"`
		Status int    `json:"status"`
		Error  *struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error,omitempty"`
	} `json:"items"`
}

func (e *ElasticsearchDB) BulkIndex(ctx context.Context, records []Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	var body bytes.Buffer
	encoder := json.NewEncoder(&body)
	for _, record := range records {
		action := map[string]any{"index": map[string]any{"_index": e.index}}
		if err := encoder.Encode(action); err != nil {
			return 0, err
		}
		if err := encoder.Encode(record.source()); err != nil {
			return 0, err
		}
	}

	res, err := e.client.Bulk(&body,
		e.client.Bulk.WithContext(ctx),
		e.client.Bulk.WithRefresh("true"),
	)
	if err != nil {
		e.logger.Error("bulk write failed", "err", err.Error())
		return 0, fmt.Errorf("bulk write failed: %w", err)
	}
	defer closeBody(res)

	if res.IsError() {
		e.logger.Error("bulk write rejected", "status", res.Status())
		return 0, &BulkError{Failed: len(records), Total: len(records), Reason: res.Status()}
	}

	var bulkResponse elasticsearchBulkResponse
	if err := json.NewDecoder(res.Body).Decode(&bulkResponse); err != nil {
		return 0, fmt.Errorf("could not decode bulk response: %w", err)
	}

	failed := 0
	reason := ""
	for _, item := range bulkResponse.Items {
		for _, result := range item {
			if result.Error != nil {
				failed++
				reason = result.Error.Type + ": " + result.Error.Reason
			}
		}
	}
	written := len(bulkResponse.Items) - failed

	if bulkResponse.Errors || failed > 0 {
		e.logger.Error("bulk write partially failed", "failed", failed, "total", len(records), "reason", reason)
		return written, &BulkError{Failed: failed, Total: len(records), Reason: reason}
	}

	return written, nil
}

func (e *ElasticsearchDB) GetDocCount(ctx context.Context) (uint64, error) {
	res, err := e.client.Count(
		e.client.Count.WithContext(ctx),
		e.client.Count.WithIndex(e.index),
	)
	if err != nil {
		return 0, fmt.Errorf("count failed: %w", err)
	}
	defer closeBody(res)

	if res.IsError() {
		return 0, fmt.Errorf("count failed: %s", res.Status())
	}

	var countResponse struct {
		Count uint64 `json:"count"`
	}
	if err := json.NewDecoder(res.Body).Decode(&countResponse); err != nil {
		return 0, fmt.Errorf("could not decode count response: %w", err)
	}

	return countResponse.Count, nil
}

func (e *ElasticsearchDB) Close() error {
	return nil
}

func closeBody(res *esapi.Response) {
	if res != nil && res.Body != nil {
		io.Copy(io.Discard, res.Body)
		res.Body.Close()
	}
}
