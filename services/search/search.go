package search

import (
	"context"
	"strings"

	"github.com/meghashyamc/streetsearch/db/searchdb"
	"github.com/meghashyamc/streetsearch/logger"
	"github.com/meghashyamc/streetsearch/metrics"
)

type Service struct {
	logger   logger.Logger
	db       searchdb.DB
	pageSize int
}

func New(logger logger.Logger, db searchdb.DB, pageSize int) *Service {
	return &Service{
		logger:   logger,
		db:       db,
		pageSize: pageSize,
	}
}

// Search returns at most one page of records matching queryString under mode,
// in relevance order. Soft-deleted records are never returned.
func (s *Service) Search(ctx context.Context, queryString string, mode string) ([]searchdb.Record, error) {
	q, err := s.buildQuery(queryString, mode)
	if err != nil {
		return nil, err
	}

	results, err := s.db.Search(ctx, q)
	if err != nil {
		s.logger.Error("search failed", "mode", mode, "err", err.Error())
		metrics.ObserveSearch(mode, metrics.OutcomeError, 0)
		return nil, err
	}

	metrics.ObserveSearch(mode, metrics.OutcomeSuccess, len(results))
	return results, nil
}

func (s *Service) buildQuery(queryString string, mode string) (searchdb.Query, error) {
	queryString = strings.TrimSpace(queryString)
	if queryString == "" {
		return searchdb.Query{}, &MissingQueryError{}
	}

	searchMode := searchdb.Mode(mode)
	if !searchMode.IsValid() {
		return searchdb.Query{}, &InvalidModeError{Mode: mode}
	}

	return searchdb.Query{Text: queryString, Mode: searchMode, Limit: s.pageSize}, nil
}
