package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"

	"github.com/meghashyamc/streetsearch/db/searchdb"
	"github.com/meghashyamc/streetsearch/logger"
	"github.com/meghashyamc/streetsearch/metrics"
)

type Service struct {
	logger logger.Logger
	db     searchdb.DB
}

type Result struct {
	Loaded  int `json:"loaded"`
	Skipped int `json:"skipped"`
}

func New(logger logger.Logger, db searchdb.DB) *Service {
	return &Service{
		logger: logger,
		db:     db,
	}
}

// Load reads every row of the CSV file at filePath and writes the resulting
// records in a single batch. Malformed rows are skipped and counted; any other
// failure aborts the whole load.
func (s *Service) Load(ctx context.Context, filePath string) (*Result, error) {
	file, err := os.Open(filePath)
	if err != nil {
		s.logger.Error("could not open csv file", "path", filePath, "err", err.Error())
		return nil, &IngestionError{Path: filePath, Stage: StageOpen, Err: err}
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = ','
	// Street names use gershayim, e.g. רמב"ם, inside unquoted fields.
	reader.LazyQuotes = true

	mapping, err := readHeader(reader)
	if err != nil {
		s.logger.Error("could not read csv header", "path", filePath, "err", err.Error())
		return nil, &IngestionError{Path: filePath, Stage: StageHeader, Err: err}
	}

	records, skipped, err := s.collect(ctx, filePath, reader, mapping)
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		s.logger.Warn("no valid rows to load", "path", filePath, "skipped", skipped)
		metrics.ObserveIngestion(0, skipped)
		return &Result{Loaded: 0, Skipped: skipped}, nil
	}

	loaded, err := s.db.BulkIndex(ctx, records)
	if err != nil {
		// The engine may have applied part of the batch.
		s.logger.Error("batch write failed, state of the index is unknown", "path", filePath, "records", len(records), "written", loaded, "err", err.Error())
		metrics.ObserveIngestion(loaded, skipped)
		return nil, &IngestionError{Path: filePath, Stage: StageWrite, Err: err}
	}

	metrics.ObserveIngestion(loaded, skipped)
	s.logger.Info("loaded csv file", "path", filePath, "loaded", loaded, "skipped", skipped)

	return &Result{Loaded: loaded, Skipped: skipped}, nil
}

func (s *Service) collect(ctx context.Context, filePath string, reader *csv.Reader, mapping headerMapping) ([]searchdb.Record, int, error) {
	var records []searchdb.Record
	skipped := 0

	for row := range rows(reader, mapping) {
		if err := ctx.Err(); err != nil {
			return nil, 0, &IngestionError{Path: filePath, Stage: StageRead, Err: err}
		}

		var malformedErr *malformedRowError
		switch {
		case errors.As(row.Err, &malformedErr):
			skipped++
			s.logger.Warn("skipping malformed csv row", "path", filePath, "line", row.Line, "reason", malformedErr.Error())
		case row.Err != nil:
			s.logger.Error("could not read csv file", "path", filePath, "err", row.Err.Error())
			return nil, 0, &IngestionError{Path: filePath, Stage: StageRead, Err: fmt.Errorf("after %d rows: %w", len(records)+skipped, row.Err)}
		default:
			records = append(records, row.Record)
		}
	}

	return records, skipped, nil
}
