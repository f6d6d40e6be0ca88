package record

import (
	"context"
	"errors"
	"strings"

	"github.com/meghashyamc/streetsearch/db/searchdb"
	"github.com/meghashyamc/streetsearch/logger"
	"github.com/meghashyamc/streetsearch/metrics"
	"github.com/meghashyamc/streetsearch/services/search"
)

type MissingIDError struct{}

func (e *MissingIDError) Error() string {
	return "missing document id"
}

func (e *MissingIDError) Is(target error) bool {
	return target == search.ErrValidation
}

type Service struct {
	logger logger.Logger
	db     searchdb.DB
}

func New(logger logger.Logger, db searchdb.DB) *Service {
	return &Service{
		logger: logger,
		db:     db,
	}
}

// Delete marks the record as deleted. Deleting an already deleted record succeeds.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return &MissingIDError{}
	}

	if err := s.db.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, searchdb.ErrNotFound) {
			metrics.ObserveSoftDelete(metrics.OutcomeNotFound)
		} else {
			metrics.ObserveSoftDelete(metrics.OutcomeError)
		}
		s.logger.Warn("could not delete document", "id", id, "err", err.Error())
		return err
	}

	metrics.ObserveSoftDelete(metrics.OutcomeSuccess)
	s.logger.Info("document marked as deleted", "id", id)
	return nil
}
