// Package searchdbtest provides a testify mock of searchdb.DB for service tests.
package searchdbtest

import (
	"context"

	"github.com/meghashyamc/streetsearch/db/searchdb"
	"github.com/stretchr/testify/mock"
)

type MockDB struct {
	mock.Mock
}

var _ searchdb.DB = (*MockDB)(nil)

func (m *MockDB) BulkIndex(ctx context.Context, records []searchdb.Record) (int, error) {
	args := m.Called(ctx, records)
	return args.Int(0), args.Error(1)
}

func (m *MockDB) Search(ctx context.Context, q searchdb.Query) ([]searchdb.Record, error) {
	args := m.Called(ctx, q)
	results, _ := args.Get(0).([]searchdb.Record)
	return results, args.Error(1)
}

func (m *MockDB) SoftDelete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockDB) GetDocCount(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockDB) Close() error {
	return m.Called().Error(0)
}
