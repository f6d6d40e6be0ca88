package search

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/meghashyamc/streetsearch/db/searchdb"
	"github.com/meghashyamc/streetsearch/db/searchdb/searchdbtest"
	"github.com/meghashyamc/streetsearch/logger"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testPageSize = 6

func TestSearchValidation(t *testing.T) {
	testCases := []struct {
		name     string
		query    string
		mode     string
		expected error
	}{
		{name: "EmptyQuery", query: "", mode: "free", expected: &MissingQueryError{}},
		{name: "BlankQuery", query: "   ", mode: "free", expected: &MissingQueryError{}},
		{name: "EmptyMode", query: "herzl", mode: "", expected: &InvalidModeError{Mode: ""}},
		{name: "UnknownMode", query: "herzl", mode: "fuzzy", expected: &InvalidModeError{Mode: "fuzzy"}},
		{name: "ModeIsCaseSensitive", query: "herzl", mode: "FREE", expected: &InvalidModeError{Mode: "FREE"}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert := require.New(t)
			db := &searchdbtest.MockDB{}
			service := New(logger.NewWithWriter(io.Discard, "debug"), db, testPageSize)

			_, err := service.Search(context.Background(), testCase.query, testCase.mode)
			assert.Equal(testCase.expected, err)
			assert.ErrorIs(err, ErrValidation)
			db.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
		})
	}
}

func TestSearchBuildsQuery(t *testing.T) {
	for _, mode := range searchdb.Modes {
		t.Run(string(mode), func(t *testing.T) {
			assert := require.New(t)
			db := &searchdbtest.MockDB{}
			expected := []searchdb.Record{{ID: "1", MainName: "Herzl"}}
			db.On("Search", mock.Anything, searchdb.Query{Text: "Herzl", Mode: mode, Limit: testPageSize}).Return(expected, nil)
			service := New(logger.NewWithWriter(io.Discard, "debug"), db, testPageSize)

			results, err := service.Search(context.Background(), "  Herzl ", string(mode))
			assert.NoError(err)
			assert.Equal(expected, results)
			db.AssertExpectations(t)
		})
	}
}

func TestSearchEngineFailure(t *testing.T) {
	assert := require.New(t)
	db := &searchdbtest.MockDB{}
	engineErr := errors.New("cluster unavailable")
	db.On("Search", mock.Anything, mock.Anything).Return(nil, engineErr)
	service := New(logger.NewWithWriter(io.Discard, "debug"), db, testPageSize)

	_, err := service.Search(context.Background(), "Herzl", "free")
	assert.ErrorIs(err, engineErr)
	assert.NotErrorIs(err, ErrValidation)
}
