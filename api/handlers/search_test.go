package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var searchHandlerValidationTestCases = []testCase{
	{
		name:           "NoParams",
		queryParams:    map[string]string{},
		expectedStatus: http.StatusBadRequest,
	},
	{
		name:           "MissingQuery",
		queryParams:    map[string]string{"mode": "free"},
		expectedStatus: http.StatusBadRequest,
	},
	{
		name:           "BlankQuery",
		queryParams:    map[string]string{"q": "   ", "mode": "free"},
		expectedStatus: http.StatusBadRequest,
	},
	{
		name:           "MissingMode",
		queryParams:    map[string]string{"q": "Herzl"},
		expectedStatus: http.StatusBadRequest,
	},
	{
		name:           "InvalidMode",
		queryParams:    map[string]string{"q": "Herzl", "mode": "fuzzy"},
		expectedStatus: http.StatusBadRequest,
		expectedResponse: map[string]any{
			"data":   nil,
			"errors": []any{"invalid mode, expected one of free, accurate, phrase"},
		},
	},
	{
		name:           "QueryTooLong",
		queryParams:    map[string]string{"q": strings.Repeat("a", 1001), "mode": "free"},
		expectedStatus: http.StatusBadRequest,
	},
}

func TestHandleSearchValidation(t *testing.T) {
	assert := require.New(t)
	server := setupTestServer(t, assert)

	for _, testCase := range searchHandlerValidationTestCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert := require.New(t)
			w := makeTestHTTPRequest(server.router, assert, http.MethodGet, "/search", testCase.requestHeaders, nil, testCase.queryParams)
			responseBytes := w.Body.Bytes()
			assert.Equal(testCase.expectedStatus, w.Code, fmt.Sprintf("response gotten was %s", string(responseBytes)))

			if testCase.expectedResponse != nil {
				var responseMap map[string]any
				err := json.Unmarshal(responseBytes, &responseMap)
				assert.NoError(err)
				assert.Equal(testCase.expectedResponse, responseMap)
			}
		})
	}
}

func TestHandleSearch(t *testing.T) {
	assert := require.New(t)
	server := setupTestServer(t, assert)
	loadTestCSV(t, assert, server)

	testCases := []struct {
		name     string
		query    string
		mode     string
		expected []string
	}{
		{name: "FreeMatchesMainName", query: "Herzl", mode: "free", expected: []string{"Herzl"}},
		{name: "FreeCaseInsensitive", query: "HERZL", mode: "free", expected: []string{"Herzl"}},
		{name: "FreeHebrew", query: "הרצל", mode: "free", expected: []string{"הרצל"}},
		{name: "FreeOnlySearchesMainName", query: "12345", mode: "free", expected: []string{}},
		{name: "AccurateMatchesCode", query: "12345", mode: "accurate", expected: []string{"Rothschild"}},
		{name: "AccurateMatchesAnyField", query: "Zeev", mode: "accurate", expected: []string{"Herzl", "Jabotinsky"}},
		{name: "PhraseInOrder", query: "King George", mode: "phrase", expected: []string{"King George Street"}},
		{name: "PhraseOutOfOrder", query: "George King", mode: "phrase", expected: []string{}},
		{name: "NoResults", query: "nonexistent", mode: "accurate", expected: []string{}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert := require.New(t)
			records := searchRecords(server, assert, testCase.query, testCase.mode)
			assert.ElementsMatch(testCase.expected, mainNames(records))
			for _, record := range records {
				assert.NotEmpty(record.ID, "results should include the document id")
				assert.False(record.IsDeleted)
			}
		})
	}
}

func TestHandleSearchEmptyResultIsArray(t *testing.T) {
	assert := require.New(t)
	server := setupTestServer(t, assert)

	w := makeTestHTTPRequest(server.router, assert, http.MethodGet, "/search", nil, nil, map[string]string{"q": "Herzl", "mode": "free"})
	assert.Equal(http.StatusOK, w.Code)
	assert.JSONEq(`[]`, w.Body.String())
}

func TestHandleSearchPageSize(t *testing.T) {
	assert := require.New(t)
	server := setupTestServer(t, assert)

	rows := make([]string, 0, 10)
	for i := range 10 {
		rows = append(rows, fmt.Sprintf("Street %d,,,,,street,%d,Center\n", i, i))
	}
	path := writeTestCSV(t, assert, rows)
	w := makeTestHTTPRequest(server.router, assert, http.MethodPost, "/load-csv", defaultTestRequestHeaders, map[string]any{"filePath": path}, nil)
	assert.Equal(http.StatusOK, w.Code)

	records := searchRecords(server, assert, "street", "accurate")
	assert.Len(records, 6, "search results should be capped at the default page size")
}
