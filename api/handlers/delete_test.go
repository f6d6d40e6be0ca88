package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHandleDelete(t *testing.T) {
	assert := require.New(t)
	server := setupTestServer(t, assert)
	loadTestCSV(t, assert, server)

	results := searchRecords(server, assert, "Herzl", "phrase")
	assert.Len(results, 1)
	id := results[0].ID

	for _, name := range []string{"FirstDelete", "SecondDeleteIsNoOp"} {
		t.Run(name, func(t *testing.T) {
			assert := require.New(t)
			w := makeTestHTTPRequest(server.router, assert, http.MethodPatch, "/delete/"+id, nil, nil, nil)
			assert.Equal(http.StatusOK, w.Code, "response gotten was %s", w.Body.String())

			var responseMap map[string]any
			assert.NoError(json.Unmarshal(w.Body.Bytes(), &responseMap))
			assert.Equal(map[string]any{"id": id, "message": "Document marked as deleted"}, responseMap["data"])
		})
	}

	for _, mode := range []string{"free", "accurate", "phrase"} {
		assert.NotContains(mainNames(searchRecords(server, assert, "Herzl", mode)), "Herzl", "deleted record returned for mode %s", mode)
	}

	// Other records are untouched and the deleted one is still stored.
	assert.Equal([]string{"Jabotinsky"}, mainNames(searchRecords(server, assert, "Zeev", "accurate")))
	count, err := server.searchDB.GetDocCount(context.Background())
	assert.NoError(err)
	assert.Equal(uint64(len(testCSVRows)), count)
}

func TestHandleDeleteNotFound(t *testing.T) {
	assert := require.New(t)
	server := setupTestServer(t, assert)

	w := makeTestHTTPRequest(server.router, assert, http.MethodPatch, "/delete/does-not-exist", nil, nil, nil)
	assert.Equal(http.StatusNotFound, w.Code, "response gotten was %s", w.Body.String())
}
