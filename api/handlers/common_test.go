// Common test helpers
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/meghashyamc/streetsearch/config"
	"github.com/meghashyamc/streetsearch/db/searchdb"
	"github.com/meghashyamc/streetsearch/logger"
	"github.com/meghashyamc/streetsearch/validation"
	"github.com/stretchr/testify/require"
)

var defaultTestRequestHeaders = map[string]string{"Content-Type": "application/json"}

const testCSVHeader = "שם ראשי,תואר,שם משני,קבוצה,קבוצה נוספת,סוג,קוד,שכונה\n"

var testCSVRows = []string{
	"Herzl,,Binyamin Zeev,leaders,,street,100,Center\n",
	"King George Street,,,kings,,street,200,Center\n",
	"Rothschild,,,,,boulevard,12345,Lev Hair\n",
	"הרצל,,,אישים,,רחוב,300,מרכז\n",
	"Jabotinsky,,Zeev,leaders,,street,400,North\n",
}

type testCase struct {
	name             string
	requestHeaders   map[string]string
	requestBody      map[string]any
	queryParams      map[string]string
	expectedStatus   int
	expectedResponse any
}

type testServer struct {
	router   *gin.Engine
	searchDB searchdb.DB
}

func newTestLogger() logger.Logger {
	return logger.NewWithWriter(io.Discard, "debug")
}

func setupTestServer(t *testing.T, assert *require.Assertions) *testServer {

	t.Setenv("ENV", "test")
	t.Setenv("ENGINE", config.EngineBleve)
	t.Setenv("STORAGE_PATH", t.TempDir())

	cfg, err := config.Load("")
	assert.NoError(err, "could not load config")

	testLogger := newTestLogger()

	searchDB, err := searchdb.Open(context.Background(), testLogger, cfg)
	assert.NoError(err, "could not create search database")
	t.Cleanup(func() {
		assert.NoError(searchDB.Close(), "could not close search database")
	})

	validator, err := validation.New(testLogger)
	assert.NoError(err, "could not create validator")

	gin.SetMode(gin.TestMode)
	router := gin.New()

	SetupSearch(router, testLogger, searchDB, validator, cfg.GetSearchPageSize())
	SetupDelete(router, testLogger, searchDB)
	SetupLoad(router, testLogger, searchDB, validator)

	return &testServer{router: router, searchDB: searchDB}
}

func writeTestCSV(t *testing.T, assert *require.Assertions, rows []string) string {
	content := testCSVHeader
	for _, row := range rows {
		content += row
	}
	path := filepath.Join(t.TempDir(), "streets.csv")
	assert.NoError(os.WriteFile(path, []byte(content), 0644), "could not write test csv")
	return path
}

// loadTestCSV loads testCSVRows through the API and fails the test if that does not succeed.
func loadTestCSV(t *testing.T, assert *require.Assertions, server *testServer) {
	path := writeTestCSV(t, assert, testCSVRows)
	w := makeTestHTTPRequest(server.router, assert, http.MethodPost, "/load-csv", defaultTestRequestHeaders, map[string]any{"filePath": path}, nil)
	assert.Equal(http.StatusOK, w.Code, "loading the test csv should succeed, got %s", w.Body.String())
}

func makeTestHTTPRequest(router *gin.Engine, assert *require.Assertions, method string, endpoint string, headers map[string]string, requestBodyMap map[string]interface{}, queryParams map[string]string) *httptest.ResponseRecorder {

	var err error
	w := httptest.NewRecorder()

	if len(queryParams) > 0 {
		values := url.Values{}
		for key, value := range queryParams {
			values.Set(key, value)
		}
		endpoint = endpoint + "?" + values.Encode()
	}
	var jsonBody []byte
	var req *http.Request
	if requestBodyMap != nil {
		jsonBody, err = json.Marshal(requestBodyMap)
		assert.NoError(err)
	}

	if len(jsonBody) > 0 {
		req, err = http.NewRequest(method, endpoint, bytes.NewBuffer(jsonBody))
	} else {
		req, err = http.NewRequest(method, endpoint, nil)
	}
	assert.NoError(err)

	for key, value := range headers {
		req.Header.Set(key, value)
	}
	router.ServeHTTP(w, req)

	return w
}

func searchRecords(server *testServer, assert *require.Assertions, query string, mode string) []searchdb.Record {
	w := makeTestHTTPRequest(server.router, assert, http.MethodGet, "/search", nil, nil, map[string]string{"q": query, "mode": mode})
	assert.Equal(http.StatusOK, w.Code, "search should succeed, got %s", w.Body.String())

	var records []searchdb.Record
	assert.NoError(json.Unmarshal(w.Body.Bytes(), &records))
	return records
}

func mainNames(records []searchdb.Record) []string {
	names := make([]string, 0, len(records))
	for _, record := range records {
		names = append(names, record.MainName)
	}
	return names
}
