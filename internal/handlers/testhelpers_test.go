package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/apex-supplements/store-api/internal/auth"
	"github.com/apex-supplements/store-api/internal/metrics"
	"github.com/apex-supplements/store-api/internal/repository"
	"github.com/apex-supplements/store-api/pkg/logger"
)

const testToken = "APEX_SUPPLEMENTS_TOKEN_2025"

const testStoreJSON = `{
  "categories": [
    {"id": 1, "name": "Protein"},
    {"id": 2, "name": "Vitamins"}
  ],
  "products": [
    {"id": 1, "name": "Whey Protein 1kg", "price": 19.99, "category_id": 1, "featured": true},
    {"id": 2, "name": "Creatine 300g", "price": 24.50, "category_id": 1},
    {"id": 3, "name": "Vitamin D3", "price": 7.15, "category_id": 2}
  ]
}`

const testUsersJSON = `[
  {"username": "ana", "password": "1234", "name": "Ana García"},
  {"username": "luis", "password": "abcd"}
]`

type testServer struct {
	handler     http.Handler
	metrics     *metrics.Metrics
	catalogPath string
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	dir := t.TempDir()
	catalogPath := writeFile(t, dir, "store.json", testStoreJSON)
	usersPath := writeFile(t, dir, "users.json", testUsersJSON)

	m := metrics.New(prometheus.NewRegistry())
	h := NewRouter(RouterDeps{
		Catalog: repository.NewFileCatalogRepository(catalogPath),
		Users:   repository.NewFileUserRepository(usersPath),
		Token:   auth.NewStaticToken(testToken),
		Metrics: m,
		Log:     logger.New("error"),
	})
	return &testServer{handler: h, metrics: m, catalogPath: catalogPath}
}

func (s *testServer) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("failed to marshal request: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return out
}
