package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecomweb/catalog-api/app/config"
	"github.com/ecomweb/catalog-api/app/database"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestServer(t *testing.T, rl config.RateLimitConfig) *httptest.Server {
	t.Helper()
	cfg := config.DatabaseConfig{
		Driver:       database.DriverSQLite,
		DSN:          filepath.Join(t.TempDir(), "catalog.db") + "?_pragma=foreign_keys(1)",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}
	db, err := database.New(context.Background(), cfg, discard)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })
	require.NoError(t, database.Migrate(context.Background(), db))

	srv := httptest.NewServer(NewRouter(db, discard, rl))
	t.Cleanup(srv.Close)
	return srv
}

type response struct {
	status int
	header http.Header
	body   string
}

func do(t *testing.T, srv *httptest.Server, method, path, contentType, body string) response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return response{status: resp.StatusCode, header: resp.Header, body: string(raw)}
}

func doJSON(t *testing.T, srv *httptest.Server, method, path, body string) response {
	t.Helper()
	return do(t, srv, method, path, "application/json", body)
}

func TestCategoryScenarios(t *testing.T) {
	srv := newTestServer(t, config.RateLimitConfig{})

	resp := doJSON(t, srv, http.MethodPost, "/api/CategoryAPI", `{"Name":"Fiction","DisplayOrder":1}`)
	require.Equal(t, http.StatusCreated, resp.status)
	assert.JSONEq(t, `{"Id":1,"Name":"Fiction","DisplayOrder":1}`, resp.body)
	assert.Equal(t, "/api/CategoryAPI/1", resp.header.Get("Location"))

	resp = doJSON(t, srv, http.MethodPost, "/api/CategoryAPI", `{"Name":"fiction","DisplayOrder":2}`)
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.JSONEq(t, `{"CustomerError":["Category already Exists!"]}`, resp.body)

	resp = doJSON(t, srv, http.MethodPost, "/api/CategoryAPI", `{"Name":"Science","DisplayOrder":1}`)
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.JSONEq(t, `{"DuplicateError":["Display Order already Exists!"]}`, resp.body)

	resp = doJSON(t, srv, http.MethodPut, "/api/CategoryAPI/1", `{"Id":2,"Name":"X","DisplayOrder":3}`)
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.Empty(t, resp.body)

	resp = do(t, srv, http.MethodPatch, "/api/CategoryAPI/1", "application/json-patch+json",
		`[{"op":"replace","path":"/DisplayOrder","value":5}]`)
	assert.Equal(t, http.StatusNoContent, resp.status)

	resp = doJSON(t, srv, http.MethodGet, "/api/CategoryAPI/1", "")
	require.Equal(t, http.StatusOK, resp.status)
	assert.JSONEq(t, `{"Id":1,"Name":"Fiction","DisplayOrder":5}`, resp.body)
}

func TestProductScenarios(t *testing.T) {
	srv := newTestServer(t, config.RateLimitConfig{})

	resp := doJSON(t, srv, http.MethodPost, "/api/ProductAPI", `{"Title":"Dune","ISBN":"X","Author":"FH","Price":20,"CategoryId":99}`)
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.JSONEq(t, `{"InvalidError":["Category ID is Invalid!"]}`, resp.body)

	resp = doJSON(t, srv, http.MethodPost, "/api/CategoryAPI", `{"Name":"SciFi","DisplayOrder":3}`)
	require.Equal(t, http.StatusCreated, resp.status)

	resp = doJSON(t, srv, http.MethodPost, "/api/ProductAPI",
		`{"Title":"Dune","Description":"Desert planet","ISBN":"978-0441013593","Author":"Frank Herbert","Price":19.99,"CategoryId":1,"ImageUrl":"/img/dune.jpg"}`)
	require.Equal(t, http.StatusCreated, resp.status)
	assert.Equal(t, "/api/ProductAPI/1", resp.header.Get("Location"))

	resp = doJSON(t, srv, http.MethodGet, "/api/ProductAPI/1", "")
	require.Equal(t, http.StatusOK, resp.status)
	assert.JSONEq(t, `{
		"Id":1,"Title":"Dune","Description":"Desert planet","ISBN":"978-0441013593",
		"Author":"Frank Herbert","Price":19.99,"CategoryId":1,"ImageUrl":"/img/dune.jpg",
		"Category":{"Id":1,"Name":"SciFi","DisplayOrder":3}
	}`, resp.body)

	resp = doJSON(t, srv, http.MethodPost, "/api/ProductAPI", `{"Title":"DUNE","ISBN":"X","Author":"FH","Price":20,"CategoryId":1}`)
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.JSONEq(t, `{"CustomerError":["Product already Exists!"]}`, resp.body)

	resp = do(t, srv, http.MethodPatch, "/api/ProductAPI/1", "application/json-patch+json",
		`[{"op":"replace","path":"/CategoryId","value":42}]`)
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.JSONEq(t, `{"InvalidError":["Category ID is Invalid!"]}`, resp.body)

	resp = do(t, srv, http.MethodPatch, "/api/ProductAPI/1", "application/merge-patch+json", `{"Price":25.5}`)
	assert.Equal(t, http.StatusNoContent, resp.status)

	resp = doJSON(t, srv, http.MethodGet, "/api/ProductAPI/1", "")
	var product struct {
		Price      float64
		CategoryID uint `json:"CategoryId"`
	}
	require.NoError(t, json.Unmarshal([]byte(resp.body), &product))
	assert.Equal(t, 25.5, product.Price)
	assert.Equal(t, uint(1), product.CategoryID)

	resp = doJSON(t, srv, http.MethodDelete, "/api/CategoryAPI/1", "")
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.JSONEq(t, `{"ReferenceError":["Category is in use by existing products!"]}`, resp.body)

	resp = doJSON(t, srv, http.MethodDelete, "/api/ProductAPI/1", "")
	assert.Equal(t, http.StatusNoContent, resp.status)
	resp = doJSON(t, srv, http.MethodDelete, "/api/CategoryAPI/1", "")
	assert.Equal(t, http.StatusNoContent, resp.status)
}

func TestCreateThenGetReturnsCreatedFields(t *testing.T) {
	srv := newTestServer(t, config.RateLimitConfig{})

	resp := doJSON(t, srv, http.MethodPost, "/api/CategoryAPI", `{"Name":"History","DisplayOrder":40}`)
	require.Equal(t, http.StatusCreated, resp.status)
	var created struct {
		ID uint `json:"Id"`
	}
	require.NoError(t, json.Unmarshal([]byte(resp.body), &created))
	assert.Greater(t, created.ID, uint(0))

	resp = doJSON(t, srv, http.MethodGet, resp.header.Get("Location"), "")
	require.Equal(t, http.StatusOK, resp.status)
	var got struct {
		Name         string
		DisplayOrder int
	}
	require.NoError(t, json.Unmarshal([]byte(resp.body), &got))
	assert.Equal(t, "History", got.Name)
	assert.Equal(t, 40, got.DisplayOrder)
}

func TestDeleteAndList(t *testing.T) {
	srv := newTestServer(t, config.RateLimitConfig{})

	for _, body := range []string{
		`{"Name":"One","DisplayOrder":1}`,
		`{"Name":"Two","DisplayOrder":2}`,
		`{"Name":"Three","DisplayOrder":3}`,
	} {
		require.Equal(t, http.StatusCreated, doJSON(t, srv, http.MethodPost, "/api/CategoryAPI", body).status)
	}

	assert.Equal(t, http.StatusNotFound, doJSON(t, srv, http.MethodDelete, "/api/CategoryAPI/9", "").status)
	assert.Equal(t, http.StatusNoContent, doJSON(t, srv, http.MethodDelete, "/api/CategoryAPI/2", "").status)
	assert.Equal(t, http.StatusNotFound, doJSON(t, srv, http.MethodGet, "/api/CategoryAPI/2", "").status)

	resp := doJSON(t, srv, http.MethodGet, "/api/CategoryAPI", "")
	require.Equal(t, http.StatusOK, resp.status)
	assert.JSONEq(t, `[{"Id":1,"Name":"One","DisplayOrder":1},{"Id":3,"Name":"Three","DisplayOrder":3}]`, resp.body)
}

func TestPatchRangeViolationIsReported(t *testing.T) {
	srv := newTestServer(t, config.RateLimitConfig{})
	require.Equal(t, http.StatusCreated, doJSON(t, srv, http.MethodPost, "/api/CategoryAPI", `{"Name":"Art","DisplayOrder":7}`).status)

	resp := do(t, srv, http.MethodPatch, "/api/CategoryAPI/1", "application/json-patch+json",
		`[{"op":"replace","path":"/DisplayOrder","value":0}]`)
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.JSONEq(t, `{"DisplayOrder":["Display Order must be between 1-100"]}`, resp.body)

	resp = doJSON(t, srv, http.MethodGet, "/api/CategoryAPI/1", "")
	assert.JSONEq(t, `{"Id":1,"Name":"Art","DisplayOrder":7}`, resp.body)
}

func TestStoreConstraintsBackThePrechecks(t *testing.T) {
	srv := newTestServer(t, config.RateLimitConfig{})
	require.Equal(t, http.StatusCreated, doJSON(t, srv, http.MethodPost, "/api/CategoryAPI", `{"Name":"Art","DisplayOrder":1}`).status)
	require.Equal(t, http.StatusCreated, doJSON(t, srv, http.MethodPost, "/api/CategoryAPI", `{"Name":"Music","DisplayOrder":2}`).status)

	// PUT skips the pre-checks, so these reach the unique indexes.
	resp := doJSON(t, srv, http.MethodPut, "/api/CategoryAPI/2", `{"Id":2,"Name":"Music","DisplayOrder":1}`)
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.JSONEq(t, `{"DuplicateError":["Display Order already Exists!"]}`, resp.body)

	resp = doJSON(t, srv, http.MethodPut, "/api/CategoryAPI/2", `{"Id":2,"Name":"ART","DisplayOrder":2}`)
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.JSONEq(t, `{"CustomerError":["Category already Exists!"]}`, resp.body)
}

func TestRoutingEdges(t *testing.T) {
	srv := newTestServer(t, config.RateLimitConfig{})

	testCases := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{name: "Health", method: http.MethodGet, path: "/healthz", expectedStatus: http.StatusOK},
		{name: "Non numeric id", method: http.MethodGet, path: "/api/CategoryAPI/abc", expectedStatus: http.StatusNotFound},
		{name: "Zero id", method: http.MethodGet, path: "/api/ProductAPI/0", expectedStatus: http.StatusBadRequest},
		{name: "Unknown route", method: http.MethodGet, path: "/api/Nope", expectedStatus: http.StatusNotFound},
		{name: "Method not allowed", method: http.MethodPost, path: "/api/CategoryAPI/1", expectedStatus: http.StatusMethodNotAllowed},
		{name: "Empty list", method: http.MethodGet, path: "/api/ProductAPI", expectedStatus: http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doJSON(t, srv, tc.method, tc.path, "")
			assert.Equal(t, tc.expectedStatus, resp.status)
			assert.NotEmpty(t, resp.header.Get(RequestIDHeader))
		})
	}
}

func TestCreatedPriceMatchesStoredPrice(t *testing.T) {
	srv := newTestServer(t, config.RateLimitConfig{})
	require.Equal(t, http.StatusCreated, doJSON(t, srv, http.MethodPost, "/api/CategoryAPI", `{"Name":"SciFi","DisplayOrder":1}`).status)

	created := doJSON(t, srv, http.MethodPost, "/api/ProductAPI", `{"Title":"Dune","ISBN":"X","Author":"FH","Price":19.999,"CategoryId":1}`)
	require.Equal(t, http.StatusCreated, created.status)
	fetched := doJSON(t, srv, http.MethodGet, created.header.Get("Location"), "")
	require.Equal(t, http.StatusOK, fetched.status)

	var posted, stored struct{ Price float64 }
	require.NoError(t, json.Unmarshal([]byte(created.body), &posted))
	require.NoError(t, json.Unmarshal([]byte(fetched.body), &stored))
	assert.Equal(t, 20.0, posted.Price)
	assert.Equal(t, posted.Price, stored.Price)
}
