package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"noshnurture/internal/api/middleware"
	"noshnurture/internal/core/cache"
	"noshnurture/internal/core/normalizer"
	"noshnurture/internal/core/pantry"
	"noshnurture/internal/core/recipe"
	"noshnurture/internal/infrastructure/config"
	"noshnurture/internal/infrastructure/metrics"
	"noshnurture/internal/infrastructure/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	router    *gin.Engine
	metrics   *metrics.Collector
	inventory *storage.SQLiteInventory
}

func newTestEnv(t *testing.T, mutate func(*Dependencies)) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	collector := metrics.NewCollector()

	store := cache.NewManager(cfg.Cache)
	t.Cleanup(func() { _ = store.Close() })

	inv, err := storage.NewSQLiteInventory(context.Background(), filepath.Join(t.TempDir(), "inventory.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = inv.Close() })

	norm := normalizer.NewService(normalizer.NewDictionary(cfg.Normalizer.FuzzyThreshold), nil, store, collector)
	builder := pantry.NewBuilder(norm, pantry.WithWorkers(cfg.Normalizer.Workers), pantry.WithMetrics(collector))

	deps := Dependencies{
		Config:      cfg,
		Suggestions: recipe.NewSuggestionService(builder, cfg.Suggestion.Limit, collector),
		Builder:     builder,
		Normalizer:  norm,
		Inventory:   inv,
		Cache:       store,
		Metrics:     collector,
	}
	if mutate != nil {
		mutate(&deps)
	}

	router, err := SetupRouter(deps)
	require.NoError(t, err)
	return &testEnv{router: router, metrics: collector, inventory: inv}
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

const scenario = `{"items":[
	{"product_name":"Tomato","days_until_expiry":2},
	{"product_name":"Onion","days_until_expiry":10},
	{"product_name":"Pasta","days_until_expiry":30}
]}`

type suggestionsBody struct {
	Suggestions []struct {
		ID           string   `json:"id"`
		Title        string   `json:"title"`
		Score        int      `json:"score"`
		TotalTime    int      `json:"totalTime"`
		Used         []string `json:"usedIngredients"`
		ExpiringUsed []string `json:"expiringUsed"`
	} `json:"suggestions"`
	Count int `json:"count"`
}

func TestSuggest(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(http.MethodPost, "/api/v1/recipes/suggest", scenario)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body suggestionsBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 5, body.Count)
	require.Len(t, body.Suggestions, 5)
	assert.Equal(t, "Simple Tomato Pasta", body.Suggestions[0].Title)
	assert.Equal(t, 5, body.Suggestions[0].Score)
	assert.Equal(t, []string{"tomato"}, body.Suggestions[0].ExpiringUsed)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestSuggest_EmptyItems(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(http.MethodPost, "/api/v1/recipes/suggest", `{"items":[]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"suggestions":[],"count":0}`, w.Body.String())
}

func TestSuggest_BadRequests(t *testing.T) {
	env := newTestEnv(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"items":`},
		{"missing items", `{}`},
		{"unknown prefer", `{"items":[],"prefer":"phonetic"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(http.MethodPost, "/api/v1/recipes/suggest", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "INVALID_REQUEST", resp["code"])
			assert.NotEmpty(t, resp["error"])
		})
	}
}

type brokenNormalizer struct{}

func (brokenNormalizer) Normalize(context.Context, string, normalizer.Options) (string, error) {
	return "", errors.New("upstream unavailable")
}

func TestSuggest_NormalizerFailure(t *testing.T) {
	env := newTestEnv(t, func(d *Dependencies) {
		d.Config.App.Debug = false
		b := pantry.NewBuilder(brokenNormalizer{})
		d.Builder = b
		d.Suggestions = recipe.NewSuggestionService(b, 5, d.Metrics)
	})

	w := env.do(http.MethodPost, "/api/v1/recipes/suggest", scenario)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "NORMALIZATION_FAILED")
	assert.NotContains(t, w.Body.String(), "upstream unavailable")
}

func TestPantry(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(http.MethodPost, "/api/v1/pantry", `{"items":[
		{"product_name":"Amul Fresh Milk 1L","days_until_expiry":1},
		{"product_name":"Old Bread","tags":["canonical:bread"],"days_until_expiry":-2},
		{"product_name":"1L","days_until_expiry":1}
	]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"available":["milk","bread"],"expiring":["milk"]}`, w.Body.String())
}

func TestNormalize(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(http.MethodPost, "/api/v1/ingredients/normalize", `{"name":"Capsicum (Green)"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"raw":"Capsicum (Green)","canonical":"bell pepper"}`, w.Body.String())

	// 未設定語意後端時退回詞彙表
	w = env.do(http.MethodPost, "/api/v1/ingredients/normalize", `{"name":"Aloo","prefer":"semantic"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"raw":"Aloo","canonical":"potato"}`, w.Body.String())

	w = env.do(http.MethodPost, "/api/v1/ingredients/normalize", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserInventoryAndSuggestions(t *testing.T) {
	env := newTestEnv(t, nil)

	for _, item := range []string{
		`{"product_name":"Eggs","days_until_expiry":1}`,
		`{"product_name":"Basmati Rice","days_until_expiry":200}`,
		`{"product_name":"Carrot","days_until_expiry":4}`,
	} {
		w := env.do(http.MethodPost, "/api/v1/users/u1/inventory", item)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp["id"])
	}

	w := env.do(http.MethodGet, "/api/v1/users/u1/suggestions", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body suggestionsBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Suggestions)
	require.GreaterOrEqual(t, len(body.Suggestions), 2)
	// 命中數、分數與時間都相同時保持模板順序
	assert.Equal(t, "Egg Stir-Fry", body.Suggestions[0].Title)
	assert.Equal(t, "Egg Fried Rice", body.Suggestions[1].Title)
	assert.Equal(t, []string{"rice", "carrot", "egg"}, body.Suggestions[1].Used)
	assert.Equal(t, 7, body.Suggestions[1].Score)

	w = env.do(http.MethodGet, "/api/v1/users/nobody/suggestions", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"suggestions":[],"count":0}`, w.Body.String())

	w = env.do(http.MethodPost, "/api/v1/users/u1/inventory", `{"product_name":"  "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserRoutes_WithoutInventory(t *testing.T) {
	env := newTestEnv(t, func(d *Dependencies) { d.Inventory = nil })

	w := env.do(http.MethodGet, "/api/v1/users/u1/suggestions", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "INVENTORY_UNAVAILABLE")
}

func TestDeduplication(t *testing.T) {
	dedup := middleware.NewDeduplicator(time.Minute)
	defer dedup.Stop()
	env := newTestEnv(t, func(d *Dependencies) { d.Dedup = dedup })

	assert.Equal(t, http.StatusOK, env.do(http.MethodPost, "/api/v1/pantry", scenario).Code)
	w := env.do(http.MethodPost, "/api/v1/pantry", scenario)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "TOO_MANY_REQUESTS")
}

func TestDeduplication_SeparatesClients(t *testing.T) {
	dedup := middleware.NewDeduplicator(time.Minute)
	defer dedup.Stop()
	env := newTestEnv(t, func(d *Dependencies) { d.Dedup = dedup })

	suggestFrom := func(remoteAddr string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/recipes/suggest", strings.NewReader(scenario))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = remoteAddr
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, suggestFrom("10.0.0.1:1000"))
	assert.Equal(t, http.StatusOK, suggestFrom("10.0.0.2:1000"))
}

func TestDeduplication_InventoryAllowsRepeatedItems(t *testing.T) {
	dedup := middleware.NewDeduplicator(time.Minute)
	defer dedup.Stop()
	env := newTestEnv(t, func(d *Dependencies) { d.Dedup = dedup })

	milk := `{"product_name":"Amul Milk","days_until_expiry":3}`
	for i := 0; i < 2; i++ {
		w := env.do(http.MethodPost, "/api/v1/users/u1/inventory", milk)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	records, err := env.inventory.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestUnknownRoutes(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(http.MethodGet, "/api/v1/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")

	w = env.do(http.MethodGet, "/api/v1/recipes/suggest", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, w.Body.String(), "METHOD_NOT_ALLOWED")
}

func TestHealthAndMetrics(t *testing.T) {
	env := newTestEnv(t, nil)

	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/live", "").Code)

	w := env.do(http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"inventory":"ok"`)

	require.Equal(t, http.StatusOK, env.do(http.MethodPost, "/api/v1/recipes/suggest", scenario).Code)

	w = env.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `noshnurture_suggestion_requests_total{status="ok"} 1`)
	assert.Contains(t, w.Body.String(), `noshnurture_template_matches_total{template="pasta"} 1`)
}

func TestSetupRouter_RequiresServices(t *testing.T) {
	_, err := SetupRouter(Dependencies{Config: config.Default()})
	assert.Error(t, err)

	_, err = SetupRouter(Dependencies{})
	assert.Error(t, err)
}
