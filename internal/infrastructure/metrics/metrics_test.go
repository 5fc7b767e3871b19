package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Counters(t *testing.T) {
	c := NewCollector()

	c.TemplateMatched("pasta")
	c.TemplateMatched("pasta")
	c.NormalizerCall("dictionary", "ok")
	c.ObserveSuggestions("ok", 3)
	c.ObserveSuggestions("error", 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.templateMatches.WithLabelValues("pasta")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.normalizerCalls.WithLabelValues("dictionary", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.suggestionRequests.WithLabelValues("error")))
}

func TestCollector_NilSafe(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.TemplateMatched("curry")
		c.NormalizerCall("cache", "hit")
		c.ObserveSuggestions("ok", 1)
		c.ObservePantryBuild(0)
	})
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector()
	c.TemplateMatched("omelet")

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `noshnurture_template_matches_total{template="omelet"} 1`)
}
