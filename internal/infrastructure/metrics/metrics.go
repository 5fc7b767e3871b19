// Package metrics 提供推薦流程的 Prometheus 指標。
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "noshnurture"

// Collector 指標收集器
type Collector struct {
	registry *prometheus.Registry

	suggestionRequests  *prometheus.CounterVec
	suggestionsReturned prometheus.Histogram
	templateMatches     *prometheus.CounterVec
	normalizerCalls     *prometheus.CounterVec
	pantryBuildSeconds  prometheus.Histogram
}

// NewCollector 創建新的指標收集器，使用獨立的 registry
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		suggestionRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "suggestion_requests_total",
				Help:      "Recipe suggestion requests by outcome",
			},
			[]string{"status"},
		),
		suggestionsReturned: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "suggestions_returned",
				Help:      "Number of suggestions returned per request",
				Buckets:   prometheus.LinearBuckets(0, 1, 6),
			},
		),
		templateMatches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "template_matches_total",
				Help:      "Recipe templates that produced a candidate",
			},
			[]string{"template"},
		),
		normalizerCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "normalizer_calls_total",
				Help:      "Ingredient normalizer calls by source and result",
			},
			[]string{"source", "result"},
		),
		pantryBuildSeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "pantry_build_seconds",
				Help:      "Time spent building the pantry, normalizer calls included",
				Buckets:   prometheus.DefBuckets,
			},
		),
	}

	c.registry.MustRegister(
		c.suggestionRequests,
		c.suggestionsReturned,
		c.templateMatches,
		c.normalizerCalls,
		c.pantryBuildSeconds,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return c
}

// ObserveSuggestions 記錄一次推薦請求
func (c *Collector) ObserveSuggestions(status string, returned int) {
	if c == nil {
		return
	}
	c.suggestionRequests.WithLabelValues(status).Inc()
	if status == "ok" {
		c.suggestionsReturned.Observe(float64(returned))
	}
}

// TemplateMatched 記錄模板命中
func (c *Collector) TemplateMatched(template string) {
	if c == nil {
		return
	}
	c.templateMatches.WithLabelValues(template).Inc()
}

// NormalizerCall 記錄正規化調用，source 例如 dictionary/openrouter/cache
func (c *Collector) NormalizerCall(source, result string) {
	if c == nil {
		return
	}
	c.normalizerCalls.WithLabelValues(source, result).Inc()
}

// ObservePantryBuild 記錄建立食材庫耗時
func (c *Collector) ObservePantryBuild(d time.Duration) {
	if c == nil {
		return
	}
	c.pantryBuildSeconds.Observe(d.Seconds())
}

// Registry 返回底層 registry
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler 返回 /metrics 的 HTTP handler
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
