package solrgeo

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func newMemoryClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	c, err := New(context.Background(), append([]Option{WithMemory()}, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func TestNew_NoStore(t *testing.T) {
	_, err := New(context.Background())
	if err == nil {
		t.Fatal("expected error when no store configured")
	}
}

func TestNew_UnknownDriver(t *testing.T) {
	cfg := &clientConfig{driver: "unknown", addrs: []string{"localhost:1234"}}
	_, err := createStore(cfg)
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestNew_InvalidDatatype(t *testing.T) {
	_, err := New(context.Background(), WithMemory(), WithDatatype("ezgmaplocation", "hologram"))
	if err == nil {
		t.Fatal("expected error for unknown field type")
	}
}

func TestClientOptions(t *testing.T) {
	cfg := &clientConfig{}

	WithValkey("localhost:6379", "secret").apply(cfg)
	if cfg.driver != "valkey" {
		t.Errorf("driver = %q, want valkey", cfg.driver)
	}
	if cfg.addrs[0] != "localhost:6379" {
		t.Errorf("addr = %q, want localhost:6379", cfg.addrs[0])
	}
	if cfg.password != "secret" {
		t.Errorf("password = %q, want secret", cfg.password)
	}

	cfg2 := &clientConfig{}
	WithRedis("localhost:6380", "pass").apply(cfg2)
	if cfg2.driver != "redis" {
		t.Errorf("driver = %q, want redis", cfg2.driver)
	}

	cfg3 := &clientConfig{}
	WithMemory().apply(cfg3)
	WithKeyPrefix("cms:").apply(cfg3)
	WithDatatype("ezcustomgeo", "geopoint").apply(cfg3)
	WithFallbackFieldType("string").apply(cfg3)
	WithRejectOnFilterError().apply(cfg3)
	if cfg3.driver != "memory" || cfg3.keyPrefix != "cms:" || cfg3.fallback != "string" || !cfg3.reject {
		t.Errorf("cfg = %+v", cfg3)
	}
	if cfg3.datatypes["ezcustomgeo"] != "geopoint" {
		t.Errorf("datatypes = %v", cfg3.datatypes)
	}

	cfg4 := &clientConfig{}
	logger := zap.NewNop()
	WithLogger(logger).apply(cfg4)
	if cfg4.logger != logger {
		t.Error("expected logger to be set")
	}

	cfg5 := &clientConfig{}
	reg := prometheus.NewRegistry()
	WithPrometheus(reg).apply(cfg5)
	if cfg5.metricsReg != reg {
		t.Error("expected metricsReg to be set")
	}
}

func TestClient_Close_NilStore(t *testing.T) {
	c := &Client{store: nil}
	c.Close()
}

func TestClient_EndToEnd(t *testing.T) {
	ctx := context.Background()
	c := newMemoryClient(t)

	attr, created, err := c.Attributes().Upsert(ctx, "article", "location", "ezgmaplocation")
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if !created || attr.FieldName != "attr_location_gpt" || attr.LogicalID() != "article/location" {
		t.Errorf("attr = %+v, created = %v", attr, created)
	}

	res, err := c.Query().
		Sort("score desc").
		Near("article/location", 46.75984, 1.738281).
		Within(1).
		Do(ctx)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if res.Params["pt"] != "1.738281,46.75984" {
		t.Errorf("pt = %q", res.Params["pt"])
	}
	if res.Params["sort"] != "geodist() asc,score desc" {
		t.Errorf("sort = %q", res.Params["sort"])
	}
	if res.Params["d"] != "1" {
		t.Errorf("d = %q", res.Params["d"])
	}
	if len(res.FilterQueries) != 1 || res.FilterQueries[0] != "{!geofilt sfield=attr_location_gpt}" {
		t.Errorf("fq = %v", res.FilterQueries)
	}
	if res.Values.Get("sfield") != "attr_location_gpt" {
		t.Errorf("values sfield = %q", res.Values.Get("sfield"))
	}
	if !strings.Contains(res.QueryString, "sfield=attr_location_gpt") {
		t.Errorf("query string = %q", res.QueryString)
	}

	name, err := c.ResolveField(ctx, "published")
	if err != nil || name != "meta_published_dt" {
		t.Errorf("ResolveField(published) = %q, %v", name, err)
	}

	if ids := c.Filters(); len(ids) != 1 || ids[0] != "geodist" {
		t.Errorf("filters = %v", ids)
	}
	if err := c.Ping(ctx); err != nil {
		t.Errorf("ping: %v", err)
	}
	if h := c.Health(ctx); h.Status != "ok" {
		t.Errorf("health = %+v", h)
	}
}

func TestClient_WarnAndReject(t *testing.T) {
	ctx := context.Background()
	q := Query{Filters: []FilterSpec{Geodist("article/unknown", "1", "2")}}

	warn := newMemoryClient(t)
	res, err := warn.Build(ctx, q)
	if err != nil {
		t.Fatalf("warn mode: %v", err)
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Filter != "geodist" {
		t.Errorf("warnings = %v", res.Warnings)
	}
	if _, ok := res.Params["sfield"]; ok {
		t.Error("sfield must not be set after a failed filter")
	}

	reject := newMemoryClient(t, WithRejectOnFilterError())
	_, err = reject.Build(ctx, q)
	if !errors.Is(err, ErrFilterRejected) || !errors.Is(err, ErrFieldResolution) {
		t.Fatalf("reject mode err = %v", err)
	}
}

func TestClient_InvalidQuery(t *testing.T) {
	c := newMemoryClient(t)
	if _, err := c.Build(context.Background(), Query{Rows: -1}); err == nil {
		t.Fatal("expected error for negative rows")
	}
}

func TestClient_FilterMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := newMemoryClient(t, WithPrometheus(reg))
	ctx := context.Background()
	if _, _, err := c.Attributes().Upsert(ctx, "article", "location", "ezgmaplocation"); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := c.Query().Near("article/location", 1, 2).Do(ctx); err != nil {
		t.Fatalf("build: %v", err)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "solrgeo_sdk_filter_applications_total" {
			found = true
		}
	}
	if !found {
		t.Error("solrgeo_sdk_filter_applications_total not found")
	}
}

func TestObserver_NilSafe(t *testing.T) {
	var obs *observer
	obs.observe("test", time.Now(), nil)
	obs.observe("test", time.Now(), errors.New("err"))
	if obs.filterCounter() != nil {
		t.Error("expected nil counter")
	}
	if obs.zapLogger() == nil {
		t.Error("expected nop logger")
	}
}

func TestObserver_WithPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}

	obs.observe("build", time.Now().Add(-10*time.Millisecond), nil)
	obs.observe("build", time.Now(), errors.New("fail"))

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	found := false
	for _, f := range families {
		if f.GetName() == "solrgeo_sdk_operations_total" {
			found = true
			if len(f.GetMetric()) != 2 {
				t.Errorf("expected 2 metric samples, got %d", len(f.GetMetric()))
			}
		}
	}
	if !found {
		t.Error("solrgeo_sdk_operations_total not found")
	}

	// A second observer on the same registry reuses the collectors.
	if _, err := newObserver(nil, reg); err != nil {
		t.Fatalf("second newObserver: %v", err)
	}
}

func TestObserver_WithLogger(t *testing.T) {
	obs, err := newObserver(zap.NewNop(), nil)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}
	obs.observe("test.op", time.Now(), nil)
	obs.observe("test.op", time.Now(), errors.New("test error"))
}
