package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"floorboard/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(t *testing.T, v any) *http.Response {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewReader(data)),
		Header:     make(http.Header),
	}
}

func TestAnalyticsProviderFetchLeaderboard(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	p := NewAnalyticsProvider(trace.NewNoopTracerProvider().Tracer("test"), "http://example")
	p.now = func() time.Time { return fixed }
	p.client = &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			if req.URL.Path != "/get-leaderboard" {
				t.Fatalf("unexpected path: %s", req.URL.Path)
			}
			if got := req.URL.Query().Get("t"); got != "1714564800000" {
				t.Fatalf("cache buster t = %q", got)
			}
			if got := req.Header.Get("Cache-Control"); got != "no-store" {
				t.Fatalf("Cache-Control = %q", got)
			}
			return jsonResponse(t, []domain.LeaderboardRecord{
				{Slug: "webump", Rank: 1, FloorPrice: 42.5},
			}), nil
		}),
	}

	records, err := p.FetchLeaderboard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || records[0].Slug != "webump" {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestAnalyticsProviderFetchListed(t *testing.T) {
	t.Parallel()

	p := NewAnalyticsProvider(trace.NewNoopTracerProvider().Tracer("test"), "http://example")
	p.client = &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			if req.URL.Path != "/get-listed" {
				t.Fatalf("unexpected path: %s", req.URL.Path)
			}
			if got := req.URL.Query().Get("collectionSlug"); got != "webump" {
				t.Fatalf("collectionSlug = %q", got)
			}
			return jsonResponse(t, []domain.ListedNFT{
				{ID: "123", Price: 9.5, Slug: "webump"},
			}), nil
		}),
	}

	listed, err := p.FetchListed(context.Background(), "webump")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != "123" {
		t.Fatalf("unexpected listings: %+v", listed)
	}
}

func TestAnalyticsProviderFetchListedAllCollections(t *testing.T) {
	t.Parallel()

	p := NewAnalyticsProvider(trace.NewNoopTracerProvider().Tracer("test"), "http://example")
	p.client = &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			if req.URL.Query().Has("collectionSlug") {
				t.Fatal("empty slug must not send collectionSlug")
			}
			return jsonResponse(t, []domain.ListedNFT{}), nil
		}),
	}

	if _, err := p.FetchListed(context.Background(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAnalyticsProviderFetchChartSeries(t *testing.T) {
	t.Parallel()

	p := NewAnalyticsProvider(trace.NewNoopTracerProvider().Tracer("test"), "http://example")
	p.client = &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			if req.URL.Path != "/get-data" {
				t.Fatalf("unexpected path: %s", req.URL.Path)
			}
			if got := req.URL.Query().Get("collectionSlug"); got != "ghosty" {
				t.Fatalf("collectionSlug = %q", got)
			}
			return jsonResponse(t, []domain.ChartPoint{
				{Timestamp: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), Floor: 3.2},
			}), nil
		}),
	}

	points, err := p.FetchChartSeries(context.Background(), "ghosty")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 1 || points[0].Floor != 3.2 {
		t.Fatalf("unexpected points: %+v", points)
	}
}

func TestAnalyticsProviderServerError(t *testing.T) {
	t.Parallel()

	p := NewAnalyticsProvider(trace.NewNoopTracerProvider().Tracer("test"), "http://example")
	p.client = &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusInternalServerError,
				Body:       io.NopCloser(bytes.NewReader([]byte("boom"))),
				Header:     make(http.Header),
			}, nil
		}),
	}

	if _, err := p.FetchLeaderboard(context.Background()); err == nil {
		t.Fatal("expected error on 500")
	}
}

func TestAnalyticsProviderBadJSON(t *testing.T) {
	t.Parallel()

	p := NewAnalyticsProvider(trace.NewNoopTracerProvider().Tracer("test"), "http://example")
	p.client = &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewReader([]byte("<html>not json</html>"))),
				Header:     make(http.Header),
			}, nil
		}),
	}

	if _, err := p.FetchChartSeries(context.Background(), "webump"); err == nil {
		t.Fatal("expected error on malformed body")
	}
}
