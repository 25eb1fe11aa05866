package store

import (
	"context"
	"testing"

	"github.com/namu-1002/stock-backend/pkg/core/kakao"
)

func TestReportCacheFileRoundTrip(t *testing.T) {
	cache := NewReportCache(nil, t.TempDir())
	ctx := context.Background()

	resp := kakao.BuildNoDataResponse("000001")

	if cache.Exists(ctx, "000001", "2025-01-02") {
		t.Error("expected miss before save")
	}
	if got, err := cache.Get(ctx, "000001", "2025-01-02"); err != nil || got != nil {
		t.Errorf("expected nil,nil on miss, got %+v, %v", got, err)
	}

	if err := cache.Save(ctx, "000001", "2025-01-02", resp); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if !cache.Exists(ctx, "000001", "2025-01-02") {
		t.Error("expected hit after save")
	}
	got, err := cache.Get(ctx, "000001", "2025-01-02")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got == nil || got.Version != resp.Version || len(got.Template.Outputs) != len(resp.Template.Outputs) {
		t.Errorf("cached response does not match: %+v", got)
	}

	// Different date is a separate cache key.
	if cache.Exists(ctx, "000001", "2025-01-03") {
		t.Error("expected miss for a different trade date")
	}
}

func TestReportCacheOverwrite(t *testing.T) {
	cache := NewReportCache(nil, t.TempDir())
	ctx := context.Background()

	if err := cache.Save(ctx, "000001", "2025-01-02", kakao.BuildNoDataResponse("첫번째")); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if err := cache.Save(ctx, "000001", "2025-01-02", kakao.BuildErrorResponse()); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	got, err := cache.Get(ctx, "000001", "2025-01-02")
	if err != nil || got == nil {
		t.Fatalf("get failed: %v", err)
	}
	// Last write wins.
	text := got.Template.Outputs[0].SimpleText
	if text == nil || text.Text == "" {
		t.Fatal("expected a text output")
	}
	if want := kakao.BuildErrorResponse().Template.Outputs[0].SimpleText.Text; text.Text != want {
		t.Errorf("expected the second payload, got %q", text.Text)
	}
}
