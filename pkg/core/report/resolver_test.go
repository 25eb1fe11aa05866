package report

import (
	"fmt"
	"testing"

	"github.com/namu-1002/stock-backend/pkg/core/calc"
	"github.com/namu-1002/stock-backend/pkg/core/filing"
	"github.com/namu-1002/stock-backend/pkg/core/market"
)

type fakeQuotes struct {
	listing      []market.ListingRow
	candles      map[string][]market.Candle
	fundamentals *calc.Metrics
	fundErr      error
}

func (f *fakeQuotes) Listing() ([]market.ListingRow, error) {
	return f.listing, nil
}

func (f *fakeQuotes) DailyCandles(code string, days int) ([]market.Candle, error) {
	return f.candles[code], nil
}

func (f *fakeQuotes) Fundamentals(code string) (*calc.Metrics, error) {
	return f.fundamentals, f.fundErr
}

// fakeFilings serves a fixed set of line items for every corp.
type fakeFilings struct {
	items []filing.LineItem
	err   error
}

func (f *fakeFilings) CorpCode(stockCode string) (string, error) {
	return "00000001", nil
}

func (f *fakeFilings) Statements(corpCode string, year int, reportCode, fsDiv string) ([]filing.LineItem, error) {
	return f.items, f.err
}

func fptr(v float64) *float64 { return &v }

func sampleFiling() []filing.LineItem {
	return []filing.LineItem{
		{Label: "당기순이익(손실)", Amount: "1,000"},
		{Label: "자본총계", Amount: "5,000"},
		{Label: "기본주당순이익(손실)", Amount: "100"},
	}
}

func TestResolvePrimaryWins(t *testing.T) {
	quotes := &fakeQuotes{fundamentals: &calc.Metrics{
		PER: fptr(12.3), PBR: fptr(1.1), ROE: fptr(8.5), EPS: fptr(5000), BPS: fptr(60000),
	}}
	resolver := NewMetricsResolver(quotes, filing.NewLoader(&fakeFilings{items: sampleFiling()}), filing.DefaultSynonyms())

	m, text := resolver.Resolve("005930", 70000)
	if m.PER == nil || *m.PER != 12.3 {
		t.Errorf("expected primary PER 12.3, got %v", m.PER)
	}
	if text != "" {
		t.Errorf("expected no filing text on the primary path, got %q", text)
	}
}

func TestResolveSingleFieldBlocksFallback(t *testing.T) {
	// One present field means the primary set is adopted whole; the filing
	// path must not fill in the four missing fields.
	quotes := &fakeQuotes{fundamentals: &calc.Metrics{BPS: fptr(60000)}}
	resolver := NewMetricsResolver(quotes, filing.NewLoader(&fakeFilings{items: sampleFiling()}), filing.DefaultSynonyms())

	m, _ := resolver.Resolve("005930", 70000)
	if m.BPS == nil || *m.BPS != 60000 {
		t.Errorf("expected primary BPS 60000, got %v", m.BPS)
	}
	if m.PER != nil || m.PBR != nil || m.ROE != nil || m.EPS != nil {
		t.Errorf("expected missing fields to stay absent, got %+v", m)
	}
}

func TestResolveFallback(t *testing.T) {
	quotes := &fakeQuotes{fundamentals: &calc.Metrics{}}
	resolver := NewMetricsResolver(quotes, filing.NewLoader(&fakeFilings{items: sampleFiling()}), filing.DefaultSynonyms())

	m, text := resolver.Resolve("005930", 70000)
	if m.PER == nil || *m.PER != 700 {
		t.Errorf("expected filing-derived PER 700, got %v", m.PER)
	}
	if m.BPS == nil || *m.BPS != 500 {
		t.Errorf("expected filing-derived BPS 500, got %v", m.BPS)
	}
	if text == "" {
		t.Error("expected financial text from the fallback path")
	}
}

func TestResolveFallbackSkippedWhenNotConfigured(t *testing.T) {
	quotes := &fakeQuotes{fundamentals: &calc.Metrics{}}
	resolver := NewMetricsResolver(quotes, filing.NewLoader(filing.NewNotConfigured()), filing.DefaultSynonyms())

	m, text := resolver.Resolve("005930", 70000)
	if m.HasAny() || text != "" {
		t.Errorf("expected empty result without a DART credential, got %+v %q", m, text)
	}
}

func TestResolveFallbackSkippedWithoutPrice(t *testing.T) {
	quotes := &fakeQuotes{fundamentals: &calc.Metrics{}}
	resolver := NewMetricsResolver(quotes, filing.NewLoader(&fakeFilings{items: sampleFiling()}), filing.DefaultSynonyms())

	if m, _ := resolver.Resolve("005930", 0); m.HasAny() {
		t.Errorf("expected no metrics without a current price, got %+v", m)
	}
}

func TestResolveDegradesOnFailure(t *testing.T) {
	// Both sources broken: the resolver answers with an all-absent set,
	// never an error.
	quotes := &fakeQuotes{fundErr: fmt.Errorf("provider down")}
	resolver := NewMetricsResolver(quotes, filing.NewLoader(&fakeFilings{err: fmt.Errorf("dart down")}), filing.DefaultSynonyms())

	m, text := resolver.Resolve("005930", 70000)
	if m.HasAny() || text != "" {
		t.Errorf("expected empty degradation, got %+v %q", m, text)
	}
}

func TestResolveKeepsTextWhenCalcFails(t *testing.T) {
	// Filing loads but the numbers are unusable (EPS row missing): no
	// metrics, but the financial text still flows into the report.
	brokenItems := []filing.LineItem{
		{Label: "당기순이익(손실)", Amount: "1,000"},
		{Label: "자본총계", Amount: "5,000"},
	}
	quotes := &fakeQuotes{fundamentals: &calc.Metrics{}}
	resolver := NewMetricsResolver(quotes, filing.NewLoader(&fakeFilings{items: brokenItems}), filing.DefaultSynonyms())

	m, text := resolver.Resolve("005930", 70000)
	if m.HasAny() {
		t.Errorf("expected no metrics, got %+v", m)
	}
	if text == "" {
		t.Error("expected financial text to survive a failed calculation")
	}
}
