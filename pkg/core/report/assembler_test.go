package report

import (
	"strings"
	"testing"

	"github.com/namu-1002/stock-backend/pkg/core/calc"
	"github.com/namu-1002/stock-backend/pkg/core/filing"
	"github.com/namu-1002/stock-backend/pkg/core/market"
)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func sampleSnapshot() *market.Snapshot {
	return &market.Snapshot{
		Ticker:        "005930",
		Name:          "삼성전자",
		CurrentPrice:  70000,
		MarketCap:     int64Ptr(400_000_000_000_000),
		MarketCapRank: intPtr(1),
		Return1M:      fptr(5.0),
		Return3M:      fptr(-2.5),
		Return1Y:      fptr(12.0),
		High52W:       88000,
		Low52W:        60000,
		FromHigh:      fptr(-20.45),
	}
}

func TestAssemble(t *testing.T) {
	metrics := calc.Metrics{PER: fptr(12.34), PBR: fptr(1.5), ROE: fptr(8.0)}

	rpt := Assemble(sampleSnapshot(), metrics, "")

	if rpt.ID == "" {
		t.Error("expected a generated report id")
	}
	if rpt.Ticker != "005930" || rpt.Name != "삼성전자" {
		t.Errorf("wrong instrument: %s %s", rpt.Ticker, rpt.Name)
	}
	if rpt.Report.Title != "삼성전자 투자 리포트" {
		t.Errorf("wrong title: %s", rpt.Report.Title)
	}
	if !rpt.Report.HasFinancials {
		t.Error("expected has_financials with metrics present")
	}

	s := rpt.Report.Sections
	if !strings.Contains(s.Summary, "70,000원") || !strings.Contains(s.Summary, "+12.00%") {
		t.Errorf("summary missing price or return: %s", s.Summary)
	}
	if !strings.Contains(s.PriceAnalysis, "+5.00%") ||
		!strings.Contains(s.PriceAnalysis, "-2.50%") ||
		!strings.Contains(s.PriceAnalysis, "88,000원") {
		t.Errorf("price analysis incomplete: %s", s.PriceAnalysis)
	}
	if !strings.Contains(s.Valuation, "PER은 12.34") || !strings.Contains(s.Valuation, "ROE는 8.0") {
		t.Errorf("valuation narrative incomplete: %s", s.Valuation)
	}

	if rpt.RawData.Basic.CurrentPrice != 70000 {
		t.Errorf("raw basic price wrong: %d", rpt.RawData.Basic.CurrentPrice)
	}
	if rpt.RawData.PriceTrend.High52W != 88000 || rpt.RawData.PriceTrend.Low52W != 60000 {
		t.Error("raw price trend range wrong")
	}
}

func TestAssembleAbsentValues(t *testing.T) {
	snap := &market.Snapshot{
		Ticker:       "000001",
		Name:         "갑회사",
		CurrentPrice: 1000,
		High52W:      1100,
		Low52W:       900,
	}

	rpt := Assemble(snap, calc.Metrics{}, "")

	if rpt.Report.HasFinancials {
		t.Error("expected has_financials false without metrics")
	}
	// Absent figures render as the explicit marker, never as blanks.
	if !strings.Contains(rpt.Report.Sections.Summary, "N/A") {
		t.Errorf("expected N/A in summary: %s", rpt.Report.Sections.Summary)
	}
	if !strings.Contains(rpt.Report.Sections.Valuation, "N/A") {
		t.Errorf("expected N/A in valuation: %s", rpt.Report.Sections.Valuation)
	}
}

func TestGenerateRawUnknownTicker(t *testing.T) {
	quotes := &fakeQuotes{listing: []market.ListingRow{{Code: "000001", Name: "갑회사", MarketCap: 100}}}
	svc := NewService(
		market.NewSnapshotService(quotes),
		NewMetricsResolver(quotes, filing.NewLoader(filing.NewNotConfigured()), filing.DefaultSynonyms()),
	)

	if rpt := svc.GenerateRaw("999999"); rpt != nil {
		t.Errorf("expected nil report for unknown ticker, got %+v", rpt)
	}
	if rpt := svc.GenerateRaw("   "); rpt != nil {
		t.Errorf("expected nil report for blank ticker, got %+v", rpt)
	}
}

func TestGenerateRawEndToEnd(t *testing.T) {
	quotes := &fakeQuotes{
		listing: []market.ListingRow{{Code: "000001", Name: "갑회사", MarketCap: 100}},
		candles: map[string][]market.Candle{
			"000001": {{Date: "20250102", Open: 1000, High: 1100, Low: 900, Close: 1000}},
		},
		fundamentals: &calc.Metrics{PER: fptr(10)},
	}
	svc := NewService(
		market.NewSnapshotService(quotes),
		NewMetricsResolver(quotes, filing.NewLoader(filing.NewNotConfigured()), filing.DefaultSynonyms()),
	)

	rpt := svc.GenerateRaw("000001")
	if rpt == nil {
		t.Fatal("expected a report")
	}
	if rpt.RawData.Metrics.PER == nil || *rpt.RawData.Metrics.PER != 10 {
		t.Errorf("expected resolved PER 10, got %v", rpt.RawData.Metrics.PER)
	}
	if rpt.RawData.FinancialText != "" {
		t.Error("expected no financial text on the primary metrics path")
	}
}
