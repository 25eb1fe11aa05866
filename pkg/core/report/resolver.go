package report

import (
	"fmt"

	"github.com/namu-1002/stock-backend/pkg/core/calc"
	"github.com/namu-1002/stock-backend/pkg/core/filing"
	"github.com/namu-1002/stock-backend/pkg/core/market"
)

// MetricsResolver decides which of the two metric sources to trust. The
// primary quote provider wins whenever it supplies any field at all; the
// filing-derived calculation only runs when the primary set is entirely
// absent. Metric sets are adopted whole, never merged field by field.
type MetricsResolver struct {
	quotes  market.QuoteAPI
	filings *filing.Loader
	syn     filing.SynonymTable
}

// NewMetricsResolver wires the primary quote source and the filing
// fallback. filings may wrap a not-configured client.
func NewMetricsResolver(quotes market.QuoteAPI, filings *filing.Loader, syn filing.SynonymTable) *MetricsResolver {
	return &MetricsResolver{quotes: quotes, filings: filings, syn: syn}
}

// Resolve returns the metrics for one instrument plus the filing text
// blob when the fallback path fetched one. Failures on either source
// degrade to an all-absent set; they are never raised to the caller.
func (r *MetricsResolver) Resolve(code string, currentPrice float64) (calc.Metrics, string) {
	primary := r.primaryMetrics(code)
	if primary.HasAny() {
		// 값이 하나라도 있으면 그대로 사용한다. 빠진 필드를 DART로
		// 채우지 않는다.
		return *primary, ""
	}

	if !r.filings.Configured() || currentPrice <= 0 {
		return *primary, ""
	}

	fmt.Printf("[DART] no primary metrics → recomputing from statements (code=%s)\n", code)

	items, financialText, err := r.filings.LoadAnnual(code)
	if err != nil {
		fmt.Printf("[DART] statements load failed: %v\n", err)
		return *primary, ""
	}

	calculated := calc.FromLineItems(items, r.syn, currentPrice)
	if calculated == nil {
		fmt.Println("[DART] metrics calculation produced no result")
		return *primary, financialText
	}

	fmt.Printf("[DART] metrics updated → PER=%v, PBR=%v, ROE=%v\n",
		deref(calculated.PER), deref(calculated.PBR), deref(calculated.ROE))
	return *calculated, financialText
}

func (r *MetricsResolver) primaryMetrics(code string) *calc.Metrics {
	m, err := r.quotes.Fundamentals(code)
	if err != nil {
		fmt.Printf("[METRICS] primary lookup failed for %s: %v\n", code, err)
		return &calc.Metrics{}
	}
	if m == nil {
		return &calc.Metrics{}
	}
	return m
}

func deref(v *float64) interface{} {
	if v == nil {
		return "N/A"
	}
	return *v
}
