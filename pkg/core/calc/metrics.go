// Package calc derives valuation metrics from filing line items and a
// current market price.
package calc

import (
	"github.com/shopspring/decimal"

	"github.com/namu-1002/stock-backend/pkg/core/filing"
)

// Metrics is the canonical five-field valuation set. A nil field means
// the value is unknown. A metrics set always comes whole from a single
// source; fields from different sources are never mixed.
type Metrics struct {
	PER *float64 `json:"per"`
	PBR *float64 `json:"pbr"`
	ROE *float64 `json:"roe"`
	EPS *float64 `json:"eps"`
	BPS *float64 `json:"bps"`
}

// HasAny reports whether at least one field is present.
func (m *Metrics) HasAny() bool {
	if m == nil {
		return false
	}
	return m.PER != nil || m.PBR != nil || m.ROE != nil || m.EPS != nil || m.BPS != nil
}

func floatPtr(f float64) *float64 { return &f }

// FromLineItems computes PER/PBR/ROE/EPS/BPS from an annual filing and the
// current price. Returns nil when EPS, net income, or equity cannot be
// resolved to a nonzero value: the calculation is all-or-nothing, partial
// metric sets are never produced.
//
// Shares outstanding are derived as net income / EPS rather than read from
// a separate field, which is frequently missing from filings. The derived
// count is undefined when EPS is exactly zero, which is why a zero EPS
// fails the whole calculation rather than producing a PER.
func FromLineItems(items []filing.LineItem, syn filing.SynonymTable, currentPrice float64) *Metrics {
	netIncome := filing.ResolveField(items, syn.NetIncome)
	equity := filing.ResolveField(items, syn.Equity)
	eps := filing.ResolveField(items, syn.EPS)

	if eps == 0 || netIncome == 0 || equity == 0 {
		return nil
	}

	price := decimal.NewFromFloat(currentPrice)
	dNetIncome := decimal.NewFromFloat(netIncome)
	dEquity := decimal.NewFromFloat(equity)
	dEPS := decimal.NewFromFloat(eps)

	// 발행주식수 = 순이익 / EPS
	shares := dNetIncome.Div(dEPS)

	bps := decimal.Zero
	if shares.IsPositive() {
		bps = dEquity.Div(shares)
	}

	per, _ := price.Div(dEPS).Round(2).Float64()
	roe, _ := dNetIncome.Div(dEquity).Mul(decimal.NewFromInt(100)).Round(2).Float64()

	m := &Metrics{
		PER: floatPtr(per),
		ROE: floatPtr(roe),
		EPS: floatPtr(float64(dEPS.IntPart())),
		BPS: floatPtr(float64(bps.IntPart())),
	}
	if bps.IsPositive() {
		pbr, _ := price.Div(bps).Round(2).Float64()
		m.PBR = floatPtr(pbr)
	}
	return m
}
