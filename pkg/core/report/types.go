// Package report builds the normalized internal investment report: it
// resolves valuation metrics across the quote and filing sources, then
// merges them with the market snapshot into one aggregate.
package report

import "github.com/namu-1002/stock-backend/pkg/core/calc"

// InternalReport is the canonical aggregate for one report-generation
// call. It is always either fully populated or not produced at all.
type InternalReport struct {
	ID          string  `json:"id"`
	Ticker      string  `json:"ticker"`
	Name        string  `json:"name"`
	GeneratedAt string  `json:"generated_at"`
	Report      Body    `json:"report"`
	RawData     RawData `json:"raw_data"`
}

// Body carries the generated narrative.
type Body struct {
	Title         string   `json:"title"`
	FullText      string   `json:"full_text"`
	Sections      Sections `json:"sections"`
	HasFinancials bool     `json:"has_financials"`
}

// Sections are the five fixed narrative texts every report carries.
type Sections struct {
	Summary           string `json:"summary"`
	PriceAnalysis     string `json:"price_analysis"`
	FinancialAnalysis string `json:"financial_analysis"`
	Valuation         string `json:"valuation"`
	InvestmentOpinion string `json:"investment_opinion"`
}

// RawData carries the numeric aggregate the cards are built from.
type RawData struct {
	Basic         Basic        `json:"basic"`
	PriceTrend    PriceTrend   `json:"price_trend"`
	Metrics       calc.Metrics `json:"metrics"`
	Technical     Technical    `json:"technical"`
	FinancialText string       `json:"financial_text,omitempty"`
}

// Basic identifies the instrument and its size.
type Basic struct {
	Ticker        string `json:"ticker"`
	Name          string `json:"name"`
	CurrentPrice  int64  `json:"current_price"`
	MarketCap     *int64 `json:"market_cap"`
	MarketCapRank *int   `json:"market_cap_rank"`
}

// PriceTrend carries trailing returns and the 52-week range.
type PriceTrend struct {
	OneMonth   *float64 `json:"1m"`
	ThreeMonth *float64 `json:"3m"`
	OneYear    *float64 `json:"1y"`
	High52W    int64    `json:"52w_high"`
	Low52W     int64    `json:"52w_low"`
	FromHigh   *float64 `json:"from_high"`
}

// Technical is a placeholder until indicator computation lands.
// TODO: wire RSI once the candle history is kept past snapshot building.
type Technical struct {
	RSI       *float64 `json:"rsi"`
	RSISignal string   `json:"rsi_signal"`
}
