// Package market provides the point-in-time market snapshot for one
// instrument: price, market cap and rank, trailing returns, and the
// 52-week range.
package market

// Snapshot is immutable once produced and lives only for the duration of
// one report-generation call.
type Snapshot struct {
	Ticker        string   `json:"ticker"`
	Name          string   `json:"name"`
	CurrentPrice  int64    `json:"current_price"`
	MarketCap     *int64   `json:"market_cap"`
	MarketCapRank *int     `json:"market_cap_rank"`
	Return1M      *float64 `json:"ret_1m"`
	Return3M      *float64 `json:"ret_3m"`
	Return1Y      *float64 `json:"ret_1y"`
	High52W       int64    `json:"high_52w"`
	Low52W        int64    `json:"low_52w"`
	FromHigh      *float64 `json:"from_high"`
}

// ListingRow is one instrument from the full KRX listing.
type ListingRow struct {
	Code      string
	Name      string
	MarketCap int64
}

// Candle is one daily OHLC bar.
type Candle struct {
	Date  string // YYYYMMDD
	Open  float64
	High  float64
	Low   float64
	Close float64
}
