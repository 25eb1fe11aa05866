package market

import (
	"fmt"
	"sort"
)

// Lookbacks in trading days for the trailing return figures.
const (
	days1M = 20
	days3M = 60
	days1Y = 240
)

// SnapshotService produces Snapshots from a QuoteAPI. Provider failures
// and unknown instruments both come back as a nil snapshot: from the
// report pipeline's point of view the instrument simply has no data.
type SnapshotService struct {
	api QuoteAPI
}

// NewSnapshotService wraps a quote capability.
func NewSnapshotService(api QuoteAPI) *SnapshotService {
	return &SnapshotService{api: api}
}

// API exposes the underlying quote capability for collaborators that need
// direct access (the metrics resolver's primary source, the batch driver).
func (s *SnapshotService) API() QuoteAPI {
	return s.api
}

// Load resolves the ticker and builds the point-in-time snapshot. Returns
// nil when the instrument is unknown or has no usable price history.
func (s *SnapshotService) Load(ticker string) *Snapshot {
	listing, err := s.api.Listing()
	if err != nil {
		fmt.Printf("[SNAPSHOT] listing fetch failed: %v\n", err)
		return nil
	}

	code := NormalizeTicker(ticker, listing)

	row, rank := findListed(listing, code, ticker)
	if row == nil {
		fmt.Printf("[SNAPSHOT] %q not found in listing\n", ticker)
		return nil
	}

	candles, err := s.api.DailyCandles(row.Code, 365)
	if err != nil {
		fmt.Printf("[SNAPSHOT] candle fetch failed for %s: %v\n", row.Code, err)
		return nil
	}
	if len(candles) == 0 {
		fmt.Printf("[SNAPSHOT] no price history for %s\n", row.Code)
		return nil
	}

	return buildSnapshot(row, rank, candles)
}

// findListed locates the instrument by code, falling back to the raw
// input as a name, and computes its market-cap rank.
func findListed(listing []ListingRow, code, rawTicker string) (*ListingRow, *int) {
	var found *ListingRow
	for i := range listing {
		if listing[i].Code == code {
			found = &listing[i]
			break
		}
	}
	if found == nil {
		for i := range listing {
			if listing[i].Name == rawTicker {
				found = &listing[i]
				break
			}
		}
	}
	if found == nil {
		return nil, nil
	}

	sorted := make([]ListingRow, len(listing))
	copy(sorted, listing)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MarketCap > sorted[j].MarketCap
	})
	for i := range sorted {
		if sorted[i].Code == found.Code {
			rank := i + 1
			return found, &rank
		}
	}
	return found, nil
}

func buildSnapshot(row *ListingRow, rank *int, candles []Candle) *Snapshot {
	closes := make([]float64, 0, len(candles))
	high52w, low52w := 0.0, 0.0
	for i, c := range candles {
		closes = append(closes, c.Close)
		if i == 0 || c.High > high52w {
			high52w = c.High
		}
		if i == 0 || c.Low < low52w {
			low52w = c.Low
		}
	}

	currentPrice := closes[len(closes)-1]

	pctFromNDays := func(n int) *float64 {
		if len(closes) <= n {
			return nil
		}
		past := closes[len(closes)-1-n]
		if past <= 0 {
			return nil
		}
		v := (currentPrice/past - 1.0) * 100.0
		return &v
	}

	var fromHigh *float64
	if high52w > 0 {
		v := (currentPrice/high52w - 1.0) * 100.0
		fromHigh = &v
	}

	var marketCap *int64
	if row.MarketCap > 0 {
		v := row.MarketCap
		marketCap = &v
	}

	return &Snapshot{
		Ticker:        row.Code,
		Name:          row.Name,
		CurrentPrice:  int64(currentPrice),
		MarketCap:     marketCap,
		MarketCapRank: rank,
		Return1M:      pctFromNDays(days1M),
		Return3M:      pctFromNDays(days3M),
		Return1Y:      pctFromNDays(days1Y),
		High52W:       int64(high52w),
		Low52W:        int64(low52w),
		FromHigh:      fromHigh,
	}
}
