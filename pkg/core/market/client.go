package market

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/namu-1002/stock-backend/pkg/core/calc"
	"github.com/namu-1002/stock-backend/pkg/core/utils"
)

const (
	krxDataURL     = "http://data.krx.co.kr"
	naverChartURL  = "https://api.finance.naver.com"
	naverMobileURL = "https://m.stock.naver.com"

	listingTTL = 10 * time.Minute
)

// QuoteAPI is the market-quote capability consumed by the snapshot
// provider and the metrics resolver. Implementations are blocking and
// carry no retry logic of their own.
type QuoteAPI interface {
	// Listing returns the full KRX listing with market caps.
	Listing() ([]ListingRow, error)
	// DailyCandles returns up to the last `days` calendar days of OHLC
	// bars for one instrument, oldest first.
	DailyCandles(code string, days int) ([]Candle, error)
	// Fundamentals returns provider-precomputed valuation metrics, or
	// nil when the provider has none for this instrument.
	Fundamentals(code string) (*calc.Metrics, error)
}

// QuoteClient implements QuoteAPI against KRX (listing) and Naver Finance
// (candles, precomputed fundamentals).
type QuoteClient struct {
	krx    *resty.Client
	chart  *resty.Client
	mobile *resty.Client

	listingMutex sync.Mutex
	listing      []ListingRow
	listingAt    time.Time
}

// NewQuoteClient creates a quote client with default endpoints.
func NewQuoteClient() *QuoteClient {
	newClient := func(base string) *resty.Client {
		c := resty.New()
		c.SetBaseURL(base)
		c.SetTimeout(30 * time.Second)
		c.SetHeader("User-Agent", "stock-backend/1.0")
		return c
	}
	return &QuoteClient{
		krx:    newClient(krxDataURL),
		chart:  newClient(naverChartURL),
		mobile: newClient(naverMobileURL),
	}
}

type krxListingResponse struct {
	Rows []struct {
		Code      string `json:"ISU_SRT_CD"`
		Name      string `json:"ISU_ABBRV"`
		MarketCap string `json:"MKTCAP"`
	} `json:"OutBlock_1"`
}

// Listing fetches the full KOSPI+KOSDAQ listing. The result is cached in
// memory for a short interval since the batch driver walks it per code.
func (q *QuoteClient) Listing() ([]ListingRow, error) {
	q.listingMutex.Lock()
	defer q.listingMutex.Unlock()

	if q.listing != nil && time.Since(q.listingAt) < listingTTL {
		return q.listing, nil
	}

	resp, err := q.krx.R().
		SetFormData(map[string]string{
			"bld":         "dbms/MDC/STAT/standard/MDCSTAT01501",
			"locale":      "ko_KR",
			"mktId":       "ALL",
			"trdDd":       time.Now().Format("20060102"),
			"share":       "1",
			"money":       "1",
			"csvxls_isNo": "false",
		}).
		Post("/comm/bldAttendant/getJsonData.cmd")
	if err != nil {
		return nil, fmt.Errorf("krx listing request failed: %w", err)
	}

	var parsed krxListingResponse
	if err := utils.DecodeLenient(resp.Body(), &parsed); err != nil {
		return nil, fmt.Errorf("krx listing response malformed: %w", err)
	}
	if len(parsed.Rows) == 0 {
		return nil, fmt.Errorf("krx listing empty")
	}

	rows := make([]ListingRow, 0, len(parsed.Rows))
	for _, r := range parsed.Rows {
		mktCap, _ := parseNumber(r.MarketCap)
		rows = append(rows, ListingRow{
			Code:      strings.TrimSpace(r.Code),
			Name:      strings.TrimSpace(r.Name),
			MarketCap: int64(mktCap),
		})
	}

	q.listing = rows
	q.listingAt = time.Now()
	return rows, nil
}

// DailyCandles fetches daily OHLC bars from the Naver chart endpoint. The
// endpoint answers with a JS-style array literal (single quotes), which
// the lenient decoder repairs before parsing.
func (q *QuoteClient) DailyCandles(code string, days int) ([]Candle, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -days)

	resp, err := q.chart.R().
		SetQueryParams(map[string]string{
			"symbol":      code,
			"requestType": "1",
			"startTime":   start.Format("20060102"),
			"endTime":     end.Format("20060102"),
			"timeframe":   "day",
		}).
		Get("/siseJson.naver")
	if err != nil {
		return nil, fmt.Errorf("chart request failed for %s: %w", code, err)
	}

	var rows [][]interface{}
	if err := utils.DecodeLenient(resp.Body(), &rows); err != nil {
		return nil, fmt.Errorf("chart response malformed for %s: %w", code, err)
	}

	candles := make([]Candle, 0, len(rows))
	for _, row := range rows {
		// [날짜, 시가, 고가, 저가, 종가, 거래량, 외국인소진율]
		if len(row) < 5 {
			continue
		}
		date, ok := row[0].(string)
		if !ok || !isDigits(date) {
			continue // header row
		}
		open, ok1 := toFloat(row[1])
		high, ok2 := toFloat(row[2])
		low, ok3 := toFloat(row[3])
		closePx, ok4 := toFloat(row[4])
		if !ok1 || !ok2 || !ok3 || !ok4 {
			continue
		}
		candles = append(candles, Candle{Date: date, Open: open, High: high, Low: low, Close: closePx})
	}
	return candles, nil
}

type integrationResponse struct {
	TotalInfos []struct {
		Code  string `json:"code"`
		Value string `json:"value"`
	} `json:"totalInfos"`
}

// Fundamentals reads provider-precomputed PER/PBR/ROE/EPS/BPS. Fields the
// provider marks "N/A" stay nil; an instrument with no usable field at all
// yields an all-nil metrics set, which triggers the filing fallback.
func (q *QuoteClient) Fundamentals(code string) (*calc.Metrics, error) {
	resp, err := q.mobile.R().
		Get(fmt.Sprintf("/api/stock/%s/integration", code))
	if err != nil {
		return nil, fmt.Errorf("fundamentals request failed for %s: %w", code, err)
	}

	var parsed integrationResponse
	if err := utils.DecodeLenient(resp.Body(), &parsed); err != nil {
		return nil, fmt.Errorf("fundamentals response malformed for %s: %w", code, err)
	}

	m := &calc.Metrics{}
	for _, info := range parsed.TotalInfos {
		v, ok := parseNumber(info.Value)
		if !ok {
			continue
		}
		value := v
		switch strings.ToLower(info.Code) {
		case "per":
			m.PER = &value
		case "pbr":
			m.PBR = &value
		case "roe":
			m.ROE = &value
		case "eps":
			m.EPS = &value
		case "bps":
			m.BPS = &value
		}
	}
	return m, nil
}

// parseNumber parses provider number strings such as "12.34배", "1,234원",
// "15.2%" or "N/A".
func parseNumber(s string) (float64, bool) {
	cleaned := strings.TrimSpace(s)
	for _, suffix := range []string{"배", "원", "%"} {
		cleaned = strings.TrimSuffix(cleaned, suffix)
	}
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" || cleaned == "N/A" || cleaned == "-" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		return parseNumber(n)
	default:
		return 0, false
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
