package filing

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/namu-1002/stock-backend/pkg/core/utils"
)

const (
	dartBaseURL = "https://opendart.fss.or.kr/api"

	// ReportAnnual selects the annual business report.
	ReportAnnual = "11011"
	// ConsolidatedFS selects consolidated financial statements.
	ConsolidatedFS = "CFS"

	statusOK     = "000"
	statusNoData = "013"
)

// Client is the filing-lookup capability. It is injected into the report
// pipeline; use NewNotConfigured when no DART credential is present.
type Client interface {
	// CorpCode resolves a 6-digit stock code to the DART corp code.
	CorpCode(stockCode string) (string, error)
	// Statements returns all line items of one statement, or an empty
	// slice when DART has no filing for the given parameters.
	Statements(corpCode string, year int, reportCode, fsDiv string) ([]LineItem, error)
}

// HTTPClient talks to the DART open API.
type HTTPClient struct {
	client *resty.Client
	apiKey string

	corpMutex sync.Mutex
	corpCodes map[string]string // stock code -> corp code
}

// NewHTTPClient creates a DART client with the given API key.
func NewHTTPClient(apiKey string) *HTTPClient {
	client := resty.New()
	client.SetBaseURL(dartBaseURL)
	client.SetTimeout(30 * time.Second)

	return &HTTPClient{
		client: client,
		apiKey: apiKey,
	}
}

type statementsResponse struct {
	Status  string     `json:"status"`
	Message string     `json:"message"`
	List    []LineItem `json:"list"`
}

// Statements fetches the full single-company account list for one fiscal
// year. A "no data" status from DART is not an error; it returns an empty
// slice so the caller can walk back to an earlier year.
func (c *HTTPClient) Statements(corpCode string, year int, reportCode, fsDiv string) ([]LineItem, error) {
	resp, err := c.client.R().
		SetQueryParams(map[string]string{
			"crtfc_key":  c.apiKey,
			"corp_code":  corpCode,
			"bsns_year":  fmt.Sprintf("%d", year),
			"reprt_code": reportCode,
			"fs_div":     fsDiv,
		}).
		Get("/fnlttSinglAcntAll.json")
	if err != nil {
		return nil, fmt.Errorf("dart statements request failed: %w", err)
	}

	var parsed statementsResponse
	if err := utils.DecodeLenient(resp.Body(), &parsed); err != nil {
		return nil, fmt.Errorf("dart statements response malformed: %w", err)
	}

	switch parsed.Status {
	case statusOK:
		return parsed.List, nil
	case statusNoData:
		return nil, nil
	default:
		return nil, fmt.Errorf("dart error %s: %s", parsed.Status, parsed.Message)
	}
}

// CorpCode resolves a stock code via the DART corpCode.xml registry.
// The registry ships as a zip archive and is loaded once per process.
func (c *HTTPClient) CorpCode(stockCode string) (string, error) {
	c.corpMutex.Lock()
	defer c.corpMutex.Unlock()

	if c.corpCodes == nil {
		codes, err := c.loadCorpCodes()
		if err != nil {
			return "", err
		}
		c.corpCodes = codes
	}

	code, ok := c.corpCodes[stockCode]
	if !ok {
		return "", fmt.Errorf("corp code not found for stock code %s", stockCode)
	}
	return code, nil
}

type corpCodeList struct {
	Entries []struct {
		CorpCode  string `xml:"corp_code"`
		StockCode string `xml:"stock_code"`
	} `xml:"list"`
}

func (c *HTTPClient) loadCorpCodes() (map[string]string, error) {
	resp, err := c.client.R().
		SetQueryParam("crtfc_key", c.apiKey).
		Get("/corpCode.xml")
	if err != nil {
		return nil, fmt.Errorf("dart corp code request failed: %w", err)
	}

	body := resp.Body()
	reader, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, fmt.Errorf("dart corp code archive unreadable: %w", err)
	}

	var xmlData []byte
	for _, f := range reader.File {
		if strings.HasSuffix(f.Name, ".xml") {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			xmlData, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return nil, err
			}
			break
		}
	}
	if xmlData == nil {
		return nil, fmt.Errorf("dart corp code archive has no xml entry")
	}

	var list corpCodeList
	if err := xml.Unmarshal(xmlData, &list); err != nil {
		return nil, fmt.Errorf("dart corp code xml malformed: %w", err)
	}

	codes := make(map[string]string, len(list.Entries))
	for _, e := range list.Entries {
		stock := strings.TrimSpace(e.StockCode)
		if stock != "" {
			codes[stock] = strings.TrimSpace(e.CorpCode)
		}
	}
	fmt.Printf("[DART] corp code registry loaded (%d listed entries)\n", len(codes))
	return codes, nil
}

// notConfigured is the "no credential" variant of Client.
type notConfigured struct{}

// NewNotConfigured returns a Client whose lookups always miss. It lets the
// metrics resolver treat an absent DART credential as plain missing data.
func NewNotConfigured() Client {
	return notConfigured{}
}

func (notConfigured) CorpCode(string) (string, error) {
	return "", fmt.Errorf("dart client not configured")
}

func (notConfigured) Statements(string, int, string, string) ([]LineItem, error) {
	return nil, fmt.Errorf("dart client not configured")
}
