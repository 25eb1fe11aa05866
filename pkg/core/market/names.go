package market

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// nameToCode maps frequently queried names directly, saving a listing
// fetch for the common cases.
var nameToCode = map[string]string{
	"삼성전자":     "005930",
	"카카오":      "035720",
	"LG에너지솔루션": "373220",
}

const naverSearchURL = "https://finance.naver.com/search/searchList.naver"

// NormalizeTicker turns a name or code into a 6-digit stock code.
//   - hardcoded name table first
//   - 6-digit input passes through
//   - exact name match against the full listing
//   - last resort: the finance search page (handles partial names)
//
// An unresolvable input is returned as-is; the snapshot lookup then fails
// as plain missing data.
func NormalizeTicker(ticker string, listing []ListingRow) string {
	t := strings.TrimSpace(ticker)
	if t == "" {
		return t
	}

	if code, ok := nameToCode[t]; ok {
		return code
	}

	if len(t) == 6 && isDigits(t) {
		return t
	}

	for _, row := range listing {
		if row.Name == t {
			return row.Code
		}
	}

	if code, err := searchCodeByName(t); err == nil && code != "" {
		return code
	} else if err != nil {
		fmt.Printf("[MARKET] name search failed for %q: %v\n", t, err)
	}

	return t
}

// searchCodeByName scrapes the finance search result page. The page is
// served as EUC-KR, so both the query and the response go through a
// charset transform before goquery sees them.
func searchCodeByName(name string) (string, error) {
	encoded, _, err := transform.Bytes(korean.EUCKR.NewEncoder(), []byte(name))
	if err != nil {
		return "", err
	}

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Get(naverSearchURL + "?query=" + url.QueryEscape(string(encoded)))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(transform.NewReader(resp.Body, korean.EUCKR.NewDecoder()))
	if err != nil {
		return "", err
	}

	var code string
	doc.Find("table.tbl_search td.tit a").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok {
			return true
		}
		if u, err := url.Parse(href); err == nil {
			if c := u.Query().Get("code"); len(c) == 6 {
				code = c
				return false
			}
		}
		return true
	})

	if code == "" {
		return "", fmt.Errorf("no result for %q", name)
	}
	return code, nil
}
