package filing

import (
	"fmt"
	"strings"
	"time"

	"github.com/namu-1002/stock-backend/pkg/core/utils"
)

// keyAccounts are the statement lines surfaced in the financial text blob,
// in presentation order. Exact label match, unlike metric resolution.
var keyAccounts = []string{
	// 포괄손익계산서
	"매출액",
	"영업이익(손실)",
	"당기순이익(손실)",
	"지배기업의 소유주에게 귀속되는 당기순이익(손실)",

	// 재무상태표
	"자산총계",
	"부채총계",
	"자본총계",
	"지배기업의 소유주에게 귀속되는 자본",

	// 현금흐름표
	"영업활동 현금흐름",
	"투자활동 현금흐름",
	"재무활동 현금흐름",

	// 주당정보
	"기본주당순이익(손실)",
}

// Loader fetches the most recent usable annual filing for a stock code.
type Loader struct {
	client Client
}

// NewLoader wraps a filing client. Pass NewNotConfigured() when no DART
// credential is present; Configured() then reports false and the metrics
// resolver skips the filing fallback entirely.
func NewLoader(client Client) *Loader {
	return &Loader{client: client}
}

// Configured reports whether a real filing capability is behind the loader.
func (l *Loader) Configured() bool {
	if l == nil || l.client == nil {
		return false
	}
	_, missing := l.client.(notConfigured)
	return !missing
}

// LoadAnnual resolves the corp code and walks fiscal years backward from
// the current year (current, current-1, current-2), accepting the first
// year with a non-empty annual consolidated statement. Returns the line
// items plus a formatted financial text blob, or an error when no filing
// could be found.
func (l *Loader) LoadAnnual(stockCode string) ([]LineItem, string, error) {
	corpCode, err := l.client.CorpCode(stockCode)
	if err != nil {
		return nil, "", fmt.Errorf("corp code lookup failed for %s: %w", stockCode, err)
	}

	currentYear := time.Now().Year()
	yearsToTry := []int{currentYear, currentYear - 1, currentYear - 2}

	for _, year := range yearsToTry {
		items, err := l.client.Statements(corpCode, year, ReportAnnual, ConsolidatedFS)
		if err != nil {
			fmt.Printf("[DART] %s statements lookup failed (%d): %v\n", stockCode, year, err)
			continue
		}
		if len(items) == 0 {
			continue
		}
		fmt.Printf("[DART] %s statements loaded (%d, %d line items)\n", stockCode, year, len(items))
		return items, FinancialText(stockCode, items), nil
	}

	return nil, "", fmt.Errorf("no annual filing found for %s in %d-%d", stockCode, currentYear-2, currentYear)
}

// FinancialText renders the key statement lines as a markdown blob for the
// internal report. Amounts that fail to parse are skipped.
func FinancialText(stockCode string, items []LineItem) string {
	lines := []string{fmt.Sprintf("# %s 재무제표 (DART API)", stockCode), ""}

	for _, account := range keyAccounts {
		for _, item := range items {
			if item.Label != account {
				continue
			}
			if v, ok := parseAmount(item.Amount); ok {
				lines = append(lines, fmt.Sprintf("- %s: %s", account, utils.GroupDigits(int64(v))))
			}
			break
		}
	}

	// EPS는 계정명이 회사마다 달라 부분 일치로 한 번 더 찾는다.
	for _, item := range items {
		if !strings.Contains(item.Label, "기본주당순이익") {
			continue
		}
		if v, ok := parseAmount(item.Amount); ok {
			lines = append(lines, fmt.Sprintf("- 주당순이익(EPS): %s원", utils.GroupDigits(int64(v))))
		}
		break
	}

	return strings.Join(lines, "\n")
}
