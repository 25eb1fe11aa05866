// Package filing provides access to DART statutory filings and
// field resolution over their labeled line items.
//
// Filing vocabularies are not stable across issuers or fiscal years, so
// canonical fields are resolved through ordered synonym lists: the most
// company-specific label first, the most generic label last.
package filing

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	hjson "github.com/hjson/hjson-go/v4"
)

// LineItem is one labeled financial fact from a filing.
// Label is free text from the issuer, not a stable identifier.
type LineItem struct {
	Label  string `json:"account_nm"`
	Amount string `json:"thstrm_amount"`
	Period string `json:"bsns_year"`
}

// SynonymTable holds the ordered label synonyms for each canonical field.
// Order matters: entries are tried first to last, and the first synonym
// that matches any line item wins.
type SynonymTable struct {
	NetIncome []string `json:"net_income"`
	Equity    []string `json:"equity"`
	EPS       []string `json:"eps"`
}

// DefaultSynonyms returns the built-in synonym table.
// The "지배기업 소유지분" entries cover Samsung-style account naming.
func DefaultSynonyms() SynonymTable {
	return SynonymTable{
		NetIncome: []string{
			"지배기업의 소유주에게 귀속되는 당기순이익",
			"지배기업의 소유주에게 귀속되는 당기순이익(손실)",
			"지배기업 소유지분",
			"당기순이익(손실)",
			"당기순이익",
		},
		Equity: []string{
			"지배기업의 소유주에게 귀속되는 자본",
			"지배기업 소유지분",
			"자본총계",
		},
		EPS: []string{
			"기본주당순이익",
			"기본주당이익",
		},
	}
}

// LoadSynonyms reads a synonym table from an hjson resource file.
// Missing fields fall back to the built-in defaults so a partial
// override file stays valid.
func LoadSynonyms(path string) (SynonymTable, error) {
	table := DefaultSynonyms()

	data, err := os.ReadFile(path)
	if err != nil {
		return table, fmt.Errorf("failed to read synonym file: %w", err)
	}

	var loaded SynonymTable
	if err := hjson.Unmarshal(data, &loaded); err != nil {
		return table, fmt.Errorf("failed to parse synonym file: %w", err)
	}

	if len(loaded.NetIncome) > 0 {
		table.NetIncome = loaded.NetIncome
	}
	if len(loaded.Equity) > 0 {
		table.Equity = loaded.Equity
	}
	if len(loaded.EPS) > 0 {
		table.EPS = loaded.EPS
	}
	return table, nil
}

// ResolveField returns the value of the first synonym that matches any
// line item whose label contains that synonym as a substring. Matching is
// case-sensitive and only the first matching line item (in input order) is
// used per synonym. Returns 0 when no synonym matches or the matched
// amount cannot be parsed as a number.
func ResolveField(items []LineItem, synonyms []string) float64 {
	for _, syn := range synonyms {
		for _, item := range items {
			if !strings.Contains(item.Label, syn) {
				continue
			}
			if v, ok := parseAmount(item.Amount); ok {
				return v
			}
			// Unparseable amount on the matched row: move to the
			// next synonym, same as an absent field.
			break
		}
	}
	return 0
}

// parseAmount parses DART amount strings such as "1,234,567" or "-5,000".
func parseAmount(s string) (float64, bool) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
