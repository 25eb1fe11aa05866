package filing

import (
	"strings"
	"testing"
)

func TestResolveFieldSubstringMatch(t *testing.T) {
	// Containment, not equality: synonym "A" must hit "AB Corp".
	items := []LineItem{{Label: "AB Corp", Amount: "10"}}

	got := ResolveField(items, []string{"A", "AB"})
	if got != 10 {
		t.Errorf("expected substring match to resolve 10, got %f", got)
	}
}

func TestResolveFieldSynonymOrder(t *testing.T) {
	items := []LineItem{
		{Label: "당기순이익(손실)", Amount: "500"},
		{Label: "지배기업의 소유주에게 귀속되는 당기순이익", Amount: "400"},
	}

	// The owner-attributable synonym comes first, so its value wins even
	// though the generic label appears earlier in the collection.
	got := ResolveField(items, DefaultSynonyms().NetIncome)
	if got != 400 {
		t.Errorf("expected owner-attributable 400, got %f", got)
	}
}

func TestResolveFieldFirstItemPerSynonym(t *testing.T) {
	items := []LineItem{
		{Label: "자본총계", Amount: "1,000"},
		{Label: "자본총계", Amount: "2,000"},
	}

	// No aggregation across duplicates: first matching item only.
	got := ResolveField(items, []string{"자본총계"})
	if got != 1000 {
		t.Errorf("expected first item 1000, got %f", got)
	}
}

func TestResolveFieldCaseSensitive(t *testing.T) {
	items := []LineItem{{Label: "total equity", Amount: "100"}}

	if got := ResolveField(items, []string{"Total Equity"}); got != 0 {
		t.Errorf("matching must be case-sensitive, got %f", got)
	}
}

func TestResolveFieldUnparseableAmount(t *testing.T) {
	items := []LineItem{
		{Label: "자본총계", Amount: "-"},
		{Label: "자본과부채총계", Amount: "3,000"},
	}

	// The matched row is unparseable, so the next synonym is tried.
	got := ResolveField(items, []string{"자본총계", "자본과부채총계"})
	if got != 3000 {
		t.Errorf("expected fallback to next synonym 3000, got %f", got)
	}
}

func TestResolveFieldNotFound(t *testing.T) {
	items := []LineItem{{Label: "매출액", Amount: "9,999"}}

	if got := ResolveField(items, DefaultSynonyms().EPS); got != 0 {
		t.Errorf("expected 0 sentinel, got %f", got)
	}
}

func TestParseAmountNegative(t *testing.T) {
	v, ok := parseAmount("-12,345")
	if !ok || v != -12345 {
		t.Errorf("expected -12345, got %f (ok=%v)", v, ok)
	}
}

func TestLoadSynonymsMissingFile(t *testing.T) {
	table, err := LoadSynonyms("does-not-exist.hjson")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	// Must still hand back a usable default table.
	if len(table.NetIncome) == 0 || len(table.Equity) == 0 || len(table.EPS) == 0 {
		t.Error("expected default synonyms on load failure")
	}
}

func TestLoaderConfigured(t *testing.T) {
	if NewLoader(NewNotConfigured()).Configured() {
		t.Error("not-configured client must report unconfigured")
	}
	if !NewLoader(NewHTTPClient("key")).Configured() {
		t.Error("http client must report configured")
	}
}

func TestFinancialText(t *testing.T) {
	items := []LineItem{
		{Label: "매출액", Amount: "1,000,000"},
		{Label: "자본총계", Amount: "500,000"},
		{Label: "기본주당순이익(손실)", Amount: "1,234"},
	}

	text := FinancialText("005930", items)

	for _, want := range []string{
		"# 005930 재무제표 (DART API)",
		"- 매출액: 1,000,000",
		"- 자본총계: 500,000",
		"- 주당순이익(EPS): 1,234원",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("financial text missing %q:\n%s", want, text)
		}
	}
}
