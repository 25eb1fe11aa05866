package utils

import (
	"strings"
	"testing"
)

func TestDecodeLenientStrict(t *testing.T) {
	var v map[string]string
	if err := DecodeLenient([]byte(`{"a": "b"}`), &v); err != nil {
		t.Fatalf("strict decode failed: %v", err)
	}
	if v["a"] != "b" {
		t.Errorf("unexpected value %v", v)
	}
}

func TestDecodeLenientJSStyle(t *testing.T) {
	// The chart endpoint answers with JS array literals like this.
	body := []byte(`[['날짜', '시가'], ["20250102", 1000],]`)

	var rows [][]interface{}
	if err := DecodeLenient(body, &rows); err != nil {
		t.Fatalf("lenient decode failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[1][0] != "20250102" {
		t.Errorf("unexpected first cell %v", rows[1][0])
	}
}

func TestCleanMarkdown(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"```markdown\n# 제목\n```", "# 제목"},
		{"```\n# 제목\n```", "# 제목"},
		{"# 제목", "# 제목"},
		{"  # 제목  ", "# 제목"},
	}
	for _, c := range cases {
		if got := CleanMarkdown(c.in); got != c.want {
			t.Errorf("CleanMarkdown(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestRenderHTML(t *testing.T) {
	html, err := RenderHTML("# 005930 재무제표\n\n- 매출액: 1,000")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	for _, want := range []string{"<h1>", "005930", "<li>"} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered html missing %q:\n%s", want, html)
		}
	}
}
