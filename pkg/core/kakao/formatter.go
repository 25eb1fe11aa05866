package kakao

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/namu-1002/stock-backend/pkg/core/report"
	"github.com/namu-1002/stock-backend/pkg/core/utils"
)

const (
	version = "2.0"

	// oneLineBudget bounds every card's one-line summary.
	oneLineBudget = 80
)

// BuildSuccessResponse renders the five-card report response.
func BuildSuccessResponse(r *report.InternalReport) SkillResponse {
	cards := []*ItemCard{
		buildSummaryCard(r),
		buildPriceCard(r),
		buildFinancialCard(r),
		buildValuationCard(r),
		buildOpinionCard(r),
	}

	outputs := make([]Output, 0, len(cards))
	for _, card := range cards {
		outputs = append(outputs, Output{ItemCard: card})
	}

	return SkillResponse{
		Version: version,
		Template: Template{
			Outputs:      outputs,
			QuickReplies: commonQuickReplies(),
		},
	}
}

// BuildNoDataResponse renders the missing-instrument response, naming the
// unresolved input.
func BuildNoDataResponse(ticker string) SkillResponse {
	text := fmt.Sprintf("앗, 아직 '%s'에 대한 리포트 데이터가 없어요 🥲 다른 종목 리포트를 보시겠어요?", ticker)

	return SkillResponse{
		Version: version,
		Template: Template{
			Outputs: []Output{{SimpleText: &SimpleText{Text: text}}},
			QuickReplies: []QuickReply{
				{Label: "다른 종목 리포트", Action: "block", BlockID: blockReport},
				{Label: "도움말", Action: "block", BlockID: blockHelp},
			},
		},
	}
}

// BuildErrorResponse renders the upstream-failure response. No internal
// error detail ever reaches the caller.
func BuildErrorResponse() SkillResponse {
	text := "지금 리포트를 불러오는 중에 문제가 발생했어요 😢\n" +
		"잠시 후 다시 시도하시거나, 다른 종목을 조회해볼까요?"

	return SkillResponse{
		Version: version,
		Template: Template{
			Outputs: []Output{{SimpleText: &SimpleText{Text: text}}},
			QuickReplies: []QuickReply{
				{Label: "다시 시도", Action: "block", BlockID: blockReport},
				{Label: "다른 종목 리포트", Action: "block", BlockID: blockReport},
				{Label: "도움말", Action: "block", BlockID: blockHelp},
			},
		},
	}
}

func commonQuickReplies() []QuickReply {
	return []QuickReply{
		{Label: "뉴스/커뮤니티 보기", Action: "block", BlockID: blockNews},
		{Label: "다른 종목 리포트", Action: "block", BlockID: blockReport},
		{Label: "관심종목 추가", Action: "block", BlockID: blockWatchlist},
		{Label: "도움말", Action: "block", BlockID: blockHelp},
	}
}

// -----------------------
// Card builders
// -----------------------

func buildSummaryCard(r *report.InternalReport) *ItemCard {
	summaryText := r.Report.Sections.Summary
	if summaryText == "" {
		summaryText = "요약 정보가 없습니다."
	}

	basic := r.RawData.Basic
	rankDesc := "시총 순위: N/A"
	if basic.MarketCapRank != nil {
		rankDesc = fmt.Sprintf("시총 순위: %d위", *basic.MarketCapRank)
	}

	return &ItemCard{
		ImageTitle:  ImageTitle{Title: "투자 요약", Description: "해당 종목에 대한 핵심 요약입니다."},
		Description: "LLM 한 문장 요약: " + OneLineSummary(summaryText, oneLineBudget),
		ItemList: []Item{
			{Title: "요약 1", Description: "최근 1년 수익률: " + utils.FormatPct(r.RawData.PriceTrend.OneYear)},
			{Title: "요약 2", Description: "시가총액: " + utils.FormatWonScaled(basic.MarketCap)},
			{Title: "요약 3", Description: rankDesc},
			{Title: "요약 4", Description: "상세 내용은 아래 카드에서 확인하세요."},
		},
	}
}

func buildPriceCard(r *report.InternalReport) *ItemCard {
	descSrc := r.Report.Sections.PriceAnalysis
	if descSrc == "" {
		descSrc = "주가 동향 분석 정보가 없습니다."
	}

	trend := r.RawData.PriceTrend
	technical := r.RawData.Technical

	rsi := "N/A"
	if technical.RSI != nil {
		rsi = fmt.Sprintf("%.1f", *technical.RSI)
	}

	return &ItemCard{
		ImageTitle:  ImageTitle{Title: "주가 동향 분석", Description: "최근 주가 흐름과 기술적 지표를 분석합니다."},
		Description: "LLM 한 문장 요약: " + OneLineSummary(descSrc, oneLineBudget),
		ItemList: []Item{
			{Title: "1개월 수익률", Description: utils.FormatPct(trend.OneMonth)},
			{Title: "3개월 수익률", Description: utils.FormatPct(trend.ThreeMonth)},
			{Title: "1년 수익률", Description: utils.FormatPct(trend.OneYear)},
			{Title: "52주 고점 대비", Description: utils.FormatPct(trend.FromHigh)},
			{Title: "RSI", Description: fmt.Sprintf("%s (%s)", rsi, technical.RSISignal)},
		},
	}
}

// buildFinancialCard keeps fixed descriptive labels regardless of the
// filing values the pipeline computed. The computed statement text is
// exposed through the raw-report endpoint instead.
func buildFinancialCard(r *report.InternalReport) *ItemCard {
	descSrc := r.Report.Sections.FinancialAnalysis
	if descSrc == "" {
		descSrc = "재무제표 요약 정보가 없습니다."
	}

	return &ItemCard{
		ImageTitle:  ImageTitle{Title: "재무제표", Description: "기업 실적 기반 재무 흐름을 요약합니다."},
		Description: "LLM 한 문장 요약: " + OneLineSummary(descSrc, oneLineBudget),
		ItemList: []Item{
			{Title: "매출", Description: "텍스트 요약 기반으로 매출 흐름 설명"},
			{Title: "영업이익", Description: "텍스트 요약 기반으로 수익성 설명"},
			{Title: "순이익", Description: "당기순이익 및 추세 요약"},
			{Title: "현금흐름", Description: "영업/투자/재무 현금흐름 요약"},
			{Title: "재무 안정성", Description: "부채비율·유동비율 등 안정성 평가"},
		},
	}
}

func buildValuationCard(r *report.InternalReport) *ItemCard {
	metrics := r.RawData.Metrics

	desc := "PER·PBR·ROE 기준으로 현재 주가의 적정성을 평가합니다. 상세 수치는 아래 항목을 참고하세요."

	return &ItemCard{
		ImageTitle:  ImageTitle{Title: "밸류에이션", Description: "PER·PBR·ROE로 주가 적정성을 판단합니다."},
		Description: "LLM 한 문장 요약: " + desc,
		ItemList: []Item{
			{Title: "PER", Description: utils.FormatRatio(metrics.PER) + "배"},
			{Title: "PBR", Description: utils.FormatRatio(metrics.PBR) + "배"},
			{Title: "ROE", Description: utils.FormatRatio(metrics.ROE) + "%"},
			{Title: "EPS/BPS", Description: fmt.Sprintf("EPS %s / BPS %s", utils.FormatCount(metrics.EPS), utils.FormatCount(metrics.BPS))},
			{Title: "평가 요약", Description: "적정·저평가·고평가 여부는 리포트 본문 참조"},
		},
	}
}

func buildOpinionCard(r *report.InternalReport) *ItemCard {
	opinionText := r.Report.Sections.InvestmentOpinion

	opinion, targetPrice := ExtractOpinionAndTarget(opinionText)
	upside := CalcUpside(r.RawData.Basic.CurrentPrice, targetPrice)

	desc := OneLineSummary(opinionText, oneLineBudget)
	if desc == "" {
		desc = "투자의견 정보가 없습니다."
	}

	if opinion == "" {
		opinion = "N/A"
	}
	if targetPrice == "" {
		targetPrice = "N/A"
	}

	return &ItemCard{
		ImageTitle:  ImageTitle{Title: "투자의견", Description: "최종 투자 결론과 리스크를 제공합니다."},
		Description: "LLM 한 문장 요약: " + desc,
		ItemList: []Item{
			{Title: "종합 의견", Description: opinion},
			{Title: "목표 주가", Description: targetPrice},
			{Title: "Upside", Description: upside},
			{Title: "투자 리스크", Description: "리포트 본문에서 제시한 주요 리스크를 참고하세요."},
			{Title: "모니터링 포인트", Description: "업황·실적·신사업 진행 상황을 지속적으로 체크하세요."},
		},
	}
}

// -----------------------
// Text mining helpers
// -----------------------

// numberToken matches the first number-like run in free text.
var numberToken = regexp.MustCompile(`[\d,]+`)

// OneLineSummary truncates a narrative at the first sentence terminator
// (". ", a full-width period, or a newline) or at maxLen runes, whichever
// comes first, appending an ellipsis if the budget cut anything.
func OneLineSummary(text string, maxLen int) string {
	if text == "" {
		return ""
	}
	for _, sep := range []string{". ", "。", "\n"} {
		if idx := strings.Index(text, sep); idx >= 0 {
			text = text[:idx]
			break
		}
	}
	runes := []rune(text)
	if len(runes) > maxLen {
		return string(runes[:maxLen]) + "..."
	}
	return text
}

// ExtractOpinionAndTarget mines a free-text opinion for a BUY/HOLD/SELL
// label and a target price. The label is the first keyword hit in
// priority order BUY > HOLD > SELL, in either Korean or English. The
// target is the first number-like token anywhere in the text, so a date
// or footnote number can be misread as a price; callers accept that
// trade-off. Empty strings mean nothing was found.
func ExtractOpinionAndTarget(text string) (opinion string, targetPrice string) {
	if text == "" {
		return "", ""
	}

	lower := strings.ToLower(text)
	switch {
	case strings.Contains(text, "매수") || strings.Contains(lower, "buy"):
		opinion = "매수(BUY)"
	case strings.Contains(text, "보유") || strings.Contains(lower, "hold"):
		opinion = "보유(HOLD)"
	case strings.Contains(text, "매도") || strings.Contains(lower, "sell"):
		opinion = "매도(SELL)"
	}

	if token := numberToken.FindString(text); token != "" {
		if n, err := strconv.ParseInt(strings.ReplaceAll(token, ",", ""), 10, 64); err == nil {
			targetPrice = utils.FormatWon(n)
		}
	}

	return opinion, targetPrice
}

// CalcUpside computes (target − current) / current × 100 from the current
// price and a formatted target-price string. Returns "N/A" whenever
// either side is unresolvable.
func CalcUpside(currentPrice int64, targetPrice string) string {
	if currentPrice <= 0 || targetPrice == "" {
		return "N/A"
	}

	cleaned := strings.ReplaceAll(strings.TrimSuffix(targetPrice, "원"), ",", "")
	target, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return "N/A"
	}

	diff := float64(target-currentPrice) / float64(currentPrice) * 100.0
	sign := ""
	if diff >= 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.1f%%", sign, diff)
}
