package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/namu-1002/stock-backend/pkg/core/calc"
	"github.com/namu-1002/stock-backend/pkg/core/market"
	"github.com/namu-1002/stock-backend/pkg/core/utils"
)

// Service runs the full report pipeline for one ticker: snapshot, metric
// resolution, then assembly into the InternalReport.
type Service struct {
	snapshots *market.SnapshotService
	resolver  *MetricsResolver
}

// NewService wires the snapshot provider and the metrics resolver.
func NewService(snapshots *market.SnapshotService, resolver *MetricsResolver) *Service {
	return &Service{snapshots: snapshots, resolver: resolver}
}

// GenerateRaw computes the internal report for a ticker or name. Returns
// nil when the instrument cannot be resolved or has no price history;
// there is never a partially built report.
func (s *Service) GenerateRaw(ticker string) *InternalReport {
	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		fmt.Println("[REPORT] empty ticker")
		return nil
	}

	snapshot := s.snapshots.Load(ticker)
	if snapshot == nil {
		fmt.Printf("[REPORT] snapshot not found for ticker=%q\n", ticker)
		return nil
	}

	metrics, financialText := s.resolver.Resolve(snapshot.Ticker, float64(snapshot.CurrentPrice))

	return Assemble(snapshot, metrics, financialText)
}

// Assemble merges a snapshot and a resolved metrics set into the internal
// report, generating the five narrative sections. Absent values render as
// an explicit "N/A" marker in the narrative, never as an empty string.
func Assemble(snapshot *market.Snapshot, metrics calc.Metrics, financialText string) *InternalReport {
	summaryText := fmt.Sprintf(
		"%s의 현재 주가는 %s입니다. 최근 1년 수익률은 %s 수준입니다.",
		snapshot.Name, utils.FormatWon(snapshot.CurrentPrice), utils.FormatPct(snapshot.Return1Y),
	)

	priceAnalysisText := fmt.Sprintf(
		"최근 1개월 수익률은 %s, 3개월 수익률은 %s, 1년 수익률은 %s입니다. "+
			"52주 고점은 %s, 52주 저점은 %s이며, 현재가는 52주 고점 대비 %s 위치에 있습니다.",
		utils.FormatPct(snapshot.Return1M), utils.FormatPct(snapshot.Return3M), utils.FormatPct(snapshot.Return1Y),
		utils.FormatWon(snapshot.High52W), utils.FormatWon(snapshot.Low52W), utils.FormatPct(snapshot.FromHigh),
	)

	financialAnalysisText := "재무제표(매출, 영업이익, 순이익 등)에 대한 상세 분석은 " +
		"향후 DART 재무제표 데이터를 연동해 확장할 수 있습니다."

	valuationText := fmt.Sprintf(
		"PER·PBR·ROE와 같은 밸류에이션 지표를 기반으로 현재 주가의 상대적인 수준을 평가할 수 있습니다. "+
			"현재 PER은 %s, PBR은 %s, ROE는 %s 입니다.",
		utils.FormatRatio(metrics.PER), utils.FormatRatio(metrics.PBR), utils.FormatRatio(metrics.ROE),
	)

	investmentOpinionText := "본 리포트는 참고용 정보이며, 개별 투자자의 위험 성향과 투자 기간을 " +
		"함께 고려해 최종 판단을 내리는 것이 좋습니다. " +
		"구체적인 매수·매도 의견과 목표 주가는 별도로 제시하지 않습니다."

	return &InternalReport{
		ID:          uuid.NewString(),
		Ticker:      snapshot.Ticker,
		Name:        snapshot.Name,
		GeneratedAt: time.Now().Format("2006-01-02 15:04:05"),
		Report: Body{
			Title:    fmt.Sprintf("%s 투자 리포트", snapshot.Name),
			FullText: "",
			Sections: Sections{
				Summary:           summaryText,
				PriceAnalysis:     priceAnalysisText,
				FinancialAnalysis: financialAnalysisText,
				Valuation:         valuationText,
				InvestmentOpinion: investmentOpinionText,
			},
			HasFinancials: metrics.HasAny(),
		},
		RawData: RawData{
			Basic: Basic{
				Ticker:        snapshot.Ticker,
				Name:          snapshot.Name,
				CurrentPrice:  snapshot.CurrentPrice,
				MarketCap:     snapshot.MarketCap,
				MarketCapRank: snapshot.MarketCapRank,
			},
			PriceTrend: PriceTrend{
				OneMonth:   snapshot.Return1M,
				ThreeMonth: snapshot.Return3M,
				OneYear:    snapshot.Return1Y,
				High52W:    snapshot.High52W,
				Low52W:     snapshot.Low52W,
				FromHigh:   snapshot.FromHigh,
			},
			Metrics:       metrics,
			Technical:     Technical{RSI: nil, RSISignal: "N/A"},
			FinancialText: financialText,
		},
	}
}
