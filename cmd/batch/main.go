// The batch binary precomputes one report per listed instrument and
// stores the rendered skill responses, so the conversational frontend can
// serve cached answers when live generation is too slow.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/namu-1002/stock-backend/config"
	reportapi "github.com/namu-1002/stock-backend/pkg/api/report"
	"github.com/namu-1002/stock-backend/pkg/core/filing"
	"github.com/namu-1002/stock-backend/pkg/core/market"
	"github.com/namu-1002/stock-backend/pkg/core/report"
	"github.com/namu-1002/stock-backend/pkg/core/store"
)

func main() {
	godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "stock-batch",
		Short: "Daily report cache batch driver",
	}
	rootCmd.AddCommand(newCacheCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Printf("[FATAL] %v\n", err)
		os.Exit(1)
	}
}

func newCacheCmd() *cobra.Command {
	var delayMs int
	var saveInterval int

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Generate and store a report for every listed instrument",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load("config/app.yaml")
			if delayMs == 0 {
				delayMs = cfg.Batch.DelayMs
			}
			if saveInterval == 0 {
				saveInterval = cfg.Batch.SaveInterval
			}
			return runCache(cfg, delayMs, saveInterval)
		},
	}

	cmd.Flags().IntVar(&delayMs, "delay", 0, "delay between instruments in milliseconds")
	cmd.Flags().IntVar(&saveInterval, "save-interval", 0, "instruments per checkpoint")
	return cmd
}

func runCache(cfg config.Config, delayMs, saveInterval int) error {
	ctx := context.Background()

	// Postgres is optional; without DATABASE_URL the cache degrades to
	// per-date JSON files.
	if os.Getenv("DATABASE_URL") != "" {
		if err := store.InitDB(ctx); err != nil {
			return fmt.Errorf("db init failed: %w", err)
		}
		defer store.Close()
		fmt.Println("[BATCH] db cache enabled")
	} else {
		fmt.Println("[BATCH] DATABASE_URL not set → file cache only")
	}
	cache := store.NewReportCache(store.GetPool(), cfg.Cache.Dir)

	synonyms := filing.DefaultSynonyms()
	if loaded, err := filing.LoadSynonyms(cfg.Resources.Synonyms); err == nil {
		synonyms = loaded
	}

	var filingClient filing.Client
	if dartKey := os.Getenv("DART_API_KEY"); dartKey != "" {
		filingClient = filing.NewHTTPClient(dartKey)
	} else {
		filingClient = filing.NewNotConfigured()
	}

	quotes := market.NewQuoteClient()
	snapshots := market.NewSnapshotService(quotes)
	resolver := report.NewMetricsResolver(quotes, filing.NewLoader(filingClient), synonyms)
	reportapi.InitHandler(report.NewService(snapshots, resolver))

	listing, err := quotes.Listing()
	if err != nil {
		return fmt.Errorf("listing fetch failed: %w", err)
	}
	fmt.Printf("[BATCH] 전체 종목 수: %d개\n", len(listing))

	today := time.Now().Format("2006-01-02")

	remaining := make([]market.ListingRow, 0, len(listing))
	for _, row := range listing {
		if !cache.Exists(ctx, row.Code, today) {
			remaining = append(remaining, row)
		}
	}
	fmt.Printf("[BATCH] 전체 %d개 중 이미 캐시 %d개, 남은 작업 %d개\n",
		len(listing), len(listing)-len(remaining), len(remaining))

	processed, success, errors := 0, 0, 0
	for _, row := range remaining {
		processed++
		fmt.Printf("[%d/%d] %s(%s) 처리 중...\n", processed, len(remaining), row.Name, row.Code)

		resp := reportapi.Generate(row.Code)
		if err := cache.Save(ctx, row.Code, today, resp); err != nil {
			errors++
			fmt.Printf("[ERROR] %s: %v\n", row.Code, err)
			continue
		}
		success++

		if processed%saveInterval == 0 {
			fmt.Printf("[PROGRESS] 처리 %d/%d (성공 %d, 실패 %d)\n",
				processed, len(remaining), success, errors)
			// 중간 체크포인트마다 외부 API 부담을 줄여준다.
			time.Sleep(500 * time.Millisecond)
		}

		time.Sleep(time.Duration(delayMs) * time.Millisecond)
	}

	fmt.Printf("[BATCH] 완료: 성공 %d, 실패 %d\n", success, errors)
	return nil
}
