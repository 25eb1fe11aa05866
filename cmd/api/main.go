package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/namu-1002/stock-backend/config"
	reportapi "github.com/namu-1002/stock-backend/pkg/api/report"
	"github.com/namu-1002/stock-backend/pkg/core/filing"
	"github.com/namu-1002/stock-backend/pkg/core/market"
	"github.com/namu-1002/stock-backend/pkg/core/report"
)

func main() {
	godotenv.Load()

	cfg := config.Load("config/app.yaml")

	// Synonym table: resource file override, hardcoded fallback.
	synonyms := filing.DefaultSynonyms()
	if loaded, err := filing.LoadSynonyms(cfg.Resources.Synonyms); err != nil {
		fmt.Printf("[WARNING] synonym resource not loaded: %v\n", err)
		fmt.Println("  Falling back to built-in synonym table")
	} else {
		synonyms = loaded
	}

	// Filing capability: configured once at process start, injected
	// explicitly into the resolver.
	var filingClient filing.Client
	if dartKey := os.Getenv("DART_API_KEY"); dartKey != "" {
		filingClient = filing.NewHTTPClient(dartKey)
		fmt.Println("[MAIN] ✅ DART 모듈 초기화 완료")
	} else {
		filingClient = filing.NewNotConfigured()
		fmt.Println("[MAIN] ⚠️ DART_API_KEY 미설정 → 재무제표 보강 비활성화")
	}

	quotes := market.NewQuoteClient()
	snapshots := market.NewSnapshotService(quotes)
	resolver := report.NewMetricsResolver(quotes, filing.NewLoader(filingClient), synonyms)
	service := report.NewService(snapshots, resolver)

	reportapi.InitHandler(service)
	http.HandleFunc("/api/stocks/report", reportapi.HandleReport)
	http.HandleFunc("/api/stocks/report/raw", reportapi.HandleRawReport)
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"status": "ok", "message": "backend is running"}`)
	})

	fmt.Printf("API server starting on %s...\n", cfg.Server.Addr)
	fmt.Println("  - POST /api/stocks/report")
	fmt.Println("  - POST /api/stocks/report/raw  (debug, ?format=html)")

	if err := http.ListenAndServe(cfg.Server.Addr, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
