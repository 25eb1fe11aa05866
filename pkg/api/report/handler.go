// Package report exposes the report pipeline over HTTP and guards the
// wire contract: whatever happens upstream, the caller always receives a
// well-formed skill response.
package report

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/namu-1002/stock-backend/pkg/core/kakao"
	corereport "github.com/namu-1002/stock-backend/pkg/core/report"
	"github.com/namu-1002/stock-backend/pkg/core/utils"
)

var service *corereport.Service

// InitHandler wires the report service into the package-level handlers.
func InitHandler(svc *corereport.Service) {
	service = svc
}

// ReportRequest is the transport request body.
type ReportRequest struct {
	Ticker string `json:"ticker"`
}

// Generate runs the pipeline for one ticker and always returns a valid
// skill response: success cards, the no-data text, or the apology text.
// Panics anywhere in the pipeline are converted into the error response;
// no internal detail leaks into the output. The batch driver reuses this
// entry point so cached reports match the live endpoint exactly.
func Generate(ticker string) (resp kakao.SkillResponse) {
	defer func() {
		if rec := recover(); rec != nil {
			fmt.Printf("[REPORT] pipeline failure for %q: %v\n", ticker, rec)
			resp = kakao.BuildErrorResponse()
		}
	}()

	raw := service.GenerateRaw(ticker)
	if raw == nil {
		return kakao.BuildNoDataResponse(ticker)
	}
	return kakao.BuildSuccessResponse(raw)
}

// HandleReport serves POST /api/stocks/report.
func HandleReport(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// A garbled request still gets a valid payload, not a bare 400.
		writeSkill(w, kakao.BuildNoDataResponse(""))
		return
	}

	writeSkill(w, Generate(req.Ticker))
}

// HandleRawReport serves POST /api/stocks/report/raw: the internal report
// as JSON, or the filing text rendered as HTML with ?format=html. Debug
// surface, not part of the skill contract.
func HandleRawReport(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	raw := service.GenerateRaw(req.Ticker)
	if raw == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, "{}")
		return
	}

	if r.URL.Query().Get("format") == "html" {
		html, err := utils.RenderHTML(raw.RawData.FinancialText)
		if err != nil {
			http.Error(w, fmt.Sprintf("render failed: %v", err), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, html)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(raw)
}

// writeSkill is the outermost contract guard. If encoding the response
// somehow fails, a hand-built apology text block goes out instead, so the
// schema stays intact on every path.
func writeSkill(w http.ResponseWriter, resp kakao.SkillResponse) {
	payload, err := json.Marshal(resp)
	if err != nil {
		fmt.Printf("[REPORT] response encoding failed: %v\n", err)
		payload, _ = json.Marshal(kakao.BuildErrorResponse())
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write(payload)
}

func setCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}
