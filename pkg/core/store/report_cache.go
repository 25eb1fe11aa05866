package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/namu-1002/stock-backend/pkg/core/kakao"
)

// ReportCache stores rendered skill responses, one per (code, date).
// Hybrid layout: Postgres when a pool is configured, JSON files under a
// per-date directory otherwise.
type ReportCache struct {
	pool    *pgxpool.Pool
	fileDir string
}

// NewReportCache creates a report cache. If pool is nil, it falls back to
// a file cache in dir; an empty dir defaults to .cache/reports.
func NewReportCache(pool *pgxpool.Pool, dir string) *ReportCache {
	if pool == nil && dir == "" {
		dir = filepath.Join(".cache", "reports")
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Printf("[WARNING] check ReportCache dir: %v\n", err)
		}
	}
	return &ReportCache{pool: pool, fileDir: dir}
}

// Entry is one cached daily report.
type Entry struct {
	Code      string              `json:"code"`
	TradeDate string              `json:"trade_date"`
	Data      kakao.SkillResponse `json:"data"`
	CachedAt  time.Time           `json:"cached_at"`
}

// Save upserts one report for (code, date).
func (c *ReportCache) Save(ctx context.Context, code, date string, resp kakao.SkillResponse) error {
	dataJSON, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if c.pool != nil {
		query := `
			INSERT INTO daily_reports (code, trade_date, data)
			VALUES ($1, $2, $3)
			ON CONFLICT (code, trade_date)
			DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
		`
		if _, err := c.pool.Exec(ctx, query, code, date, dataJSON); err != nil {
			return fmt.Errorf("failed to save report to db: %w", err)
		}
		return nil
	}

	entry := Entry{Code: code, TradeDate: date, Data: resp, CachedAt: time.Now()}
	fileBytes, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}
	path := c.entryPath(code, date)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(path, fileBytes, 0644); err != nil {
		return fmt.Errorf("failed to save report to file cache: %w", err)
	}
	return nil
}

// Get returns the cached report for (code, date), or nil on a miss.
func (c *ReportCache) Get(ctx context.Context, code, date string) (*kakao.SkillResponse, error) {
	if c.pool != nil {
		query := `SELECT data FROM daily_reports WHERE code = $1 AND trade_date = $2 LIMIT 1`
		var dataJSON []byte
		if err := c.pool.QueryRow(ctx, query, code, date).Scan(&dataJSON); err != nil {
			return nil, nil // cache miss
		}
		var resp kakao.SkillResponse
		if err := json.Unmarshal(dataJSON, &resp); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cached report: %w", err)
		}
		return &resp, nil
	}

	bytes, err := os.ReadFile(c.entryPath(code, date))
	if err != nil {
		return nil, nil // not found
	}
	var entry Entry
	if err := json.Unmarshal(bytes, &entry); err != nil {
		return nil, err
	}
	return &entry.Data, nil
}

// Exists reports whether a report for (code, date) is already cached.
func (c *ReportCache) Exists(ctx context.Context, code, date string) bool {
	if c.pool != nil {
		query := `SELECT 1 FROM daily_reports WHERE code = $1 AND trade_date = $2 LIMIT 1`
		var exists int
		return c.pool.QueryRow(ctx, query, code, date).Scan(&exists) == nil
	}

	_, err := os.Stat(c.entryPath(code, date))
	return err == nil
}

func (c *ReportCache) entryPath(code, date string) string {
	return filepath.Join(c.fileDir, date, code+".json")
}
