// Package storage 提供庫存記錄的讀取與寫入（SQLite）
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"noshnurture/internal/pkg/common"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"go.uber.org/zap"
)

const schema = `
CREATE TABLE IF NOT EXISTS inventory_items (
	seq               INTEGER PRIMARY KEY AUTOINCREMENT,
	id                TEXT NOT NULL UNIQUE,
	user_id           TEXT NOT NULL,
	product_name      TEXT NOT NULL,
	tags              TEXT,
	days_until_expiry INTEGER NOT NULL,
	created_at        DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_inventory_items_user ON inventory_items(user_id, seq);
`

// SQLiteInventory 以 SQLite 儲存使用者庫存
type SQLiteInventory struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteInventory 開啟（必要時建立）資料庫並建立資料表
func NewSQLiteInventory(ctx context.Context, dbPath string) (*SQLiteInventory, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("inventory db path is required")
	}

	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite 單一連線即可
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	common.LogInfo("庫存資料庫已開啟", zap.String("path", dbPath))

	return &SQLiteInventory{db: db, now: time.Now}, nil
}

// ListByUser 依寫入順序返回使用者的庫存記錄
func (s *SQLiteInventory) ListByUser(ctx context.Context, userID string) ([]common.InventoryRecord, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, common.NewValidationError("user_id is required")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT product_name, tags, days_until_expiry FROM inventory_items WHERE user_id = ? ORDER BY seq`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer rows.Close()

	records := []common.InventoryRecord{}
	for rows.Next() {
		var (
			rec  common.InventoryRecord
			tags sql.NullString
		)
		if err := rows.Scan(&rec.ProductName, &tags, &rec.DaysUntilExpiry); err != nil {
			return nil, fmt.Errorf("failed to scan inventory row: %w", err)
		}
		rec.Tags = []string{}
		if tags.Valid && tags.String != "" {
			if err := json.Unmarshal([]byte(tags.String), &rec.Tags); err != nil {
				return nil, fmt.Errorf("failed to decode tags for %q: %w", rec.ProductName, err)
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate inventory rows: %w", err)
	}

	return records, nil
}

// Add 新增一筆庫存記錄並返回 id
func (s *SQLiteInventory) Add(ctx context.Context, userID string, rec common.InventoryRecord) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", common.NewValidationError("user_id is required")
	}
	if strings.TrimSpace(rec.ProductName) == "" {
		return "", common.NewValidationError("product_name is required")
	}

	tags := rec.Tags
	if tags == nil {
		tags = []string{}
	}
	encoded, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("failed to encode tags: %w", err)
	}

	id := uuid.New().String()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO inventory_items (id, user_id, product_name, tags, days_until_expiry, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, userID, rec.ProductName, string(encoded), rec.DaysUntilExpiry, s.now().UTC())
	if err != nil {
		return "", fmt.Errorf("failed to insert inventory item: %w", err)
	}

	common.LogDebug("新增庫存記錄", zap.String("user_id", userID), zap.String("id", id))
	return id, nil
}

// Ping 檢查資料庫連線
func (s *SQLiteInventory) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close 關閉資料庫
func (s *SQLiteInventory) Close() error {
	return s.db.Close()
}
