package storage

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store SQLite 기반 분석 이력 저장소
type Store struct {
	db *sql.DB
}

const createAnalysesTable = `
CREATE TABLE IF NOT EXISTS analyses (
		"id" TEXT PRIMARY KEY,
		"email_hash" TEXT NOT NULL,
		"locale" TEXT NOT NULL,
		"gender" TEXT NOT NULL,
		"height" TEXT NOT NULL,
		"weight" TEXT NOT NULL,
		"checkout_id" TEXT,
		"status" TEXT NOT NULL,
		"report" TEXT,
		"has_style_image" INTEGER NOT NULL DEFAULT 0,
		"refunded" INTEGER NOT NULL DEFAULT 0,
		"error" TEXT,
		"created_at" DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_analyses_email_created ON analyses(email_hash, created_at DESC);`

// Open 데이터베이스 연결 및 테이블 생성
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("Open(): failed to open database: %w", err)
	}
	// :memory: 데이터베이스는 연결마다 별개이므로 단일 연결로 제한
	db.SetMaxOpenConns(1)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("Open(): failed to connect to database: %w", err)
	}
	if _, err := db.Exec(createAnalysesTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("Open(): failed to create analyses table: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Ping() error {
	return s.db.Ping()
}
