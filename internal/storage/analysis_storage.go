package storage

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"AJY_Stylist/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

var ErrNotFound = errors.New("analysis not found")

// EmailHash 이메일 원문 대신 저장하는 식별자 (소문자, 공백 제거 후 blake2b-256)
func EmailHash(email string) string {
	sum := blake2b.Sum256([]byte(strings.ToLower(strings.TrimSpace(email))))
	return hex.EncodeToString(sum[:])
}

// SaveAnalysis ID, 생성 시각이 비어 있으면 채워서 저장
func (s *Store) SaveAnalysis(ctx context.Context, a *models.Analysis) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO analyses(id, email_hash, locale, gender, height, weight, checkout_id,
			status, report, has_style_image, refunded, error, created_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.EmailHash, a.Locale, a.Gender, a.Height, a.Weight, a.CheckoutID,
		a.Status, a.Report, a.HasStyleImage, a.Refunded, a.Error, a.CreatedAt,
	)
	return err
}

// ListAnalyses 최신순 목록 (리포트 본문 제외)
func (s *Store) ListAnalyses(ctx context.Context, emailHash string, limit int) ([]models.Analysis, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, locale, gender, height, weight, checkout_id, status, has_style_image, refunded, error, created_at
		FROM analyses
		WHERE email_hash = ?
		ORDER BY created_at DESC
		LIMIT ?`, emailHash, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	analyses := []models.Analysis{}
	for rows.Next() {
		var a models.Analysis
		var checkoutID, errMsg sql.NullString
		if err := rows.Scan(&a.ID, &a.Locale, &a.Gender, &a.Height, &a.Weight, &checkoutID,
			&a.Status, &a.HasStyleImage, &a.Refunded, &errMsg, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.CheckoutID = checkoutID.String
		a.Error = errMsg.String
		analyses = append(analyses, a)
	}
	return analyses, rows.Err()
}

// GetAnalysis 다른 사용자의 이력은 ErrNotFound
func (s *Store) GetAnalysis(ctx context.Context, id, emailHash string) (*models.Analysis, error) {
	var a models.Analysis
	var checkoutID, report, errMsg sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, locale, gender, height, weight, checkout_id, status, report, has_style_image, refunded, error, created_at
		FROM analyses
		WHERE id = ? AND email_hash = ?`, id, emailHash).
		Scan(&a.ID, &a.Locale, &a.Gender, &a.Height, &a.Weight, &checkoutID,
			&a.Status, &report, &a.HasStyleImage, &a.Refunded, &errMsg, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	a.CheckoutID = checkoutID.String
	a.Report = report.String
	a.Error = errMsg.String
	return &a, nil
}
