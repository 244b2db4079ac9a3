package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/notice"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/database"
	"github.com/google/uuid"
)

type noticeRepository struct {
	db *database.DB
}

// Create implements notice.NoticeRepository.
func (r *noticeRepository) Create(ctx context.Context, n notice.Notice) (notice.Notice, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return notice.Notice{}, fmt.Errorf("failed to generate notice id: %w", err)
	}
	n.ID = id.String()

	query := `
		INSERT INTO notices (id, company_id, title, body, published_on, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	if err := q.QueryRow(ctx, query, n.ID, n.CompanyID, n.Title, n.Body, n.PublishedOn, n.CreatedBy).Scan(&n.CreatedAt); err != nil {
		return notice.Notice{}, fmt.Errorf("failed to create notice: %w", err)
	}

	return n, nil
}

// Delete implements notice.NoticeRepository.
func (r *noticeRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM notices WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete notice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notice.ErrNoticeNotFound
	}

	return nil
}

// List implements notice.NoticeRepository.
func (r *noticeRepository) List(ctx context.Context, companyID string) ([]notice.Notice, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, title, body, published_on, created_by, created_at
		FROM notices
		WHERE company_id = $1
		ORDER BY published_on DESC, created_at DESC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notices: %w", err)
	}
	defer rows.Close()

	var notices []notice.Notice
	for rows.Next() {
		var n notice.Notice
		if err := rows.Scan(&n.ID, &n.CompanyID, &n.Title, &n.Body, &n.PublishedOn, &n.CreatedBy, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notice: %w", err)
		}
		notices = append(notices, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notices: %w", err)
	}

	return notices, nil
}

func NewNoticeRepository(db *database.DB) notice.NoticeRepository {
	return &noticeRepository{db: db}
}
