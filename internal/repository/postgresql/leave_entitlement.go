package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/database"
)

type leaveEntitlementRepository struct {
	db *database.DB
}

// ListByCompany implements leave.EntitlementRepository.
func (r *leaveEntitlementRepository) ListByCompany(ctx context.Context, companyID string) ([]leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT leave_type, total_days
		FROM leave_entitlements
		WHERE company_id = $1
		ORDER BY leave_type
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave entitlements: %w", err)
	}
	defer rows.Close()

	var balances []leave.Balance
	for rows.Next() {
		var b leave.Balance
		if err := rows.Scan(&b.Type, &b.Total); err != nil {
			return nil, fmt.Errorf("failed to scan leave entitlement: %w", err)
		}
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave entitlements: %w", err)
	}

	return balances, nil
}

func NewLeaveEntitlementRepository(db *database.DB) leave.EntitlementRepository {
	return &leaveEntitlementRepository{db: db}
}
