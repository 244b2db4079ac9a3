package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/ticket"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ticketRepository struct {
	db *database.DB
}

const ticketColumns = `
	t.id, t.company_id, t.employee_id, t.subject, t.description, t.priority, t.status,
	t.created_at, t.updated_at, e.full_name
`

func scanTicket(row pgx.Row) (ticket.Ticket, error) {
	var t ticket.Ticket
	err := row.Scan(
		&t.ID, &t.CompanyID, &t.EmployeeID, &t.Subject, &t.Description, &t.Priority, &t.Status,
		&t.CreatedAt, &t.UpdatedAt, &t.EmployeeName,
	)
	return t, err
}

// Create implements ticket.TicketRepository.
func (r *ticketRepository) Create(ctx context.Context, t ticket.Ticket) (ticket.Ticket, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return ticket.Ticket{}, fmt.Errorf("failed to generate ticket id: %w", err)
	}
	t.ID = id.String()

	query := `
		INSERT INTO tickets (id, company_id, employee_id, subject, description, priority, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query, t.ID, t.CompanyID, t.EmployeeID, t.Subject, t.Description, t.Priority, t.Status).
		Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return ticket.Ticket{}, fmt.Errorf("failed to create ticket: %w", err)
	}

	return t, nil
}

// GetByID implements ticket.TicketRepository.
func (r *ticketRepository) GetByID(ctx context.Context, id string, companyID string) (ticket.Ticket, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + ticketColumns + `
		FROM tickets t
		JOIN employees e ON e.id = t.employee_id
		WHERE t.id = $1 AND t.company_id = $2
	`

	t, err := scanTicket(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ticket.Ticket{}, ticket.ErrTicketNotFound
		}
		return ticket.Ticket{}, fmt.Errorf("failed to get ticket: %w", err)
	}

	return t, nil
}

// UpdateStatus implements ticket.TicketRepository.
func (r *ticketRepository) UpdateStatus(ctx context.Context, id string, companyID string, from ticket.Status, to ticket.Status) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE tickets SET status = $4, updated_at = NOW() WHERE id = $1 AND company_id = $2 AND status = $3`,
		id, companyID, from, to,
	)
	if err != nil {
		return fmt.Errorf("failed to update ticket status: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var current ticket.Status
	err = q.QueryRow(ctx, `SELECT status FROM tickets WHERE id = $1 AND company_id = $2`, id, companyID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ticket.ErrTicketNotFound
		}
		return fmt.Errorf("failed to check ticket status: %w", err)
	}

	return fmt.Errorf("%w: %s to %s", ticket.ErrInvalidTicketTransition, current, to)
}

// List implements ticket.TicketRepository.
func (r *ticketRepository) List(ctx context.Context, companyID string, employeeID *string) ([]ticket.Ticket, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + ticketColumns + `
		FROM tickets t
		JOIN employees e ON e.id = t.employee_id
		WHERE t.company_id = $1 AND ($2::uuid IS NULL OR t.employee_id = $2::uuid)
		ORDER BY t.created_at DESC
	`

	rows, err := q.Query(ctx, query, companyID, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	defer rows.Close()

	var tickets []ticket.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tickets: %w", err)
	}

	return tickets, nil
}

func NewTicketRepository(db *database.DB) ticket.TicketRepository {
	return &ticketRepository{db: db}
}
