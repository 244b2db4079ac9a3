package ticket

import "context"

type TicketRepository interface {
	Create(ctx context.Context, t Ticket) (Ticket, error)
	GetByID(ctx context.Context, id string, companyID string) (Ticket, error)

	// UpdateStatus moves a ticket from one status to another. It returns
	// ErrInvalidTicketTransition when the ticket is no longer in from.
	UpdateStatus(ctx context.Context, id string, companyID string, from Status, to Status) error

	// List returns the company's tickets, or one employee's when employeeID is set
	List(ctx context.Context, companyID string, employeeID *string) ([]Ticket, error)
}
