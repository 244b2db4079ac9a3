package ticket

import "context"

type TicketService interface {
	Create(ctx context.Context, req CreateTicketRequest) (TicketResponse, error)
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (TicketResponse, error)
	List(ctx context.Context, filter TicketFilter) (ListTicketResponse, error)
	ListMine(ctx context.Context, filter TicketFilter) (ListTicketResponse, error)
}
