package ticket

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/ticket"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/paginate"
)

type TicketServiceImpl struct {
	ticket.TicketRepository
	now func() time.Time
}

func NewTicketService(ticketRepo ticket.TicketRepository) ticket.TicketService {
	return &TicketServiceImpl{
		TicketRepository: ticketRepo,
		now:              time.Now,
	}
}

// Create implements ticket.TicketService.
func (s *TicketServiceImpl) Create(ctx context.Context, req ticket.CreateTicketRequest) (ticket.TicketResponse, error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return ticket.TicketResponse{}, err
	}
	if claims.EmployeeID == "" {
		return ticket.TicketResponse{}, auth.ErrEmployeeRequired
	}

	if err := req.Validate(); err != nil {
		return ticket.TicketResponse{}, err
	}

	t, err := s.TicketRepository.Create(ctx, ticket.Ticket{
		CompanyID:   claims.CompanyID,
		EmployeeID:  claims.EmployeeID,
		Subject:     strings.TrimSpace(req.Subject),
		Description: strings.TrimSpace(req.Description),
		Priority:    ticket.Priority(req.Priority),
		Status:      ticket.StatusOpen,
	})
	if err != nil {
		return ticket.TicketResponse{}, err
	}

	slog.Info("ticket created", "ticket_id", t.ID, "employee_id", t.EmployeeID, "priority", t.Priority)

	return toTicketResponse(t), nil
}

// UpdateStatus implements ticket.TicketService.
func (s *TicketServiceImpl) UpdateStatus(ctx context.Context, req ticket.UpdateStatusRequest) (ticket.TicketResponse, error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return ticket.TicketResponse{}, err
	}
	if !claims.IsManager() {
		return ticket.TicketResponse{}, auth.ErrManagerAccessRequired
	}

	if err := req.Validate(); err != nil {
		return ticket.TicketResponse{}, err
	}

	t, err := s.TicketRepository.GetByID(ctx, req.ID, claims.CompanyID)
	if err != nil {
		return ticket.TicketResponse{}, err
	}

	next := ticket.Status(req.Status)
	if !ticket.CanTransition(t.Status, next) {
		return ticket.TicketResponse{}, fmt.Errorf("%w: %s to %s", ticket.ErrInvalidTicketTransition, t.Status, next)
	}

	if err := s.TicketRepository.UpdateStatus(ctx, t.ID, claims.CompanyID, t.Status, next); err != nil {
		return ticket.TicketResponse{}, err
	}

	slog.Info("ticket status changed", "ticket_id", t.ID, "from", t.Status, "to", next, "changed_by", claims.UserID)

	t.Status = next
	t.UpdatedAt = s.now()
	return toTicketResponse(t), nil
}

// List implements ticket.TicketService.
func (s *TicketServiceImpl) List(ctx context.Context, filter ticket.TicketFilter) (ticket.ListTicketResponse, error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return ticket.ListTicketResponse{}, err
	}
	if !claims.IsManager() {
		return ticket.ListTicketResponse{}, auth.ErrManagerAccessRequired
	}

	return s.list(ctx, claims.CompanyID, nil, filter)
}

// ListMine implements ticket.TicketService.
func (s *TicketServiceImpl) ListMine(ctx context.Context, filter ticket.TicketFilter) (ticket.ListTicketResponse, error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return ticket.ListTicketResponse{}, err
	}
	if claims.EmployeeID == "" {
		return ticket.ListTicketResponse{}, auth.ErrEmployeeRequired
	}

	return s.list(ctx, claims.CompanyID, &claims.EmployeeID, filter)
}

func (s *TicketServiceImpl) list(ctx context.Context, companyID string, employeeID *string, filter ticket.TicketFilter) (ticket.ListTicketResponse, error) {
	if err := filter.Validate(); err != nil {
		return ticket.ListTicketResponse{}, err
	}

	tickets, err := s.TicketRepository.List(ctx, companyID, employeeID)
	if err != nil {
		return ticket.ListTicketResponse{}, fmt.Errorf("failed to list tickets: %w", err)
	}

	pred := paginate.All(
		paginate.Contains(func(t ticket.Ticket) string { return t.Subject }, value(filter.Query)),
		paginate.Equals(func(t ticket.Ticket) string { return string(t.Status) }, value(filter.Status)),
		paginate.Equals(func(t ticket.Ticket) string { return string(t.Priority) }, value(filter.Priority)),
		paginate.Within(func(t ticket.Ticket) time.Time { return t.CreatedAt }, filter.From, filter.To),
	)

	sorted := paginate.Sort(paginate.Filter(tickets, pred), sortBy(filter.SortBy), filter.SortOrder == "desc")
	page := paginate.Map(paginate.Apply(paginate.State{Page: filter.Page, PageSize: filter.Limit}, sorted, nil), toTicketResponse)

	return ticket.ListTicketResponse{
		TotalCount: page.TotalItems,
		Page:       page.Page,
		Limit:      page.PageSize,
		TotalPages: page.TotalPages,
		HasPrev:    page.HasPrev,
		HasNext:    page.HasNext,
		Tickets:    page.Items,
	}, nil
}

var priorityRank = map[ticket.Priority]int{
	ticket.PriorityLow:    1,
	ticket.PriorityMedium: 2,
	ticket.PriorityHigh:   3,
}

func sortBy(field string) func(a, b ticket.Ticket) int {
	switch field {
	case "priority":
		return func(a, b ticket.Ticket) int { return cmp.Compare(priorityRank[a.Priority], priorityRank[b.Priority]) }
	case "status":
		return func(a, b ticket.Ticket) int { return cmp.Compare(a.Status, b.Status) }
	default:
		return func(a, b ticket.Ticket) int { return a.CreatedAt.Compare(b.CreatedAt) }
	}
}

func toTicketResponse(t ticket.Ticket) ticket.TicketResponse {
	return ticket.TicketResponse{
		ID:           t.ID,
		EmployeeID:   t.EmployeeID,
		EmployeeName: t.EmployeeName,
		Subject:      t.Subject,
		Description:  t.Description,
		Priority:     string(t.Priority),
		Status:       string(t.Status),
		CreatedAt:    t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    t.UpdatedAt.Format(time.RFC3339),
	}
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
