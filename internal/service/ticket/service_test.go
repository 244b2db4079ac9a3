package ticket

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/ticket"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	tickets []ticket.Ticket
	clock   time.Time

	// afterGet runs once GetByID has read a row, standing in for another request.
	afterGet func(id string)
}

func (f *fakeRepo) Create(ctx context.Context, t ticket.Ticket) (ticket.Ticket, error) {
	t.ID = fmt.Sprintf("t-%d", len(f.tickets)+1)
	f.clock = f.clock.Add(24 * time.Hour)
	t.CreatedAt, t.UpdatedAt = f.clock, f.clock
	f.tickets = append(f.tickets, t)
	return t, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string, company string) (ticket.Ticket, error) {
	for _, t := range f.tickets {
		if t.ID == id && t.CompanyID == company {
			if f.afterGet != nil {
				f.afterGet(id)
			}
			return t, nil
		}
	}
	return ticket.Ticket{}, ticket.ErrTicketNotFound
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id string, company string, from ticket.Status, to ticket.Status) error {
	for i, t := range f.tickets {
		if t.ID == id && t.CompanyID == company {
			if t.Status != from {
				return ticket.ErrInvalidTicketTransition
			}
			f.tickets[i].Status = to
			return nil
		}
	}
	return ticket.ErrTicketNotFound
}

func (f *fakeRepo) set(id string, status ticket.Status) {
	for i := range f.tickets {
		if f.tickets[i].ID == id {
			f.tickets[i].Status = status
		}
	}
}

func (f *fakeRepo) List(ctx context.Context, company string, employeeID *string) ([]ticket.Ticket, error) {
	var out []ticket.Ticket
	for _, t := range f.tickets {
		if employeeID == nil || t.EmployeeID == *employeeID {
			out = append(out, t)
		}
	}
	return out, nil
}

func as(t *testing.T, employeeID string, role auth.Role) context.Context {
	t.Helper()
	ctx, err := jwt.NewContext(context.Background(), auth.Claims{
		UserID: "user-" + employeeID, EmployeeID: employeeID, CompanyID: "company-1", Role: role,
	})
	require.NoError(t, err)
	return ctx
}

func newService() (ticket.TicketService, *fakeRepo) {
	repo := &fakeRepo{clock: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	return NewTicketService(repo), repo
}

func TestCreate_StartsOpen(t *testing.T) {
	svc, _ := newService()

	resp, err := svc.Create(as(t, "emp-1", auth.RoleEmployee), ticket.CreateTicketRequest{
		Subject: " Laptop ", Description: "Screen flickers",
	})
	require.NoError(t, err)
	assert.Equal(t, "open", resp.Status)
	assert.Equal(t, "medium", resp.Priority)
	assert.Equal(t, "Laptop", resp.Subject)
}

func TestUpdateStatus_Transitions(t *testing.T) {
	svc, _ := newService()
	created, err := svc.Create(as(t, "emp-1", auth.RoleEmployee), ticket.CreateTicketRequest{
		Subject: "VPN", Description: "cannot connect", Priority: "high",
	})
	require.NoError(t, err)
	manager := as(t, "emp-m", auth.RoleManager)

	_, err = svc.UpdateStatus(manager, ticket.UpdateStatusRequest{ID: created.ID, Status: "resolved"})
	assert.ErrorIs(t, err, ticket.ErrInvalidTicketTransition)

	for _, next := range []string{"in_progress", "resolved", "closed"} {
		resp, err := svc.UpdateStatus(manager, ticket.UpdateStatusRequest{ID: created.ID, Status: next})
		require.NoError(t, err)
		assert.Equal(t, next, resp.Status)
	}

	_, err = svc.UpdateStatus(manager, ticket.UpdateStatusRequest{ID: created.ID, Status: "open"})
	assert.ErrorIs(t, err, ticket.ErrInvalidTicketTransition)

	_, err = svc.UpdateStatus(manager, ticket.UpdateStatusRequest{ID: created.ID, Status: "done"})
	assert.Error(t, err)

	_, err = svc.UpdateStatus(as(t, "emp-1", auth.RoleEmployee), ticket.UpdateStatusRequest{ID: created.ID, Status: "closed"})
	assert.ErrorIs(t, err, auth.ErrManagerAccessRequired)
}

func TestUpdateStatus_LosesToConcurrentChange(t *testing.T) {
	svc, repo := newService()
	created, err := svc.Create(as(t, "emp-1", auth.RoleEmployee), ticket.CreateTicketRequest{
		Subject: "Printer", Description: "paper jam",
	})
	require.NoError(t, err)
	repo.afterGet = func(id string) { repo.set(id, ticket.StatusClosed) }

	_, err = svc.UpdateStatus(as(t, "emp-m", auth.RoleManager), ticket.UpdateStatusRequest{ID: created.ID, Status: "in_progress"})
	assert.ErrorIs(t, err, ticket.ErrInvalidTicketTransition)
	assert.Equal(t, ticket.StatusClosed, repo.tickets[0].Status)
}

func TestList_Filters(t *testing.T) {
	svc, _ := newService()
	requests := []struct {
		employee string
		req      ticket.CreateTicketRequest
	}{
		{"emp-1", ticket.CreateTicketRequest{Subject: "VPN down", Description: "x", Priority: "high"}},
		{"emp-1", ticket.CreateTicketRequest{Subject: "New mouse", Description: "x", Priority: "low"}},
		{"emp-2", ticket.CreateTicketRequest{Subject: "VPN slow", Description: "x", Priority: "medium"}},
	}
	for _, r := range requests {
		_, err := svc.Create(as(t, r.employee, auth.RoleEmployee), r.req)
		require.NoError(t, err)
	}
	manager := as(t, "emp-m", auth.RoleManager)

	q := "vpn"
	resp, err := svc.List(manager, ticket.TicketFilter{Query: &q, SortBy: "priority", SortOrder: "desc"})
	require.NoError(t, err)
	require.Equal(t, 2, resp.TotalCount)
	assert.Equal(t, "high", resp.Tickets[0].Priority)

	start, end := "2024-05-02", "2024-05-03"
	resp, err = svc.List(manager, ticket.TicketFilter{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.TotalCount)
	// newest first by default
	assert.Equal(t, "New mouse", resp.Tickets[0].Subject)

	mine, err := svc.ListMine(as(t, "emp-2", auth.RoleEmployee), ticket.TicketFilter{})
	require.NoError(t, err)
	require.Equal(t, 1, mine.TotalCount)
	assert.Equal(t, "VPN slow", mine.Tickets[0].Subject)
}
