package ticket

import "errors"

var (
	ErrTicketNotFound          = errors.New("ticket not found")
	ErrInvalidTicketTransition = errors.New("ticket status transition not allowed")
)
