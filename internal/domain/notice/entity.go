package notice

import "time"

// Notice is a company-wide announcement.
type Notice struct {
	ID          string
	CompanyID   string
	Title       string
	Body        string
	PublishedOn time.Time
	CreatedBy   string
	CreatedAt   time.Time
}
