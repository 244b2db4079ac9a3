package notice

import (
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/validator"
)

type CreateNoticeRequest struct {
	Title       string  `json:"title"`
	Body        string  `json:"body"`
	PublishedOn *string `json:"published_on,omitempty"` // YYYY-MM-DD, defaults to today

	publishedOn time.Time
}

func (r *CreateNoticeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs.Add("title", "title is required")
	} else if len(r.Title) > 200 {
		errs.Add("title", "title must not exceed 200 characters")
	}
	if validator.IsEmpty(r.Body) {
		errs.Add("body", "body is required")
	}
	if r.PublishedOn != nil {
		d, ok := validator.IsValidDate(*r.PublishedOn)
		if !ok {
			errs.Add("published_on", "published_on must be in YYYY-MM-DD format")
		}
		r.publishedOn = d
	}

	return errs.Err()
}

// PublishDate returns the requested publish date, or today when none was given.
func (r *CreateNoticeRequest) PublishDate(now time.Time) time.Time {
	if r.publishedOn.IsZero() {
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	return r.publishedOn
}

type NoticeFilter struct {
	Query     *string `json:"q,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`

	From *time.Time `json:"-"`
	To   *time.Time `json:"-"`
}

func (f *NoticeFilter) Validate() error {
	var errs validator.ValidationErrors

	validator.Paging(&errs, &f.Page, &f.Limit)
	f.From, f.To = validator.DateRange(&errs, f.StartDate, f.EndDate)

	return errs.Err()
}

type NoticeResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	PublishedOn string `json:"published_on"`
	CreatedBy   string `json:"created_by"`
	CreatedAt   string `json:"created_at"`
}

type ListNoticeResponse struct {
	TotalCount int              `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	HasPrev    bool             `json:"has_prev"`
	HasNext    bool             `json:"has_next"`
	Notices    []NoticeResponse `json:"notices"`
}
