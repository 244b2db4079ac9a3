package notice

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/notice"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/paginate"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/sse"
)

type NoticeServiceImpl struct {
	notice.NoticeRepository
	hub *sse.Hub
	now func() time.Time
}

func NewNoticeService(noticeRepo notice.NoticeRepository, hub *sse.Hub) notice.NoticeService {
	return &NoticeServiceImpl{
		NoticeRepository: noticeRepo,
		hub:              hub,
		now:              time.Now,
	}
}

// Create implements notice.NoticeService.
func (s *NoticeServiceImpl) Create(ctx context.Context, req notice.CreateNoticeRequest) (notice.NoticeResponse, error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return notice.NoticeResponse{}, err
	}
	if !claims.IsManager() {
		return notice.NoticeResponse{}, auth.ErrManagerAccessRequired
	}

	if err := req.Validate(); err != nil {
		return notice.NoticeResponse{}, err
	}

	n, err := s.NoticeRepository.Create(ctx, notice.Notice{
		CompanyID:   claims.CompanyID,
		Title:       strings.TrimSpace(req.Title),
		Body:        strings.TrimSpace(req.Body),
		PublishedOn: req.PublishDate(s.now()),
		CreatedBy:   claims.UserID,
	})
	if err != nil {
		return notice.NoticeResponse{}, err
	}

	resp := ToNoticeResponse(n)
	delivered := s.hub.Publish(claims.CompanyID, sse.Event{Name: notice.EventPublished, Data: resp})

	slog.Info("notice published", "notice_id", n.ID, "published_on", resp.PublishedOn, "delivered", delivered)

	return resp, nil
}

// Delete implements notice.NoticeService.
func (s *NoticeServiceImpl) Delete(ctx context.Context, id string) error {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return err
	}
	if !claims.IsManager() {
		return auth.ErrManagerAccessRequired
	}

	if err := s.NoticeRepository.Delete(ctx, id, claims.CompanyID); err != nil {
		return err
	}

	s.hub.Publish(claims.CompanyID, sse.Event{Name: notice.EventDeleted, Data: map[string]string{"id": id}})

	slog.Info("notice deleted", "notice_id", id, "deleted_by", claims.UserID)
	return nil
}

// Subscribe implements notice.NoticeService.
func (s *NoticeServiceImpl) Subscribe(ctx context.Context) (<-chan sse.Event, func(), error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return nil, nil, err
	}

	events, cleanup := s.hub.Subscribe(claims.CompanyID)
	slog.Debug("notice stream opened", "user_id", claims.UserID, "subscribers", s.hub.SubscriberCount(claims.CompanyID))

	return events, cleanup, nil
}

// List implements notice.NoticeService.
func (s *NoticeServiceImpl) List(ctx context.Context, filter notice.NoticeFilter) (notice.ListNoticeResponse, error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return notice.ListNoticeResponse{}, err
	}

	if err := filter.Validate(); err != nil {
		return notice.ListNoticeResponse{}, err
	}

	notices, err := s.NoticeRepository.List(ctx, claims.CompanyID)
	if err != nil {
		return notice.ListNoticeResponse{}, fmt.Errorf("failed to list notices: %w", err)
	}

	query := ""
	if filter.Query != nil {
		query = *filter.Query
	}
	pred := paginate.All(
		paginate.Any(
			paginate.Contains(func(n notice.Notice) string { return n.Title }, query),
			paginate.Contains(func(n notice.Notice) string { return n.Body }, query),
		),
		paginate.Within(func(n notice.Notice) time.Time { return n.PublishedOn }, filter.From, filter.To),
	)

	sorted := paginate.Sort(notices, func(a, b notice.Notice) int {
		if c := a.PublishedOn.Compare(b.PublishedOn); c != 0 {
			return c
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	}, true)
	page := paginate.Map(paginate.Apply(paginate.State{Page: filter.Page, PageSize: filter.Limit}, sorted, pred), ToNoticeResponse)

	return notice.ListNoticeResponse{
		TotalCount: page.TotalItems,
		Page:       page.Page,
		Limit:      page.PageSize,
		TotalPages: page.TotalPages,
		HasPrev:    page.HasPrev,
		HasNext:    page.HasNext,
		Notices:    page.Items,
	}, nil
}

func ToNoticeResponse(n notice.Notice) notice.NoticeResponse {
	return notice.NoticeResponse{
		ID:          n.ID,
		Title:       n.Title,
		Body:        n.Body,
		PublishedOn: n.PublishedOn.Format("2006-01-02"),
		CreatedBy:   n.CreatedBy,
		CreatedAt:   n.CreatedAt.Format(time.RFC3339),
	}
}
