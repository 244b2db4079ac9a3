package notice

import (
	"context"

	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/sse"
)

// Stream event names
const (
	EventPublished = "notice.published"
	EventDeleted   = "notice.deleted"
)

type NoticeService interface {
	Create(ctx context.Context, req CreateNoticeRequest) (NoticeResponse, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter NoticeFilter) (ListNoticeResponse, error)

	// Subscribe streams notice events of the caller's company until cleanup is called
	Subscribe(ctx context.Context) (events <-chan sse.Event, cleanup func(), err error)
}
