package notice

import "context"

type NoticeRepository interface {
	Create(ctx context.Context, n Notice) (Notice, error)
	Delete(ctx context.Context, id string, companyID string) error
	List(ctx context.Context, companyID string) ([]Notice, error)
}
