package notice

import "errors"

var ErrNoticeNotFound = errors.New("notice not found")
