package leave

import "errors"

var (
	ErrApplicationNotFound         = errors.New("leave application not found")
	ErrApplicationAlreadyProcessed = errors.New("leave application already processed")
	ErrNotApplicationOwner         = errors.New("leave application belongs to another employee")
)
