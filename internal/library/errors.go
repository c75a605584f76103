package library

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrServiceRequired = errors.New("library: service required")
	ErrNotFound        = errors.New("library: not found")
)

// UploadError reports a dataset that reached a terminal failure state
// while the service was processing it. It is never retried automatically.
type UploadError struct {
	DatasetID string
	State     string
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("library: upload failed dataset_id=%q state=%q", e.DatasetID, e.State)
}

// WaitTimeoutError reports a dataset that never reached a terminal state
// within the configured deadline.
type WaitTimeoutError struct {
	DatasetID string
	LastState string
	Waited    time.Duration
}

func (e *WaitTimeoutError) Error() string {
	return fmt.Sprintf(
		"library: wait timeout dataset_id=%q last_state=%q waited=%s",
		e.DatasetID, e.LastState, e.Waited,
	)
}
