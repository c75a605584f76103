package library

import (
	"context"
	"fmt"
	"time"

	"github.com/danmuck/libctl/internal/observability"
)

// Dataset processing states the service never transitions out of.
var (
	terminalSuccess = map[string]bool{
		"ok":    true,
		"empty": true,
	}
	terminalFailure = map[string]bool{
		"error":           true,
		"discarded":       true,
		"failed_metadata": true,
	}
)

// waitForDataset polls the dataset's processing state at the configured
// interval until it turns terminal or the deadline elapses. It returns the
// terminal success state, an *UploadError on terminal failure, or a
// *WaitTimeoutError once MaxWait has passed without a terminal state. The
// poll sleep is a single timer select per iteration, honoring ctx.
func (r *Reconciler) waitForDataset(ctx context.Context, libraryID, datasetID string) (string, error) {
	start := time.Now()
	deadline := start.Add(r.cfg.MaxWait)
	lastState := ""

	for {
		state, err := r.svc.DatasetState(ctx, libraryID, datasetID)
		if err != nil {
			return "", fmt.Errorf("dataset state dataset_id=%q: %w", datasetID, err)
		}
		lastState = state
		switch {
		case terminalSuccess[state]:
			observability.RecordWaitDuration(time.Since(start))
			return state, nil
		case terminalFailure[state]:
			observability.RecordWaitDuration(time.Since(start))
			return "", &UploadError{DatasetID: datasetID, State: state}
		}

		r.log.Debug().
			Str("dataset_id", datasetID).
			Str("state", state).
			Dur("waited", time.Since(start)).
			Msg("dataset still processing")

		if !time.Now().Before(deadline) {
			return "", &WaitTimeoutError{
				DatasetID: datasetID,
				LastState: lastState,
				Waited:    time.Since(start),
			}
		}
		sleep := r.cfg.PollInterval
		if remaining := time.Until(deadline); remaining < sleep {
			sleep = remaining
		}
		timer := time.NewTimer(sleep)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
	}
}
