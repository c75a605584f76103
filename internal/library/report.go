package library

import "time"

type Status string

const (
	StatusSkipped   Status = "skipped"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusTimedOut  Status = "timed_out"
)

// Result records the outcome of one manifest entry.
type Result struct {
	Spec   DatasetSpec
	Path   string
	Status Status
	Err    error
}

// Report summarizes a reconciliation run. Results appear in manifest order.
type Report struct {
	Library  Library
	Duration time.Duration
	Results  []Result
}

// Created counts datasets uploaded by this run.
func (r Report) Created() int { return r.count(StatusSucceeded) }

// Skipped counts datasets that already existed by qualified path.
func (r Report) Skipped() int { return r.count(StatusSkipped) }

// Failed counts datasets that ended in failure or timed out.
func (r Report) Failed() int { return r.count(StatusFailed) + r.count(StatusTimedOut) }

func (r Report) HasFailures() bool { return r.Failed() > 0 }

func (r Report) count(status Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}
