package models

import "time"

type JobStatus string

const (
	StatusPending     JobStatus = "pending"
	StatusDownloading JobStatus = "downloading"
	StatusCompleted   JobStatus = "completed"
	StatusError       JobStatus = "error"
)

func (s JobStatus) String() string {
	return string(s)
}

// IsTerminal returns true once no further transitions can occur.
func (s JobStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusError
}

// Job is the server-side record of one in-flight or finished download.
// URL and Selector are immutable after creation; everything else is
// mutated only through the job store.
type Job struct {
	ID         string     `json:"id"`
	URL        string     `json:"url"`
	Selector   string     `json:"itag"`
	Status     JobStatus  `json:"status"`
	Progress   int        `json:"progress"`
	ResultPath string     `json:"-"`
	Filename   string     `json:"filename,omitempty"`
	Error      string     `json:"error,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
}
