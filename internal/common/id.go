package common

import (
	"github.com/google/uuid"
)

// NewRunID generates a unique identifier for one ingest run, used to
// correlate the log lines a single invocation produces.
// Format: run_<uuid>
func NewRunID() string {
	return "run_" + uuid.New().String()
}
