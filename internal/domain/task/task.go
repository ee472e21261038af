package task

import (
	"encoding/json"

	"storyviewer/internal/domain"
)

// Task is a unit of network work requested by the viewer. Its completion is
// delivered back to the viewer as a Result on the event loop.
type Task interface {
	TaskType() string
	TaskValue() ([]byte, error)
}

// Result is the completion of a Task
type Result interface {
	ResultType() string
}

// DefaultTaskValue provides a common implementation for TaskValue
func DefaultTaskValue(task interface{}) ([]byte, error) {
	return json.Marshal(task)
}

type LoadRunsTask struct{}

func (t *LoadRunsTask) TaskType() string {
	return "LoadRunsTask"
}

func (t *LoadRunsTask) TaskValue() ([]byte, error) {
	return DefaultTaskValue(t)
}

// LoadBookTask fetches the book of one run. Seq orders book requests so that
// only the latest issued one is applied.
type LoadBookTask struct {
	RunID string `json:"run_id"`
	Seq   uint64 `json:"seq"`
}

func (t *LoadBookTask) TaskType() string {
	return "LoadBookTask"
}

func (t *LoadBookTask) TaskValue() ([]byte, error) {
	return DefaultTaskValue(t)
}

type RunsResult struct {
	Runs []domain.Run
	Err  error
}

func (r *RunsResult) ResultType() string {
	return "RunsResult"
}

type BookResult struct {
	RunID string
	Seq   uint64
	Book  *domain.Book
	Err   error
}

func (r *BookResult) ResultType() string {
	return "BookResult"
}
