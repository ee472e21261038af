package viewer

import (
	"context"

	"storyviewer/internal/client"
	"storyviewer/internal/domain/task"

	log "github.com/sirupsen/logrus"
)

// Runner performs the network side of viewer tasks
type Runner struct {
	client client.BookClient
}

func NewRunner(c client.BookClient) *Runner {
	return &Runner{client: c}
}

// Run executes t and returns its result. Failures are carried in the result.
func (r *Runner) Run(ctx context.Context, t task.Task) task.Result {
	if value, err := t.TaskValue(); err == nil {
		log.WithField("task", string(value)).Debugf("Running %s", t.TaskType())
	}

	switch t := t.(type) {
	case *task.LoadRunsTask:
		runs, err := r.client.ListRuns(ctx)
		return &task.RunsResult{Runs: runs, Err: err}
	case *task.LoadBookTask:
		book, err := r.client.GetBook(ctx, t.RunID)
		return &task.BookResult{RunID: t.RunID, Seq: t.Seq, Book: book, Err: err}
	default:
		log.Warnf("Unknown task type: %s", t.TaskType())
		return nil
	}
}
