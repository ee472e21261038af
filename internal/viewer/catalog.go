package viewer

import (
	"fmt"

	"storyviewer/internal/client"
	"storyviewer/internal/domain/task"
	"storyviewer/internal/state"

	log "github.com/sirupsen/logrus"
)

// Option is one entry of the run selector
type Option struct {
	ID    string
	Label string
}

// RunCatalog discovers the loadable runs and picks the default selection
type RunCatalog struct {
	state *state.ViewerState
	books *BookViewer
}

func NewRunCatalog(s *state.ViewerState, books *BookViewer) *RunCatalog {
	return &RunCatalog{
		state: s,
		books: books,
	}
}

// LoadRuns starts a catalog load
func (c *RunCatalog) LoadRuns() task.Task {
	c.state.SetStatus(StatusLoadingRuns)
	c.state.HideBook()
	return &task.LoadRunsTask{}
}

// HandleRuns applies a catalog result. It returns the book load of the default
// run, or nil when there is nothing to load.
func (c *RunCatalog) HandleRuns(res *task.RunsResult) task.Task {
	if res.Err != nil {
		log.Errorf("❌ Failed to load runs: %v", res.Err)
		c.state.SetStatus(fmt.Sprintf(StatusRunsFailed, client.Describe(res.Err)))
		c.state.HideBook()
		return nil
	}

	c.state.SetRuns(res.Runs)

	if len(res.Runs) == 0 {
		log.Warn("No runs available")
		c.state.SelectRun("")
		c.state.SetStatus(StatusNoRuns)
		return nil
	}

	log.Infof("✅ Loaded %d runs", len(res.Runs))
	c.state.SetStatus("")
	return c.books.LoadBook(res.Runs[0].ID)
}

// Select forwards a user selection to the book viewer. An empty id is ignored.
func (c *RunCatalog) Select(runID string) task.Task {
	if runID == "" {
		return nil
	}
	return c.books.LoadBook(runID)
}

// Options lists the selector entries in catalog order
func (c *RunCatalog) Options() []Option {
	runs := c.state.Runs()
	options := make([]Option, 0, len(runs))
	for _, run := range runs {
		options = append(options, Option{ID: run.ID, Label: run.Label()})
	}
	return options
}
