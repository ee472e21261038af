package viewer

import (
	"context"

	"storyviewer/internal/domain/task"
)

// Session drives a Viewer without a display loop, running every task inline
type Session struct {
	viewer *Viewer
	runner *Runner
}

func NewSession(v *Viewer, r *Runner) *Session {
	return &Session{viewer: v, runner: r}
}

// Dispatch runs t and every follow-up task it produces
func (s *Session) Dispatch(ctx context.Context, t task.Task) {
	for t != nil {
		res := s.runner.Run(ctx, t)
		if res == nil {
			return
		}
		t = s.viewer.Handle(res)
	}
}

// Start loads the catalog and the default run
func (s *Session) Start(ctx context.Context) {
	s.Dispatch(ctx, s.viewer.Start())
}

func (s *Session) Select(ctx context.Context, runID string) {
	s.Dispatch(ctx, s.viewer.Catalog.Select(runID))
}

func (s *Session) Next() bool {
	return s.viewer.Books.Next()
}

func (s *Session) Previous() bool {
	return s.viewer.Books.Previous()
}

func (s *Session) Screen() Screen {
	return s.viewer.Screen()
}
