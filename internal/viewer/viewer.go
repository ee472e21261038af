package viewer

import (
	"storyviewer/internal/domain/task"
	"storyviewer/internal/state"
)

// Viewer wires the run catalog and the book viewer around one owned state
type Viewer struct {
	state   *state.ViewerState
	Catalog *RunCatalog
	Books   *BookViewer
}

func New(s *state.ViewerState) *Viewer {
	books := NewBookViewer(s)
	return &Viewer{
		state:   s,
		Catalog: NewRunCatalog(s, books),
		Books:   books,
	}
}

// Start returns the initial catalog load
func (v *Viewer) Start() task.Task {
	return v.Catalog.LoadRuns()
}

// Handle applies a completed task and returns the follow-up task, if any
func (v *Viewer) Handle(res task.Result) task.Task {
	switch r := res.(type) {
	case *task.RunsResult:
		return v.Catalog.HandleRuns(r)
	case *task.BookResult:
		v.Books.HandleBook(r)
	}
	return nil
}

// Screen is a snapshot of everything a display surface shows
type Screen struct {
	Status        string
	Options       []Option
	SelectedRunID string
	BookVisible   bool
	View          ViewModel
}

func (v *Viewer) Screen() Screen {
	vm, ok := v.Books.View()
	return Screen{
		Status:        v.state.Status(),
		Options:       v.Catalog.Options(),
		SelectedRunID: v.state.SelectedRunID(),
		BookVisible:   ok,
		View:          vm,
	}
}
