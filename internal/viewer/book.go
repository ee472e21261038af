package viewer

import (
	"fmt"

	"storyviewer/internal/client"
	"storyviewer/internal/domain"
	"storyviewer/internal/domain/task"
	"storyviewer/internal/state"

	log "github.com/sirupsen/logrus"
)

// BookViewer owns the loaded book and its page cursor
type BookViewer struct {
	state *state.ViewerState
}

func NewBookViewer(s *state.ViewerState) *BookViewer {
	return &BookViewer{state: s}
}

// LoadBook hides the current book and issues a request for runID. Each call
// supersedes every earlier request still in flight.
func (v *BookViewer) LoadBook(runID string) *task.LoadBookTask {
	v.state.HideBook()
	v.state.SetStatus(StatusLoadingBook)
	v.state.SelectRun(runID)

	return &task.LoadBookTask{
		RunID: runID,
		Seq:   v.state.NextSeq(),
	}
}

// HandleBook applies a book result and reports whether it was applied.
// Results of superseded requests are dropped.
func (v *BookViewer) HandleBook(res *task.BookResult) bool {
	if !v.state.IsLatest(res.Seq) {
		log.Debugf("Dropping stale book %s (request %d)", res.RunID, res.Seq)
		return false
	}

	if res.Err != nil {
		log.Errorf("❌ Failed to load book %s: %v", res.RunID, res.Err)
		v.state.SetStatus(fmt.Sprintf(StatusBookFailed, client.Describe(res.Err)))
		v.state.HideBook()
		return true
	}

	book := res.Book
	if book == nil {
		book = &domain.Book{}
	}
	v.state.SetBook(book)
	v.state.SetStatus("")

	if len(book.Pages) == 0 {
		log.Warnf("Book %s has no pages", res.RunID)
		v.state.SetStatus(StatusNoPages)
		v.state.HideBook()
		return true
	}

	log.Infof("✅ Loaded book %s with %d pages", res.RunID, len(book.Pages))
	v.state.ShowBook()
	return true
}

// Previous moves one page back. No-op on the first page or without a shown book.
func (v *BookViewer) Previous() bool {
	return v.navigable() && v.state.MovePage(-1)
}

// Next moves one page forward. No-op on the last page or without a shown book.
func (v *BookViewer) Next() bool {
	return v.navigable() && v.state.MovePage(1)
}

// JumpTo moves the cursor to index, clamped into the page range
func (v *BookViewer) JumpTo(index int) bool {
	return v.navigable() && v.state.SetPageIndex(index)
}

func (v *BookViewer) First() bool {
	return v.JumpTo(0)
}

func (v *BookViewer) Last() bool {
	book := v.state.Book()
	if book == nil {
		return false
	}
	return v.JumpTo(len(book.Pages) - 1)
}

// A hidden book is either being replaced or failed to reload; its pages must
// not come back into view through navigation.
func (v *BookViewer) navigable() bool {
	return v.state.BookVisible()
}

// View renders the current page. It returns false when the book view is hidden.
func (v *BookViewer) View() (ViewModel, bool) {
	if !v.state.BookVisible() {
		return ViewModel{}, false
	}
	idx, ok := v.state.PageIndex()
	if !ok {
		return ViewModel{}, false
	}

	book := v.state.Book()
	return Render(book.Meta, book.Pages[idx], Cursor{Index: idx, Total: len(book.Pages)}), true
}
