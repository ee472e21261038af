package state

import "storyviewer/internal/domain"

// ViewerState is the single state object of one viewer session. It is owned by
// the event loop and is not safe for concurrent use.
//
// Invariant: whenever book is set and has pages, pageIndex is in
// [0, len(book.Pages)-1]. Book and cursor only change together.
type ViewerState struct {
	runs          []domain.Run
	selectedRunID string

	book      *domain.Book
	pageIndex int

	status      string
	bookVisible bool

	// seq is the sequence number of the latest issued book request
	seq uint64
}

func New() *ViewerState {
	return &ViewerState{}
}

func (s *ViewerState) Runs() []domain.Run {
	return s.runs
}

// SetRuns replaces the run list wholesale
func (s *ViewerState) SetRuns(runs []domain.Run) {
	s.runs = append([]domain.Run(nil), runs...)
}

func (s *ViewerState) SelectedRunID() string {
	return s.selectedRunID
}

func (s *ViewerState) SelectRun(runID string) {
	s.selectedRunID = runID
}

func (s *ViewerState) Book() *domain.Book {
	return s.book
}

// PageIndex returns the cursor and whether it is defined
func (s *ViewerState) PageIndex() (int, bool) {
	if s.book == nil || len(s.book.Pages) == 0 {
		return 0, false
	}
	return s.pageIndex, true
}

// SetBook replaces the book and resets the cursor to the first page in one step
func (s *ViewerState) SetBook(book *domain.Book) {
	s.book = book
	s.pageIndex = 0
}

// MovePage moves the cursor by delta. It is a no-op returning false when no
// book is loaded or the move would leave the page range.
func (s *ViewerState) MovePage(delta int) bool {
	idx, ok := s.PageIndex()
	if !ok {
		return false
	}
	next := idx + delta
	if next < 0 || next >= len(s.book.Pages) {
		return false
	}
	s.pageIndex = next
	return true
}

// SetPageIndex clamps idx into the page range and reports whether the cursor changed
func (s *ViewerState) SetPageIndex(idx int) bool {
	cur, ok := s.PageIndex()
	if !ok {
		return false
	}
	idx = max(0, min(idx, len(s.book.Pages)-1))
	if idx == cur {
		return false
	}
	s.pageIndex = idx
	return true
}

func (s *ViewerState) Status() string {
	return s.status
}

func (s *ViewerState) SetStatus(status string) {
	s.status = status
}

func (s *ViewerState) BookVisible() bool {
	return s.bookVisible
}

func (s *ViewerState) ShowBook() {
	s.bookVisible = true
}

func (s *ViewerState) HideBook() {
	s.bookVisible = false
}

// NextSeq issues a new book request sequence number
func (s *ViewerState) NextSeq() uint64 {
	s.seq++
	return s.seq
}

// IsLatest reports whether seq belongs to the most recently issued book request
func (s *ViewerState) IsLatest(seq uint64) bool {
	return seq == s.seq
}
