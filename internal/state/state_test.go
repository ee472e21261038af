package state

import (
	"testing"

	"storyviewer/internal/domain"
)

func bookWithPages(n int) *domain.Book {
	book := &domain.Book{}
	for i := 0; i < n; i++ {
		book.Pages = append(book.Pages, domain.Page{PageNumber: i + 1})
	}
	return book
}

func TestPageIndexUndefinedWithoutPages(t *testing.T) {
	s := New()
	if _, ok := s.PageIndex(); ok {
		t.Fatal("cursor must be undefined before a book is loaded")
	}

	s.SetBook(bookWithPages(0))
	if _, ok := s.PageIndex(); ok {
		t.Fatal("cursor must be undefined for an empty book")
	}
	if s.MovePage(1) || s.SetPageIndex(3) {
		t.Fatal("moving an undefined cursor must be a no-op")
	}
}

func TestSetBookResetsCursor(t *testing.T) {
	s := New()
	s.SetBook(bookWithPages(5))
	s.SetPageIndex(4)

	s.SetBook(bookWithPages(2))
	if idx, ok := s.PageIndex(); !ok || idx != 0 {
		t.Fatalf("expected cursor 0 after SetBook, got %d (%v)", idx, ok)
	}
}

func TestMovePageClamps(t *testing.T) {
	s := New()
	s.SetBook(bookWithPages(3))

	if s.MovePage(-1) {
		t.Fatal("moving before the first page must be rejected")
	}
	if !s.MovePage(2) {
		t.Fatal("move to last page rejected")
	}
	if s.MovePage(1) {
		t.Fatal("moving past the last page must be rejected")
	}
	if idx, _ := s.PageIndex(); idx != 2 {
		t.Fatalf("expected cursor 2, got %d", idx)
	}
}

func TestSetPageIndexClamps(t *testing.T) {
	s := New()
	s.SetBook(bookWithPages(4))

	tests := []struct {
		in      int
		want    int
		changed bool
	}{
		{in: 2, want: 2, changed: true},
		{in: 2, want: 2, changed: false},
		{in: 99, want: 3, changed: true},
		{in: -5, want: 0, changed: true},
	}
	for _, tt := range tests {
		changed := s.SetPageIndex(tt.in)
		idx, _ := s.PageIndex()
		if idx != tt.want || changed != tt.changed {
			t.Fatalf("SetPageIndex(%d) = %d changed=%v, want %d changed=%v", tt.in, idx, changed, tt.want, tt.changed)
		}
	}
}

func TestSequence(t *testing.T) {
	s := New()
	first := s.NextSeq()
	second := s.NextSeq()
	if s.IsLatest(first) {
		t.Fatal("superseded sequence reported as latest")
	}
	if !s.IsLatest(second) {
		t.Fatal("latest sequence not recognised")
	}
}

func TestSetRunsCopies(t *testing.T) {
	s := New()
	runs := []domain.Run{{ID: "a"}}
	s.SetRuns(runs)
	runs[0].ID = "b"
	if s.Runs()[0].ID != "a" {
		t.Fatal("state must not alias the caller's slice")
	}
}
