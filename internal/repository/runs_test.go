package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const storyJSON = `{
  "title_primary": "달 여행",
  "title_secondary": "Moon Trip",
  "primary_language": "Korean",
  "secondary_language": "English (US)",
  "pages": [
    {"page_number": 1, "text_primary": "하나", "text_secondary": "one", "illustration_prompt": "moon"},
    {"page_number": "2", "text_primary": "둘", "text_secondary": "two"},
    {"page_number": "x", "text_primary": "셋"},
    "not a page"
  ]
}`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newOutputs(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "outputs")

	run := filepath.Join(root, "20250102_120000_story_moon")
	writeFile(t, filepath.Join(run, "story_gemini.json"), storyJSON)
	writeFile(t, filepath.Join(run, "audio", "01_korean", "page_01_primary.wav"), "RIFF")
	writeFile(t, filepath.Join(run, "audio", "02_english-us", "page_02_secondary.wav"), "RIFF")
	writeFile(t, filepath.Join(run, "illustrations", "page_1.png"), "png")
	writeFile(t, filepath.Join(run, "illustrations", "page_2.png"), "")
	writeFile(t, filepath.Join(run, "illustrations", "custom", "second.png"), "png")
	writeFile(t, filepath.Join(run, "illustrations", "manifest.json"),
		`{"entries":[{"page_number":2,"path":"illustrations\\custom\\second.png"},{"page_number":9,"path":"missing.png"}]}`)

	broken := filepath.Join(root, "20250101_090000_story_broken")
	writeFile(t, filepath.Join(broken, "story_a.json"), `{"pages": 3}`)

	writeFile(t, filepath.Join(root, "20250103_story_empty", "notes.txt"), "no story here")
	writeFile(t, filepath.Join(root, "viewer", "index.html"), "<html>")

	return root
}

func TestListRuns(t *testing.T) {
	repo := NewRunRepository(newOutputs(t))

	runs, err := repo.ListRuns(context.Background())
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %+v", runs)
	}

	moon := runs[0]
	if moon.ID != "20250102_120000_story_moon" {
		t.Fatalf("runs must be newest first, got %s", moon.ID)
	}
	if moon.StoryJSON != "story_gemini.json" || moon.TitlePrimary != "달 여행" || moon.TitleSecondary != "Moon Trip" {
		t.Fatalf("unexpected metadata %+v", moon)
	}
	if moon.PageCount != 4 {
		t.Fatalf("page count = %d", moon.PageCount)
	}
	if !moon.HasAnyAudio || !moon.HasAnyIllustration || moon.UpdatedAt == "" {
		t.Fatalf("unexpected flags %+v", moon)
	}

	broken := runs[1]
	if broken.ID != "20250101_090000_story_broken" || broken.TitlePrimary != "" || broken.PageCount != 0 {
		t.Fatalf("unparseable run must be listed with empty metadata, got %+v", broken)
	}
}

func TestListRunsMissingDir(t *testing.T) {
	repo := NewRunRepository(filepath.Join(t.TempDir(), "nope"))
	runs, err := repo.ListRuns(context.Background())
	if err != nil || len(runs) != 0 {
		t.Fatalf("expected empty list, got %v %v", runs, err)
	}
}

func TestGetBook(t *testing.T) {
	repo := NewRunRepository(newOutputs(t))

	book, err := repo.GetBook(context.Background(), "20250102_120000_story_moon")
	if err != nil {
		t.Fatalf("GetBook: %v", err)
	}
	if book.RunID != "20250102_120000_story_moon" || book.Meta.PrimaryLanguage != "Korean" {
		t.Fatalf("unexpected book %+v", book.Meta)
	}
	if len(book.Pages) != 3 || book.Meta.PageCount != 3 {
		t.Fatalf("expected 3 pages, got %d", len(book.Pages))
	}

	first, second, third := book.Pages[0], book.Pages[1], book.Pages[2]

	if first.PageNumber != 1 || first.AudioPrimaryURL != "/20250102_120000_story_moon/audio/01_korean/page_01_primary.wav" {
		t.Fatalf("unexpected first page %+v", first)
	}
	if first.AudioSecondaryURL != "" || first.HasSecondaryAudio {
		t.Fatalf("first page has no secondary audio: %+v", first)
	}
	if first.IllustrationURL != "/20250102_120000_story_moon/illustrations/page_1.png" || !first.HasIllustration {
		t.Fatalf("illustration = %q", first.IllustrationURL)
	}
	if first.IllustrationPrompt != "moon" {
		t.Fatalf("prompt = %q", first.IllustrationPrompt)
	}

	if second.PageNumber != 2 || second.AudioSecondaryURL != "/20250102_120000_story_moon/audio/02_english-us/page_02_secondary.wav" {
		t.Fatalf("unexpected second page %+v", second)
	}
	if second.IllustrationURL != "/20250102_120000_story_moon/illustrations/custom/second.png" {
		t.Fatalf("manifest entry must win, got %q", second.IllustrationURL)
	}

	if third.PageNumber != 3 {
		t.Fatalf("non-numeric page number must fall back to position, got %d", third.PageNumber)
	}
	if third.HasIllustration || third.AudioPrimaryURL != "" {
		t.Fatalf("unexpected third page %+v", third)
	}
}

func TestGetBookErrors(t *testing.T) {
	repo := NewRunRepository(newOutputs(t))

	tests := []struct {
		runID string
		want  error
	}{
		{runID: "../etc", want: ErrInvalidRunID},
		{runID: "no-marker", want: ErrInvalidRunID},
		{runID: "20990101_story_missing", want: ErrRunNotFound},
		{runID: "20250103_story_empty", want: ErrRunNotFound},
		{runID: "20250101_090000_story_broken", want: ErrInvalidStory},
	}
	for _, tt := range tests {
		_, err := repo.GetBook(context.Background(), tt.runID)
		if !errors.Is(err, tt.want) {
			t.Fatalf("GetBook(%q) = %v, want %v", tt.runID, err, tt.want)
		}
	}
}

func TestSlugifyLanguage(t *testing.T) {
	tests := map[string]string{
		"Korean":       "korean",
		"English (US)": "english-us",
		"  ":           "language",
		"":             "language",
		"日本語":          "language",
	}
	for in, want := range tests {
		if got := slugifyLanguage(in); got != want {
			t.Fatalf("slugifyLanguage(%q) = %q, want %q", in, got, want)
		}
	}
}
