package viewer

import (
	"fmt"

	"storyviewer/internal/domain"
)

// Cursor locates the rendered page inside its book
type Cursor struct {
	Index int
	Total int
}

// AudioSlot is either a playable control bound to URL, loaded only on demand,
// or a "no audio" placeholder. It is never a control without a source.
type AudioSlot struct {
	Available   bool
	URL         string
	Preload     string
	Placeholder string
}

func audioSlot(url string) AudioSlot {
	if url == "" {
		return AudioSlot{Placeholder: PlaceholderNoAudio}
	}
	return AudioSlot{Available: true, URL: url, Preload: "none"}
}

// ViewModel is everything a display surface needs to draw one page
type ViewModel struct {
	Title     string
	Subtitle  string
	Languages string

	Indicator string
	PageTitle string

	TextPrimary   string
	TextSecondary string

	IllustrationURL string

	AudioPrimary   AudioSlot
	AudioSecondary AudioSlot

	PrevDisabled bool
	NextDisabled bool
}

// Render derives the view model of one page. It performs no I/O.
func Render(meta domain.BookMeta, page domain.Page, cursor Cursor) ViewModel {
	return ViewModel{
		Title:     orDefault(meta.TitlePrimary, PlaceholderTitle),
		Subtitle:  meta.TitleSecondary,
		Languages: fmt.Sprintf("%s / %s", orDefault(meta.PrimaryLanguage, PlaceholderLanguage), orDefault(meta.SecondaryLanguage, PlaceholderLanguage)),

		Indicator: fmt.Sprintf("%d / %d", cursor.Index+1, cursor.Total),
		PageTitle: fmt.Sprintf("Page %d", page.PageNumber),

		TextPrimary:   page.TextPrimary,
		TextSecondary: page.TextSecondary,

		IllustrationURL: page.IllustrationURL,

		AudioPrimary:   audioSlot(page.AudioPrimaryURL),
		AudioSecondary: audioSlot(page.AudioSecondaryURL),

		PrevDisabled: cursor.Index == 0,
		NextDisabled: cursor.Index >= cursor.Total-1,
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
