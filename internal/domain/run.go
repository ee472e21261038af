package domain

import "fmt"

// Run is one completed story generation job that produced a loadable book
type Run struct {
	ID                 string `json:"id"`
	StoryJSON          string `json:"story_json,omitempty"`
	TitlePrimary       string `json:"title_primary,omitempty"`
	TitleSecondary     string `json:"title_secondary,omitempty"`
	PageCount          int    `json:"page_count"`
	HasAnyAudio        bool   `json:"has_any_audio"`
	HasAnyIllustration bool   `json:"has_any_illustration"`
	UpdatedAt          string `json:"updated_at,omitempty"`
}

// Label is the selector text for a run: "<id> | <title> (<page_count>p)"
func (r Run) Label() string {
	title := r.TitlePrimary
	if title == "" {
		title = r.ID
	}
	return fmt.Sprintf("%s | %s (%dp)", r.ID, title, r.PageCount)
}

type RunList struct {
	Runs []Run `json:"runs"`
}
