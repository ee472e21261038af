package domain

type BookMeta struct {
	TitlePrimary      string `json:"title_primary,omitempty"`
	TitleSecondary    string `json:"title_secondary,omitempty"`
	PrimaryLanguage   string `json:"primary_language,omitempty"`
	SecondaryLanguage string `json:"secondary_language,omitempty"`
	PageCount         int    `json:"page_count"`
}

// Page is one spread of the book. PageNumber is the stored display label and
// is not required to match the position of the page in Book.Pages.
type Page struct {
	PageNumber              int    `json:"page_number"`
	TextPrimary             string `json:"text_primary,omitempty"`
	TextSecondary           string `json:"text_secondary,omitempty"`
	IllustrationURL         string `json:"illustration_url,omitempty"`
	HasIllustration         bool   `json:"has_illustration"`
	IllustrationPrompt      string `json:"illustration_prompt,omitempty"`
	IllustrationScenePrompt string `json:"illustration_scene_prompt,omitempty"`
	AudioPrimaryURL         string `json:"audio_primary_url,omitempty"`
	AudioSecondaryURL       string `json:"audio_secondary_url,omitempty"`
	HasPrimaryAudio         bool   `json:"has_primary_audio"`
	HasSecondaryAudio       bool   `json:"has_secondary_audio"`
}

type Book struct {
	RunID string   `json:"run_id,omitempty"`
	Meta  BookMeta `json:"meta"`
	Pages []Page   `json:"pages"`
}

// ErrorPayload is the JSON body returned by the book API on failure
type ErrorPayload struct {
	Error string `json:"error"`
}
