package viewer

// User-visible status lines
const (
	StatusLoadingRuns = "Loading run list..."
	StatusNoRuns      = "No story results to display."
	StatusRunsFailed  = "Failed to load run list: %s"
	StatusLoadingBook = "Loading..."
	StatusNoPages     = "No page data."
	StatusBookFailed  = "Failed to load book: %s"
)

// Placeholders for absent book data
const (
	PlaceholderTitle    = "(untitled)"
	PlaceholderLanguage = "-"
	PlaceholderNoAudio  = "No audio"
)
