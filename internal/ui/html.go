package ui

import (
	"fmt"
	"html/template"
	"io"

	"storyviewer/internal/viewer"
)

var page = template.Must(template.New("viewer").Parse(`<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <title>Story Viewer</title>
  <style>.hidden { display: none; }</style>
</head>
<body>
  <select id="run-select">
    {{- range .Options}}
    <option value="{{.ID}}"{{if eq .ID $.SelectedRunID}} selected{{end}}>{{.Label}}</option>
    {{- end}}
  </select>
  <p id="status">{{.Status}}</p>

  <section id="book-meta"{{if not .BookVisible}} class="hidden"{{end}}>
    <h1 id="book-title">{{.View.Title}}</h1>
    <h2 id="book-subtitle">{{.View.Subtitle}}</h2>
    <p id="book-lang">{{.View.Languages}}</p>
  </section>

  <section id="page-view"{{if not .BookVisible}} class="hidden"{{end}}>
    <nav>
      <button id="prev-btn"{{if .View.PrevDisabled}} disabled{{end}}>Previous</button>
      <span id="page-indicator">{{.View.Indicator}}</span>
      <button id="next-btn"{{if .View.NextDisabled}} disabled{{end}}>Next</button>
    </nav>
    <h3 id="page-title">{{.View.PageTitle}}</h3>
    {{- if .View.IllustrationURL}}
    <img id="page-illustration" src="{{.View.IllustrationURL}}" alt="{{.View.PageTitle}}" loading="lazy">
    {{- end}}
    <div class="column">
      <p id="text-primary">{{.View.TextPrimary}}</p>
      <div id="audio-primary-wrap">{{template "audio" .View.AudioPrimary}}</div>
    </div>
    <div class="column">
      <p id="text-secondary">{{.View.TextSecondary}}</p>
      <div id="audio-secondary-wrap">{{template "audio" .View.AudioSecondary}}</div>
    </div>
  </section>
</body>
</html>
{{define "audio"}}{{if .Available}}<audio controls preload="{{.Preload}}" src="{{.URL}}"></audio>{{else}}<p class="missing-audio">{{.Placeholder}}</p>{{end}}{{end}}
`))

// WriteHTML renders a screen as a static HTML document. A hidden book view is
// still emitted with the "hidden" class so the document layout is stable.
func WriteHTML(w io.Writer, screen viewer.Screen) error {
	if err := page.Execute(w, screen); err != nil {
		return fmt.Errorf("failed to render html: %w", err)
	}
	return nil
}
