package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"storyviewer/internal/domain"

	log "github.com/sirupsen/logrus"
)

var (
	slugPattern      = regexp.MustCompile(`[^a-z0-9]+`)
	pageAssetPattern = regexp.MustCompile(`^page_(\d+)\.[^.]+$`)
)

// story is the on-disk story document written by the generator
type story struct {
	TitlePrimary      string            `json:"title_primary"`
	TitleSecondary    string            `json:"title_secondary"`
	PrimaryLanguage   string            `json:"primary_language"`
	SecondaryLanguage string            `json:"secondary_language"`
	Pages             []json.RawMessage `json:"pages"`
}

type storyPage struct {
	PageNumber              json.RawMessage `json:"page_number"`
	TextPrimary             string          `json:"text_primary"`
	TextSecondary           string          `json:"text_secondary"`
	IllustrationPrompt      string          `json:"illustration_prompt"`
	IllustrationScenePrompt string          `json:"illustration_scene_prompt"`
}

type illustrationManifest struct {
	Entries []struct {
		PageNumber json.RawMessage `json:"page_number"`
		Path       string          `json:"path"`
	} `json:"entries"`
}

func loadStory(path string) (*story, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read story: %w", err)
	}
	var s story
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode story: %w", err)
	}
	return &s, nil
}

func slugifyLanguage(name string) string {
	slug := strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if slug == "" {
		return "language"
	}
	return slug
}

// pageNumber decodes a page number stored as a number or numeric string.
// Anything else yields fallback.
func pageNumber(raw json.RawMessage, fallback int) int {
	if len(raw) == 0 {
		return fallback
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int(f)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n
		}
	}
	return fallback
}

func buildBook(outputsDir, runID, runDir string, s *story) *domain.Book {
	primarySlug := slugifyLanguage(s.PrimaryLanguage)
	secondarySlug := slugifyLanguage(s.SecondaryLanguage)
	illustrations := illustrationURLs(outputsDir, runDir)

	pages := make([]domain.Page, 0, len(s.Pages))
	for i, raw := range s.Pages {
		var sp storyPage
		if err := json.Unmarshal(raw, &sp); err != nil {
			log.Debugf("Skipping malformed page %d of %s: %v", i, runID, err)
			continue
		}

		number := pageNumber(sp.PageNumber, i+1)
		primaryRel := fmt.Sprintf("%s/audio/01_%s/page_%02d_primary.wav", runID, primarySlug, number)
		secondaryRel := fmt.Sprintf("%s/audio/02_%s/page_%02d_secondary.wav", runID, secondarySlug, number)

		page := domain.Page{
			PageNumber:              number,
			TextPrimary:             sp.TextPrimary,
			TextSecondary:           sp.TextSecondary,
			IllustrationURL:         illustrations[number],
			IllustrationPrompt:      sp.IllustrationPrompt,
			IllustrationScenePrompt: sp.IllustrationScenePrompt,
			HasPrimaryAudio:         isFile(filepath.Join(outputsDir, filepath.FromSlash(primaryRel))),
			HasSecondaryAudio:       isFile(filepath.Join(outputsDir, filepath.FromSlash(secondaryRel))),
		}
		page.HasIllustration = page.IllustrationURL != ""
		if page.HasPrimaryAudio {
			page.AudioPrimaryURL = "/" + primaryRel
		}
		if page.HasSecondaryAudio {
			page.AudioSecondaryURL = "/" + secondaryRel
		}

		pages = append(pages, page)
	}

	return &domain.Book{
		RunID: runID,
		Meta: domain.BookMeta{
			TitlePrimary:      s.TitlePrimary,
			TitleSecondary:    s.TitleSecondary,
			PrimaryLanguage:   s.PrimaryLanguage,
			SecondaryLanguage: s.SecondaryLanguage,
			PageCount:         len(pages),
		},
		Pages: pages,
	}
}

// illustrationURLs maps page numbers to illustration URLs. Manifest entries win
// over files found by scanning the illustrations directory.
func illustrationURLs(outputsDir, runDir string) map[int]string {
	dir := filepath.Join(runDir, "illustrations")
	urls := make(map[int]string)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return urls
	}

	if data, err := os.ReadFile(filepath.Join(dir, "manifest.json")); err == nil {
		var manifest illustrationManifest
		if err := json.Unmarshal(data, &manifest); err != nil {
			log.Debugf("Ignoring unreadable illustration manifest in %s: %v", runDir, err)
		}
		for _, entry := range manifest.Entries {
			number := pageNumber(entry.PageNumber, -1)
			if number < 0 || entry.Path == "" {
				continue
			}
			path, ok := resolveAsset(outputsDir, runDir, entry.Path)
			if !ok {
				continue
			}
			if url, ok := outputsURL(outputsDir, path); ok {
				urls[number] = url
			}
		}
	}

	files, _ := filepath.Glob(filepath.Join(dir, "page_*.*"))
	sort.Strings(files)
	for _, file := range files {
		m := pageAssetPattern.FindStringSubmatch(filepath.Base(file))
		if m == nil {
			continue
		}
		info, err := os.Stat(file)
		if err != nil || !info.Mode().IsRegular() || info.Size() == 0 {
			continue
		}
		number, _ := strconv.Atoi(m[1])
		if _, exists := urls[number]; exists {
			continue
		}
		if url, ok := outputsURL(outputsDir, file); ok {
			urls[number] = url
		}
	}

	return urls
}

// resolveAsset locates a manifest path relative to the run dir, the outputs
// dir, or the outputs dir's parent when the path starts with its name.
func resolveAsset(outputsDir, runDir, raw string) (string, bool) {
	normalized := strings.ReplaceAll(strings.TrimSpace(raw), `\`, "/")
	if normalized == "" {
		return "", false
	}

	candidate := filepath.FromSlash(normalized)
	var candidates []string
	if filepath.IsAbs(candidate) {
		candidates = append(candidates, candidate)
	} else {
		candidates = append(candidates,
			filepath.Join(runDir, candidate),
			filepath.Join(outputsDir, candidate),
		)
		first := strings.SplitN(normalized, "/", 2)[0]
		if first == filepath.Base(filepath.Clean(outputsDir)) {
			candidates = append(candidates, filepath.Join(filepath.Dir(filepath.Clean(outputsDir)), candidate))
		}
	}

	for _, path := range candidates {
		if isFile(path) {
			return path, true
		}
	}
	return "", false
}

// outputsURL turns a file under the outputs dir into its served URL path
func outputsURL(outputsDir, path string) (string, bool) {
	root, err := filepath.Abs(outputsDir)
	if err != nil {
		return "", false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return "/" + filepath.ToSlash(rel), true
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
