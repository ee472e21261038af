package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"storyviewer/internal/domain"

	log "github.com/sirupsen/logrus"
)

const (
	runMarker = "_story_"
	storyGlob = "story_*.json"
)

var (
	ErrInvalidRunID = errors.New("invalid run id")
	ErrRunNotFound  = errors.New("run not found")
	ErrInvalidStory = errors.New("invalid story")

	runIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
)

type RunRepository interface {
	ListRuns(ctx context.Context) ([]domain.Run, error)
	GetBook(ctx context.Context, runID string) (*domain.Book, error)
}

type runRepository struct {
	outputsDir string
}

// NewRunRepository reads story runs from outputsDir. Each run is a directory
// named "<timestamp>_story_<slug>" holding a story_*.json file plus optional
// audio/ and illustrations/ trees.
func NewRunRepository(outputsDir string) RunRepository {
	return &runRepository{
		outputsDir: outputsDir,
	}
}

// ListRuns returns all runs, newest directory name first. A run whose story
// cannot be parsed is still listed with empty metadata.
func (r *runRepository) ListRuns(ctx context.Context) ([]domain.Run, error) {
	entries, err := os.ReadDir(r.outputsDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.Run{}, nil
		}
		return nil, fmt.Errorf("failed to read outputs dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() && strings.Contains(e.Name(), runMarker) {
			names = append(names, e.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	runs := make([]domain.Run, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		runDir := filepath.Join(r.outputsDir, name)
		storyPath, ok := firstStory(runDir)
		if !ok {
			continue
		}

		run := domain.Run{
			ID:        name,
			StoryJSON: filepath.Base(storyPath),
		}

		if story, err := loadStory(storyPath); err != nil {
			log.Warnf("⚠️ Failed to parse story for run %s: %v", name, err)
		} else {
			run.TitlePrimary = story.TitlePrimary
			run.TitleSecondary = story.TitleSecondary
			run.PageCount = len(story.Pages)
		}

		run.HasAnyAudio = hasWav(filepath.Join(runDir, "audio"))
		run.HasAnyIllustration = hasIllustration(filepath.Join(runDir, "illustrations"))

		if info, err := os.Stat(runDir); err == nil {
			run.UpdatedAt = info.ModTime().Format(time.RFC3339)
		}

		runs = append(runs, run)
	}

	return runs, nil
}

func (r *runRepository) GetBook(ctx context.Context, runID string) (*domain.Book, error) {
	runDir, storyPath, err := r.findRun(runID)
	if err != nil {
		return nil, err
	}

	story, err := loadStory(storyPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStory, err)
	}
	if story.Pages == nil {
		return nil, fmt.Errorf("%w: story json is missing a valid 'pages' list", ErrInvalidStory)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return buildBook(r.outputsDir, runID, runDir, story), nil
}

func (r *runRepository) findRun(runID string) (string, string, error) {
	if !runIDPattern.MatchString(runID) || !strings.Contains(runID, runMarker) {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidRunID, runID)
	}

	runDir := filepath.Join(r.outputsDir, runID)
	info, err := os.Stat(runDir)
	if err != nil || !info.IsDir() {
		return "", "", fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}

	storyPath, ok := firstStory(runDir)
	if !ok {
		return "", "", fmt.Errorf("%w: story json not found for run: %s", ErrRunNotFound, runID)
	}

	return runDir, storyPath, nil
}

func firstStory(runDir string) (string, bool) {
	matches, err := filepath.Glob(filepath.Join(runDir, storyGlob))
	if err != nil || len(matches) == 0 {
		return "", false
	}
	sort.Strings(matches)
	return matches[0], true
}

func hasWav(root string) bool {
	found := false
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".wav") {
			found = true
			return fs.SkipAll
		}
		return nil
	})
	return found
}

func hasIllustration(dir string) bool {
	matches, err := filepath.Glob(filepath.Join(dir, "page_*.*"))
	return err == nil && len(matches) > 0
}
