// Package reader serves the three reading views of a namespace: the story
// overview, a story's catalog windows and its reading pages.
//
// Every call fetches and decodes afresh; nothing is cached between calls.
package reader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/storyshelf/storyshelf/internal/paging"
	"github.com/storyshelf/storyshelf/internal/storage"
	"github.com/storyshelf/storyshelf/internal/story"
	"github.com/storyshelf/storyshelf/internal/storycontent"
)

// Config holds the reader's collaborators.
type Config struct {
	// KV holds overview documents under OverviewKey.
	KV storage.Store
	// Blobs holds binary content under ContentKey.
	Blobs  storage.Store
	Logger *slog.Logger
}

// Service answers reading requests.
type Service struct {
	kv     storage.Store
	blobs  storage.Store
	logger *slog.Logger
}

// New creates a reader service.
func New(cfg Config) (*Service, error) {
	if cfg.KV == nil {
		return nil, errors.New("reader: KV store is required")
	}
	if cfg.Blobs == nil {
		return nil, errors.New("reader: blob store is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{kv: cfg.KV, blobs: cfg.Blobs, logger: logger}, nil
}

// OverviewView lists a namespace's stories.
type OverviewView struct {
	Namespace string           `json:"namespace" yaml:"namespace"`
	Stories   []story.Overview `json:"stories" yaml:"stories"`
}

// CatalogView is one catalog window of a story.
type CatalogView struct {
	Namespace string         `json:"namespace" yaml:"namespace"`
	Story     story.Overview `json:"story" yaml:"story"`
	Window    paging.Window  `json:"window" yaml:"window"`
}

// ContentView is one reading page of a story.
type ContentView struct {
	Namespace  string            `json:"namespace" yaml:"namespace"`
	Story      story.Overview    `json:"story" yaml:"story"`
	Navigation paging.Navigation `json:"navigation" yaml:"navigation"`
}

// Overview returns the namespace's stories in stored order.
func (s *Service) Overview(ctx context.Context, namespace string) (*OverviewView, error) {
	overviews, err := s.overviews(ctx, namespace)
	if err != nil {
		return nil, err
	}
	stories := make([]story.Overview, 0, len(overviews))
	for _, o := range overviews {
		stories = append(stories, story.Overview{StoryID: o.StoryID, StoryName: o.StoryName})
	}
	return &OverviewView{Namespace: namespace, Stories: stories}, nil
}

// Catalog returns window page of the story's catalog. Windows outside
// 1..max(TotalPages, 1) are rejected with paging.ErrInvalidParameter.
func (s *Service) Catalog(ctx context.Context, namespace, storyID string, page int) (*CatalogView, error) {
	ov, pages, err := s.load(ctx, namespace, storyID)
	if err != nil {
		return nil, err
	}

	w := paging.Catalog(pages, page)
	if !w.InRange() {
		return nil, fmt.Errorf("%w: catalog page %d of %d", paging.ErrInvalidParameter, page, w.TotalPages)
	}
	return &CatalogView{Namespace: namespace, Story: ov, Window: w}, nil
}

// Content returns reading page pageNo of the story.
func (s *Service) Content(ctx context.Context, namespace, storyID string, pageNo int) (*ContentView, error) {
	ov, pages, err := s.load(ctx, namespace, storyID)
	if err != nil {
		return nil, err
	}

	nav, err := paging.Navigate(pages, pageNo)
	if err != nil {
		return nil, fmt.Errorf("story %s: %w", storyID, err)
	}
	return &ContentView{Namespace: namespace, Story: ov, Navigation: nav}, nil
}

func (s *Service) overviews(ctx context.Context, namespace string) ([]story.Overview, error) {
	data, err := s.kv.Get(ctx, OverviewKey(namespace))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNamespaceNotFound, namespace)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch overview for %s: %w", namespace, err)
	}

	overviews, err := ParseOverview(data)
	if err != nil {
		return nil, fmt.Errorf("namespace %s: %w", namespace, err)
	}
	return overviews, nil
}

// load fetches the overview and the content object concurrently, then
// reports failures in a fixed order: namespace, story, content, decode.
func (s *Service) load(ctx context.Context, namespace, storyID string) (story.Overview, []story.Page, error) {
	var (
		overviews   []story.Overview
		overviewErr error
		blob        []byte
	)

	// A plain Group: neither fetch cancels the other. The overview error is
	// held aside rather than returned so it always takes precedence over
	// the blob error that Wait reports.
	var g errgroup.Group
	g.Go(func() error {
		overviews, overviewErr = s.overviews(ctx, namespace)
		return nil
	})
	g.Go(func() error {
		var err error
		blob, err = s.blobs.Get(ctx, ContentKey(storyID))
		return err
	})
	blobErr := g.Wait()

	if overviewErr != nil {
		return story.Overview{}, nil, overviewErr
	}
	ov, ok := story.Find(overviews, storyID)
	if !ok {
		return story.Overview{}, nil, fmt.Errorf("%w: %s in namespace %s", ErrStoryNotFound, storyID, namespace)
	}
	if errors.Is(blobErr, storage.ErrNotFound) {
		return story.Overview{}, nil, fmt.Errorf("%w: %s", ErrContentNotFound, storyID)
	}
	if blobErr != nil {
		return story.Overview{}, nil, fmt.Errorf("failed to fetch content for %s: %w", storyID, blobErr)
	}

	pages, err := storycontent.Decode(blob)
	if err != nil {
		s.logger.Error("story content failed to decode",
			"namespace", namespace, "story_id", storyID, "bytes", len(blob), "error", err)
		return story.Overview{}, nil, fmt.Errorf("story %s: %w", storyID, err)
	}
	if err := paging.CheckContiguous(pages); err != nil {
		return story.Overview{}, nil, fmt.Errorf("story %s: %w", storyID, err)
	}

	s.logger.Debug("story content decoded", "story_id", storyID, "pages", len(pages))
	return ov, pages, nil
}
