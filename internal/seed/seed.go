// Package seed loads story data from a YAML document into the metadata
// and content stores. It is the out-of-band producer used by the import
// command and by in-memory demo serving.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/storyshelf/storyshelf/internal/reader"
	"github.com/storyshelf/storyshelf/internal/story"
	"github.com/storyshelf/storyshelf/internal/storycontent"
)

var (
	ErrEmptyNamespace = errors.New("namespace name is required")
	ErrEmptyStoryID   = errors.New("story id is required")
)

// Putter is a store that accepts writes.
type Putter interface {
	Put(ctx context.Context, key string, value []byte) error
}

// File is the YAML document layout.
type File struct {
	Namespaces []Namespace `yaml:"namespaces"`
}

// Namespace is one tenant and its stories, in list order.
type Namespace struct {
	Name    string  `yaml:"name"`
	Stories []Story `yaml:"stories"`
}

// Story is a story's overview entry plus its pages.
// Pages may be omitted to publish an overview entry with no content.
type Story struct {
	ID    string       `yaml:"story_id"`
	Name  string       `yaml:"story_name"`
	Pages []story.Page `yaml:"pages"`
}

// Parse decodes and validates a seed document.
func Parse(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("failed to parse seed: %w", err)
	}
	for i, ns := range f.Namespaces {
		if ns.Name == "" {
			return nil, fmt.Errorf("namespaces[%d]: %w", i, ErrEmptyNamespace)
		}
		for j, s := range ns.Stories {
			if s.ID == "" {
				return nil, fmt.Errorf("namespace %q stories[%d]: %w", ns.Name, j, ErrEmptyStoryID)
			}
		}
	}
	return &f, nil
}

// LoadFile reads path and writes its contents to the stores.
// It returns the number of stories written.
func LoadFile(ctx context.Context, path string, kv, blobs Putter) (int, error) {
	fh, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer fh.Close()

	f, err := Parse(fh)
	if err != nil {
		return 0, err
	}
	return Load(ctx, f, kv, blobs)
}

// Load writes each namespace's overview to kv and each story with pages
// to blobs. Content keys are global, so a story id seen twice keeps
// the pages of its last occurrence.
func Load(ctx context.Context, f *File, kv, blobs Putter) (int, error) {
	n := 0
	for _, ns := range f.Namespaces {
		overviews := make([]story.Overview, 0, len(ns.Stories))
		for _, s := range ns.Stories {
			overviews = append(overviews, story.Overview{StoryID: s.ID, StoryName: s.Name})
			if len(s.Pages) == 0 {
				continue
			}
			if err := blobs.Put(ctx, reader.ContentKey(s.ID), storycontent.Encode(s.Pages)); err != nil {
				return n, fmt.Errorf("failed to write content for %q: %w", s.ID, err)
			}
			n++
		}

		data, err := reader.EncodeOverview(overviews)
		if err != nil {
			return n, err
		}
		if err := kv.Put(ctx, reader.OverviewKey(ns.Name), data); err != nil {
			return n, fmt.Errorf("failed to write overview for %q: %w", ns.Name, err)
		}
	}
	return n, nil
}
