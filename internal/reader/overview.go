package reader

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/storyshelf/storyshelf/internal/story"
)

//go:embed overview.schema.json
var overviewSchemaJSON []byte

var (
	overviewSchemaOnce sync.Once
	overviewSchema     *jsonschema.Schema
	overviewSchemaErr  error
)

func compiledOverviewSchema() (*jsonschema.Schema, error) {
	overviewSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("overview.schema.json", bytes.NewReader(overviewSchemaJSON)); err != nil {
			overviewSchemaErr = fmt.Errorf("failed to load overview schema: %w", err)
			return
		}
		overviewSchema, overviewSchemaErr = compiler.Compile("overview.schema.json")
		if overviewSchemaErr != nil {
			overviewSchemaErr = fmt.Errorf("failed to compile overview schema: %w", overviewSchemaErr)
		}
	})
	return overviewSchema, overviewSchemaErr
}

// ParseOverview decodes a stored overview document. Documents that are not
// JSON or do not match the schema yield ErrInvalidOverview.
func ParseOverview(data []byte) ([]story.Overview, error) {
	schema, err := compiledOverviewSchema()
	if err != nil {
		return nil, err
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOverview, err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOverview, err)
	}

	overviews := []story.Overview{}
	if err := json.Unmarshal(data, &overviews); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOverview, err)
	}
	return overviews, nil
}

// EncodeOverview is the inverse of ParseOverview. Producers use it to
// write overview documents.
func EncodeOverview(overviews []story.Overview) ([]byte, error) {
	if overviews == nil {
		overviews = []story.Overview{}
	}
	return json.Marshal(overviews)
}
