package endpoints

import (
	"github.com/storyshelf/storyshelf/internal/api"
)

// All returns all endpoint instances.
func All() []api.Endpoint {
	return []api.Endpoint{
		// Health endpoints
		&HealthEndpoint{},
		&ReadyEndpoint{},

		// Story API endpoints
		&ListStoriesEndpoint{},
		&CatalogEndpoint{},
		&GetPageEndpoint{},

		// Reading site
		&OverviewPageEndpoint{},
		&CatalogPageEndpoint{},
		&ReaderPageEndpoint{},
	}
}
