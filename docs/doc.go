// Package docs provides generated OpenAPI documentation.
//
// storyshelf API
//
//	@title			storyshelf API
//	@version		1.0
//	@description	Multi-tenant story reading API: story lists, paginated catalogs and reading pages.
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http https
package docs

//go:generate swag init -g ../cmd/storyshelf/serve.go -o ./swagger --parseDependency --parseInternal
