package templates

import (
	"embed"
	"io/fs"
	"sync"
)

// catalogFS holds catalog.yaml and the template sources under files/.
//
//go:embed catalog.yaml files
var catalogFS embed.FS

//go:embed catalog.cue
var catalogSchema []byte

// CatalogFS returns the embedded catalog filesystem.
func CatalogFS() fs.FS {
	return catalogFS
}

var defaultRegistry = sync.OnceValues(func() (*Registry, error) {
	return LoadRegistry(catalogFS)
})

// Default returns the registry loaded from the embedded catalog.
// The catalog is parsed and validated once per process.
func Default() (*Registry, error) {
	return defaultRegistry()
}
