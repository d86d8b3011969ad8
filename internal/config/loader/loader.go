// Package loader reads configuration sources into generic maps.
//
// Files are parsed by extension (TOML or YAML) and environment variables
// with a common prefix are mapped onto dotted setting paths. The maps are
// merged by the config package before being decoded into typed sections.
package loader

import "os"

// Loader produces one configuration layer. A source that does not exist
// yields nil, nil.
type Loader interface {
	Load() (map[string]any, error)
}

var (
	_ Loader = (*FileLoader)(nil)
	_ Loader = (*EnvLoader)(nil)
)

// FileSystem reads configuration files. fstest.MapFS satisfies it in tests.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFS reads from the real file system.
type OSFS struct{}

func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// DefaultFS returns OSFS.
func DefaultFS() FileSystem {
	return OSFS{}
}
