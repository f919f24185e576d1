// Package registry holds the static page map the audit walks. Pages are
// read-only configuration: an ordered list of descriptors shipped with the
// binary, optionally replaced by a YAML file for other deployments.
package registry

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	sharedErrors "github.com/nexless/storeaudit/internal/shared/errors"
)

//go:embed pages.yaml
var defaultPagesYAML []byte

// Page describes one auditable page of the target application.
type Page struct {
	Key      string `yaml:"key" json:"key"`
	Name     string `yaml:"name" json:"name"`
	Path     string `yaml:"path" json:"path"`
	Category string `yaml:"category" json:"category"`
	Risk     string `yaml:"risk" json:"risk"`
}

// URL joins the page path onto the target base origin.
func (p Page) URL(baseURL string) string {
	base := strings.TrimRight(baseURL, "/")
	if p.Path == "" || p.Path == "/" {
		return base + "/"
	}
	return base + p.Path
}

// Registry is an ordered, key-addressable set of pages.
type Registry struct {
	pages []Page
	index map[string]int
}

// Default returns the registry embedded in the binary.
func Default() (*Registry, error) {
	return Parse(defaultPagesYAML)
}

// LoadFile reads a registry from a YAML file, replacing the embedded set.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- registry path comes from operator config.
	if err != nil {
		return nil, fmt.Errorf("read pages file: %w", err)
	}
	reg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse pages file %s: %w", path, err)
	}
	return reg, nil
}

// Parse decodes and validates a YAML page list, preserving declaration order.
func Parse(data []byte) (*Registry, error) {
	var pages []Page
	if err := yaml.Unmarshal(data, &pages); err != nil {
		return nil, fmt.Errorf("decode page registry: %w", err)
	}
	if len(pages) == 0 {
		return nil, sharedErrors.ErrEmptyRegistry
	}

	index := make(map[string]int, len(pages))
	for i, p := range pages {
		if err := validatePage(p); err != nil {
			return nil, fmt.Errorf("page %d (%q): %w", i, p.Key, err)
		}
		if _, dup := index[p.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate key %q", sharedErrors.ErrInvalidPage, p.Key)
		}
		index[p.Key] = i
	}

	return &Registry{pages: pages, index: index}, nil
}

func validatePage(p Page) error {
	if p.Key == "" || p.Name == "" {
		return fmt.Errorf("%w: key and name are required", sharedErrors.ErrInvalidPage)
	}
	if !ValidKey(p.Key) {
		return fmt.Errorf("%w: key %q must be lowercase letters, digits, or hyphens", sharedErrors.ErrInvalidPage, p.Key)
	}
	if !strings.HasPrefix(p.Path, "/") {
		return fmt.Errorf("%w: path %q must start with /", sharedErrors.ErrInvalidPage, p.Path)
	}
	return nil
}

// ValidKey reports whether a page key is safe to embed in file names.
func ValidKey(key string) bool {
	if key == "" {
		return false
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-':
		default:
			return false
		}
	}
	return true
}

// Pages returns the descriptors in declaration order.
func (r *Registry) Pages() []Page {
	out := make([]Page, len(r.pages))
	copy(out, r.pages)
	return out
}

// Keys returns the page keys in declaration order.
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.pages))
	for i, p := range r.pages {
		keys[i] = p.Key
	}
	return keys
}

// Get looks up a page by key.
func (r *Registry) Get(key string) (Page, error) {
	i, ok := r.index[key]
	if !ok {
		return Page{}, fmt.Errorf("%w: %s", sharedErrors.ErrUnknownPage, key)
	}
	return r.pages[i], nil
}

// Has reports whether a page key exists.
func (r *Registry) Has(key string) bool {
	_, ok := r.index[key]
	return ok
}

// Len returns the number of registered pages.
func (r *Registry) Len() int {
	return len(r.pages)
}
