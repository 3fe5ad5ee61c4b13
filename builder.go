package simconf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Builder provides a fluent interface for loading and resolving a
// configuration in one go.
type Builder struct {
	file     string
	sections []string
	opts     ResolveOptions
}

// NewBuilder creates a new configuration builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithFile sets the root configuration file path.
func (b *Builder) WithFile(path string) *Builder {
	b.file = path
	return b
}

// WithSections sets the configuration keys to resolve, in order. General is
// always appended.
func (b *Builder) WithSections(names ...string) *Builder {
	b.sections = append(b.sections, names...)
	return b
}

// WithOverride selects target-wins merging instead of failing on value
// conflicts.
func (b *Builder) WithOverride() *Builder {
	b.opts.Override = true
	return b
}

// WithArgs supplies command-line arguments whose "--key.path=value" entries
// override configured values.
func (b *Builder) WithArgs(args []string) *Builder {
	b.opts.Args = args
	return b
}

// FileDiscoveryOptions configures automatic root-file discovery.
type FileDiscoveryOptions struct {
	// Base name of the config file (without extension)
	Name string

	// Extensions to try (in order)
	Extensions []string

	// Search paths (in order)
	Paths []string

	// Environment variable to check for an explicit path
	EnvVar string
}

// DefaultDiscoveryOptions returns sensible defaults: the current directory,
// ".ini" and ".conf" extensions, and APPNAME_CONFIG for an explicit path.
func DefaultDiscoveryOptions(appName string) FileDiscoveryOptions {
	return FileDiscoveryOptions{
		Name:       appName,
		Extensions: []string{".ini", ".conf"},
		Paths:      []string{"."},
		EnvVar:     strings.ToUpper(appName) + "_CONFIG",
	}
}

// WithFileDiscovery locates the root file: an explicit path from the
// environment variable wins, then the first existing candidate from the
// search paths and extensions. An explicit WithFile always takes
// precedence.
func (b *Builder) WithFileDiscovery(opts FileDiscoveryOptions) *Builder {
	if b.file != "" {
		return b
	}

	if opts.EnvVar != "" {
		if path, exists := os.LookupEnv(opts.EnvVar); exists && path != "" {
			b.file = path
			return b
		}
	}

	for _, dir := range opts.Paths {
		for _, ext := range opts.Extensions {
			candidate := filepath.Join(dir, opts.Name+ext)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				b.file = candidate
				return b
			}
		}
	}

	return b
}

// Build loads the file and resolves the requested sections.
func (b *Builder) Build() (*Trie, error) {
	if b.file == "" {
		return nil, ErrConfigNotFound
	}
	cfg, err := Load(b.file)
	if err != nil {
		return nil, err
	}
	return cfg.ResolveWith(b.opts, b.sections...)
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Trie {
	t, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("config build failed: %v", err))
	}
	return t
}
