package simconf

import "strings"

// GeneralSection is the section merged last into every resolution, whether
// requested or not.
const GeneralSection = "General"

// extendsKey is the reserved pseudo-parameter at a section root listing
// further sections to merge first. It is consumed during resolution and is
// never visible to lookups.
const extendsKey = "extends"

// Config is the section table produced by Load: one trie per named section,
// in first-reference order.
type Config struct {
	sections map[string]*Trie
	order    []string
}

// Sections lists section names in the order they were first referenced.
func (c *Config) Sections() []string {
	return append([]string(nil), c.order...)
}

// Section returns the raw, unresolved trie for one section.
func (c *Config) Section(name string) (*Trie, bool) {
	t, ok := c.sections[name]
	return t, ok
}

// ResolveOptions configures how sections are combined.
type ResolveOptions struct {
	// Override forces target-wins merging instead of failing on value
	// conflicts between sections.
	Override bool

	// Args supplies command-line overrides ("--node.0.power=10") that win
	// over every file-sourced value.
	Args []string
}

// Resolve combines the requested sections, their "extends" chains, and the
// trailing General section into one trie. A single requested section is the
// common case; zero keys resolve General alone.
func (c *Config) Resolve(keys ...string) (*Trie, error) {
	return c.ResolveWith(ResolveOptions{}, keys...)
}

// ResolveWith is Resolve with explicit options.
//
// Each key is processed in order, then General if not already processed.
// For every section, its "extends" list is resolved first (in listed
// order), then its own body is merged into the accumulating result. A
// visited set guards against extension cycles and duplicate keys. The
// returned trie shares no structure with the section table and is safe for
// concurrent readers.
func (c *Config) ResolveWith(opts ResolveOptions, keys ...string) (*Trie, error) {
	r := &resolver{
		cfg:      c,
		result:   &Trie{},
		visited:  make(map[string]bool),
		override: opts.Override,
	}

	for _, key := range keys {
		if err := r.resolveSection(key, Source{}); err != nil {
			return nil, err
		}
	}
	if err := r.resolveSection(GeneralSection, Source{}); err != nil {
		return nil, err
	}

	if len(opts.Args) == 0 {
		return r.result, nil
	}

	// Fold the file-sourced result into the CLI trie with the override
	// path, so command-line values are retained over configured ones.
	overrides, err := parseArgs(opts.Args)
	if err != nil {
		return nil, err
	}
	if err := overrides.Merge(r.result, true); err != nil {
		return nil, err
	}
	return overrides, nil
}

// resolver threads the resolution state explicitly: the accumulating trie
// and the set of sections already folded in.
type resolver struct {
	cfg      *Config
	result   *Trie
	visited  map[string]bool
	override bool
}

func (r *resolver) resolveSection(name string, ref Source) error {
	if r.visited[name] {
		return nil
	}
	r.visited[name] = true

	section, ok := r.cfg.sections[name]
	if !ok {
		return &SectionError{Name: name, Ref: ref}
	}

	// Work on a copy: stripping "extends" and merging must not touch the
	// section table, which later resolutions read again.
	body := section.Copy()
	if ext, ok := body.Delete(extendsKey); ok {
		if v, has := ext.Value(); has {
			for _, base := range strings.Split(v.Text, ",") {
				base = strings.TrimSpace(base)
				if base == "" {
					continue
				}
				if err := r.resolveSection(base, v.Source); err != nil {
					return err
				}
			}
		}
	}

	return r.result.Merge(body, r.override)
}
