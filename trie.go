package simconf

import (
	"fmt"
	"strings"
)

// Glob tokens recognized in configuration keys and match patterns.
const (
	// TokenWildcard matches exactly one pattern segment.
	TokenWildcard = "*"
	// TokenWildcardSeq matches zero or more consecutive pattern segments.
	TokenWildcardSeq = "**"
)

// prefixKind is the closed set of node prefix variants. Numeric range and
// set descriptors stay prefixLiteral; they are interpreted lazily at match
// time (see range.go).
type prefixKind int

const (
	prefixLiteral prefixKind = iota
	prefixWildcard
	prefixWildcardSeq
)

// Prefix is the segment key stored at one trie node: a literal string
// (possibly a numeric range/set descriptor) or one of the two glob tokens.
type Prefix struct {
	kind prefixKind
	text string
}

// prefixFor classifies a configuration key segment.
func prefixFor(segment string) Prefix {
	switch segment {
	case TokenWildcardSeq:
		return Prefix{kind: prefixWildcardSeq, text: segment}
	case TokenWildcard:
		return Prefix{kind: prefixWildcard, text: segment}
	default:
		return Prefix{kind: prefixLiteral, text: segment}
	}
}

func (p Prefix) String() string { return p.text }

// equal compares prefixes the way sibling uniqueness is defined:
// same variant, case-insensitive text.
func (p Prefix) equal(q Prefix) bool {
	return p.kind == q.kind && strings.EqualFold(p.text, q.text)
}

// Source is the provenance of a configured value: originating file and line.
// It is carried through merges and named in diagnostics.
type Source struct {
	File string
	Line int
}

func (s Source) String() string {
	if s.File == "" {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d", s.File, s.Line)
}

// Value is a matched parameter: the verbatim value text and its provenance.
type Value struct {
	Text   string
	Source Source
}

// Trie is a prefix tree mapping hierarchical key segments to values.
// Sibling children have pairwise-distinct prefixes under case-insensitive
// comparison. A node may carry both a value and children (a default
// overridden at a deeper level); value presence is tracked explicitly.
//
// Merged tries may share child subtrees by reference. Treat anything
// produced by Merge or Resolve as read-only.
type Trie struct {
	prefix   Prefix
	value    string
	hasValue bool
	source   Source
	children []*Trie
}

// Make builds a minimal linear chain for one dotted configuration key:
// every segment but the last becomes an interior node with no value; the
// terminal node holds the value and its source.
func Make(path []string, value string, src Source) *Trie {
	root := &Trie{}
	node := root
	for _, segment := range path {
		child := &Trie{prefix: prefixFor(segment)}
		node.children = append(node.children, child)
		node = child
	}
	node.value = value
	node.hasValue = true
	node.source = src
	return root
}

// Prefix returns the segment key this node matches.
func (t *Trie) Prefix() string { return t.prefix.text }

// Value returns the node's own value, if present.
func (t *Trie) Value() (Value, bool) {
	if !t.hasValue {
		return Value{}, false
	}
	return Value{Text: t.value, Source: t.source}, true
}

// child returns the existing child with an equal prefix, or nil.
func (t *Trie) child(p Prefix) *Trie {
	for _, c := range t.children {
		if c.prefix.equal(p) {
			return c
		}
	}
	return nil
}

// Delete walks the trie by exact token equality only (a "*" segment matches
// a "*" child, never an arbitrary one), detaches the final matched child and
// returns it. The second result is false when the path does not exist.
func (t *Trie) Delete(segments ...string) (*Trie, bool) {
	if len(segments) == 0 {
		return nil, false
	}
	node := t
	for _, segment := range segments[:len(segments)-1] {
		if node = node.child(prefixFor(segment)); node == nil {
			return nil, false
		}
	}
	last := prefixFor(segments[len(segments)-1])
	for i, c := range node.children {
		if c.prefix.equal(last) {
			node.children = append(node.children[:i], node.children[i+1:]...)
			return c, true
		}
	}
	return nil, false
}

// Copy returns a deep copy sharing no structure with the original.
// Resolution always merges copies so the section table stays intact.
func (t *Trie) Copy() *Trie {
	dup := &Trie{
		prefix:   t.prefix,
		value:    t.value,
		hasValue: t.hasValue,
		source:   t.source,
	}
	if len(t.children) > 0 {
		dup.children = make([]*Trie, len(t.children))
		for i, c := range t.children {
			dup.children[i] = c.Copy()
		}
	}
	return dup
}

// Walk visits every value-bearing node in depth-first declaration order,
// passing the segment path from the root and the stored value. The path
// slice is reused between calls; copy it before retaining.
func (t *Trie) Walk(fn func(path []string, v Value)) {
	t.walk(nil, fn)
}

func (t *Trie) walk(path []string, fn func(path []string, v Value)) {
	if t.hasValue {
		fn(path, Value{Text: t.value, Source: t.source})
	}
	for _, c := range t.children {
		c.walk(append(path, c.prefix.text), fn)
	}
}

// splitPath splits a dotted configuration path into its segments.
func splitPath(path string) []string {
	return strings.Split(path, ".")
}
