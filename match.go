package simconf

import (
	"strconv"
	"strings"
)

// Match looks up a concrete hierarchical path against the trie.
//
// At each level, candidate children are tried in precedence order: literal
// prefixes in declaration order (a case-insensitive compare, or numeric
// range/set containment when the pattern segment is an integer), then the
// "*" child, then the "**" child. The "**" child is tried against every
// suffix of the remaining pattern, longest first, so it consumes any number
// of intervening levels. The first full match along any explored branch
// wins.
//
// The error is non-nil only when a malformed range descriptor was touched
// while matching.
func (t *Trie) Match(pattern ...string) (Value, bool, error) {
	return t.matchRemaining(pattern)
}

// MatchPath is Match for a dotted path.
func (t *Trie) MatchPath(path string) (Value, bool, error) {
	return t.matchRemaining(splitPath(path))
}

// matchRemaining matches the pattern segments left after this node's own
// prefix has been consumed.
func (t *Trie) matchRemaining(pattern []string) (Value, bool, error) {
	if len(pattern) == 0 {
		if t.hasValue {
			return Value{Text: t.value, Source: t.source}, true, nil
		}
		return Value{}, false, nil
	}

	for _, c := range t.children {
		if c.prefix.kind != prefixLiteral {
			continue
		}
		ok, err := literalMatches(c.prefix.text, pattern[0])
		if err != nil {
			return Value{}, false, err
		}
		if !ok {
			continue
		}
		if v, found, err := c.matchRemaining(pattern[1:]); found || err != nil {
			return v, found, err
		}
	}

	if c := t.globChild(prefixWildcard); c != nil {
		if v, found, err := c.matchRemaining(pattern[1:]); found || err != nil {
			return v, found, err
		}
	}

	if c := t.globChild(prefixWildcardSeq); c != nil {
		for skip := 0; skip <= len(pattern); skip++ {
			if v, found, err := c.matchRemaining(pattern[skip:]); found || err != nil {
				return v, found, err
			}
		}
	}

	return Value{}, false, nil
}

func (t *Trie) globChild(kind prefixKind) *Trie {
	for _, c := range t.children {
		if c.prefix.kind == kind {
			return c
		}
	}
	return nil
}

// literalMatches compares a literal node prefix against one pattern segment:
// case-insensitive equality first, then range/set containment when the
// segment is an integer and the prefix is shaped like a descriptor.
func literalMatches(prefix, segment string) (bool, error) {
	if strings.EqualFold(prefix, segment) {
		return true, nil
	}
	n, err := strconv.ParseInt(segment, 10, 64)
	if err != nil {
		return false, nil
	}
	if !looksLikeRange(prefix) {
		return false, nil
	}
	return rangeContains(prefix, n)
}
