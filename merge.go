package simconf

import (
	"fmt"
	"strings"
)

// Merge folds src into t in place. Both roots must have equal prefixes.
//
// If t lacks a value where src has one, t adopts src's value and source.
// If both hold differing values the merge fails with a *MergeConflictError
// naming both locations, unless override is set, in which case the value
// already in t wins. Source children with no same-prefixed counterpart in t
// are appended by reference, so t and src share structure afterwards;
// neither side may be mutated independently once merged.
//
// Merging an empty source is a no-op, and repeating an identical merge
// changes nothing. Merge is not commutative when conflicts are overridden:
// the target side is preferred.
func (t *Trie) Merge(src *Trie, override bool) error {
	return t.mergeInto(src, override, nil)
}

func (t *Trie) mergeInto(src *Trie, override bool, path []string) error {
	if !t.prefix.equal(src.prefix) {
		return fmt.Errorf("cannot merge %q into %q: prefixes differ", src.prefix, t.prefix)
	}

	if src.hasValue {
		switch {
		case !t.hasValue:
			t.value = src.value
			t.hasValue = true
			t.source = src.source
		case t.value == src.value:
			// Identical definitions coexist; keeps repeated merges stable.
		case override:
			// Target value already present wins.
		default:
			return &MergeConflictError{
				Path:     strings.Join(path, "."),
				Existing: t.source,
				Incoming: src.source,
			}
		}
	}

	for _, sc := range src.children {
		if tc := t.child(sc.prefix); tc != nil {
			if err := tc.mergeInto(sc, override, append(path, sc.prefix.text)); err != nil {
				return err
			}
		} else {
			t.children = append(t.children, sc)
		}
	}

	return nil
}
