package simconf

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBuild(t *testing.T, assignments map[string]string) *Trie {
	t.Helper()
	root := &Trie{}
	line := 0
	for key, value := range assignments {
		line++
		require.NoError(t, root.Merge(Make(splitPath(key), value, Source{File: "test.ini", Line: line}), false))
	}
	return root
}

// TestMatchExamples covers the canonical lookup examples
func TestMatchExamples(t *testing.T) {
	trie := mustBuild(t, map[string]string{
		"node.0.power":   "10",
		"node.*.power":   "5",
		"node.**.active": "yes",
	})

	tests := []struct {
		name    string
		pattern []string
		want    string
		found   bool
	}{
		{"ExactBeatsWildcard", []string{"node", "0", "power"}, "10", true},
		{"SingleWildcard", []string{"node", "3", "power"}, "5", true},
		{"MultiLevelWildcard", []string{"node", "3", "radio", "active"}, "yes", true},
		{"MultiLevelOneSegment", []string{"node", "7", "active"}, "yes", true},
		{"NotFound", []string{"node", "3", "frequency"}, "", false},
		{"RootNotFound", []string{"iface", "0"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, found, err := trie.Match(tt.pattern...)
			require.NoError(t, err)
			assert.Equal(t, tt.found, found)
			if found {
				assert.Equal(t, tt.want, v.Text)
			}
		})
	}
}

// TestMatchPrecedence tests literal > "*" > "**" ordering
func TestMatchPrecedence(t *testing.T) {
	t.Run("LiteralBeforeWildcard", func(t *testing.T) {
		trie := mustBuild(t, map[string]string{
			"a.x": "literal",
			"a.*": "star",
		})
		v, found, err := trie.Match("a", "x")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "literal", v.Text)
	})

	t.Run("WildcardBeforeSeq", func(t *testing.T) {
		trie := mustBuild(t, map[string]string{
			"a.*":  "star",
			"a.**": "seq",
		})
		v, found, err := trie.Match("a", "anything")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "star", v.Text)
	})

	t.Run("DeclarationOrderAmongLiterals", func(t *testing.T) {
		// "2-4" and "3-5" both contain 4; the earlier child wins.
		root := &Trie{}
		require.NoError(t, root.Merge(Make([]string{"n", "2-4"}, "first", Source{}), false))
		require.NoError(t, root.Merge(Make([]string{"n", "3-5"}, "second", Source{}), false))
		v, found, err := root.Match("n", "4")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "first", v.Text)
	})

	t.Run("FirstMatchNotBestMatch", func(t *testing.T) {
		// The literal branch dead-ends below "x"; the "*" branch completes.
		trie := mustBuild(t, map[string]string{
			"a.x.deep": "literal",
			"a.*.far":  "star",
		})
		v, found, err := trie.Match("a", "x", "far")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "star", v.Text)
	})
}

// TestMatchWildcardSeq tests "**" suffix consumption
func TestMatchWildcardSeq(t *testing.T) {
	trie := mustBuild(t, map[string]string{
		"a.**.z": "deep",
		"b.**":   "tail",
	})

	t.Run("ConsumesZeroSegments", func(t *testing.T) {
		v, found, err := trie.Match("a", "z")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "deep", v.Text)
	})

	t.Run("ConsumesManySegments", func(t *testing.T) {
		v, found, err := trie.Match("a", "p", "q", "r", "z")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "deep", v.Text)
	})

	t.Run("ValueOnSeqNodeNeedsASegment", func(t *testing.T) {
		// Pattern exhaustion at "b" yields b's own (absent) value; the
		// "**" node's value is reachable once any segment remains.
		_, found, err := trie.Match("b")
		require.NoError(t, err)
		assert.False(t, found)

		v, found, err := trie.Match("b", "anything", "else")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "tail", v.Text)
	})
}

// TestMatchRanges tests numeric range/set prefixes
func TestMatchRanges(t *testing.T) {
	tests := []struct {
		name    string
		prefix  string
		segment string
		found   bool
	}{
		{"RangeContains", "2-4", "3", true},
		{"RangeLowEdge", "2-4", "2", true},
		{"RangeHighEdge", "2-4", "4", true},
		{"RangeAbove", "2-4", "5", false},
		{"RangeBelow", "2-4", "1", false},
		{"DiscreteSet", "1,4,7", "4", true},
		{"DiscreteSetMiss", "1,4,7", "5", false},
		{"OpenMin", "-5", "0", true},
		{"OpenMinAbove", "-5", "6", false},
		{"OpenMax", "5-", "100", true},
		{"OpenMaxBelow", "5-", "4", false},
		{"MixedSetAndRange", "1,3-5,9", "4", true},
		{"NonNumericSegment", "2-4", "three", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := &Trie{}
			require.NoError(t, root.Merge(Make([]string{"n", tt.prefix, "p"}, "v", Source{}), false))
			_, found, err := root.Match("n", tt.segment, "p")
			require.NoError(t, err)
			assert.Equal(t, tt.found, found)
		})
	}

	t.Run("MalformedRangeIsFatalAtMatch", func(t *testing.T) {
		root := &Trie{}
		require.NoError(t, root.Merge(Make([]string{"n", "2-4-6", "p"}, "v", Source{}), false))

		// Non-numeric segments never touch the descriptor
		_, found, err := root.Match("n", "x", "p")
		require.NoError(t, err)
		assert.False(t, found)

		// A numeric segment forces the parse and surfaces the error
		_, _, err = root.Match("n", "3", "p")
		var rangeErr *RangeError
		require.ErrorAs(t, err, &rangeErr)
		assert.Equal(t, "2-4-6", rangeErr.Token)
	})
}

// TestMatchCaseInsensitive tests case-insensitive literal comparison
func TestMatchCaseInsensitive(t *testing.T) {
	trie := mustBuild(t, map[string]string{"Node.Radio.TxPower": "3"})
	v, found, err := trie.Match("node", "RADIO", "txpower")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "3", v.Text)
}

// TestMatchConcurrent tests read-only concurrent lookups after resolution
func TestMatchConcurrent(t *testing.T) {
	trie := mustBuild(t, map[string]string{
		"node.0.power": "10",
		"node.*.power": "5",
	})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				_, found, err := trie.Match("node", fmt.Sprintf("%d", j%8), "power")
				if err != nil || !found {
					t.Errorf("reader %d: lookup failed", id)
					return
				}
			}
		}(i)
	}
	wg.Wait()
}
