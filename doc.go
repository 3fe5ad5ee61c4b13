// Package simconf resolves hierarchical simulation parameters from
// line-oriented configuration files into immutable lookup tries.
//
// Configuration files group dotted assignments into named sections:
//
//	[Fast]
//	extends = Baseline
//	node.0.power = 10
//	node.*.power = 5        # any other node
//	node.**.active = yes    # any depth below node
//
//	[General]
//	sim-time = 100s
//
// Load parses one root file (plus transitive includes) into a section table,
// and Resolve merges a requested section, its "extends" chain, and the
// mandatory trailing "General" section into a single trie:
//
//	cfg, err := simconf.Load("sim.ini")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	params, err := cfg.Resolve("Fast")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	v, ok, err := params.Match("node", "3", "power") // "5"
//	power, err := params.Int64("node.3.power")       // 5
//
// Lookup patterns are matched against node prefixes with a fixed precedence:
// literal (case-insensitive, or numeric range/set containment such as "2-4"
// against "3"), then "*" (exactly one level), then "**" (zero or more
// levels). The first full match wins.
//
// Resolution is synchronous and all-or-nothing: it either yields a complete
// trie or fails with an error carrying file and line provenance. A resolved
// trie is never mutated afterwards and is safe for unlimited concurrent
// readers.
package simconf
