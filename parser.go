package simconf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// maxLineSize bounds one logical line after continuations are joined.
const maxLineSize = 1 << 20

// parser carries the mutable state of one load: the section table being
// built and the current section that assignments land in. All state is
// explicit here so loads are reentrant.
type parser struct {
	sections map[string]*Trie
	order    []string
	current  string
}

// Load parses a configuration file and all transitively included files into
// a section table. Same-named sections across files are merged as they are
// encountered; a duplicate assignment with a differing value is a
// *MergeConflictError at load time.
//
// Included files are opened relative to the including file's directory.
// Include cycles are not guarded: a file that transitively includes itself
// recurses until file-descriptor exhaustion.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to open config file '%s': %w", path, err)
	}
	defer file.Close()

	p := newParser()
	if err := p.parse(file, path); err != nil {
		return nil, err
	}
	return &Config{sections: p.sections, order: p.order}, nil
}

// LoadReader parses configuration text from r. The name is used in
// diagnostics and as the base for relative include paths.
func LoadReader(r io.Reader, name string) (*Config, error) {
	p := newParser()
	if err := p.parse(r, name); err != nil {
		return nil, err
	}
	return &Config{sections: p.sections, order: p.order}, nil
}

func newParser() *parser {
	return &parser{sections: make(map[string]*Trie)}
}

// parse consumes one file's physical lines, joining continuations into
// logical lines. Line numbers count physical lines; a logical line is
// reported at its first physical line.
func (p *parser) parse(r io.Reader, file string) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineno := 0
	for scanner.Scan() {
		lineno++
		start := lineno
		line := stripComment(scanner.Text())
		for hasContinuation(line) {
			line = strings.TrimSuffix(strings.TrimRight(line, " \t"), "\\")
			if !scanner.Scan() {
				break
			}
			lineno++
			line += stripComment(scanner.Text())
		}
		if err := p.handleLine(strings.TrimSpace(line), file, start); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read config file '%s': %w", file, err)
	}
	return nil
}

// handleLine classifies one logical line: blank, section header, include
// directive, or assignment. Anything else is fatal.
func (p *parser) handleLine(line, file string, lineno int) error {
	switch {
	case line == "":
		return nil

	case strings.HasPrefix(line, "["):
		if !strings.HasSuffix(line, "]") {
			return &ParseError{File: file, Line: lineno, Msg: "unterminated section header"}
		}
		name := strings.TrimSpace(line[1 : len(line)-1])
		if name == "" {
			return &ParseError{File: file, Line: lineno, Msg: "empty section name"}
		}
		p.current = name
		p.section(name)
		return nil

	case isIncludeDirective(line):
		target := strings.TrimSpace(strings.TrimPrefix(line, "include"))
		if target == "" {
			return &ParseError{File: file, Line: lineno, Msg: "include requires a file path"}
		}
		return p.include(target, file, lineno)

	default:
		return p.assignment(line, file, lineno)
	}
}

// include parses the referenced file in place, preserving the current
// section across the nested parse: lines following the directive stay in
// the section that was active before it.
func (p *parser) include(target, file string, lineno int) error {
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(file), target)
	}

	included, err := os.Open(target)
	if err != nil {
		return &ParseError{File: file, Line: lineno, Msg: fmt.Sprintf("cannot include '%s': %v", target, err)}
	}
	defer included.Close()

	saved := p.current
	err = p.parse(included, target)
	p.current = saved
	return err
}

func (p *parser) assignment(line, file string, lineno int) error {
	eq := strings.IndexByte(line, '=')
	if eq < 0 {
		return &ParseError{File: file, Line: lineno, Msg: "expected 'key = value' assignment"}
	}

	key := strings.TrimSpace(line[:eq])
	value := strings.TrimSpace(line[eq+1:])
	if key == "" {
		return &ParseError{File: file, Line: lineno, Msg: "assignment has empty key"}
	}
	if p.current == "" {
		return &ParseError{File: file, Line: lineno, Msg: "assignment outside of a section"}
	}

	segments := splitPath(key)
	for i, segment := range segments {
		segments[i] = strings.TrimSpace(segment)
		if segments[i] == "" {
			return &ParseError{File: file, Line: lineno, Msg: fmt.Sprintf("empty segment in key %q", key)}
		}
	}

	chain := Make(segments, value, Source{File: file, Line: lineno})
	return p.section(p.current).Merge(chain, false)
}

// section returns the trie for a section name, creating an empty placeholder
// on first reference.
func (p *parser) section(name string) *Trie {
	if t, ok := p.sections[name]; ok {
		return t
	}
	t := &Trie{}
	p.sections[name] = t
	p.order = append(p.order, name)
	return t
}

// stripComment removes everything from the first '#' on.
func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	return line
}

// hasContinuation reports a trailing backslash after comment stripping.
func hasContinuation(line string) bool {
	return strings.HasSuffix(strings.TrimRight(line, " \t"), "\\")
}

// isIncludeDirective recognizes "include <path>". A line containing '=' is
// always an assignment, so a parameter may legitimately be named "include".
func isIncludeDirective(line string) bool {
	if strings.ContainsRune(line, '=') {
		return false
	}
	rest, ok := strings.CutPrefix(line, "include")
	if !ok {
		return false
	}
	return rest == "" || rest[0] == ' ' || rest[0] == '\t'
}
