package simconf

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Scan decodes the configuration under basePath into the target struct or
// map. The target must be a non-nil pointer; fields are mapped through the
// "conf" struct tag. Only concrete (literal-prefixed) branches participate:
// wildcard and range patterns have no struct spelling and are skipped.
func (t *Trie) Scan(basePath string, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("target of Scan must be a non-nil pointer, got %T", target)
	}

	sectionData := navigateToPath(t.literalMap(), basePath)

	sectionMap, ok := sectionData.(map[string]any)
	if !ok {
		if sectionData == nil {
			sectionMap = make(map[string]any)
		} else {
			return fmt.Errorf("configuration path %q does not refer to a scannable section (map), but to type %T", basePath, sectionData)
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "conf",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(sectionMap); err != nil {
		return fmt.Errorf("failed to scan section %q into %T: %w", basePath, target, err)
	}

	return nil
}

// literalMap projects the literal-only subtree into a nested map of value
// texts.
func (t *Trie) literalMap() map[string]any {
	nested := make(map[string]any)
	t.literalWalk(nil, func(path []string, v Value) {
		setNestedValue(nested, path, v.Text)
	})
	return nested
}

func (t *Trie) literalWalk(path []string, fn func(path []string, v Value)) {
	if t.hasValue {
		fn(path, Value{Text: t.value, Source: t.source})
	}
	for _, c := range t.children {
		if c.prefix.kind != prefixLiteral {
			continue
		}
		c.literalWalk(append(path, c.prefix.text), fn)
	}
}

// setNestedValue sets a value in a nested map, creating intermediate maps.
// A leaf already present where a table is needed is replaced; a parameter
// with both a default and deeper overrides keeps the deeper structure.
func setNestedValue(nested map[string]any, path []string, value any) {
	if len(path) == 0 {
		return
	}
	current := nested
	for _, segment := range path[:len(path)-1] {
		next, exists := current[segment]
		nextMap, isMap := next.(map[string]any)
		if !exists || !isMap {
			nextMap = make(map[string]any)
			current[segment] = nextMap
		}
		current = nextMap
	}
	last := path[len(path)-1]
	if _, isMap := current[last].(map[string]any); !isMap {
		current[last] = value
	}
}

// navigateToPath traverses a nested map to reach the dotted path, returning
// nil when the path does not exist.
func navigateToPath(nested map[string]any, path string) any {
	path = strings.TrimSuffix(path, ".")
	if path == "" {
		return nested
	}

	current := any(nested)
	for _, segment := range splitPath(path) {
		currentMap, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		value, exists := currentMap[segment]
		if !exists {
			return nil
		}
		current = value
	}
	return current
}
