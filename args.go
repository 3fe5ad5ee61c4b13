package simconf

import (
	"fmt"
	"strings"
)

// argsFile is the pseudo file name attributed to command-line overrides;
// the "line" is the argument's position.
const argsFile = "<args>"

// parseArgs turns command-line arguments into an override trie. Arguments
// use "--key.path=value" or "--key.path value"; a flag with no value means
// "true". Non-flag arguments are skipped so the caller can pass its full
// argument list.
func parseArgs(args []string) (*Trie, error) {
	root := &Trie{}
	i := 0
	for i < len(args) {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") {
			i++
			continue
		}

		argContent := strings.TrimPrefix(arg, "--")
		if argContent == "" {
			// "--" used as a separator.
			i++
			continue
		}

		pos := i + 1
		var keyPath, valueStr string

		if eq := strings.IndexByte(argContent, '='); eq >= 0 {
			keyPath = argContent[:eq]
			valueStr = argContent[eq+1:]
			i++
		} else {
			keyPath = argContent
			if i+1 >= len(args) || strings.HasPrefix(args[i+1], "--") {
				valueStr = "true"
				i++
			} else {
				valueStr = args[i+1]
				i += 2
			}
		}

		segments := splitPath(keyPath)
		for j, segment := range segments {
			segments[j] = strings.TrimSpace(segment)
			if segments[j] == "" {
				return nil, fmt.Errorf("invalid command-line key %q", keyPath)
			}
		}

		chain := Make(segments, strings.TrimSpace(valueStr), Source{File: argsFile, Line: pos})
		if err := root.Merge(chain, false); err != nil {
			return nil, err
		}
	}

	return root, nil
}
