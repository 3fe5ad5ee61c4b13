package simconf

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Map projects the trie into a nested map of value texts, keyed by segment.
// Wildcard and range prefixes appear as their literal tokens ("*", "2-4"),
// so the projection is a faithful dump of the resolved configuration, not a
// concrete parameter listing.
func (t *Trie) Map() map[string]any {
	nested := make(map[string]any)
	t.Walk(func(path []string, v Value) {
		setNestedValue(nested, path, v.Text)
	})
	return nested
}

// Dump writes the trie as TOML to w. Pattern keys are quoted by the
// encoder.
func (t *Trie) Dump(w io.Writer) error {
	return toml.NewEncoder(w).Encode(t.Map())
}

// Save writes the trie to a TOML file atomically: the data is written to a
// temporary file in the target directory, synced, then renamed over the
// destination.
func (t *Trie) Save(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(t.Map()); err != nil {
		return fmt.Errorf("failed to marshal config data to TOML: %w", err)
	}
	return atomicWriteFile(path, buf.Bytes())
}

// atomicWriteFile performs atomic file write.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	tempPath := tempFile.Name()
	defer os.Remove(tempPath) // Clean up on any error

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}
