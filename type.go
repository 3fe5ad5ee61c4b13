package simconf

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Typed accessors for resolved tries. Values are stored as verbatim text;
// these match the dotted path and convert on the way out, reporting the
// offending source location when conversion fails.

// String retrieves the value text for the path.
func (t *Trie) String(path string) (string, error) {
	v, err := t.lookup(path)
	if err != nil {
		return "", err
	}
	return v.Text, nil
}

// Int64 retrieves an integer value for the path.
// Base prefixes are auto-detected (e.g. "0xFF"); a float literal is
// truncated, matching lenient numeric handling elsewhere.
func (t *Trie) Int64(path string) (int64, error) {
	v, err := t.lookup(path)
	if err != nil {
		return 0, err
	}
	if i, err := strconv.ParseInt(v.Text, 0, 64); err == nil {
		return i, nil
	}
	if f, err := strconv.ParseFloat(v.Text, 64); err == nil {
		return int64(f), nil
	}
	return 0, fmt.Errorf("cannot convert %q to int64 for path %s (%s)", v.Text, path, v.Source)
}

// Bool retrieves a boolean value for the path. Beyond the usual true/false
// spellings, the yes/no and on/off forms common in simulation configs are
// accepted.
func (t *Trie) Bool(path string) (bool, error) {
	v, err := t.lookup(path)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(v.Text) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	if b, err := strconv.ParseBool(v.Text); err == nil {
		return b, nil
	}
	return false, fmt.Errorf("cannot convert %q to bool for path %s (%s)", v.Text, path, v.Source)
}

// Float64 retrieves a floating-point value for the path.
func (t *Trie) Float64(path string) (float64, error) {
	v, err := t.lookup(path)
	if err != nil {
		return 0.0, err
	}
	if f, err := strconv.ParseFloat(v.Text, 64); err == nil {
		return f, nil
	}
	return 0.0, fmt.Errorf("cannot convert %q to float64 for path %s (%s)", v.Text, path, v.Source)
}

// Duration retrieves a time.Duration value for the path ("100ms", "2s").
func (t *Trie) Duration(path string) (time.Duration, error) {
	v, err := t.lookup(path)
	if err != nil {
		return 0, err
	}
	d, err := time.ParseDuration(v.Text)
	if err != nil {
		return 0, fmt.Errorf("cannot convert %q to duration for path %s (%s): %w", v.Text, path, v.Source, err)
	}
	return d, nil
}

func (t *Trie) lookup(path string) (Value, error) {
	v, found, err := t.MatchPath(path)
	if err != nil {
		return Value{}, err
	}
	if !found {
		return Value{}, fmt.Errorf("no value configured for path %s", path)
	}
	return v, nil
}
