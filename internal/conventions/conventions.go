// Package conventions reads "Don't use" entries from a project
// conventions file. The registry is a plain text handoff: specvet does
// not own or maintain the file, it only consumes the entries for the
// consistency audit.
package conventions

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var dontUseRe = regexp.MustCompile(`(?i)^\s*[-*+]?\s*(?:don'?t|do not)\s+use:\s*(.+?)\s*$`)

// Parse extracts the prohibited items from conventions text, one entry
// per "Don't use: X" line.
func Parse(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if m := dontUseRe.FindStringSubmatch(line); m != nil {
			out = append(out, strings.TrimSpace(m[1]))
		}
	}
	return out
}

// Load reads and parses a conventions file.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read conventions file: %w", err)
	}
	return Parse(string(data)), nil
}
