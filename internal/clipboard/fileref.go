package clipboard

import (
	"net/url"
	"path/filepath"
	"strings"
)

// ParseFileRefs extracts absolute file paths from clipboard text. Screen
// capture tools and file managers put either plain paths (optionally quoted)
// or a text/uri-list of file:// URIs on the clipboard. Lines that are neither
// are dropped, so ordinary copied text yields no references.
func ParseFileRefs(text string) []string {
	var paths []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if p, ok := parseFileRef(line); ok {
			paths = append(paths, p)
		}
	}
	return paths
}

func parseFileRef(line string) (string, bool) {
	line = strings.Trim(line, `"'`)

	if strings.HasPrefix(strings.ToLower(line), "file://") {
		u, err := url.Parse(line)
		if err != nil || u.Path == "" {
			return "", false
		}
		p := u.Path
		// file:///C:/shots/a.png parses to /C:/shots/a.png
		if len(p) >= 3 && p[0] == '/' && p[2] == ':' {
			p = p[1:]
		}
		return filepath.FromSlash(p), true
	}

	if filepath.IsAbs(line) {
		return filepath.Clean(line), true
	}
	return "", false
}
