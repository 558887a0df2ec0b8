package page

import "strings"

// Shortcut maps a key name to a section: ctrl/alt/plain 1..6 select by menu
// position and esc goes home.
func Shortcut(key string) (SectionID, bool) {
	if key == "esc" {
		return Home, true
	}
	for _, prefix := range []string{"ctrl+", "alt+", ""} {
		rest, ok := strings.CutPrefix(key, prefix)
		if !ok || len(rest) != 1 {
			continue
		}
		d := rest[0]
		if d < '1' || d > '6' {
			return "", false
		}
		i := int(d - '1')
		if i >= len(sections) {
			return "", false
		}
		return sections[i].ID, true
	}
	return "", false
}
