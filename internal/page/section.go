// Package page models the site around the animations: the sections, the
// navigation menu, keyboard shortcuts and the hacker-lab terminal.
package page

import "strings"

type SectionID string

const (
	Home      SectionID = "home"
	HackerLab SectionID = "hacker-lab"
	Anime     SectionID = "anime"
	Lore      SectionID = "lore"
	Config    SectionID = "config"
	SoulKid   SectionID = "soulkid"
)

// Section is one page of content.
type Section struct {
	ID    SectionID
	Title string
	Body  []string
}

var sections = []Section{
	{
		ID:    Home,
		Title: "CYBER JINN",
		Body: []string{
			"SYSTEM ONLINE",
			"Matrix connection established.",
			"Press x to execute.",
		},
	},
	{
		ID:    HackerLab,
		Title: "HACKER LAB",
		Body: []string{
			"Select a tool and press enter to run it.",
		},
	},
	{
		ID:    Anime,
		Title: "ANIME ARCHIVE",
		Body: []string{
			"Ghost in the Shell",
			"Serial Experiments Lain",
			"Akira",
			"Cowboy Bebop",
		},
	},
	{
		ID:    Lore,
		Title: "LORE",
		Body: []string{
			"The jinn was born in the static between two networks.",
			"It speaks in falling glyphs and answers to no root.",
		},
	},
	{
		ID:    Config,
		Title: "CONFIG",
		Body: []string{
			"t  cycle theme",
			"r  matrix rain",
			"p  particles",
			"m  music",
		},
	},
	{
		ID:    SoulKid,
		Title: "SOULKID",
		Body: []string{
			"soulkid@cyberjinn",
			"builder of ghosts and glyphs.",
		},
	},
}

// Sections returns every section in menu order.
func Sections() []Section {
	out := make([]Section, len(sections))
	copy(out, sections)
	return out
}

// Lookup finds a section by id.
func Lookup(id SectionID) (Section, bool) {
	for _, s := range sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// Index is the 0-based menu position of id, or -1.
func Index(id SectionID) int {
	for i, s := range sections {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Fragment renders id as a URL fragment.
func Fragment(id SectionID) string {
	return "#" + string(id)
}

// ParseFragment reads a URL fragment with or without the leading '#'.
func ParseFragment(frag string) (SectionID, error) {
	id := SectionID(strings.TrimPrefix(frag, "#"))
	if _, ok := Lookup(id); !ok {
		return "", ErrUnknownSection
	}
	return id, nil
}
