package page

import (
	"errors"
	"strings"
	"testing"
)

func TestNavigateTo(t *testing.T) {
	n := NewNavigator()
	if n.Active() != Home {
		t.Fatalf("expected home at start, got %s", n.Active())
	}

	n.ToggleMenu()
	if err := n.NavigateTo(Lore); err != nil {
		t.Fatal(err)
	}
	if n.MenuOpen() {
		t.Error("navigation should close the menu")
	}

	active := 0
	for _, s := range Sections() {
		if n.IsActive(s.ID) {
			active++
		}
	}
	if active != 1 {
		t.Errorf("expected exactly one active section, got %d", active)
	}
	if n.Fragment() != "#lore" {
		t.Errorf("expected #lore, got %s", n.Fragment())
	}
}

func TestNavigateUnknown(t *testing.T) {
	n := NewNavigator()
	_ = n.NavigateTo(Anime)
	n.ToggleMenu()

	err := n.NavigateTo("nowhere")
	if !errors.Is(err, ErrUnknownSection) {
		t.Fatalf("expected ErrUnknownSection, got %v", err)
	}
	if n.Active() != Anime || !n.MenuOpen() {
		t.Error("unknown section should leave state unchanged")
	}
}

func TestNavigateFragment(t *testing.T) {
	n := NewNavigator()
	if err := n.NavigateFragment("#hacker-lab"); err != nil {
		t.Fatal(err)
	}
	if n.Active() != HackerLab {
		t.Errorf("expected hacker-lab, got %s", n.Active())
	}
	if err := n.NavigateFragment(""); err != nil || n.Active() != HackerLab {
		t.Errorf("empty fragment should be ignored, got %v %s", err, n.Active())
	}
	if err := n.NavigateFragment("#bogus"); !errors.Is(err, ErrUnknownSection) {
		t.Errorf("expected ErrUnknownSection, got %v", err)
	}
}

func TestFragmentRoundTrip(t *testing.T) {
	for _, s := range Sections() {
		id, err := ParseFragment(Fragment(s.ID))
		if err != nil || id != s.ID {
			t.Errorf("%s: got %s, %v", s.ID, id, err)
		}
	}
	if id, err := ParseFragment("config"); err != nil || id != Config {
		t.Errorf("fragment without # should parse, got %s, %v", id, err)
	}
}

func TestNextWraps(t *testing.T) {
	n := NewNavigator()
	_ = n.NavigateTo(SoulKid)
	if got := n.Next(); got != Home {
		t.Errorf("expected wrap to home, got %s", got)
	}
	if got := n.Next(); got != HackerLab {
		t.Errorf("expected hacker-lab, got %s", got)
	}
}

func TestToggleMenu(t *testing.T) {
	n := NewNavigator()
	if !n.ToggleMenu() || !n.MenuOpen() {
		t.Error("expected menu open")
	}
	if n.ToggleMenu() {
		t.Error("expected menu closed")
	}
	n.ToggleMenu()
	n.CloseMenu()
	if n.MenuOpen() {
		t.Error("close should close the menu")
	}
}

func TestShortcut(t *testing.T) {
	tests := []struct {
		key  string
		want SectionID
		ok   bool
	}{
		{"ctrl+1", Home, true},
		{"ctrl+2", HackerLab, true},
		{"alt+3", Anime, true},
		{"4", Lore, true},
		{"5", Config, true},
		{"ctrl+6", SoulKid, true},
		{"esc", Home, true},
		{"7", "", false},
		{"ctrl+0", "", false},
		{"q", "", false},
		{"tab", "", false},
	}
	for _, tt := range tests {
		got, ok := Shortcut(tt.key)
		if got != tt.want || ok != tt.ok {
			t.Errorf("%q: expected (%s, %v), got (%s, %v)", tt.key, tt.want, tt.ok, got, ok)
		}
	}
}

func TestRunTool(t *testing.T) {
	for _, tool := range Tools() {
		lines := RunTool(tool.ID)
		if len(lines) != len(tool.Output)+2 {
			t.Errorf("%s: unexpected transcript %v", tool.ID, lines)
			continue
		}
		if lines[0] != Prompt+" "+tool.Command {
			t.Errorf("%s: expected prompt line, got %q", tool.ID, lines[0])
		}
		if lines[len(lines)-1] != Cursor {
			t.Errorf("%s: transcript should end with the cursor", tool.ID)
		}
	}
}

func TestRunToolFallback(t *testing.T) {
	want := RunTool(DefaultTool)
	got := RunTool("quantum-decryptor")
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("unknown tool should fall back to terminal, got %v", got)
	}
	if !strings.Contains(got[0], "access mainframe") {
		t.Errorf("unexpected fallback command %q", got[0])
	}
	if _, err := LookupTool("quantum-decryptor"); !errors.Is(err, ErrUnknownTool) {
		t.Errorf("expected ErrUnknownTool, got %v", err)
	}
}
