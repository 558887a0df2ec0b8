package page

import (
	"fmt"
	"sync"
)

// Navigator tracks the active section and the menu state.
type Navigator struct {
	mu       sync.Mutex
	active   SectionID
	menuOpen bool
}

func NewNavigator() *Navigator {
	return &Navigator{active: Home}
}

// NavigateTo activates id and closes the menu. Unknown ids leave the state
// unchanged.
func (n *Navigator) NavigateTo(id SectionID) error {
	if _, ok := Lookup(id); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSection, id)
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.active = id
	n.menuOpen = false
	return nil
}

// NavigateFragment navigates to the section named by a URL fragment. An
// empty fragment is ignored.
func (n *Navigator) NavigateFragment(frag string) error {
	if frag == "" || frag == "#" {
		return nil
	}
	id, err := ParseFragment(frag)
	if err != nil {
		return fmt.Errorf("%w: %q", err, frag)
	}
	return n.NavigateTo(id)
}

// Next moves to the following section, wrapping at the end.
func (n *Navigator) Next() SectionID {
	n.mu.Lock()
	i := Index(n.active)
	n.mu.Unlock()
	id := sections[(i+1)%len(sections)].ID
	_ = n.NavigateTo(id)
	return id
}

func (n *Navigator) Active() SectionID {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.active
}

// IsActive reports whether id is the active section. Exactly one section is
// active at any time.
func (n *Navigator) IsActive(id SectionID) bool {
	return n.Active() == id
}

// Fragment is the URL fragment of the active section.
func (n *Navigator) Fragment() string {
	return Fragment(n.Active())
}

func (n *Navigator) ToggleMenu() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.menuOpen = !n.menuOpen
	return n.menuOpen
}

func (n *Navigator) CloseMenu() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.menuOpen = false
}

func (n *Navigator) MenuOpen() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.menuOpen
}
