// Package palette shows a launcher menu (rofi, fuzzel, wofi or dmenu) and
// reports which entry the user picked.
package palette

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrCancelled is returned when the user closes the palette without selecting an item.
var ErrCancelled = errors.New("palette cancelled")

// Item is a single selectable entry in a palette menu.
type Item struct {
	Label    string
	Action   string // returned on selection
	Icon     string // icon name for launchers that show icons
	Meta     string // hidden search keywords
	IsHeader bool   // non-selectable section header
	IsActive bool   // highlighted row
}

// Capabilities describes what features a backend supports.
type Capabilities struct {
	Icons         bool
	Markup        bool
	NonSelectable bool
	// IndexOutput backends report the selected row number rather than its
	// text.
	IndexOutput bool
	MessageBar  bool
	RowStates   bool
}

// Backend shows a palette to the user and returns the selected item.
type Backend interface {
	Show(prompt string, items []Item, message string) (Item, error)
	Capabilities() Capabilities
}

// Names lists the supported launchers in auto-detection order.
var Names = []string{"rofi", "fuzzel", "wofi", "dmenu"}

var lookPath = exec.LookPath

// DetectBackend returns the first launcher found in PATH.
func DetectBackend() (string, error) {
	for _, name := range Names {
		if _, err := lookPath(name); err == nil {
			return name, nil
		}
	}
	return "", fmt.Errorf("no palette backend found in PATH (looked for: %s)", strings.Join(Names, ", "))
}

// NewBackend creates a backend by name. "" and "auto" pick the first
// launcher in PATH.
func NewBackend(name string) (Backend, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "auto" {
		detected, err := DetectBackend()
		if err != nil {
			return nil, err
		}
		name = detected
	}

	var b *launcher
	switch name {
	case "rofi":
		b = newRofi()
	case "fuzzel":
		b = newFuzzel()
	case "wofi":
		b = newWofi()
	case "dmenu":
		b = newDmenu()
	default:
		return nil, fmt.Errorf("unknown palette backend: %q (expected: auto, %s)", name, strings.Join(Names, ", "))
	}
	if _, err := lookPath(b.command); err != nil {
		return nil, fmt.Errorf("palette backend %q not found in PATH", b.command)
	}
	return b, nil
}
