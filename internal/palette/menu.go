package palette

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MenuItem is an entry in a menu hierarchy. Items with a Submenu open it
// instead of returning.
type MenuItem struct {
	Label    string
	Action   string
	Icon     string
	Meta     string
	IsHeader bool
	IsActive bool
	Submenu  []MenuItem
}

func (m MenuItem) IsParent() bool {
	return len(m.Submenu) > 0
}

const (
	backAction    = "__back__"
	submenuPrefix = "__submenu__:"
)

// Menu walks a MenuItem tree with a palette backend.
type Menu struct {
	backend Backend
	root    []MenuItem
	prompt  string
	message string
}

// NewMenu creates a new hierarchical menu with the given backend and root items.
func NewMenu(backend Backend, prompt string, items []MenuItem) *Menu {
	return &Menu{backend: backend, root: items, prompt: prompt}
}

// SetMessage sets a context line for launchers with a message bar.
func (m *Menu) SetMessage(msg string) {
	m.message = msg
}

// Show runs the menu until a leaf is picked and returns its action.
// Cancelling at the top level returns ErrCancelled; cancelling inside a
// submenu goes back one level.
func (m *Menu) Show() (string, error) {
	return m.showLevel(m.root, nil)
}

func (m *Menu) showLevel(items []MenuItem, breadcrumb []string) (string, error) {
	if len(items) == 0 {
		return "", fmt.Errorf("menu: no items to show")
	}

	for {
		paletteItems := make([]Item, 0, len(items)+1)
		if len(breadcrumb) > 0 {
			paletteItems = append(paletteItems, Item{Label: "← Back", Action: backAction, Icon: "go-previous"})
		}
		for i, item := range items {
			pi := Item{
				Label:    item.Label,
				Action:   item.Action,
				Icon:     item.Icon,
				Meta:     item.Meta,
				IsHeader: item.IsHeader,
				IsActive: item.IsActive,
			}
			if item.IsParent() {
				pi.Label += " →"
				if pi.Icon == "" {
					pi.Icon = "folder"
				}
				pi.Action = submenuPrefix + strconv.Itoa(i)
			}
			paletteItems = append(paletteItems, pi)
		}

		prompt := m.prompt
		if len(breadcrumb) > 0 {
			prompt = breadcrumb[len(breadcrumb)-1]
		}

		picked, err := m.backend.Show(prompt, paletteItems, m.message)
		if err != nil {
			return "", err
		}

		// Some launchers can't enforce non-selectable rows.
		if picked.IsHeader || strings.TrimSpace(picked.Action) == "" {
			continue
		}
		if picked.Action == backAction {
			return "", ErrCancelled
		}

		if idxStr, ok := strings.CutPrefix(picked.Action, submenuPrefix); ok {
			idx, err := strconv.Atoi(idxStr)
			if err != nil || idx < 0 || idx >= len(items) || !items[idx].IsParent() {
				continue
			}
			action, err := m.showLevel(items[idx].Submenu, append(breadcrumb, items[idx].Label))
			if errors.Is(err, ErrCancelled) {
				continue
			}
			return action, err
		}

		return picked.Action, nil
	}
}
