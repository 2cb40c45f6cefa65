package palette

import (
	"strings"

	"github.com/1broseidon/winshift/internal/placement"
)

var placementGroups = []struct {
	prefix string
	label  string
	icon   string
}{
	{"half-", "Halves", "view-dual-symbolic"},
	{"quarter-", "Quarters", "view-grid-symbolic"},
	{"ninth-", "Ninths", "view-app-grid-symbolic"},
}

var directionIcons = map[string]string{
	"north": "go-up",
	"east":  "go-next",
	"south": "go-down",
	"west":  "go-previous",
}

// ActionMenu groups actions into a "Move to display" submenu, one submenu
// per placement grid and a "Custom" submenu for everything else. Each leaf
// returns the action's String form.
func ActionMenu(actions []placement.Action) []MenuItem {
	var moves []MenuItem
	grouped := make([][]MenuItem, len(placementGroups))
	var custom []MenuItem

	for _, a := range actions {
		if a.Kind == placement.ActionMove {
			dir := a.Direction.String()
			moves = append(moves, MenuItem{
				Label:  "Move " + dir,
				Action: a.String(),
				Icon:   directionIcons[dir],
				Meta:   "display monitor screen " + dir,
			})
			continue
		}

		item := MenuItem{Label: a.Name, Action: a.String(), Meta: "place " + strings.ReplaceAll(a.Name, "-", " ")}
		placed := false
		for i, g := range placementGroups {
			if strings.HasPrefix(a.Name, g.prefix) {
				item.Label = strings.TrimPrefix(a.Name, g.prefix)
				grouped[i] = append(grouped[i], item)
				placed = true
				break
			}
		}
		if !placed {
			custom = append(custom, item)
		}
	}

	var root []MenuItem
	if len(moves) > 0 {
		root = append(root, MenuItem{Label: "Move to display", Icon: "video-display", Submenu: moves})
	}
	for i, g := range placementGroups {
		if len(grouped[i]) > 0 {
			root = append(root, MenuItem{Label: g.label, Icon: g.icon, Submenu: grouped[i]})
		}
	}
	if len(custom) > 0 {
		root = append(root, MenuItem{Label: "Custom", Icon: "preferences-desktop", Submenu: custom})
	}
	return root
}
