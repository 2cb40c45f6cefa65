package palette

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"os/exec"
	"strconv"
	"strings"
)

type launcherKind int

const (
	kindRofi launcherKind = iota
	kindFuzzel
	kindWofi
	kindDmenu
)

// launcher drives any dmenu-compatible program: items on stdin, the
// selection on stdout.
type launcher struct {
	command string
	kind    launcherKind
	caps    Capabilities

	fuzzyMatching bool
	run           func(name string, args []string, stdin string) (string, error)
}

type rowStates struct {
	active         []int
	selectedRow    int
	hasSelectedRow bool
}

func newRofi() *launcher {
	return &launcher{
		command: "rofi",
		kind:    kindRofi,
		caps: Capabilities{
			Icons:         true,
			Markup:        true,
			NonSelectable: true,
			IndexOutput:   true,
			MessageBar:    true,
			RowStates:     true,
		},
		run: runLauncher,
	}
}

func newFuzzel() *launcher {
	return &launcher{
		command: "fuzzel",
		kind:    kindFuzzel,
		caps:    Capabilities{Icons: true, IndexOutput: true},
		run:     runLauncher,
	}
}

func newWofi() *launcher {
	return &launcher{
		command: "wofi",
		kind:    kindWofi,
		caps:    Capabilities{Icons: true, Markup: true},
		run:     runLauncher,
	}
}

func newDmenu() *launcher {
	return &launcher{command: "dmenu", kind: kindDmenu, run: runLauncher}
}

func (b *launcher) Capabilities() Capabilities {
	return b.caps
}

// SetFuzzyMatching enables rofi's fuzzy matching mode.
func (b *launcher) SetFuzzyMatching(enabled bool) {
	b.fuzzyMatching = enabled
}

func (b *launcher) Show(prompt string, items []Item, message string) (Item, error) {
	if len(items) == 0 {
		return Item{}, fmt.Errorf("palette: no items to show")
	}

	displayItems := make([]Item, len(items))
	copy(displayItems, items)

	input, states := b.formatInput(displayItems)
	selection, err := b.run(b.command, b.buildArgs(prompt, message, states), input)
	selection = strings.TrimSpace(selection)
	if err != nil {
		if selection == "" && isCancelExit(err) {
			return Item{}, ErrCancelled
		}
		return Item{}, err
	}
	if selection == "" {
		return Item{}, ErrCancelled
	}
	return b.parseSelection(selection, displayItems)
}

func runLauncher(name string, args []string, stdin string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil && !isCancelExit(err) {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return string(out), fmt.Errorf("%s failed: %s", name, msg)
		}
		return string(out), fmt.Errorf("%s failed: %w", name, err)
	}
	return string(out), err
}

func (b *launcher) buildArgs(prompt string, message string, states rowStates) []string {
	var args []string

	switch b.kind {
	case kindRofi:
		args = []string{"-dmenu", "-i"}
		if prompt != "" {
			args = append(args, "-p", prompt)
		}
		// Select by index; labels may contain markup.
		args = append(args, "-format", "i", "-no-custom")
		if b.fuzzyMatching {
			args = append(args, "-matching", "fuzzy")
		}
		if b.caps.Markup {
			args = append(args, "-markup-rows")
		}
		if b.caps.Icons {
			args = append(args, "-show-icons")
		}
		if len(states.active) > 0 {
			args = append(args, "-a", formatIndices(states.active))
		}
		if states.hasSelectedRow {
			args = append(args, "-selected-row", strconv.Itoa(states.selectedRow))
		}
		if message != "" {
			args = append(args, "-mesg", message)
		}

	case kindFuzzel:
		args = []string{"--dmenu"}
		if prompt != "" {
			args = append(args, "--prompt", prompt)
		}
		args = append(args, "--index")

	case kindWofi:
		args = []string{"--dmenu"}
		if prompt != "" {
			args = append(args, "--prompt", prompt)
		}
		args = append(args, "--allow-markup", "--allow-images")

	case kindDmenu:
		args = []string{"-i"}
		if prompt != "" {
			args = append(args, "-p", prompt)
		}
	}
	return args
}

// formatInput renders items one per line. Launchers that answer with the
// row text get duplicate labels suffixed so every row stays distinct.
func (b *launcher) formatInput(items []Item) (string, rowStates) {
	var states rowStates
	firstSelectable := -1
	firstActive := -1

	if !b.caps.IndexOutput {
		seen := make(map[string]int)
		for i := range items {
			if items[i].IsHeader {
				continue
			}
			key := sanitizeLabel(items[i].Label)
			if key == "" {
				continue
			}
			if count := seen[key]; count > 0 {
				items[i].Label = fmt.Sprintf("%s (%d)", key, count+1)
			}
			seen[key]++
		}
	}

	lines := make([]string, 0, len(items))
	for i, item := range items {
		lines = append(lines, b.formatItem(item))
		if item.IsHeader {
			continue
		}
		if firstSelectable == -1 {
			firstSelectable = i
		}
		if item.IsActive {
			if firstActive == -1 {
				firstActive = i
			}
			if b.caps.RowStates {
				states.active = append(states.active, i)
			}
		}
	}

	switch {
	case firstActive != -1:
		states.selectedRow, states.hasSelectedRow = firstActive, true
	case firstSelectable != -1:
		states.selectedRow, states.hasSelectedRow = firstSelectable, true
	}
	return strings.Join(lines, "\n"), states
}

func (b *launcher) formatItem(item Item) string {
	display := sanitizeLabel(item.Label)
	if b.caps.Markup {
		display = html.EscapeString(display)
		if item.IsHeader {
			display = "<b>" + display + "</b>"
		}
	}

	// Rofi row properties: one NUL, then key\x1fvalue pairs joined by \x1f.
	if b.kind != kindRofi {
		return display
	}
	var attrs []string
	if item.IsHeader && b.caps.NonSelectable {
		attrs = append(attrs, "nonselectable", "true")
	}
	if item.Icon != "" && b.caps.Icons {
		attrs = append(attrs, "icon", sanitizeRofiField(item.Icon))
	}
	if item.Meta != "" {
		attrs = append(attrs, "meta", sanitizeRofiField(item.Meta))
	}
	if len(attrs) == 0 {
		return display
	}
	return display + "\x00" + strings.Join(attrs, "\x1f")
}

func (b *launcher) parseSelection(selection string, items []Item) (Item, error) {
	if b.caps.IndexOutput {
		idx, err := strconv.Atoi(selection)
		if err != nil {
			return b.findByLabel(selection, items)
		}
		if idx < 0 || idx >= len(items) {
			return Item{}, fmt.Errorf("palette: index %d out of range", idx)
		}
		return items[idx], nil
	}
	return b.findByLabel(selection, items)
}

func (b *launcher) findByLabel(selection string, items []Item) (Item, error) {
	for _, item := range items {
		if sanitizeLabel(item.Label) == selection {
			return item, nil
		}
	}
	return Item{}, fmt.Errorf("palette: unknown selection %q", selection)
}

func sanitizeLabel(label string) string {
	label = strings.ReplaceAll(label, "\r", " ")
	label = strings.ReplaceAll(label, "\n", " ")
	return strings.TrimSpace(label)
}

func sanitizeRofiField(value string) string {
	value = strings.ReplaceAll(value, "\x00", " ")
	value = strings.ReplaceAll(value, "\x1f", " ")
	return sanitizeLabel(value)
}

func formatIndices(indices []int) string {
	parts := make([]string, 0, len(indices))
	for _, i := range indices {
		parts = append(parts, strconv.Itoa(i))
	}
	return strings.Join(parts, ",")
}

// isCancelExit reports the "no selection" exits: 1 for Escape, 130 for
// Ctrl+C.
func isCancelExit(err error) bool {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}
	switch exitErr.ExitCode() {
	case 1, 130:
		return true
	}
	return false
}
