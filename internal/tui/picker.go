// Package tui is the interactive terminal picker for placements and display
// moves.
package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/1broseidon/winshift/internal/display"
	"github.com/1broseidon/winshift/internal/placement"
	"github.com/1broseidon/winshift/internal/selector"
)

// ErrCancelled is returned when the picker is closed without a choice.
var ErrCancelled = errors.New("picker cancelled")

// Context is what the preview pane knows about the desktop.
type Context struct {
	Displays []display.Frame
	// Current is the display the window is on. A zero Current disables
	// pixel summaries.
	Current display.Frame
	Title   string
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	previewStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
)

// actionItem implements list.DefaultItem.
type actionItem struct {
	action placement.Action
}

func (i actionItem) Title() string {
	if i.action.Kind == placement.ActionMove {
		return "move " + i.action.Direction.String()
	}
	return i.action.Name
}

func (i actionItem) Description() string { return "" }
func (i actionItem) FilterValue() string { return i.action.String() }

// Picker is the bubbletea model: an action list on the left and a preview
// of the selected action on the right.
type Picker struct {
	list   list.Model
	ctx    Context
	chosen *placement.Action

	width  int
	height int
}

// NewPicker lists actions in the order given.
func NewPicker(actions []placement.Action, ctx Context) Picker {
	items := make([]list.Item, len(actions))
	for i, a := range actions {
		items[i] = actionItem{action: a}
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	l := list.New(items, delegate, 0, 0)
	l.Title = "winshift"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()

	return Picker{list: l, ctx: ctx}
}

// Chosen returns the action picked with enter, if any.
func (p Picker) Chosen() (placement.Action, bool) {
	if p.chosen == nil {
		return placement.Action{}, false
	}
	return *p.chosen, true
}

func (p Picker) selected() (placement.Action, bool) {
	item, ok := p.list.SelectedItem().(actionItem)
	return item.action, ok
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		p.list.SetSize(p.sidebarWidth(), max(p.height-1, 1))
		return p, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return p, tea.Quit
		}
		// While filtering, keys belong to the filter input.
		if p.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q", "esc":
			return p, tea.Quit
		case "enter":
			if a, ok := p.selected(); ok {
				p.chosen = &a
			}
			return p, tea.Quit
		}
	}

	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return p, cmd
}

func (p Picker) sidebarWidth() int {
	return clamp(p.width*35/100, 24, 40)
}

// View implements tea.Model.
func (p Picker) View() string {
	if p.width == 0 || p.height == 0 {
		return ""
	}

	sidebar := p.list.View()
	previewWidth := p.width - lipgloss.Width(sidebar) - previewStyle.GetHorizontalFrameSize() - 1
	previewHeight := p.height - previewStyle.GetVerticalFrameSize() - 3
	pane := previewStyle.Render(p.renderPreview(max(previewWidth, 0), max(previewHeight, 0)))

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", pane)
	help := helpStyle.Width(p.width).Render("↑/↓: select  /: filter  enter: apply  q/esc: cancel")
	return lipgloss.JoinVertical(lipgloss.Left, body, help)
}

func (p Picker) renderPreview(width, height int) string {
	a, ok := p.selected()
	if !ok {
		return strings.Join(emptyCanvas(width, height), "\n")
	}

	header := titleStyle.Render(actionItem{action: a}.Title())
	if p.ctx.Title != "" {
		header += " " + summaryStyle.Render(p.ctx.Title)
	}

	var art []string
	var summary string
	if a.Kind == placement.ActionMove {
		to := ""
		if target, err := selector.Neighbor(p.ctx.Current, p.ctx.Displays, a.Direction); err == nil {
			to = target.Name
			summary = summaryStyle.Render(fmt.Sprintf("%s → %s", p.ctx.Current.Name, target.Name))
		} else {
			summary = warnStyle.Render(fmt.Sprintf("no display %s of %s", a.Direction, p.ctx.Current.Name))
		}
		art = renderDisplays(p.ctx.Displays, p.ctx.Current.Name, to, width, height)
	} else {
		art = renderPlacement(a.Percent, width, height)
		summary = summaryStyle.Render(a.Percent.String())
		if !p.ctx.Current.Rect.IsEmpty() {
			summary = summaryStyle.Render(fmt.Sprintf("%s on %s", a.Percent.ToAbsolute(p.ctx.Current.Rect), p.ctx.Current.Name))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, strings.Join(art, "\n"), summary)
}

// Run shows the picker on the controlling terminal and returns the chosen
// action.
func Run(actions []placement.Action, ctx Context) (placement.Action, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return placement.Action{}, fmt.Errorf("picker requires an interactive terminal (stdin/stdout must be TTYs)")
	}

	final, err := tea.NewProgram(NewPicker(actions, ctx), tea.WithAltScreen()).Run()
	if err != nil {
		return placement.Action{}, err
	}
	picker, ok := final.(Picker)
	if !ok {
		return placement.Action{}, ErrCancelled
	}
	a, ok := picker.Chosen()
	if !ok {
		return placement.Action{}, ErrCancelled
	}
	return a, nil
}
