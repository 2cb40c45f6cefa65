package palette

import (
	"errors"
	"strings"
	"testing"

	"github.com/1broseidon/winshift/internal/geom"
	"github.com/1broseidon/winshift/internal/placement"
)

func TestRofiFormatItem_UsesSingleNullSeparator(t *testing.T) {
	b := newRofi()

	out := b.formatItem(Item{
		Label:    "Header",
		IsHeader: true,
		Icon:     "folder",
		Meta:     "meta",
	})

	if got := strings.Count(out, "\x00"); got != 1 {
		t.Fatalf("expected exactly 1 NUL separator, got %d (%q)", got, out)
	}
	if !strings.Contains(out, "<b>Header</b>\x00nonselectable\x1ftrue") {
		t.Fatalf("expected bold nonselectable header, got %q", out)
	}
	if !strings.Contains(out, "icon\x1ffolder") || !strings.Contains(out, "meta\x1fmeta") {
		t.Fatalf("expected icon/meta attributes, got %q", out)
	}
}

func TestRofiFormatItem_EscapesMarkup(t *testing.T) {
	b := newRofi()
	out := b.formatItem(Item{Label: "a<b>&c"})
	if out != "a&lt;b&gt;&amp;c" {
		t.Fatalf("formatItem = %q", out)
	}
}

func TestRofiBuildArgs(t *testing.T) {
	b := newRofi()
	b.SetFuzzyMatching(true)

	_, states := b.formatInput([]Item{
		{Label: "h", IsHeader: true},
		{Label: "a"},
		{Label: "b", IsActive: true},
	})
	args := b.buildArgs("winshift", "message", states)

	for _, pair := range [][2]string{
		{"-format", "i"},
		{"-matching", "fuzzy"},
		{"-a", "2"},
		{"-selected-row", "2"},
		{"-mesg", "message"},
		{"-p", "winshift"},
	} {
		if !containsArgs(args, pair[0], pair[1]) {
			t.Fatalf("expected %s %s in args, got %v", pair[0], pair[1], args)
		}
	}
	if !containsArg(args, "-no-custom") {
		t.Fatalf("expected -no-custom in args, got %v", args)
	}
}

func TestParseSelection(t *testing.T) {
	items := []Item{
		{Label: "a", Action: "a"},
		{Label: "b", Action: "b"},
	}

	got, err := newRofi().parseSelection("1", items)
	if err != nil || got.Action != "b" {
		t.Fatalf("rofi parseSelection = %+v, %v", got, err)
	}
	if _, err := newFuzzel().parseSelection("7", items); err == nil {
		t.Fatalf("expected out of range error")
	}
	got, err = newDmenu().parseSelection("a", items)
	if err != nil || got.Action != "a" {
		t.Fatalf("dmenu parseSelection = %+v, %v", got, err)
	}
}

func TestFormatInput_DisambiguatesDuplicateLabels(t *testing.T) {
	items := []Item{
		{Label: "Dup", Action: "a"},
		{Label: "Dup", Action: "b"},
	}
	_, _ = newDmenu().formatInput(items)
	if items[0].Label != "Dup" || items[1].Label != "Dup (2)" {
		t.Fatalf("labels = %q, %q", items[0].Label, items[1].Label)
	}

	items = []Item{
		{Label: "Dup", Action: "a"},
		{Label: "Dup", Action: "b"},
	}
	_, _ = newRofi().formatInput(items)
	if items[1].Label != "Dup" {
		t.Fatalf("index backends should keep labels, got %q", items[1].Label)
	}
}

func TestShow_UsesRunner(t *testing.T) {
	b := newDmenu()
	var gotInput string
	b.run = func(name string, args []string, stdin string) (string, error) {
		gotInput = stdin
		return "second\n", nil
	}

	item, err := b.Show("p", []Item{{Label: "first", Action: "1"}, {Label: "second", Action: "2"}}, "")
	if err != nil {
		t.Fatalf("Show: %v", err)
	}
	if item.Action != "2" || gotInput != "first\nsecond" {
		t.Fatalf("Show = %+v, input %q", item, gotInput)
	}

	b.run = func(string, []string, string) (string, error) { return "", nil }
	if _, err := b.Show("p", []Item{{Label: "x"}}, ""); !errors.Is(err, ErrCancelled) {
		t.Fatalf("empty selection should cancel, got %v", err)
	}
}

func TestNewBackend(t *testing.T) {
	orig := lookPath
	defer func() { lookPath = orig }()
	lookPath = func(name string) (string, error) {
		if name == "dmenu" {
			return "/usr/bin/dmenu", nil
		}
		return "", errors.New("not found")
	}

	b, err := NewBackend("auto")
	if err != nil {
		t.Fatalf("NewBackend(auto): %v", err)
	}
	if l := b.(*launcher); l.command != "dmenu" {
		t.Fatalf("auto picked %q", l.command)
	}
	if _, err := NewBackend("rofi"); err == nil {
		t.Fatalf("expected missing rofi error")
	}
	if _, err := NewBackend("tofi"); err == nil {
		t.Fatalf("expected unknown backend error")
	}
}

func TestMenu_IgnoresHeaderSelection(t *testing.T) {
	m := NewMenu(&fakeBackend{
		results: []Item{
			{Label: "Header", IsHeader: true},
			{Label: "Do", Action: "do"},
		},
	}, "winshift", []MenuItem{
		{Label: "Header", IsHeader: true},
		{Label: "Do", Action: "do"},
	})

	action, err := m.Show()
	if err != nil || action != "do" {
		t.Fatalf("Show = %q, %v", action, err)
	}
}

func TestMenu_SubmenuAndBack(t *testing.T) {
	fb := &fakeBackend{
		results: []Item{
			{Action: submenuPrefix + "0"},
			{Action: backAction},
			{Action: submenuPrefix + "0"},
			{Action: "place:half-left"},
		},
	}
	m := NewMenu(fb, "winshift", []MenuItem{
		{Label: "Halves", Submenu: []MenuItem{{Label: "left", Action: "place:half-left"}}},
	})

	action, err := m.Show()
	if err != nil || action != "place:half-left" {
		t.Fatalf("Show = %q, %v", action, err)
	}
	if fb.prompts[1] != "Halves" || fb.prompts[2] != "winshift" {
		t.Fatalf("prompts = %v", fb.prompts)
	}

	if _, err := NewMenu(&fakeBackend{}, "winshift", []MenuItem{{Label: "x", Action: "x"}}).Show(); !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
}

func TestActionMenu(t *testing.T) {
	custom := map[string]geom.PercentRect{"wide": geom.Percent(0, 0, 0.7, 1)}
	root := ActionMenu(placement.Actions(custom))

	var labels []string
	for _, item := range root {
		labels = append(labels, item.Label)
	}
	if got := strings.Join(labels, ","); got != "Move to display,Halves,Quarters,Ninths,Custom" {
		t.Fatalf("root labels = %s", got)
	}
	if len(root[0].Submenu) != 4 || root[0].Submenu[1].Action != "move:east" {
		t.Fatalf("move submenu = %+v", root[0].Submenu)
	}
	if len(root[1].Submenu) != 4 {
		t.Fatalf("halves = %+v", root[1].Submenu)
	}
	if c := root[4].Submenu; len(c) != 1 || c[0].Action != "place:wide" {
		t.Fatalf("custom = %+v", c)
	}
}

type fakeBackend struct {
	results []Item
	prompts []string
	i       int
}

func (f *fakeBackend) Show(prompt string, items []Item, message string) (Item, error) {
	f.prompts = append(f.prompts, prompt)
	if f.i >= len(f.results) {
		return Item{}, ErrCancelled
	}
	res := f.results[f.i]
	f.i++
	return res, nil
}

func (f *fakeBackend) Capabilities() Capabilities {
	return Capabilities{}
}

func containsArg(args []string, want string) bool {
	for _, a := range args {
		if a == want {
			return true
		}
	}
	return false
}

func containsArgs(args []string, a string, b string) bool {
	for i := 0; i+1 < len(args); i++ {
		if args[i] == a && args[i+1] == b {
			return true
		}
	}
	return false
}
