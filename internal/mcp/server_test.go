package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/1broseidon/winshift/internal/config"
	"github.com/1broseidon/winshift/internal/geom"
	"github.com/1broseidon/winshift/internal/platform"
	"github.com/1broseidon/winshift/internal/platform/fake"
	"github.com/1broseidon/winshift/internal/selector"
)

const (
	rootWin platform.WindowID = 1
	testWin platform.WindowID = 42
)

// newTestServer builds two side-by-side 1920x1080 displays with a 30px panel
// across the top of the left one, and a focused window on the left display.
func newTestServer(t *testing.T) (*Server, *fake.Backend) {
	t.Helper()

	b := fake.NewBackend(rootWin, geom.ScreenSize{Width: 3840, Height: 1080})
	b.Out.AddConnected(1, "DP-1", geom.Rect(0, 0, 1920, 1080))
	b.Out.AddConnected(2, "DP-2", geom.Rect(1920, 0, 1920, 1080))
	b.Out.AddDisconnected(3, "HDMI-1")

	panel := b.AddChild(rootWin, 5, geom.Rect(0, 0, 1920, 30))
	panel.Cardinals["_NET_WM_STRUT_PARTIAL"] = []uint{0, 0, 30, 0, 0, 0, 0, 0, 0, 1919, 0, 0}

	win := b.AddChild(rootWin, testWin, geom.Rect(100, 130, 800, 570))
	win.Insets["_NET_FRAME_EXTENTS"] = geom.ScreenInsets{Top: 30}
	b.ByID[rootWin].Refs["_NET_ACTIVE_WINDOW"] = testWin
	b.Titles[testWin] = "notes.txt - editor"

	cfg := config.DefaultConfig()
	cfg.Placements["left-wide"] = config.Placement{Width: 0.7, Height: 1}
	return NewServer(cfg, b), b
}

func TestListDisplays(t *testing.T) {
	s, _ := newTestServer(t)

	_, out, err := s.handleListDisplays(context.Background(), nil, ListDisplaysInput{})
	if err != nil {
		t.Fatalf("list_displays: %v", err)
	}
	if len(out.Displays) != 2 {
		t.Fatalf("expected 2 connected displays, got %+v", out.Displays)
	}

	dp1 := out.Displays[0]
	if dp1.Name != "DP-1" || dp1.State != "connected" {
		t.Fatalf("unexpected first display: %+v", dp1)
	}
	if dp1.Frame == nil || *dp1.Frame != (Rect{X: 0, Y: 0, Width: 1920, Height: 1080}) {
		t.Fatalf("DP-1 frame = %+v", dp1.Frame)
	}
	if dp1.Usable == nil || *dp1.Usable != (Rect{X: 0, Y: 30, Width: 1920, Height: 1050}) {
		t.Fatalf("DP-1 usable = %+v", dp1.Usable)
	}
	if dp2 := out.Displays[1]; dp2.Usable == nil || *dp2.Usable != *dp2.Frame {
		t.Fatalf("DP-2 should be fully usable: %+v", dp2)
	}

	_, out, err = s.handleListDisplays(context.Background(), nil, ListDisplaysInput{IncludeDisconnected: true})
	if err != nil {
		t.Fatalf("list_displays: %v", err)
	}
	if len(out.Displays) != 3 {
		t.Fatalf("expected 3 displays, got %+v", out.Displays)
	}
	if hdmi := out.Displays[2]; hdmi.State != "disconnected" || hdmi.Frame != nil || hdmi.Usable != nil {
		t.Fatalf("unexpected disconnected entry: %+v", hdmi)
	}
}

func TestListPlacements_IncludesCustom(t *testing.T) {
	s, _ := newTestServer(t)

	_, out, err := s.handleListPlacements(context.Background(), nil, ListPlacementsInput{})
	if err != nil {
		t.Fatalf("list_placements: %v", err)
	}
	joined := "," + strings.Join(out.Placements, ",") + ","
	for _, want := range []string{"half-left", "ninth-centre", "left-wide"} {
		if !strings.Contains(joined, ","+want+",") {
			t.Fatalf("missing %q in %v", want, out.Placements)
		}
	}
}

func TestPlaceWindow_DryRunUsesActiveWindow(t *testing.T) {
	s, b := newTestServer(t)

	_, out, err := s.handlePlaceWindow(context.Background(), nil, PlaceWindowInput{Placement: "half-left", DryRun: true})
	if err != nil {
		t.Fatalf("place_window: %v", err)
	}
	want := PlacementOutput{
		Window:  uint32(testWin),
		Title:   "notes.txt - editor",
		Source:  "DP-1",
		Target:  "DP-1",
		Rect:    Rect{X: 0, Y: 60, Width: 960, Height: 1020},
		Applied: false,
	}
	if out != want {
		t.Fatalf("place_window = %+v, want %+v", out, want)
	}
	if len(b.Requests) != 0 {
		t.Fatalf("dry run sent %d requests", len(b.Requests))
	}
}

func TestPlaceWindow_CustomPlacementApplies(t *testing.T) {
	s, b := newTestServer(t)

	_, out, err := s.handlePlaceWindow(context.Background(), nil, PlaceWindowInput{Placement: "left-wide", Window: uint32(testWin)})
	if err != nil {
		t.Fatalf("place_window: %v", err)
	}
	if !out.Applied || out.Rect != (Rect{X: 0, Y: 60, Width: 1344, Height: 1020}) {
		t.Fatalf("place_window = %+v", out)
	}
	if len(b.Requests) != 1 || b.Requests[0].Window != testWin {
		t.Fatalf("requests = %+v", b.Requests)
	}
}

func TestPlaceWindow_UnknownPlacement(t *testing.T) {
	s, _ := newTestServer(t)
	_, _, err := s.handlePlaceWindow(context.Background(), nil, PlaceWindowInput{Placement: "diagonal"})
	if err == nil || !strings.Contains(err.Error(), "unknown placement") {
		t.Fatalf("expected unknown placement error, got %v", err)
	}
}

func TestMoveWindow(t *testing.T) {
	s, b := newTestServer(t)

	_, out, err := s.handleMoveWindow(context.Background(), nil, MoveWindowInput{Direction: "right"})
	if err != nil {
		t.Fatalf("move_window: %v", err)
	}
	// The decorated window (100,100 800x600) sits 70px into the 1050px
	// usable height of DP-1; DP-2 has the full 1080px.
	if out.Source != "DP-1" || out.Target != "DP-2" {
		t.Fatalf("unexpected displays: %+v", out)
	}
	if want := (Rect{X: 2020, Y: 102, Width: 800, Height: 587}); out.Rect != want {
		t.Fatalf("rect = %+v, want %+v", out.Rect, want)
	}
	if len(b.Requests) != 1 {
		t.Fatalf("requests = %+v", b.Requests)
	}

	_, _, err = s.handleMoveWindow(context.Background(), nil, MoveWindowInput{Direction: "west"})
	if !errors.Is(err, selector.ErrNoDisplayInDirection) {
		t.Fatalf("expected ErrNoDisplayInDirection, got %v", err)
	}
	if _, _, err := s.handleMoveWindow(context.Background(), nil, MoveWindowInput{Direction: "sideways"}); err == nil {
		t.Fatalf("expected direction parse error")
	}
}

func TestMoveWindow_UnsupportedSink(t *testing.T) {
	s, b := newTestServer(t)
	b.Sink.Err = platform.ErrUnsupportedBySink

	_, _, err := s.handleMoveWindow(context.Background(), nil, MoveWindowInput{Direction: "east"})
	if !errors.Is(err, platform.ErrUnsupportedBySink) {
		t.Fatalf("expected ErrUnsupportedBySink, got %v", err)
	}
}

func TestRespectStrutsDisabled(t *testing.T) {
	s, _ := newTestServer(t)
	s.config.RespectStruts = false

	_, out, err := s.handlePlaceWindow(context.Background(), nil, PlaceWindowInput{Placement: "half-left", DryRun: true})
	if err != nil {
		t.Fatalf("place_window: %v", err)
	}
	if want := (Rect{X: 0, Y: 30, Width: 960, Height: 1050}); out.Rect != want {
		t.Fatalf("rect = %+v, want %+v", out.Rect, want)
	}
}

func TestClose_DisconnectsBackend(t *testing.T) {
	s, b := newTestServer(t)
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !b.Closed {
		t.Fatalf("backend not disconnected")
	}
	if _, _, err := s.handleMoveWindow(context.Background(), nil, MoveWindowInput{Direction: "east"}); err == nil {
		t.Fatalf("expected error after Close")
	}
}

func TestListWindows(t *testing.T) {
	s, b := newTestServer(t)
	b.ByID[rootWin].Cardinals["_NET_CLIENT_LIST"] = []uint{uint(testWin), 77}

	_, out, err := s.handleListWindows(context.Background(), nil, ListWindowsInput{})
	if err != nil {
		t.Fatalf("list_windows: %v", err)
	}
	if len(out.Windows) != 2 {
		t.Fatalf("windows = %+v", out.Windows)
	}
	w := out.Windows[0]
	if w.Window != uint32(testWin) || w.Title != "notes.txt - editor" || w.Display != "DP-1" || !w.Active {
		t.Fatalf("first window = %+v", w)
	}
	if w.Rect == nil || *w.Rect != (Rect{X: 100, Y: 100, Width: 800, Height: 600}) {
		t.Fatalf("first window rect = %+v", w.Rect)
	}
	if gone := out.Windows[1]; gone.Window != 77 || gone.Rect != nil || gone.Display != "" {
		t.Fatalf("unreadable window = %+v", gone)
	}
}

func TestPlaceWindow_NormalizesPlacementName(t *testing.T) {
	s, _ := newTestServer(t)

	_, out, err := s.handlePlaceWindow(context.Background(), nil, PlaceWindowInput{Placement: "  Half-Left ", DryRun: true})
	if err != nil {
		t.Fatalf("place_window: %v", err)
	}
	if out.Rect != (Rect{X: 0, Y: 60, Width: 960, Height: 1020}) {
		t.Fatalf("rect = %+v", out.Rect)
	}
}
