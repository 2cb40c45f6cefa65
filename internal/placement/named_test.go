package placement

import (
	"strings"
	"testing"

	"github.com/1broseidon/winshift/internal/geom"
)

func TestBuiltinPlacements(t *testing.T) {
	screen := geom.Rect(0, 0, 1920, 1080)

	tests := []struct {
		name string
		want geom.ScreenRect
	}{
		{"half-top", geom.Rect(0, 0, 1920, 540)},
		{"half-right", geom.Rect(960, 0, 960, 1080)},
		{"quarter-corner-bottom-right", geom.Rect(960, 540, 960, 540)},
		{"quarter-edge-top", geom.Rect(480, 0, 960, 540)},
		{"quarter-edge-left", geom.Rect(0, 270, 960, 540)},
		{"quarter-centre", geom.Rect(480, 270, 960, 540)},
		{"ninth-corner-top-right", geom.Rect(1280, 0, 640, 360)},
		{"ninth-edge-right", geom.Rect(1280, 360, 640, 360)},
		{"ninth-edge-bottom", geom.Rect(640, 720, 640, 360)},
		{"ninth-column-centre", geom.Rect(640, 0, 640, 1080)},
		{"ninth-row-bottom", geom.Rect(0, 720, 1920, 360)},
		{"ninth-centre", geom.Rect(640, 360, 640, 360)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pct, err := ParsePlacement(tt.name, nil)
			if err != nil {
				t.Fatalf("ParsePlacement: %v", err)
			}
			if got := pct.ToAbsolute(screen); got != tt.want {
				t.Fatalf("%s = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestParsePlacement_Custom(t *testing.T) {
	custom := map[string]geom.PercentRect{
		"main":      geom.Percent(0, 0, 0.7, 1),
		"half-left": geom.Percent(0, 0, 0.4, 1),
	}

	got, err := ParsePlacement("Main", custom)
	if err != nil || got != custom["main"] {
		t.Fatalf("custom placement = %v, %v", got, err)
	}
	got, _ = ParsePlacement("half-left", custom)
	if got != custom["half-left"] {
		t.Fatalf("custom placement should shadow builtin, got %v", got)
	}
}

func TestParsePlacement_Literal(t *testing.T) {
	got, err := ParsePlacement(" 0.1, 0.2,0.5 ,0.25", nil)
	if err != nil {
		t.Fatalf("ParsePlacement: %v", err)
	}
	if got != geom.Percent(0.1, 0.2, 0.5, 0.25) {
		t.Fatalf("literal = %v", got)
	}
}

func TestParsePlacement_Errors(t *testing.T) {
	tests := []struct {
		arg     string
		wantErr string
	}{
		{"third-left", "unknown placement"},
		{"0.1,0.2,0.3", "unknown placement"},
		{"0.1,x,0.3,0.4", "component 2"},
		{"0,0,0,1", "must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			_, err := ParsePlacement(tt.arg, nil)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("ParsePlacement(%q) error = %v, want %q", tt.arg, err, tt.wantErr)
			}
		})
	}
}

func TestNames(t *testing.T) {
	names := Names(map[string]geom.PercentRect{"zz-main": {}, "half-left": {}})
	if len(names) != len(Builtin)+1 {
		t.Fatalf("expected builtins plus one custom, got %d", len(names))
	}
	if names[len(names)-1] != "zz-main" {
		t.Fatalf("names should be sorted, last = %s", names[len(names)-1])
	}
}
