package geom

import "testing"

func TestIntersection_CommutativeAndBounded(t *testing.T) {
	rects := []ScreenRect{
		Rect(0, 0, 1920, 1080),
		Rect(1920, 0, 1920, 1080),
		Rect(100, 100, 800, 600),
		Rect(1800, 500, 400, 400),
		Rect(-50, -50, 100, 100),
		Rect(1919, 1079, 1, 1),
	}

	for _, a := range rects {
		for _, b := range rects {
			ab, okAB := a.Intersection(b)
			ba, okBA := b.Intersection(a)
			if okAB != okBA || ab != ba {
				t.Fatalf("Intersection(%v, %v) = %v,%v but reversed = %v,%v", a, b, ab, okAB, ba, okBA)
			}
			if ab.Area() > min(a.Area(), b.Area()) {
				t.Fatalf("Intersection(%v, %v) area %d exceeds min input area", a, b, ab.Area())
			}
		}
	}
}

func TestIntersection_TouchingEdgesIsNoIntersection(t *testing.T) {
	left := Rect(0, 0, 1920, 1080)
	right := Rect(1920, 0, 1920, 1080)

	if got, ok := left.Intersection(right); ok {
		t.Fatalf("expected no intersection for adjacent rects, got %v", got)
	}
}

func TestIntersection_Overlap(t *testing.T) {
	got, ok := Rect(1800, 100, 400, 300).Intersection(Rect(1920, 0, 1920, 1080))
	if !ok {
		t.Fatalf("expected overlap")
	}
	if want := Rect(1920, 100, 280, 300); got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestInsetOutset_RoundTrip(t *testing.T) {
	content := Rect(100, 130, 800, 570)
	decor := ScreenInsets{Top: 30}

	outer := content.Outset(decor)
	if want := Rect(100, 100, 800, 600); outer != want {
		t.Fatalf("Outset = %v, want %v", outer, want)
	}
	if back := outer.Inset(decor); back != content {
		t.Fatalf("Inset(Outset(r)) = %v, want %v", back, content)
	}
	if in := outer.InsetsTo(content); in != decor {
		t.Fatalf("InsetsTo = %+v, want %+v", in, decor)
	}
}

func TestInset_NeverNegative(t *testing.T) {
	got := Rect(0, 0, 10, 10).Inset(ScreenInsets{Left: 8, Right: 8, Top: 20})
	if got.Size.Width != 0 || got.Size.Height != 0 {
		t.Fatalf("expected clamped zero size, got %v", got.Size)
	}
}

func TestCenterAndContains(t *testing.T) {
	r := Rect(1920, 0, 1920, 1080)
	c := r.Center()
	if c != (ScreenPoint{X: 2880, Y: 540}) {
		t.Fatalf("Center = %+v", c)
	}
	if !r.Contains(c) {
		t.Fatalf("rect should contain its centre")
	}
	if r.Contains(ScreenPoint{X: 3840, Y: 0}) {
		t.Fatalf("max edge must be exclusive")
	}
}

func TestToPercent_HalfRight(t *testing.T) {
	d := Rect(0, 0, 1920, 1080)
	r := Rect(960, 0, 960, 1080)

	pct := ToPercent(r, d)
	if want := Percent(0.5, 0, 0.5, 1); pct != want {
		t.Fatalf("ToPercent = %v, want %v", pct, want)
	}
	if back := pct.ToAbsolute(d); back != r {
		t.Fatalf("ToAbsolute = %v, want %v", back, r)
	}
}

func TestToAbsolute_RoundTripStable(t *testing.T) {
	displays := []ScreenRect{
		Rect(0, 0, 1920, 1080),
		Rect(1920, 0, 2560, 1440),
		Rect(-1366, 200, 1366, 768),
	}
	rects := []ScreenRect{
		Rect(100, 100, 800, 600),
		Rect(7, 13, 333, 211),
		Rect(-40, 20, 500, 300),
	}

	for _, d := range displays {
		for _, r := range rects {
			abs := r.Translate(d.Origin.Sub(ScreenPoint{}))
			once := ToPercent(abs, d).ToAbsolute(d)
			if once != abs {
				t.Errorf("round trip of %v on %v = %v", abs, d, once)
			}
			twice := ToPercent(once, d).ToAbsolute(d)
			if twice != once {
				t.Errorf("second round trip drifted: %v -> %v", once, twice)
			}
		}
	}
}

func TestToAbsolute_RoundsHalfAwayFromZero(t *testing.T) {
	d := Rect(0, 0, 8, 8)
	got := Percent(-0.0625, 0.0625, 0.3125, 0.4375).ToAbsolute(d)
	if want := Rect(-1, 1, 3, 4); got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestToPercent_OverflowPassesThrough(t *testing.T) {
	d := Rect(0, 0, 1000, 1000)
	pct := ToPercent(Rect(-100, 900, 1200, 200), d)
	if pct.Origin.X != -0.1 || pct.Size.Width != 1.2 || pct.Origin.Y != 0.9 || pct.Size.Height != 0.2 {
		t.Fatalf("overflow should not be clamped, got %v", pct)
	}
}

func TestToPercent_ZeroSizedDisplay(t *testing.T) {
	if got := ToPercent(Rect(5, 5, 10, 10), Rect(0, 0, 0, 0)); got != (PercentRect{}) {
		t.Fatalf("expected zero percent rect, got %v", got)
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want Direction
	}{
		{"north", North},
		{"Up", North},
		{"e", East},
		{"right", East},
		{"SOUTH", South},
		{"left", West},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDirection(tt.in)
			if err != nil {
				t.Fatalf("ParseDirection(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("ParseDirection(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	if _, err := ParseDirection("northeast"); err == nil {
		t.Fatalf("expected error for off-axis direction")
	}
}

func TestDirectionVectorsAreUnit(t *testing.T) {
	for _, d := range []Direction{North, East, South, West} {
		v := d.Vector()
		if v.Dot(v) != 1 {
			t.Fatalf("%v vector %+v is not unit length", d, v)
		}
	}
}
