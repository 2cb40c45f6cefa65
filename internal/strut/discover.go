package strut

import (
	"github.com/1broseidon/winshift/internal/geom"
	"github.com/1broseidon/winshift/internal/logging"
	"github.com/1broseidon/winshift/internal/platform"
)

const (
	propStrutPartial = "_NET_WM_STRUT_PARTIAL"
	propStrut        = "_NET_WM_STRUT"
)

// Discover walks every window below root and collects their strut
// reservations. Windows whose properties cannot be read are skipped; only a
// failure to list root's own children is returned.
func Discover(store platform.PropertyStore, root platform.WindowID, rootSize geom.ScreenSize) ([]Spec, error) {
	top, err := store.Children(root)
	if err != nil {
		return nil, platform.Fetch("list root children", err)
	}

	var specs []Spec
	seen := map[platform.WindowID]bool{root: true}
	queue := append([]platform.WindowID(nil), top...)

	for len(queue) > 0 {
		win := queue[0]
		queue = queue[1:]
		if seen[win] {
			continue
		}
		seen[win] = true

		if s, ok := readStrut(store, win, rootSize); ok {
			logging.Debug().Uint32("window", uint32(win)).
				Int("left", s.Left).Int("right", s.Right).
				Int("top", s.Top).Int("bottom", s.Bottom).
				Msg("found strut")
			specs = append(specs, s)
		}

		kids, err := store.Children(win)
		if err != nil {
			continue
		}
		queue = append(queue, kids...)
	}
	return specs, nil
}

func readStrut(store platform.PropertyStore, win platform.WindowID, rootSize geom.ScreenSize) (Spec, bool) {
	if vals, err := store.CardinalList(win, propStrutPartial); err == nil && len(vals) >= 12 {
		s := Spec{
			Left:         int(vals[0]),
			Right:        int(vals[1]),
			Top:          int(vals[2]),
			Bottom:       int(vals[3]),
			LeftStartY:   int(vals[4]),
			LeftEndY:     int(vals[5]),
			RightStartY:  int(vals[6]),
			RightEndY:    int(vals[7]),
			TopStartX:    int(vals[8]),
			TopEndX:      int(vals[9]),
			BottomStartX: int(vals[10]),
			BottomEndX:   int(vals[11]),
		}
		return s, !s.IsZero()
	}

	// Older panels only set the four-value form.
	if vals, err := store.CardinalList(win, propStrut); err == nil && len(vals) >= 4 {
		s := FullWidth(int(vals[0]), int(vals[1]), int(vals[2]), int(vals[3]), rootSize)
		return s, !s.IsZero()
	}
	return Spec{}, false
}
