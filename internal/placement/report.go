package placement

import (
	"github.com/1broseidon/winshift/internal/display"
	"github.com/1broseidon/winshift/internal/geom"
	"github.com/1broseidon/winshift/internal/logging"
	"github.com/1broseidon/winshift/internal/platform"
)

// DisplayReport describes one output for listings.
type DisplayReport struct {
	Name  string
	State platform.ConnectionState
	// Frame is the full CRTC rectangle, empty when unavailable.
	Frame geom.ScreenRect
	// Usable is Frame minus reserved panel space. Empty for outputs that
	// take no part in placement.
	Usable geom.ScreenRect
	Err    error
}

// Report lists the outputs in provider order. Outputs that are not
// connected, including those in an unknown state, are skipped unless
// includeDisconnected is set. A failure to work out usable areas is logged
// and leaves Usable empty.
func (p *Planner) Report(includeDisconnected bool) ([]DisplayReport, error) {
	reg := display.NewRegistry(p.Outputs)
	statuses, err := reg.Outputs()
	if err != nil {
		return nil, err
	}

	usable := make(map[string]geom.ScreenRect)
	if frames, err := p.usableFrames(reg); err == nil {
		for _, f := range frames {
			usable[f.Name] = f.Rect
		}
	} else {
		logging.Warn().Err(err).Msg("usable areas unavailable")
	}

	reports := make([]DisplayReport, 0, len(statuses))
	for _, st := range statuses {
		if st.State != platform.StateConnected && !includeDisconnected {
			continue
		}
		reports = append(reports, DisplayReport{
			Name:   st.Name,
			State:  st.State,
			Frame:  st.Frame,
			Usable: usable[st.Name],
			Err:    st.Err,
		})
	}
	return reports, nil
}
