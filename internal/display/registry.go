// Package display resolves connected outputs into absolute pixel frames.
package display

import (
	"errors"
	"fmt"

	"github.com/1broseidon/winshift/internal/cache"
	"github.com/1broseidon/winshift/internal/geom"
	"github.com/1broseidon/winshift/internal/logging"
	"github.com/1broseidon/winshift/internal/platform"
)

// Frame is the absolute rectangle of one display. Inset is set once strut
// reservations have been subtracted from Rect.
type Frame struct {
	Name  string
	Rect  geom.ScreenRect
	Inset bool
}

func (f Frame) String() string {
	if f.Name == "" {
		return f.Rect.String()
	}
	return fmt.Sprintf("%s (%s)", f.Name, f.Rect)
}

var (
	errDisconnected = errors.New("output is not connected")
	errNoCRTC       = errors.New("output has no active crtc")
	errEmptyFrame   = errors.New("crtc frame is empty")
)

// entry memoizes the metadata -> crtc -> frame chain of one output. A failed
// stage leaves later stages empty so the next call retries from the failure.
type entry struct {
	id    platform.OutputID
	info  cache.Cell[platform.OutputInfo]
	crtc  cache.Cell[geom.ScreenRect]
	frame cache.Cell[Frame]
}

// Registry lists the displays reported by an OutputProvider. Output lookups
// are cached per output for the lifetime of the Registry.
type Registry struct {
	provider platform.OutputProvider
	entries  map[platform.OutputID]*entry
}

// NewRegistry creates a Registry over provider.
func NewRegistry(provider platform.OutputProvider) *Registry {
	return &Registry{
		provider: provider,
		entries:  make(map[platform.OutputID]*entry),
	}
}

// OutputStatus describes one output for listings, including outputs that
// are excluded from ConnectedFrames.
type OutputStatus struct {
	ID    platform.OutputID
	Name  string
	State platform.ConnectionState
	Frame geom.ScreenRect
	Err   error
}

// ConnectedFrames returns one Frame per connected output with a usable CRTC.
// Outputs whose queries fail are skipped. The order of the result is not
// meaningful.
func (r *Registry) ConnectedFrames() ([]Frame, error) {
	ids, err := r.provider.ListOutputs()
	if err != nil {
		return nil, platform.Fetch("list outputs", err)
	}

	frames := make([]Frame, 0, len(ids))
	for _, id := range ids {
		f, err := r.entry(id).getFrame(r.provider)
		if err != nil {
			logging.Debug().Uint32("output", uint32(id)).Err(err).Msg("skipping output")
			continue
		}
		frames = append(frames, f)
	}
	return frames, nil
}

// Outputs reports every output the provider lists, connected or not.
func (r *Registry) Outputs() ([]OutputStatus, error) {
	ids, err := r.provider.ListOutputs()
	if err != nil {
		return nil, platform.Fetch("list outputs", err)
	}

	statuses := make([]OutputStatus, 0, len(ids))
	for _, id := range ids {
		e := r.entry(id)
		status := OutputStatus{ID: id}

		info, err := e.getInfo(r.provider)
		status.Name = info.Name
		status.State = info.State
		switch {
		case errors.Is(err, errDisconnected):
			// listed without a frame
		case err != nil:
			status.Err = err
		default:
			f, err := e.getFrame(r.provider)
			status.Frame = f.Rect
			status.Err = err
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func (r *Registry) entry(id platform.OutputID) *entry {
	e, ok := r.entries[id]
	if !ok {
		e = &entry{id: id}
		r.entries[id] = e
	}
	return e
}

// getInfo treats a disconnected output as a failed fetch so that a later
// call asks again.
func (e *entry) getInfo(p platform.OutputProvider) (platform.OutputInfo, error) {
	return e.info.Get(func() (platform.OutputInfo, error) {
		info, err := p.OutputInfo(e.id)
		if err != nil {
			return info, platform.Fetch(fmt.Sprintf("output %d info", e.id), err)
		}
		if info.State != platform.StateConnected {
			return info, errDisconnected
		}
		return info, nil
	})
}

func (e *entry) getCRTC(p platform.OutputProvider) (geom.ScreenRect, error) {
	return e.crtc.Get(func() (geom.ScreenRect, error) {
		info, err := e.getInfo(p)
		if err != nil {
			return geom.ScreenRect{}, err
		}
		if info.CRTC == 0 {
			return geom.ScreenRect{}, errNoCRTC
		}
		rect, err := p.OutputFrame(e.id)
		return rect, platform.Fetch(fmt.Sprintf("output %d crtc", e.id), err)
	})
}

func (e *entry) getFrame(p platform.OutputProvider) (Frame, error) {
	return e.frame.Get(func() (Frame, error) {
		rect, err := e.getCRTC(p)
		if err != nil {
			return Frame{}, err
		}
		if rect.IsEmpty() {
			return Frame{}, errEmptyFrame
		}
		info, err := e.getInfo(p)
		if err != nil {
			return Frame{}, err
		}
		return Frame{Name: info.Name, Rect: rect}, nil
	})
}
