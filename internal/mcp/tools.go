package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/winshift/internal/geom"
	"github.com/1broseidon/winshift/internal/logging"
	"github.com/1broseidon/winshift/internal/placement"
	"github.com/1broseidon/winshift/internal/platform"
)

func toRect(r geom.ScreenRect) Rect {
	return Rect{X: r.Origin.X, Y: r.Origin.Y, Width: r.Size.Width, Height: r.Size.Height}
}

func (s *Server) planner() (*placement.Planner, error) {
	if s.backend == nil {
		return nil, fmt.Errorf("server is closed")
	}
	return placement.ForBackend(s.backend, !s.config.RespectStruts), nil
}

func (s *Server) handleListDisplays(ctx context.Context, req *mcpsdk.CallToolRequest, input ListDisplaysInput) (*mcpsdk.CallToolResult, ListDisplaysOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.planner()
	if err != nil {
		return nil, ListDisplaysOutput{}, err
	}
	reports, err := p.Report(input.IncludeDisconnected)
	if err != nil {
		return nil, ListDisplaysOutput{}, err
	}

	out := ListDisplaysOutput{Displays: make([]DisplayInfo, 0, len(reports))}
	for _, r := range reports {
		info := DisplayInfo{Name: r.Name, State: r.State.String()}
		if r.Err != nil {
			info.Error = r.Err.Error()
		} else if !r.Frame.IsEmpty() {
			frame := toRect(r.Frame)
			info.Frame = &frame
		}
		if !r.Usable.IsEmpty() {
			usable := toRect(r.Usable)
			info.Usable = &usable
		}
		out.Displays = append(out.Displays, info)
	}
	return nil, out, nil
}

func (s *Server) handleListPlacements(ctx context.Context, req *mcpsdk.CallToolRequest, input ListPlacementsInput) (*mcpsdk.CallToolResult, ListPlacementsOutput, error) {
	return nil, ListPlacementsOutput{Placements: placement.Names(s.config.CustomPlacements())}, nil
}

func (s *Server) handleListWindows(ctx context.Context, req *mcpsdk.CallToolRequest, input ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.planner()
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}
	wins, err := p.Windows()
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}

	out := ListWindowsOutput{Windows: make([]WindowSummary, 0, len(wins))}
	for _, w := range wins {
		summary := WindowSummary{Window: uint32(w.ID), Title: w.Title, Display: w.Display, Active: w.Active}
		if !w.Rect.IsEmpty() {
			rect := toRect(w.Rect)
			summary.Rect = &rect
		}
		out.Windows = append(out.Windows, summary)
	}
	return nil, out, nil
}

func (s *Server) handlePlaceWindow(ctx context.Context, req *mcpsdk.CallToolRequest, input PlaceWindowInput) (*mcpsdk.CallToolResult, PlacementOutput, error) {
	action, err := placement.PlaceAction(input.Placement, s.config.CustomPlacements())
	if err != nil {
		return nil, PlacementOutput{}, err
	}
	return s.runAction(action, input.Window, input.DryRun)
}

func (s *Server) handleMoveWindow(ctx context.Context, req *mcpsdk.CallToolRequest, input MoveWindowInput) (*mcpsdk.CallToolResult, PlacementOutput, error) {
	dir, err := geom.ParseDirection(input.Direction)
	if err != nil {
		return nil, PlacementOutput{}, err
	}
	return s.runAction(placement.Action{Kind: placement.ActionMove, Direction: dir}, input.Window, input.DryRun)
}

func (s *Server) runAction(a placement.Action, window uint32, dryRun bool) (*mcpsdk.CallToolResult, PlacementOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.planner()
	if err != nil {
		return nil, PlacementOutput{}, err
	}

	win := platform.WindowID(window)
	if win == 0 {
		if win, err = p.ActiveWindow(); err != nil {
			return nil, PlacementOutput{}, err
		}
	}

	var plan placement.Plan
	if dryRun {
		plan, err = p.PlanAction(win, a)
	} else {
		plan, err = p.Do(win, a)
	}
	if err != nil {
		logging.Warn().Err(err).Uint32("window", uint32(win)).Str("action", a.String()).Msg("tool call failed")
		return nil, PlacementOutput{}, err
	}

	return nil, PlacementOutput{
		Window:  uint32(plan.Window),
		Title:   s.backend.WindowTitle(plan.Window),
		Source:  plan.Source.Name,
		Target:  plan.Target.Name,
		Rect:    toRect(plan.Rect),
		Applied: !dryRun,
	}, nil
}
