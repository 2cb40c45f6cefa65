package mcp

// ListDisplaysInput is the input for the list_displays tool.
type ListDisplaysInput struct {
	IncludeDisconnected bool `json:"include_disconnected,omitempty" jsonschema:"Also list outputs with nothing attached (default: false)"`
}

// Rect is an absolute pixel rectangle.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DisplayInfo describes one output.
type DisplayInfo struct {
	Name  string `json:"name"`
	State string `json:"state"`
	// Frame is the full CRTC rectangle; Usable excludes panels and docks.
	Frame  *Rect  `json:"frame,omitempty"`
	Usable *Rect  `json:"usable,omitempty"`
	Error  string `json:"error,omitempty"`
}

// ListDisplaysOutput is the output for the list_displays tool.
type ListDisplaysOutput struct {
	Displays []DisplayInfo `json:"displays"`
}

// ListPlacementsInput is the input for the list_placements tool.
type ListPlacementsInput struct{}

// ListPlacementsOutput is the output for the list_placements tool.
type ListPlacementsOutput struct {
	Placements []string `json:"placements"`
}

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct{}

// WindowSummary describes one managed window.
type WindowSummary struct {
	Window  uint32 `json:"window"`
	Title   string `json:"title,omitempty"`
	Display string `json:"display,omitempty"`
	Rect    *Rect  `json:"rect,omitempty"`
	Active  bool   `json:"active,omitempty"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []WindowSummary `json:"windows"`
}

// PlaceWindowInput is the input for the place_window tool.
type PlaceWindowInput struct {
	Placement string `json:"placement" jsonschema:"required,Named placement (e.g. half-left, quarter-corner-top-right, ninth-centre) or four fractions x,y,w,h"`
	Window    uint32 `json:"window,omitempty" jsonschema:"X11 window id (default: the active window)"`
	DryRun    bool   `json:"dry_run,omitempty" jsonschema:"When true, compute the target rectangle without moving the window"`
}

// MoveWindowInput is the input for the move_window tool.
type MoveWindowInput struct {
	Direction string `json:"direction" jsonschema:"required,Direction of the destination display: north, east, south, west (or up, right, down, left)"`
	Window    uint32 `json:"window,omitempty" jsonschema:"X11 window id (default: the active window)"`
	DryRun    bool   `json:"dry_run,omitempty" jsonschema:"When true, compute the target rectangle without moving the window"`
}

// PlacementOutput is the output for the place_window and move_window tools.
type PlacementOutput struct {
	Window  uint32 `json:"window"`
	Title   string `json:"title,omitempty"`
	Source  string `json:"source"`
	Target  string `json:"target"`
	Rect    Rect   `json:"rect"`
	Applied bool   `json:"applied"`
}
