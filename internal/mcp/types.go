package mcp

// ApplyLayoutInput is the input for the apply_layout tool.
type ApplyLayoutInput struct {
	Layout     string `json:"layout" jsonschema:"required,Name of the layout to apply"`
	Animated   *bool  `json:"animated,omitempty" jsonschema:"When false, windows jump to their targets without animating (default: true)"`
	DurationMs *int   `json:"duration_ms,omitempty" jsonschema:"Animation duration in milliseconds. Zero snaps immediately; omitted uses the configured default."`
}

// ApplyLayoutOutput is the output for the apply_layout tool.
type ApplyLayoutOutput struct {
	Layout  string `json:"layout"`
	Applied bool   `json:"applied"`
}

// MoveWindowInput is the input for the move_window tool. Omitted geometry
// fields keep the window's current value.
type MoveWindowInput struct {
	Window     string `json:"window" jsonschema:"required,Registered window name from the windows config section"`
	X          *int   `json:"x,omitempty" jsonschema:"Target X position in pixels"`
	Y          *int   `json:"y,omitempty" jsonschema:"Target Y position in pixels"`
	Width      *int   `json:"width,omitempty" jsonschema:"Target width in pixels"`
	Height     *int   `json:"height,omitempty" jsonschema:"Target height in pixels"`
	DurationMs *int   `json:"duration_ms,omitempty" jsonschema:"Animation duration in milliseconds. Zero snaps immediately; omitted uses the configured default."`
}

// MoveWindowOutput is the output for the move_window tool.
type MoveWindowOutput struct {
	Window  string `json:"window"`
	Started bool   `json:"started"`
}

// FadeWindowInput is the input for the fade_window tool.
type FadeWindowInput struct {
	Window     string   `json:"window" jsonschema:"required,Registered window name from the windows config section"`
	To         float64  `json:"to" jsonschema:"required,Target opacity between 0 (transparent) and 1 (opaque)"`
	From       *float64 `json:"from,omitempty" jsonschema:"Starting opacity. Omitted reads the window's current opacity."`
	DurationMs *int     `json:"duration_ms,omitempty" jsonschema:"Animation duration in milliseconds. Zero snaps immediately; omitted uses the configured default."`
}

// FadeWindowOutput is the output for the fade_window tool.
type FadeWindowOutput struct {
	Window  string  `json:"window"`
	To      float64 `json:"to"`
	Started bool    `json:"started"`
}

// ListLayoutsInput is the input for the list_layouts tool.
type ListLayoutsInput struct{}

// ListLayoutsOutput is the output for the list_layouts tool.
type ListLayoutsOutput struct {
	Layouts       []string `json:"layouts"`
	DefaultLayout string   `json:"default_layout"`
	ActiveLayout  string   `json:"active_layout"`
}

// GetStatusInput is the input for the get_status tool.
type GetStatusInput struct{}

// GetStatusOutput is the output for the get_status tool.
type GetStatusOutput struct {
	DaemonRunning bool   `json:"daemon_running"`
	ActiveLayout  string `json:"active_layout"`
	WindowCount   int    `json:"window_count"`
	Animating     bool   `json:"animating"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}
