package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"

	platform "github.com/1broseidon/glide/internal/platform/types"
)

// Displays enumerates active monitors through XRandR.
func (c *Connection) Displays() ([]platform.Display, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var displays []platform.Display
	for i, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("Display%d", i)
		if output, err := randr.GetOutputInfo(c.XUtil.Conn(), info.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = string(output.Name)
		}

		bounds := platform.Rect{
			X:      int(info.X),
			Y:      int(info.Y),
			Width:  int(info.Width),
			Height: int(info.Height),
		}
		displays = append(displays, platform.Display{
			ID:     i,
			Name:   name,
			Bounds: bounds,
			Usable: bounds,
		})
	}

	return displays, nil
}

// ActiveDisplay returns the display containing the focused window, falling
// back to the display under the pointer and finally the first display. The
// Usable rect excludes panels and docks so layouts never place windows
// under them.
func (c *Connection) ActiveDisplay() (*platform.Display, error) {
	displays, err := c.Displays()
	if err != nil {
		return nil, err
	}
	if len(displays) == 0 {
		return nil, fmt.Errorf("no displays found")
	}

	var active *platform.Display

	if win, err := ewmh.ActiveWindowGet(c.XUtil); err == nil && win != 0 {
		if rect, err := c.WindowGeometry(win); err == nil {
			active = displayAt(displays, rect.X+rect.Width/2, rect.Y+rect.Height/2)
		}
	}

	if active == nil {
		if pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply(); err == nil {
			active = displayAt(displays, int(pointer.RootX), int(pointer.RootY))
		}
	}

	if active == nil {
		active = &displays[0]
	}

	if usable, ok := c.dockStruts(active.Bounds); ok {
		active.Usable = usable
	} else if workarea, ok := c.currentWorkarea(); ok {
		if clipped, ok := intersect(active.Bounds, workarea); ok {
			active.Usable = clipped
		}
	}

	return active, nil
}

func displayAt(displays []platform.Display, x, y int) *platform.Display {
	for i := range displays {
		b := displays[i].Bounds
		if x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height {
			return &displays[i]
		}
	}
	return nil
}

// currentWorkarea reads _NET_WORKAREA for the current desktop.
func (c *Connection) currentWorkarea() (platform.Rect, bool) {
	workarea, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(workarea) == 0 {
		return platform.Rect{}, false
	}

	idx := 0
	if desktop, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil && int(desktop) < len(workarea) {
		idx = int(desktop)
	}

	wa := workarea[idx]
	return platform.Rect{
		X:      int(wa.X),
		Y:      int(wa.Y),
		Width:  int(wa.Width),
		Height: int(wa.Height),
	}, true
}

// dockStruts shrinks the display bounds by dock window struts. _NET_WORKAREA
// spans all monitors, so on multi-head setups per-dock struts give a much
// tighter result for the display actually holding the dock.
func (c *Connection) dockStruts(bounds platform.Rect) (platform.Rect, bool) {
	rootGeom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return bounds, false
	}
	rootW := int(rootGeom.Width)
	rootH := int(rootGeom.Height)

	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return bounds, false
	}

	var left, right, top, bottom int
	for _, id := range clients {
		if !isDockWindow(c, id) {
			continue
		}

		sp, err := ewmh.WmStrutPartialGet(c.XUtil, id)
		if err != nil {
			s, err := ewmh.WmStrutGet(c.XUtil, id)
			if err != nil {
				continue
			}
			sp = fullWidthStruts(s, rootW, rootH)
		}

		// Each strut claims a band along one root edge. Only bands that
		// overlap this display shrink it.
		if sp.Top > 0 {
			band := platform.Rect{X: int(sp.TopStartX), Y: 0, Width: int(sp.TopEndX) - int(sp.TopStartX) + 1, Height: int(sp.Top)}
			if isect, ok := intersect(bounds, band); ok && isect.Height > top {
				top = isect.Height
			}
		}
		if sp.Bottom > 0 {
			band := platform.Rect{X: int(sp.BottomStartX), Y: rootH - int(sp.Bottom), Width: int(sp.BottomEndX) - int(sp.BottomStartX) + 1, Height: int(sp.Bottom)}
			if isect, ok := intersect(bounds, band); ok && isect.Height > bottom {
				bottom = isect.Height
			}
		}
		if sp.Left > 0 {
			band := platform.Rect{X: 0, Y: int(sp.LeftStartY), Width: int(sp.Left), Height: int(sp.LeftEndY) - int(sp.LeftStartY) + 1}
			if isect, ok := intersect(bounds, band); ok && isect.Width > left {
				left = isect.Width
			}
		}
		if sp.Right > 0 {
			band := platform.Rect{X: rootW - int(sp.Right), Y: int(sp.RightStartY), Width: int(sp.Right), Height: int(sp.RightEndY) - int(sp.RightStartY) + 1}
			if isect, ok := intersect(bounds, band); ok && isect.Width > right {
				right = isect.Width
			}
		}
	}

	if left == 0 && right == 0 && top == 0 && bottom == 0 {
		return bounds, false
	}

	bounds.X += left
	bounds.Y += top
	bounds.Width -= left + right
	bounds.Height -= top + bottom
	if bounds.Width < 1 {
		bounds.Width = 1
	}
	if bounds.Height < 1 {
		bounds.Height = 1
	}
	return bounds, true
}

func isDockWindow(c *Connection, id xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, id)
	if err != nil {
		return false
	}
	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_DOCK" {
			return true
		}
	}
	return false
}

// fullWidthStruts widens a legacy _NET_WM_STRUT into partial form spanning
// the whole root edge.
func fullWidthStruts(s *ewmh.WmStrut, rootW, rootH int) *ewmh.WmStrutPartial {
	return &ewmh.WmStrutPartial{
		Left:   s.Left,
		Right:  s.Right,
		Top:    s.Top,
		Bottom: s.Bottom,

		LeftStartY: 0, LeftEndY: uint(rootH - 1),
		RightStartY: 0, RightEndY: uint(rootH - 1),
		TopStartX: 0, TopEndX: uint(rootW - 1),
		BottomStartX: 0, BottomEndX: uint(rootW - 1),
	}
}

func intersect(a, b platform.Rect) (platform.Rect, bool) {
	x1 := maxInt(a.X, b.X)
	y1 := maxInt(a.Y, b.Y)
	x2 := minInt(a.X+a.Width, b.X+b.Width)
	y2 := minInt(a.Y+a.Height, b.Y+b.Height)
	if x2 <= x1 || y2 <= y1 {
		return platform.Rect{}, false
	}
	return platform.Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}, true
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
