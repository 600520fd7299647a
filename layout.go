// layout.go re-exports geometry types from internal/layout.
// Any changes to internal/layout types must be mirrored here.
package brick

import "github.com/grindlemire/go-brick/internal/layout"

// Rect represents a rectangle with position and dimensions.
type Rect = layout.Rect

// Size represents a width/height pair.
type Size = layout.Size

// Edges represents insets on four sides (top, right, bottom, left).
type Edges = layout.Edges

// NewRect creates a new Rect with the given position and dimensions.
func NewRect(x, y, width, height int) Rect {
	return layout.NewRect(x, y, width, height)
}

// EdgeTRBL creates Edges following CSS order: Top, Right, Bottom, Left.
func EdgeTRBL(t, r, b, l int) Edges {
	return layout.EdgeTRBL(t, r, b, l)
}
