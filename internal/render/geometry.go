// Package render implements the RenderCommand protocol and the view
// transforms that turn a Visual Profile into a RenderCommand stream.
package render

// Point is a 2D coordinate.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in viewport space.
type Rect struct {
	X, Y, W, H float64
}

// Viewport describes the drawable area and device pixel ratio a view
// transform lays its output out against.
type Viewport struct {
	X, Y, Width, Height float64
	Dpr                 float64
}

// TextAlign is the horizontal alignment of a DrawText command.
type TextAlign string

const (
	TextAlignLeft   TextAlign = "left"
	TextAlignCenter TextAlign = "center"
	TextAlignRight  TextAlign = "right"
)
