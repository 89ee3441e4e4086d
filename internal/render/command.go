package render

// Command is a single instruction in a RenderCommand stream. It is a
// closed sum type: the only implementations are the ones in this file.
// A backend never needs type-switch exhaustiveness checks beyond this
// package's variant list.
type Command interface {
	isCommand()
}

// DrawRect paints a filled rectangle, optionally bordered and optionally
// labeled. FrameID carries back the originating span's ID for hit-testing;
// it is nil for chrome that doesn't correspond to a single span (e.g. a
// minimap's viewport indicator).
type DrawRect struct {
	Rect        Rect
	Color       ThemeToken
	BorderColor *ThemeToken
	Label       *string
	FrameID     *uint64
}

func (DrawRect) isCommand() {}

// DrawText paints a single line of text at a position.
type DrawText struct {
	Position Point
	Text     string
	Color    ThemeToken
	FontSize float64
	Align    TextAlign
}

func (DrawText) isCommand() {}

// DrawLine paints a straight line segment, used by gridlines and tick marks.
type DrawLine struct {
	From, To Point
	Color    ThemeToken
	Width    float64
}

func (DrawLine) isCommand() {}

// SetClip constrains subsequent drawing to rect until the matching ClearClip.
type SetClip struct {
	Rect Rect
}

func (SetClip) isCommand() {}

// ClearClip removes the clip region established by the most recent SetClip.
type ClearClip struct{}

func (ClearClip) isCommand() {}

// PushTransform applies a translate/scale to subsequent commands until the
// matching PopTransform. Scale of zero on an axis means "no scaling" (1.0);
// callers should set both components explicitly.
type PushTransform struct {
	Translate Point
	Scale     Point
}

func (PushTransform) isCommand() {}

// PopTransform undoes the most recent PushTransform.
type PopTransform struct{}

func (PopTransform) isCommand() {}

// BeginGroup opens a named logical grouping of commands (one lane, one
// table row, one minimap strip) so a backend can attach interaction
// handlers or accessibility metadata to the group as a whole.
type BeginGroup struct {
	ID    string
	Label *string
}

func (BeginGroup) isCommand() {}

// EndGroup closes the most recently opened BeginGroup.
type EndGroup struct{}

func (EndGroup) isCommand() {}
