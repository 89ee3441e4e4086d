package render

import "encoding/json"

// commandType is the discriminant written into every encoded command's
// "type" field so an external renderer's switch can dispatch on it without
// reflecting into the payload shape.
type commandType string

const (
	commandTypeDrawRect      commandType = "draw_rect"
	commandTypeDrawText      commandType = "draw_text"
	commandTypeDrawLine      commandType = "draw_line"
	commandTypeSetClip       commandType = "set_clip"
	commandTypeClearClip     commandType = "clear_clip"
	commandTypePushTransform commandType = "push_transform"
	commandTypePopTransform  commandType = "pop_transform"
	commandTypeBeginGroup    commandType = "begin_group"
	commandTypeEndGroup      commandType = "end_group"
)

// MarshalJSON tags the encoded object with "type": "draw_rect" so the
// external renderer's JSON consumer can dispatch without a Go type switch.
func (c DrawRect) MarshalJSON() ([]byte, error) {
	type alias DrawRect
	return json.Marshal(struct {
		Type commandType `json:"type"`
		alias
	}{commandTypeDrawRect, alias(c)})
}

func (c DrawText) MarshalJSON() ([]byte, error) {
	type alias DrawText
	return json.Marshal(struct {
		Type commandType `json:"type"`
		alias
	}{commandTypeDrawText, alias(c)})
}

func (c DrawLine) MarshalJSON() ([]byte, error) {
	type alias DrawLine
	return json.Marshal(struct {
		Type commandType `json:"type"`
		alias
	}{commandTypeDrawLine, alias(c)})
}

func (c SetClip) MarshalJSON() ([]byte, error) {
	type alias SetClip
	return json.Marshal(struct {
		Type commandType `json:"type"`
		alias
	}{commandTypeSetClip, alias(c)})
}

func (c ClearClip) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type commandType `json:"type"`
	}{commandTypeClearClip})
}

func (c PushTransform) MarshalJSON() ([]byte, error) {
	type alias PushTransform
	return json.Marshal(struct {
		Type commandType `json:"type"`
		alias
	}{commandTypePushTransform, alias(c)})
}

func (c PopTransform) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type commandType `json:"type"`
	}{commandTypePopTransform})
}

func (c BeginGroup) MarshalJSON() ([]byte, error) {
	type alias BeginGroup
	return json.Marshal(struct {
		Type commandType `json:"type"`
		alias
	}{commandTypeBeginGroup, alias(c)})
}

func (c EndGroup) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type commandType `json:"type"`
	}{commandTypeEndGroup})
}

// EncodeCommands renders a command stream as its JSON-serializable form
// (§6's "Output: RenderCommand stream" contract): a plain ordered array,
// each element tagged with a "type" discriminant.
func EncodeCommands(cmds []Command) ([]byte, error) {
	return json.Marshal(cmds)
}
