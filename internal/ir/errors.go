package ir

import "errors"

// Sentinel errors surfaced by parsers and the host engine. Every parser
// wraps one of these with fmt.Errorf("...: %w", err) at its own call site;
// nothing here is retried or swallowed.
var (
	ErrUnknownFormat      = errors.New("unknown profile format")
	ErrEmpty              = errors.New("empty input")
	ErrNoSamples          = errors.New("no samples")
	ErrNoThreads          = errors.New("no threads")
	ErrNoZones            = errors.New("no zones")
	ErrMissingNodes       = errors.New("missing nodes")
	ErrMissingTraceEvents = errors.New("missing traceEvents")
	ErrInvalidHandle      = errors.New("invalid profile handle")
	ErrSpanNotFound       = errors.New("span not found")
	ErrSelectionRequired  = errors.New("view requires a selected frame id")
	ErrJSON               = errors.New("malformed JSON")
	ErrUTF8               = errors.New("input is not valid UTF-8")
	ErrUnsupported        = errors.New("unsupported profile variant")
	ErrMissingField       = errors.New("profile is missing a required field")
)
