// Package yamlcodec implements a YAML parser/emitter over the value
// module. The parser works line by line over indentation (see
// scanLines) and builds *value.Value directly rather than through an
// intermediate tree type; it does not produce or consume the Event
// stream types declared in this file, which mirror libyaml's event
// taxonomy (stream/document start-end, scalar, sequence/mapping
// start-end, alias). This package does not delegate to
// goccy/go-yaml or gopkg.in/yaml.v3; those stay reserved for the
// snapshot-testing harness only.
package yamlcodec

import "fmt"

// EventType tags the kind of a parse event. The scanner and parser in
// this package do not emit events.
type EventType int

const (
	EventNone EventType = iota
	EventStreamStart
	EventStreamEnd
	EventDocumentStart
	EventDocumentEnd
	EventAlias
	EventScalar
	EventSequenceStart
	EventSequenceEnd
	EventMappingStart
	EventMappingEnd
)

func (t EventType) String() string {
	switch t {
	case EventStreamStart:
		return "stream start"
	case EventStreamEnd:
		return "stream end"
	case EventDocumentStart:
		return "document start"
	case EventDocumentEnd:
		return "document end"
	case EventAlias:
		return "alias"
	case EventScalar:
		return "scalar"
	case EventSequenceStart:
		return "sequence start"
	case EventSequenceEnd:
		return "sequence end"
	case EventMappingStart:
		return "mapping start"
	case EventMappingEnd:
		return "mapping end"
	default:
		return "none"
	}
}

// Mark holds a position in the source for error reporting.
type Mark struct {
	Line   int
	Column int
}

func (m Mark) String() string { return fmt.Sprintf("line %d, column %d", m.Line, m.Column) }

// Event is one item in the parse stream.
type Event struct {
	Type   EventType
	Anchor string // set for Scalar/SequenceStart/MappingStart/Alias
	Value  string // scalar text (EventScalar only)
	Mark   Mark
}
