package twitch

import "github.com/vonrein/twitch-chat-logger/irc"

// GenericMessage is the fallback for any server message without a dedicated
// type, and for messages whose dedicated parse failed and were downgraded.
//
// For a line that could not even be parsed on the wire level, IRC() is nil
// and RawLine holds the offending line.
type GenericMessage struct {
	source

	RawLine string
}

// NewGeneric wraps a protocol message without further interpretation.
func NewGeneric(m *irc.Message) *GenericMessage {
	return &GenericMessage{source: source{m}}
}

// NewGenericFromLine wraps a raw line that failed wire-level parsing.
func NewGenericFromLine(raw string) *GenericMessage {
	return &GenericMessage{RawLine: raw}
}
