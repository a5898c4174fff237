// Package twitch interprets parsed IRC messages as the semantic message
// types sent by the Twitch chat servers.
package twitch

import (
	"fmt"

	"github.com/vonrein/twitch-chat-logger/irc"
)

// ServerMessage is a message coming from the Twitch servers, parsed into one
// of the concrete types of this package. IRC returns the underlying protocol
// message.
type ServerMessage interface {
	IRC() *irc.Message
}

// ParseError reports that a message with a known command was missing a
// required field. Callers are expected to downgrade the message to a
// *GenericMessage rather than treat this as fatal.
type ParseError struct {
	Source *irc.Message
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse %s message: %s", e.Source.Command, e.Reason)
}

func parseError(m *irc.Message, format string, args ...any) error {
	return &ParseError{Source: m, Reason: fmt.Sprintf(format, args...)}
}

// Parse interprets a protocol message as a server message. Messages with a
// command this package has no dedicated type for come back as a
// *GenericMessage; that is not an error. A *ParseError is returned only when
// a known command is missing required fields.
func Parse(m *irc.Message) (ServerMessage, error) {
	switch m.Command {
	case "PING":
		return parsePing(m)
	case "PONG":
		return parsePong(m)
	case "RECONNECT":
		return &ReconnectMessage{source: source{m}}, nil
	case "JOIN":
		return parseJoin(m)
	case "PART":
		return parsePart(m)
	case "PRIVMSG":
		return parsePrivmsg(m)
	case "WHISPER":
		return parseWhisper(m)
	case "NOTICE":
		return parseNotice(m)
	case "ROOMSTATE":
		return parseRoomState(m)
	case "USERSTATE":
		return parseUserState(m)
	case "GLOBALUSERSTATE":
		return parseGlobalUserState(m)
	case "CLEARCHAT":
		return parseClearChat(m)
	case "CLEARMSG":
		return parseClearMsg(m)
	case "USERNOTICE":
		return parseUserNotice(m)
	default:
		return &GenericMessage{source: source{m}}, nil
	}
}
