package twitch

import "github.com/vonrein/twitch-chat-logger/irc"

// PingMessage is a server keepalive request; the client answers with PONG.
type PingMessage struct {
	source

	// Argument is echoed back in the PONG reply.
	Argument string
}

func parsePing(m *irc.Message) (*PingMessage, error) {
	msg := &PingMessage{source: source{m}}
	if len(m.Params) > 0 {
		msg.Argument = m.Params[len(m.Params)-1]
	}
	return msg, nil
}
