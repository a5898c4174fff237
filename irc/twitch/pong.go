package twitch

import "github.com/vonrein/twitch-chat-logger/irc"

// PongMessage is the server's answer to a client PING.
type PongMessage struct {
	source

	Argument string
}

func parsePong(m *irc.Message) (*PongMessage, error) {
	msg := &PongMessage{source: source{m}}
	if len(m.Params) > 0 {
		msg.Argument = m.Params[len(m.Params)-1]
	}
	return msg, nil
}
