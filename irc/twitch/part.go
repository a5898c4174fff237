package twitch

import "github.com/vonrein/twitch-chat-logger/irc"

// PartMessage announces that a user left a channel. Only sent when the
// twitch.tv/membership capability is active.
type PartMessage struct {
	source

	ChannelLogin string
	UserLogin    string
}

func parsePart(m *irc.Message) (*PartMessage, error) {
	channel, err := channelLogin(m)
	if err != nil {
		return nil, err
	}
	if m.Prefix == nil || m.Prefix.Nick == "" {
		return nil, parseError(m, "missing nick prefix")
	}
	return &PartMessage{
		source:       source{m},
		ChannelLogin: channel,
		UserLogin:    m.Prefix.Nick,
	}, nil
}
