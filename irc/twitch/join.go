package twitch

import "github.com/vonrein/twitch-chat-logger/irc"

// JoinMessage announces that a user entered a channel. Only sent when the
// twitch.tv/membership capability is active.
type JoinMessage struct {
	source

	ChannelLogin string
	UserLogin    string
}

func parseJoin(m *irc.Message) (*JoinMessage, error) {
	channel, err := channelLogin(m)
	if err != nil {
		return nil, err
	}
	if m.Prefix == nil || m.Prefix.Nick == "" {
		return nil, parseError(m, "missing nick prefix")
	}
	return &JoinMessage{
		source:       source{m},
		ChannelLogin: channel,
		UserLogin:    m.Prefix.Nick,
	}, nil
}
