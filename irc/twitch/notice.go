package twitch

import (
	"strings"

	"github.com/vonrein/twitch-chat-logger/irc"
)

// NoticeMessage is a feedback message from the server, e.g. the response to
// a chat command or a login failure notice.
type NoticeMessage struct {
	source

	// ChannelLogin is empty for notices not bound to a channel (such as
	// notices sent during login).
	ChannelLogin string
	MessageText  string
	// MessageID classifies the notice, e.g. "msg_banned". Empty for login
	// notices.
	MessageID string
}

func parseNotice(m *irc.Message) (*NoticeMessage, error) {
	text, err := requireParam(m, len(m.Params)-1)
	if err != nil {
		return nil, err
	}

	msg := &NoticeMessage{source: source{m}, MessageText: text}
	// login notices target "*" instead of a channel
	if len(m.Params) > 1 && strings.HasPrefix(m.Params[0], "#") {
		channel, err := channelLogin(m)
		if err != nil {
			return nil, err
		}
		msg.ChannelLogin = channel
	}
	msg.MessageID, _ = tagValue(m, "msg-id")
	return msg, nil
}
