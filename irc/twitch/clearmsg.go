package twitch

import (
	"time"

	"github.com/vonrein/twitch-chat-logger/irc"
)

// ClearMsgMessage is a moderation event deleting a single message.
type ClearMsgMessage struct {
	source

	ChannelLogin string
	// SenderLogin is the author of the deleted message.
	SenderLogin string
	// MessageID is the id of the deleted message.
	MessageID       string
	MessageText     string
	IsAction        bool
	ServerTimestamp time.Time
}

func parseClearMsg(m *irc.Message) (*ClearMsgMessage, error) {
	channel, err := channelLogin(m)
	if err != nil {
		return nil, err
	}
	text, err := requireParam(m, 1)
	if err != nil {
		return nil, err
	}
	login, err := requireTag(m, "login")
	if err != nil {
		return nil, err
	}

	text, isAction := actionText(text)

	msg := &ClearMsgMessage{
		source:          source{m},
		ChannelLogin:    channel,
		SenderLogin:     login,
		MessageText:     text,
		IsAction:        isAction,
		ServerTimestamp: timestampTag(m, "tmi-sent-ts"),
	}
	msg.MessageID, _ = tagValue(m, "target-msg-id")
	return msg, nil
}
