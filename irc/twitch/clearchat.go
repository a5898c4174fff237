package twitch

import (
	"strconv"
	"time"

	"github.com/vonrein/twitch-chat-logger/irc"
)

// ClearChatAction distinguishes the three moderation events carried by a
// CLEARCHAT message.
type ClearChatAction int

const (
	// ChatCleared means a moderator cleared the entire chat.
	ChatCleared ClearChatAction = iota
	// UserBanned means a user was permanently banned.
	UserBanned
	// UserTimedOut means a user was timed out for TimeoutLength.
	UserTimedOut
)

// ClearChatMessage is a moderation event: a chat clear, a ban or a timeout.
type ClearChatMessage struct {
	source

	ChannelLogin string
	ChannelID    string
	Action       ClearChatAction

	// TargetLogin and TargetID identify the banned or timed-out user; empty
	// when the whole chat was cleared.
	TargetLogin string
	TargetID    string
	// TimeoutLength is only set for UserTimedOut.
	TimeoutLength   time.Duration
	ServerTimestamp time.Time
}

func parseClearChat(m *irc.Message) (*ClearChatMessage, error) {
	channel, err := channelLogin(m)
	if err != nil {
		return nil, err
	}

	msg := &ClearChatMessage{
		source:          source{m},
		ChannelLogin:    channel,
		Action:          ChatCleared,
		ServerTimestamp: timestampTag(m, "tmi-sent-ts"),
	}
	msg.ChannelID, _ = tagValue(m, "room-id")

	if len(m.Params) > 1 {
		msg.TargetLogin = m.Params[1]
		msg.TargetID, _ = tagValue(m, "target-user-id")
		msg.Action = UserBanned
		if raw, ok := tagValue(m, "ban-duration"); ok {
			seconds, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, parseError(m, "malformed ban-duration tag %q", raw)
			}
			msg.Action = UserTimedOut
			msg.TimeoutLength = time.Duration(seconds) * time.Second
		}
	}
	return msg, nil
}
