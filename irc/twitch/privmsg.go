package twitch

import (
	"strconv"
	"time"

	"github.com/vonrein/twitch-chat-logger/irc"
)

// PrivmsgMessage is a regular chat message posted to a channel.
type PrivmsgMessage struct {
	source

	ChannelLogin string
	ChannelID    string
	MessageID    string
	MessageText  string
	// IsAction marks messages sent with the /me command.
	IsAction bool

	Sender    UserBasics
	Badges    []Badge
	BadgeInfo []Badge
	// Bits is non-nil for cheer messages.
	Bits *uint64
	// NameColor is nil if the sender never set a name color.
	NameColor       *RGBColor
	ServerTimestamp time.Time
}

func parsePrivmsg(m *irc.Message) (*PrivmsgMessage, error) {
	channel, err := channelLogin(m)
	if err != nil {
		return nil, err
	}
	text, err := requireParam(m, 1)
	if err != nil {
		return nil, err
	}
	from, err := sender(m)
	if err != nil {
		return nil, err
	}

	text, isAction := actionText(text)

	msg := &PrivmsgMessage{
		source:          source{m},
		ChannelLogin:    channel,
		MessageText:     text,
		IsAction:        isAction,
		Sender:          from,
		Badges:          badgesTag(m, "badges"),
		BadgeInfo:       badgesTag(m, "badge-info"),
		NameColor:       colorTag(m, "color"),
		ServerTimestamp: timestampTag(m, "tmi-sent-ts"),
	}
	msg.ChannelID, _ = tagValue(m, "room-id")
	msg.MessageID, _ = tagValue(m, "id")
	if raw, ok := tagValue(m, "bits"); ok {
		if bits, err := strconv.ParseUint(raw, 10, 64); err == nil {
			msg.Bits = &bits
		}
	}
	return msg, nil
}
