package twitch

import (
	"strings"

	"github.com/vonrein/twitch-chat-logger/irc"
)

// UserStateMessage describes the logged-in user's state in one channel, sent
// after joining and after sending a message there.
type UserStateMessage struct {
	source

	ChannelLogin string
	// UserName is the display name of the logged-in user.
	UserName  string
	Badges    []Badge
	BadgeInfo []Badge
	EmoteSets []string
	NameColor *RGBColor
}

func parseUserState(m *irc.Message) (*UserStateMessage, error) {
	channel, err := channelLogin(m)
	if err != nil {
		return nil, err
	}
	name, err := requireTag(m, "display-name")
	if err != nil {
		return nil, err
	}

	return &UserStateMessage{
		source:       source{m},
		ChannelLogin: channel,
		UserName:     name,
		Badges:       badgesTag(m, "badges"),
		BadgeInfo:    badgesTag(m, "badge-info"),
		EmoteSets:    emoteSetsTag(m),
		NameColor:    colorTag(m, "color"),
	}, nil
}

func emoteSetsTag(m *irc.Message) []string {
	raw, ok := tagValue(m, "emote-sets")
	if !ok || raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}
