package twitch

import "github.com/vonrein/twitch-chat-logger/irc"

// GlobalUserStateMessage describes the logged-in user's global state, sent
// once after a successful login.
type GlobalUserStateMessage struct {
	source

	UserID    string
	UserName  string
	Badges    []Badge
	BadgeInfo []Badge
	EmoteSets []string
	NameColor *RGBColor
}

func parseGlobalUserState(m *irc.Message) (*GlobalUserStateMessage, error) {
	id, err := requireTag(m, "user-id")
	if err != nil {
		return nil, err
	}
	name, err := requireTag(m, "display-name")
	if err != nil {
		return nil, err
	}

	return &GlobalUserStateMessage{
		source:    source{m},
		UserID:    id,
		UserName:  name,
		Badges:    badgesTag(m, "badges"),
		BadgeInfo: badgesTag(m, "badge-info"),
		EmoteSets: emoteSetsTag(m),
		NameColor: colorTag(m, "color"),
	}, nil
}
