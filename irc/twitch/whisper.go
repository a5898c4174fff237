package twitch

import "github.com/vonrein/twitch-chat-logger/irc"

// WhisperMessage is a direct message to the logged-in user.
type WhisperMessage struct {
	source

	// RecipientLogin is the login name of the receiving user.
	RecipientLogin string
	MessageText    string
	IsAction       bool

	Sender    UserBasics
	Badges    []Badge
	NameColor *RGBColor
}

func parseWhisper(m *irc.Message) (*WhisperMessage, error) {
	recipient, err := requireParam(m, 0)
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

	return &WhisperMessage{
		source:         source{m},
		RecipientLogin: recipient,
		MessageText:    text,
		IsAction:       isAction,
		Sender:         from,
		Badges:         badgesTag(m, "badges"),
		NameColor:      colorTag(m, "color"),
	}, nil
}
