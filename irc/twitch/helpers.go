package twitch

import (
	"strconv"
	"strings"
	"time"

	"github.com/vonrein/twitch-chat-logger/irc"
)

// source carries the underlying protocol message for every server message
// type in this package.
type source struct {
	src *irc.Message
}

func (s source) IRC() *irc.Message { return s.src }

// UserBasics identifies a Twitch user.
type UserBasics struct {
	ID    string
	Login string
	// Name is the display name; identical to Login except for
	// capitalization and localized display names.
	Name string
}

// Badge is a chat badge such as moderator/1 or subscriber/12.
type Badge struct {
	Name    string
	Version string
}

func (b Badge) String() string { return b.Name + "/" + b.Version }

// RGBColor is a 24-bit sRGB color, e.g. a user's name color.
type RGBColor struct {
	R uint8
	G uint8
	B uint8
}

func (c RGBColor) String() string {
	return "#" + hexByte(c.R) + hexByte(c.G) + hexByte(c.B)
}

func hexByte(b uint8) string {
	const digits = "0123456789ABCDEF"
	return string([]byte{digits[b>>4], digits[b&0x0f]})
}

func tagValue(m *irc.Message, key string) (string, bool) {
	v, ok := m.Tags[key]
	if !ok || v == nil {
		return "", false
	}
	return *v, true
}

func requireTag(m *irc.Message, key string) (string, error) {
	v, ok := tagValue(m, key)
	if !ok {
		return "", parseError(m, "required tag %q missing", key)
	}
	return v, nil
}

func requireParam(m *irc.Message, i int) (string, error) {
	if i < 0 || i >= len(m.Params) {
		return "", parseError(m, "missing parameter at index %d", i)
	}
	return m.Params[i], nil
}

// channelLogin extracts the channel login from the first parameter, which is
// expected to carry the form "#channelname".
func channelLogin(m *irc.Message) (string, error) {
	param, err := requireParam(m, 0)
	if err != nil {
		return "", err
	}
	login, ok := strings.CutPrefix(param, "#")
	if !ok || login == "" {
		return "", parseError(m, "malformed channel parameter %q", param)
	}
	return login, nil
}

// sender assembles the sending user from the message prefix and tags.
func sender(m *irc.Message) (UserBasics, error) {
	if m.Prefix == nil || m.Prefix.Nick == "" {
		return UserBasics{}, parseError(m, "missing nick prefix")
	}
	user := UserBasics{Login: m.Prefix.Nick, Name: m.Prefix.Nick}
	if id, ok := tagValue(m, "user-id"); ok {
		user.ID = id
	}
	if name, ok := tagValue(m, "display-name"); ok && name != "" {
		user.Name = name
	}
	return user, nil
}

// senderFromTags is for messages whose sender is carried in the login tag
// instead of the prefix (USERNOTICE).
func senderFromTags(m *irc.Message) (UserBasics, error) {
	login, err := requireTag(m, "login")
	if err != nil {
		return UserBasics{}, err
	}
	user := UserBasics{Login: login, Name: login}
	if id, ok := tagValue(m, "user-id"); ok {
		user.ID = id
	}
	if name, ok := tagValue(m, "display-name"); ok && name != "" {
		user.Name = name
	}
	return user, nil
}

func badgesTag(m *irc.Message, key string) []Badge {
	raw, ok := tagValue(m, key)
	if !ok || raw == "" {
		return nil
	}
	var badges []Badge
	for _, entry := range strings.Split(raw, ",") {
		name, version, ok := strings.Cut(entry, "/")
		if !ok {
			continue
		}
		badges = append(badges, Badge{Name: name, Version: version})
	}
	return badges
}

// colorTag reads a "#RRGGBB" hex color; nil if absent, empty or malformed.
func colorTag(m *irc.Message, key string) *RGBColor {
	raw, ok := tagValue(m, key)
	if !ok || len(raw) != 7 || raw[0] != '#' {
		return nil
	}
	n, err := strconv.ParseUint(raw[1:], 16, 32)
	if err != nil {
		return nil
	}
	return &RGBColor{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n)}
}

// timestampTag reads a unix-milliseconds timestamp tag (tmi-sent-ts).
func timestampTag(m *irc.Message, key string) time.Time {
	raw, ok := tagValue(m, key)
	if !ok {
		return time.Time{}
	}
	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.UnixMilli(millis).UTC()
}

// actionText strips the CTCP ACTION wrapping produced by the /me command.
func actionText(text string) (string, bool) {
	const prefix = "\x01ACTION "
	if strings.HasPrefix(text, prefix) && strings.HasSuffix(text, "\x01") {
		return text[len(prefix) : len(text)-1], true
	}
	return text, false
}
