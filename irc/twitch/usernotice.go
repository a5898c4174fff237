package twitch

import (
	"strings"
	"time"

	"github.com/vonrein/twitch-chat-logger/irc"
)

// UserNoticeEvent classifies a USERNOTICE message. Events the client does
// not recognize are UnknownEvent; the raw msg-id is always available in
// EventID.
type UserNoticeEvent string

const (
	SubOrResub          UserNoticeEvent = "SUB_OR_RESUB"
	Raid                UserNoticeEvent = "RAID"
	SubGift             UserNoticeEvent = "SUB_GIFT"
	SubMysteryGift      UserNoticeEvent = "SUB_MYSTERY_GIFT"
	AnonSubMysteryGift  UserNoticeEvent = "ANON_SUB_MYSTERY_GIFT"
	GiftPaidUpgrade     UserNoticeEvent = "GIFT_PAID_UPGRADE"
	AnonGiftPaidUpgrade UserNoticeEvent = "ANON_GIFT_PAID_UPGRADE"
	Ritual              UserNoticeEvent = "RITUAL"
	BitsBadgeTier       UserNoticeEvent = "BITS_BADGE_TIER"
	UnknownEvent        UserNoticeEvent = ""
)

var userNoticeEvents = map[string]UserNoticeEvent{
	"sub":                 SubOrResub,
	"resub":               SubOrResub,
	"raid":                Raid,
	"subgift":             SubGift,
	"submysterygift":      SubMysteryGift,
	"anonsubmysterygift":  AnonSubMysteryGift,
	"giftpaidupgrade":     GiftPaidUpgrade,
	"anongiftpaidupgrade": AnonGiftPaidUpgrade,
	"ritual":              Ritual,
	"bitsbadgetier":       BitsBadgeTier,
}

// UserNoticeMessage is a channel event message: subscriptions, gift subs,
// raids, rituals and similar announcements.
type UserNoticeMessage struct {
	source

	ChannelLogin string
	ChannelID    string
	Sender       UserBasics

	// MessageText is the optional message the user attached to the event,
	// e.g. the resub message. Empty if the user attached none.
	MessageText string
	// SystemMessage is the event description rendered by the server, e.g.
	// "FuchsGewand subscribed with Twitch Prime. They've subscribed for
	// 12 months!".
	SystemMessage string

	Event UserNoticeEvent
	// EventID is the raw msg-id tag, also for events with a dedicated
	// Event value.
	EventID string

	Badges          []Badge
	BadgeInfo       []Badge
	NameColor       *RGBColor
	ServerTimestamp time.Time
}

// EventName returns the classified event name, falling back to the
// upper-cased raw msg-id for unrecognized events.
func (m *UserNoticeMessage) EventName() string {
	if m.Event != UnknownEvent {
		return string(m.Event)
	}
	return strings.ToUpper(m.EventID)
}

func parseUserNotice(m *irc.Message) (*UserNoticeMessage, error) {
	channel, err := channelLogin(m)
	if err != nil {
		return nil, err
	}
	from, err := senderFromTags(m)
	if err != nil {
		return nil, err
	}
	eventID, err := requireTag(m, "msg-id")
	if err != nil {
		return nil, err
	}

	msg := &UserNoticeMessage{
		source:          source{m},
		ChannelLogin:    channel,
		Sender:          from,
		Event:           userNoticeEvents[eventID],
		EventID:         eventID,
		Badges:          badgesTag(m, "badges"),
		BadgeInfo:       badgesTag(m, "badge-info"),
		NameColor:       colorTag(m, "color"),
		ServerTimestamp: timestampTag(m, "tmi-sent-ts"),
	}
	msg.ChannelID, _ = tagValue(m, "room-id")
	msg.SystemMessage, _ = tagValue(m, "system-msg")
	if len(m.Params) > 1 {
		msg.MessageText = m.Params[1]
	}
	return msg, nil
}
