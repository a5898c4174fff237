package twitch

import (
	"strconv"
	"time"

	"github.com/vonrein/twitch-chat-logger/irc"
)

// FollowersOnlyMode describes the followers-only setting of a channel.
type FollowersOnlyMode struct {
	Enabled bool
	// MinimumFollowDuration is how long a user must have followed before
	// chatting; zero means any follower may chat.
	MinimumFollowDuration time.Duration
}

// RoomStateMessage carries a channel's chat mode settings. On channel join
// the full state is sent; later messages carry only the changed fields, so
// every field is optional (nil = not included in this message).
type RoomStateMessage struct {
	source

	ChannelLogin string
	ChannelID    string

	EmoteOnly     *bool
	FollowersOnly *FollowersOnlyMode
	R9K           *bool
	// SlowMode is the minimum delay between messages of a single user;
	// zero means slow mode is off.
	SlowMode        *time.Duration
	SubscribersOnly *bool
}

func parseRoomState(m *irc.Message) (*RoomStateMessage, error) {
	channel, err := channelLogin(m)
	if err != nil {
		return nil, err
	}

	msg := &RoomStateMessage{source: source{m}, ChannelLogin: channel}
	msg.ChannelID, _ = tagValue(m, "room-id")

	msg.EmoteOnly = boolTag(m, "emote-only")
	msg.R9K = boolTag(m, "r9k")
	msg.SubscribersOnly = boolTag(m, "subs-only")

	if raw, ok := tagValue(m, "followers-only"); ok {
		if minutes, err := strconv.ParseInt(raw, 10, 64); err == nil {
			mode := FollowersOnlyMode{Enabled: minutes >= 0}
			if minutes > 0 {
				mode.MinimumFollowDuration = time.Duration(minutes) * time.Minute
			}
			msg.FollowersOnly = &mode
		}
	}
	if raw, ok := tagValue(m, "slow"); ok {
		if seconds, err := strconv.ParseInt(raw, 10, 64); err == nil {
			d := time.Duration(seconds) * time.Second
			msg.SlowMode = &d
		}
	}
	return msg, nil
}

func boolTag(m *irc.Message, key string) *bool {
	raw, ok := tagValue(m, key)
	if !ok {
		return nil
	}
	enabled := raw == "1"
	return &enabled
}
