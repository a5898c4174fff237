package main

import (
	"time"

	"github.com/vonrein/twitch-chat-logger/irc/twitch"
)

// chatEntry is one logged line of a channel: a chat message or a system
// event (moderation, user notice, VIP movement).
type chatEntry struct {
	At     time.Time
	Sender string
	Badges []string
	Color  *twitch.RGBColor
	Text   string
	Action bool
	System bool
}

// joinEntry records a JOIN or PART of another user.
type joinEntry struct {
	At     time.Time
	Login  string
	Joined bool
}

// channelLog accumulates everything observed in one channel.
type channelLog struct {
	Login string
	Color string

	Entries []chatEntry
	Joins   []joinEntry

	chatters map[string]struct{}

	ModerationEvents   int
	SubscriptionEvents int
	RaidEvents         int
}

func newChannelLog(login, color string) *channelLog {
	return &channelLog{
		Login:    login,
		Color:    color,
		chatters: map[string]struct{}{},
	}
}

func (cl *channelLog) addMessage(e chatEntry) {
	cl.Entries = append(cl.Entries, e)
	if !e.System && e.Sender != "" {
		cl.chatters[e.Sender] = struct{}{}
	}
}

func (cl *channelLog) addSystem(at time.Time, text string) {
	cl.Entries = append(cl.Entries, chatEntry{At: at, Text: text, System: true})
}

func (cl *channelLog) addJoin(at time.Time, login string, joined bool) {
	cl.Joins = append(cl.Joins, joinEntry{At: at, Login: login, Joined: joined})
}

func (cl *channelLog) UniqueChatters() int {
	return len(cl.chatters)
}
