package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vonrein/twitch-chat-logger/irc"
	"github.com/vonrein/twitch-chat-logger/irc/twitch"
)

func TestParseChannels(t *testing.T) {
	input := `
# comment line
2
forsen:red
pajlada:#00ff00
SomeVIP
another_vip:blue
`
	cfg, err := parseChannels(strings.NewReader(input))
	require.NoError(t, err)

	require.Equal(t, []channelEntry{
		{Login: "forsen", Color: "red"},
		{Login: "pajlada", Color: "#00ff00"},
	}, cfg.Channels)

	// channels double as VIPs, followed by the extra VIP entries
	require.Equal(t, []channelEntry{
		{Login: "forsen", Color: "red"},
		{Login: "pajlada", Color: "#00ff00"},
		{Login: "somevip", Color: ""},
		{Login: "another_vip", Color: "blue"},
	}, cfg.VIPs)
}

func TestParseChannelsErrors(t *testing.T) {
	_, err := parseChannels(strings.NewReader(""))
	require.Error(t, err)

	_, err = parseChannels(strings.NewReader("forsen\n"))
	require.Error(t, err)

	_, err = parseChannels(strings.NewReader("3\nforsen\n"))
	require.Error(t, err)
}

func TestChannelColor(t *testing.T) {
	require.Equal(t, "#ff5555", channelColor("red"))
	require.Equal(t, "#123456", channelColor("#123456"))
	require.Equal(t, fallbackChannelColor, channelColor("no-such-color"))
	require.Equal(t, fallbackChannelColor, channelColor(""))
}

func TestToggleTargetExclusive(t *testing.T) {
	// arming clears the other alert kind
	target, other := toggleTarget([]string{"#forsen"}, "")
	require.Equal(t, "forsen", target)
	require.Equal(t, "", other)

	// OFF and repeating the same channel disarm
	target, _ = toggleTarget([]string{"OFF"}, "forsen")
	require.Equal(t, "", target)
	target, _ = toggleTarget([]string{"forsen"}, "forsen")
	require.Equal(t, "", target)
}

func testModel() *model {
	return &model{
		cfg:      appConfig{vips: map[string]string{"vip_user": "red"}},
		channels: map[string]*channelLog{},
		theme:    newTheme(),
	}
}

func parseServer(t *testing.T, raw string) twitch.ServerMessage {
	t.Helper()
	m, err := irc.Parse(raw)
	require.NoError(t, err)
	msg, err := twitch.Parse(m)
	require.NoError(t, err)
	return msg
}

func TestHandleServerCountsAndLogs(t *testing.T) {
	m := testModel()

	m.handleServer(parseServer(t, "@badges=moderator/1;color=#FF0000;display-name=Mod;id=1;room-id=2;tmi-sent-ts=3;user-id=4 :mod!mod@mod.tmi.twitch.tv PRIVMSG #forsen :hello"))
	m.handleServer(parseServer(t, "@ban-duration=600;room-id=2 :tmi.twitch.tv CLEARCHAT #forsen :weeb123"))
	m.handleServer(parseServer(t, "@login=sub_user;msg-id=sub;room-id=2;system-msg=sub_user\\ssubscribed!;user-id=5 :tmi.twitch.tv USERNOTICE #forsen"))
	m.handleServer(parseServer(t, "@login=raider;msg-id=raid;room-id=2;system-msg=raid!;user-id=6 :tmi.twitch.tv USERNOTICE #forsen"))

	cl := m.channels["forsen"]
	require.NotNil(t, cl)
	require.Equal(t, 1, cl.UniqueChatters())
	require.Equal(t, 1, cl.ModerationEvents)
	require.Equal(t, 1, cl.SubscriptionEvents)
	require.Equal(t, 1, cl.RaidEvents)
	require.Len(t, cl.Entries, 4)
	require.Len(t, m.lines, 4)
}

func TestHandleServerVIPAlerts(t *testing.T) {
	m := testModel()

	m.handleServer(parseServer(t, ":vip_user!vip_user@vip_user.tmi.twitch.tv JOIN #forsen"))
	m.handleServer(parseServer(t, ":nobody!nobody@nobody.tmi.twitch.tv JOIN #forsen"))
	m.handleServer(parseServer(t, ":vip_user!vip_user@vip_user.tmi.twitch.tv PART #forsen"))

	cl := m.channels["forsen"]
	require.Len(t, cl.Joins, 3)
	// only VIP movement produces visible lines
	require.Len(t, m.lines, 2)
	require.Contains(t, cl.Entries[0].Text, "VIP vip_user joined")
	require.Contains(t, cl.Entries[1].Text, "VIP vip_user left")
}

func TestBadgeLabels(t *testing.T) {
	msg := parseServer(t, "@badges=moderator/1,subscriber/12,premium/1;first-msg=1;returning-chatter=0;color=;display-name=X;id=1;room-id=2;user-id=3 :x!x@x.tmi.twitch.tv PRIVMSG #c :hi")
	pm := msg.(*twitch.PrivmsgMessage)
	require.Equal(t,
		[]string{"mod/1", "sub/12", "prime/1", "(FIRSTMSG)"},
		badgeLabels(pm))
}

func TestExportChannel(t *testing.T) {
	dir := t.TempDir()

	cl := newChannelLog("forsen", "red")
	at := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	cl.addMessage(chatEntry{At: at, Sender: "alice", Badges: []string{"mod/1"}, Text: "hello"})
	cl.addMessage(chatEntry{At: at, Sender: "bob", Text: "hi", Action: true})
	cl.addSystem(at, "bob was banned")
	cl.ModerationEvents++
	cl.addJoin(at, "carol", true)
	cl.addJoin(at, "carol", false)

	msgPath, joinsPath, err := exportChannel(dir, cl, "session")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(filepath.Base(msgPath), "forsen_session_"))

	data, err := os.ReadFile(msgPath)
	require.NoError(t, err)
	content := string(data)
	require.True(t, strings.HasPrefix(content, utf8BOM))
	require.Contains(t, content, "# channel: forsen")
	require.Contains(t, content, "# messages: 3")
	require.Contains(t, content, "# unique chatters: 2")
	require.Contains(t, content, "# moderation events: 1")
	require.Contains(t, content, "[mod/1] alice: hello")
	require.Contains(t, content, "bob hi")
	require.Contains(t, content, "* bob was banned")

	joins, err := os.ReadFile(joinsPath)
	require.NoError(t, err)
	require.Contains(t, string(joins), "JOIN carol")
	require.Contains(t, string(joins), "PART carol")
}
